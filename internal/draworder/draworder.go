// Package draworder flattens a scene graph into an ordered list of
// resolved, world-space draw records — the painter's-algorithm
// linearization any renderer consumes.
package draworder

import (
	"github.com/canvasengine/canvascore/internal/geometry"
	"github.com/canvasengine/canvascore/internal/scene"
)

// ResolvedBox is a node's final world-space draw record.
type ResolvedBox struct {
	ID           string
	ParentID     string
	X, Y         float64
	Width        float64
	Height       float64
	RotationDeg  float64
	Opacity      float64
	Visible      bool
	ClipsContent bool
	ZIndex       int
	Source       *scene.Node
}

// Project walks the scene graph from each root in insertion order, emitting
// a ResolvedBox per node with a monotonically increasing z-index.
func Project(g *scene.Graph, geo *geometry.Service) []ResolvedBox {
	var boxes []ResolvedBox
	z := 0
	for _, rootID := range g.Roots() {
		walk(g, geo, rootID, &boxes, &z)
	}
	return boxes
}

func walk(g *scene.Graph, geo *geometry.Service, id string, boxes *[]ResolvedBox, z *int) {
	node, ok := g.Get(id)
	if !ok {
		return
	}
	worldGeom, hasGeometry := geo.GetGeometry(id)

	box := ResolvedBox{
		ID:           id,
		ParentID:     node.ParentID,
		Visible:      node.Visible,
		ClipsContent: node.ClipsContent,
		Opacity:      node.Styles.Opacity,
		ZIndex:       *z,
		Source:       node,
	}
	if hasGeometry {
		box.X = worldGeom.WorldBounds.X
		box.Y = worldGeom.WorldBounds.Y
		box.Width = worldGeom.WorldBounds.Width
		box.Height = worldGeom.WorldBounds.Height
		box.RotationDeg = worldGeom.Display.RotationDeg
	}
	*boxes = append(*boxes, box)
	*z++

	for _, cid := range node.Children {
		walk(g, geo, cid, boxes, z)
	}
}
