package transform

import (
	"math"

	"github.com/canvasengine/canvascore/internal/geom"
)

// GridSettings configures grid-based snapping.
type GridSettings struct {
	Enabled bool
	Size    float64
}

// SnapSettings configures Snap/SnapBounds.
type SnapSettings struct {
	Grid      GridSettings
	Threshold float64 // distance within which a peer edge is considered a match
}

// GuideAxis is the axis a snap guide runs along.
type GuideAxis string

const (
	GuideVertical   GuideAxis = "VERTICAL"
	GuideHorizontal GuideAxis = "HORIZONTAL"
)

// Guide is a visual snap indicator emitted alongside a snapped value.
type Guide struct {
	Axis     GuideAxis
	Position float64
}

func snapAxis(value float64, candidates []float64, threshold float64) (float64, bool, float64) {
	best := value
	bestDist := threshold
	found := false
	for _, c := range candidates {
		d := math.Abs(value - c)
		if d <= bestDist {
			bestDist = d
			best = c
			found = true
		}
	}
	return best, found, best
}

// Snap snaps point against the configured grid and the world bounds of
// every registered node not in excludeIds, returning the snapped point and
// the guides that fired.
func (e *Engine) Snap(point geom.Point, excludeIds []string, settings SnapSettings) (geom.Point, []Guide) {
	excluded := make(map[string]bool, len(excludeIds))
	for _, id := range excludeIds {
		excluded[id] = true
	}

	var xCandidates, yCandidates []float64
	for id, n := range e.nodes {
		if excluded[id] {
			continue
		}
		b := geom.WorldBounds(n.world, n.size.Width, n.size.Height)
		xCandidates = append(xCandidates, b.X, b.X+b.Width/2, b.X+b.Width)
		yCandidates = append(yCandidates, b.Y, b.Y+b.Height/2, b.Y+b.Height)
	}

	var guides []Guide
	result := point

	if x, ok, pos := snapAxis(point.X, xCandidates, settings.Threshold); ok {
		result.X = x
		guides = append(guides, Guide{Axis: GuideVertical, Position: pos})
	} else if settings.Grid.Enabled && settings.Grid.Size > 0 {
		result.X = math.Round(point.X/settings.Grid.Size) * settings.Grid.Size
	}

	if y, ok, pos := snapAxis(point.Y, yCandidates, settings.Threshold); ok {
		result.Y = y
		guides = append(guides, Guide{Axis: GuideHorizontal, Position: pos})
	} else if settings.Grid.Enabled && settings.Grid.Size > 0 {
		result.Y = math.Round(point.Y/settings.Grid.Size) * settings.Grid.Size
	}

	return result, guides
}

// SnapBounds snaps every edge of bounds independently via Snap, returning
// the snapped rect and the union of fired guides.
func (e *Engine) SnapBounds(bounds geom.Rect, excludeIds []string, settings SnapSettings) (geom.Rect, []Guide) {
	topLeft, g1 := e.Snap(geom.Point{X: bounds.X, Y: bounds.Y}, excludeIds, settings)
	bottomRight, g2 := e.Snap(geom.Point{X: bounds.X + bounds.Width, Y: bounds.Y + bounds.Height}, excludeIds, settings)
	snapped := geom.Rect{
		X:      topLeft.X,
		Y:      topLeft.Y,
		Width:  bottomRight.X - topLeft.X,
		Height: bottomRight.Y - topLeft.Y,
	}
	return snapped, append(g1, g2...)
}
