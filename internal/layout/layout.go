// Package layout resolves size and position for every visible node in a
// scene graph under the three layout regimes: ABSOLUTE (constraint-based),
// AUTO_LAYOUT (Figma-style row/column), and FLEX (CSS-flexbox parity).
package layout

import (
	"math"

	"github.com/canvasengine/canvascore/internal/scene"
)

// ComputedLayout is a node's resolved box: parent-relative x/y/width/height
// plus the accumulated world position.
type ComputedLayout struct {
	X, Y, Width, Height float64
	WorldX, WorldY      float64
}

// Options configures a layout pass.
type Options struct {
	ViewportWidth  *float64
	ViewportHeight *float64
	RoundToPixels  bool
}

// Compute lays out every node reachable from roots, given the full node
// table. Dangling child ids (present in a Children list but absent from
// nodes) are silently skipped, per the documented failure semantics.
func Compute(nodes map[string]*scene.Node, roots []string, options Options) map[string]ComputedLayout {
	e := &engine{nodes: nodes, results: make(map[string]ComputedLayout), options: options}
	for _, id := range roots {
		root, ok := nodes[id]
		if !ok {
			continue
		}
		w, h := root.Size.Width, root.Size.Height
		if options.ViewportWidth != nil {
			w = *options.ViewportWidth
		}
		if options.ViewportHeight != nil {
			h = *options.ViewportHeight
		}
		x, y := intrinsicXY(root)
		e.layoutNode(id, x, y, w, h, x, y)
	}
	if options.RoundToPixels {
		e.roundAll()
	}
	return e.results
}

// ComputeFromSceneGraph is a convenience wrapper that pulls the node table
// and root order straight from a scene graph.
func ComputeFromSceneGraph(g *scene.Graph, options Options) map[string]ComputedLayout {
	nodes := make(map[string]*scene.Node)
	for n := range g.Iterate() {
		nodes[n.ID] = n
	}
	return Compute(nodes, g.Roots(), options)
}

type engine struct {
	nodes   map[string]*scene.Node
	results map[string]ComputedLayout
	options Options
}

// placementBase is the reference frame children are placed into: localX/Y
// is the offset to add to a child's content-box-relative coordinate to get
// its own parent-relative stored position; worldX/Y is the equivalent
// accumulated world origin.
type placementBase struct {
	localX, localY float64
	worldX, worldY float64
}

// place stores a child's final box, given its offset within the content
// box, and recurses into its own children.
func (e *engine) place(cid string, base placementBase, offsetX, offsetY, w, h float64) {
	localX := base.localX + offsetX
	localY := base.localY + offsetY
	worldX := base.worldX + offsetX
	worldY := base.worldY + offsetY
	e.layoutNode(cid, localX, localY, w, h, worldX, worldY)
}

func intrinsicXY(n *scene.Node) (float64, float64) {
	return n.LocalTransform[4], n.LocalTransform[5]
}

// layoutNode resolves node id's own box (given the x/y/w/h its parent
// assigned it) and then arranges its children inside that box.
func (e *engine) layoutNode(id string, x, y, w, h, worldX, worldY float64) {
	node, ok := e.nodes[id]
	if !ok {
		return
	}
	if !node.Visible {
		e.results[id] = ComputedLayout{X: x, Y: y, WorldX: worldX, WorldY: worldY}
		return
	}

	finalW, finalH := e.arrangeChildren(node, x, y, w, h, worldX, worldY)
	e.results[id] = ComputedLayout{X: x, Y: y, Width: finalW, Height: finalH, WorldX: worldX, WorldY: worldY}
}

// arrangeChildren dispatches to the node's layout mode, places every child,
// and resolves this node's own HUG size from the result.
func (e *engine) arrangeChildren(node *scene.Node, x, y, w, h, worldX, worldY float64) (float64, float64) {
	pad := node.Layout.Padding
	contentW := w - pad.Left - pad.Right
	contentH := h - pad.Top - pad.Bottom
	// Child positions are stored parent-relative (relative to node), so the
	// content box's local origin is just the padding offset, NOT node's own
	// x/y — that cumulative sum belongs only to the world accumulation.
	base := placementBase{
		localX: pad.Left, localY: pad.Top,
		worldX: worldX + pad.Left, worldY: worldY + pad.Top,
	}

	flow, absolute := partitionChildren(node, e.nodes)

	switch node.Layout.Mode {
	case scene.ModeAutoLayout:
		e.layoutAutoLayout(node, flow, base, contentW, contentH)
	case scene.ModeFlex:
		e.layoutFlex(node, flow, base, contentW, contentH)
	default:
		// ABSOLUTE mode containers place ALL children via the constraint
		// algorithm; flow/absolute separation doesn't apply.
		for _, cid := range node.Children {
			e.layoutAbsoluteChild(cid, base, contentW, contentH)
		}
	}

	for _, cid := range absolute {
		e.layoutAbsoluteChild(cid, base, contentW, contentH)
	}

	return resolveSize(node, w, h, pad, e.results)
}

// partitionChildren splits a flow container's children into flow
// (layout-participating) and absolute (opted out via AbsolutePosition).
// Dangling ids are dropped from both lists.
func partitionChildren(node *scene.Node, nodes map[string]*scene.Node) (flow, absolute []string) {
	for _, cid := range node.Children {
		child, ok := nodes[cid]
		if !ok {
			continue
		}
		if child.Layout.AbsolutePosition {
			absolute = append(absolute, cid)
		} else {
			flow = append(flow, cid)
		}
	}
	return flow, absolute
}

func (e *engine) roundAll() {
	for id, c := range e.results {
		e.results[id] = ComputedLayout{
			X:      math.Round(c.X),
			Y:      math.Round(c.Y),
			Width:  math.Round(c.Width),
			Height: math.Round(c.Height),
			WorldX: math.Round(c.WorldX),
			WorldY: math.Round(c.WorldY),
		}
	}
}

func clamp(v float64, min, max *float64) float64 {
	if min != nil && v < *min {
		v = *min
	}
	if max != nil && v > *max {
		v = *max
	}
	return v
}
