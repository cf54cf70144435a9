package layout

import "github.com/canvasengine/canvascore/internal/scene"

// resolveSize applies FIXED/HUG/FILL resolution to a node's own box, after
// its children have already been placed into e.results. w/h are the box the
// parent assigned (already FILL-adjusted by the caller where applicable).
func resolveSize(node *scene.Node, w, h float64, pad scene.Padding, results map[string]ComputedLayout) (float64, float64) {
	finalW, finalH := w, h

	switch node.Layout.Sizing.Horizontal.Mode {
	case scene.SizingHug:
		finalW = hugExtent(node.Children, results, pad.Left+pad.Right, pad.Right, true)
	case scene.SizingFill:
		finalW = w // the box the parent already assigned (FILL is resolved by the caller in absolute.go, autolayout.go and flex.go)
	}
	switch node.Layout.Sizing.Vertical.Mode {
	case scene.SizingHug:
		finalH = hugExtent(node.Children, results, pad.Top+pad.Bottom, pad.Bottom, false)
	case scene.SizingFill:
		finalH = h
	}

	finalW = clamp(finalW, node.Layout.Sizing.Horizontal.Min, node.Layout.Sizing.Horizontal.Max)
	finalH = clamp(finalH, node.Layout.Sizing.Vertical.Min, node.Layout.Sizing.Vertical.Max)

	return finalW, finalH
}

// hugExtent returns padding-sum-only when childless, or
// max(child.x+child.width) + trailingPad otherwise (height analogue when
// horizontal is false).
func hugExtent(children []string, results map[string]ComputedLayout, emptyExtent, trailingPad float64, horizontal bool) float64 {
	max := 0.0
	any := false
	for _, cid := range children {
		c, ok := results[cid]
		if !ok {
			continue
		}
		any = true
		var edge float64
		if horizontal {
			edge = c.X + c.Width
		} else {
			edge = c.Y + c.Height
		}
		if edge > max {
			max = edge
		}
	}
	if !any {
		return emptyExtent
	}
	return max + trailingPad
}
