package layout

import "github.com/canvasengine/canvascore/internal/scene"

// layoutAutoLayout places flow (non-absolute) children in a Figma-style
// row/column, honoring primary-axis alignment (including the SPACE_* modes)
// and per-child alignSelf overrides on the counter axis.
func (e *engine) layoutAutoLayout(node *scene.Node, flow []string, base placementBase, contentW, contentH float64) {
	row := node.Layout.Direction != scene.DirectionColumn

	ordered := flow
	if node.Layout.Reverse {
		ordered = reversed(flow)
	}

	primaryExtent, counterExtent := contentW, contentH
	if !row {
		primaryExtent, counterExtent = contentH, contentW
	}

	sizes := make([]float64, len(ordered))
	for i, cid := range ordered {
		sizes[i] = primarySizeOf(e.nodes[cid], row)
	}

	n := len(ordered)
	gap := node.Layout.Gap
	total := 0.0
	for _, s := range sizes {
		total += s
	}
	free := primaryExtent - total - gap*float64(maxInt(n-1, 0))

	start, effectiveGap := distributeFreeSpace(node.Layout.PrimaryAlign, free, gap, n)

	cursor := start
	for i, cid := range ordered {
		child := e.nodes[cid]
		primarySize := sizes[i]
		counterSize := counterSizeOf(child, row, counterExtent)

		align := effectiveAlign(node.Layout.CounterAlign, child.Layout.FlexItem.AlignSelf)
		counterPos, counterFinal := placeOnCounterAxis(align, counterSize, counterExtent)

		var offsetX, offsetY, w, h float64
		if row {
			offsetX, offsetY, w, h = cursor, counterPos, primarySize, counterFinal
		} else {
			offsetX, offsetY, w, h = counterPos, cursor, counterFinal, primarySize
		}

		e.place(cid, base, offsetX, offsetY, w, h)
		cursor += primarySize + effectiveGap
	}
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func primarySizeOf(n *scene.Node, row bool) float64 {
	if n == nil {
		return 0
	}
	if row {
		return n.Size.Width
	}
	return n.Size.Height
}

// counterSizeOf returns n's size on the counter axis. A child sized FILL on
// that axis adopts the container's counter-axis content extent
// unconditionally, regardless of its own intrinsic size.
func counterSizeOf(n *scene.Node, row bool, counterExtent float64) float64 {
	if n == nil {
		return 0
	}
	sizing := n.Layout.Sizing.Horizontal
	if row {
		sizing = n.Layout.Sizing.Vertical
	}
	if sizing.Mode == scene.SizingFill {
		return counterExtent
	}
	if row {
		return n.Size.Height
	}
	return n.Size.Width
}

// distributeFreeSpace implements the start/gap table shared by AUTO_LAYOUT
// (§4.3.2 step 4) and FLEX's primary-axis placement (§4.3.3 step 6).
func distributeFreeSpace(align scene.Align, free, gap float64, n int) (start, effectiveGap float64) {
	switch align {
	case scene.AlignCenter:
		return free / 2, gap
	case scene.AlignEnd:
		return free, gap
	case scene.AlignSpaceBetween:
		if n > 1 {
			return 0, free / float64(n-1)
		}
		return 0, gap
	case scene.AlignSpaceAround:
		if n > 0 {
			g := free / float64(n)
			return g / 2, g
		}
		return 0, gap
	case scene.AlignSpaceEvenly:
		g := free / float64(n+1)
		return g, g
	default: // START
		return 0, gap
	}
}

// effectiveAlign applies the "alignSelf other than AUTO wins" rule.
func effectiveAlign(containerAlign, selfAlign scene.Align) scene.Align {
	if selfAlign != "" && selfAlign != scene.AlignSelfAuto {
		return selfAlign
	}
	return containerAlign
}

// placeOnCounterAxis resolves a single item's counter-axis position and
// size. BASELINE falls back to START, per the documented simplification.
func placeOnCounterAxis(align scene.Align, itemSize, extent float64) (pos, size float64) {
	switch align {
	case scene.AlignStretch:
		return 0, extent
	case scene.AlignCenter:
		return (extent - itemSize) / 2, itemSize
	case scene.AlignEnd:
		return extent - itemSize, itemSize
	default: // START, BASELINE
		return 0, itemSize
	}
}
