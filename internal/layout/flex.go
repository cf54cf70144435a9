package layout

import (
	"sort"

	"github.com/canvasengine/canvascore/internal/scene"
)

type flexLineItem struct {
	id        string
	basis     float64
	grow      float64
	shrink    float64
	alignSelf scene.Align
	sizing    scene.AxisSizing
}

// layoutFlex implements CSS-flexbox-parity distribution: order sort, line
// wrapping, a single grow/shrink clamp pass per line, then placement on
// both axes.
func (e *engine) layoutFlex(node *scene.Node, flow []string, base placementBase, contentW, contentH float64) {
	row := node.Layout.Direction != scene.DirectionColumn

	primaryExtent, counterExtent := contentW, contentH
	if !row {
		primaryExtent, counterExtent = contentH, contentW
	}

	items := make([]flexLineItem, 0, len(flow))
	for _, cid := range flow {
		child := e.nodes[cid]
		if child == nil {
			continue
		}
		fi := child.Layout.FlexItem
		basis := fi.Basis
		if fi.BasisAuto {
			basis = primarySizeOf(child, row)
		}
		sizing := child.Layout.Sizing.Horizontal
		if !row {
			sizing = child.Layout.Sizing.Vertical
		}
		// FILL on the primary axis defers to flex grow rather than a direct
		// size assignment: a FILL item with no explicit grow still consumes
		// its share of free space.
		grow := fi.Grow
		if sizing.Mode == scene.SizingFill && grow == 0 {
			grow = 1
		}
		items = append(items, flexLineItem{id: cid, basis: basis, grow: grow, shrink: fi.Shrink, alignSelf: fi.AlignSelf, sizing: sizing})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return orderOf(e.nodes[items[i].id]) < orderOf(e.nodes[items[j].id])
	})
	if node.Layout.Reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}

	gap := node.Layout.Gap
	lines := wrapIntoLines(items, gap, primaryExtent, node.Layout.Wrap)

	lineGap := gap
	if node.Layout.RowGap != nil {
		lineGap = *node.Layout.RowGap
	}

	counterCursor := 0.0
	for li, line := range lines {
		finalSizes := distributeFlexLine(line, gap, primaryExtent)

		lineCounter := 0.0
		for i, item := range line {
			child := e.nodes[item.id]
			align := effectiveAlign(node.Layout.CounterAlign, item.alignSelf)
			cSize := counterSizeOf(child, row, counterExtent)
			if align == scene.AlignStretch {
				cSize = counterExtent
			}
			if cSize > lineCounter {
				lineCounter = cSize
			}
			_ = finalSizes[i]
		}

		total := 0.0
		for _, s := range finalSizes {
			total += s
		}
		free := primaryExtent - total - gap*float64(maxInt(len(line)-1, 0))
		start, effectiveGap := distributeFreeSpace(node.Layout.PrimaryAlign, free, gap, len(line))

		cursor := start
		for i, item := range line {
			child := e.nodes[item.id]
			align := effectiveAlign(node.Layout.CounterAlign, item.alignSelf)
			counterPos, counterFinal := placeOnCounterAxis(align, counterSizeOf(child, row, counterExtent), counterExtent)
			if align == scene.AlignStretch {
				counterFinal = counterExtent
				counterPos = 0
			}

			var offsetX, offsetY, w, h float64
			if row {
				offsetX, offsetY, w, h = cursor, counterCursor+counterPos, finalSizes[i], counterFinal
			} else {
				offsetX, offsetY, w, h = counterCursor+counterPos, cursor, counterFinal, finalSizes[i]
			}
			e.place(item.id, base, offsetX, offsetY, w, h)
			cursor += finalSizes[i] + effectiveGap
		}

		counterCursor += lineCounter
		if li < len(lines)-1 {
			counterCursor += lineGap
		}
	}
}

func orderOf(n *scene.Node) int {
	if n == nil {
		return 0
	}
	return n.Layout.FlexItem.Order
}

// wrapIntoLines greedily accumulates items until the next one would exceed
// the primary extent, never leaving a line empty. No wrapping collapses
// everything onto a single line.
func wrapIntoLines(items []flexLineItem, gap, primaryExtent float64, wrap bool) [][]flexLineItem {
	if !wrap || len(items) == 0 {
		if len(items) == 0 {
			return nil
		}
		return [][]flexLineItem{items}
	}
	var lines [][]flexLineItem
	var current []flexLineItem
	used := 0.0
	for _, item := range items {
		addition := item.basis
		if len(current) > 0 {
			addition += gap
		}
		if len(current) > 0 && used+addition > primaryExtent {
			lines = append(lines, current)
			current = []flexLineItem{item}
			used = item.basis
			continue
		}
		current = append(current, item)
		used += addition
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// distributeFlexLine resolves each item's final primary-axis size via a
// single clamp pass: grow distribution when free space remains, shrink
// distribution when it's negative, per §4.3.3 step 4. A fully general
// min/max re-flex loop is not implemented, matching the documented
// simplification.
func distributeFlexLine(line []flexLineItem, gap, primaryExtent float64) []float64 {
	n := len(line)
	sizes := make([]float64, n)
	basisSum := 0.0
	growSum := 0.0
	shrinkBasisSum := 0.0
	for _, item := range line {
		basisSum += item.basis
		growSum += item.grow
		shrinkBasisSum += item.shrink * item.basis
	}
	free := primaryExtent - basisSum - gap*float64(maxInt(n-1, 0))

	for i, item := range line {
		final := item.basis
		switch {
		case free > 0 && growSum > 0:
			final = item.basis + free*(item.grow/growSum)
		case free < 0 && shrinkBasisSum > 0:
			final = item.basis + free*((item.shrink*item.basis)/shrinkBasisSum)
			if final < 0 {
				final = 0
			}
		}
		sizes[i] = clamp(final, item.sizing.Min, item.sizing.Max)
	}
	return sizes
}
