package layout

import "github.com/canvasengine/canvascore/internal/scene"

// layoutAbsoluteChild resolves cid's box under ABSOLUTE-mode constraints,
// evaluated against the container's content box (contentW x contentH).
//
// Per the documented open question, a fresh layout pass always treats the
// parent's original content width/height as equal to its current one
// (W0 = W), so SCALE behaves as identity here. Faithfully modelling a
// constraint authored under a different parent size would require a
// RebaseConstraints step this package does not implement.
func (e *engine) layoutAbsoluteChild(cid string, base placementBase, contentW, contentH float64) {
	child, ok := e.nodes[cid]
	if !ok {
		return // dangling child id: silently skipped, per failure semantics
	}

	x0, y0 := intrinsicXY(child)
	w0, h0 := child.Size.Width, child.Size.Height

	finalX, finalW := resolveAxis(x0, w0, contentW, child.Constraints.Horizontal)
	finalY, finalH := resolveAxis(y0, h0, contentH, verticalAsHorizontal(child.Constraints.Vertical))

	sizing := child.Layout.Sizing
	if sizing.Horizontal.Mode == scene.SizingFill {
		finalW = contentW
	}
	if sizing.Vertical.Mode == scene.SizingFill {
		finalH = contentH
	}
	finalW = clamp(finalW, sizing.Horizontal.Min, sizing.Horizontal.Max)
	finalH = clamp(finalH, sizing.Vertical.Min, sizing.Vertical.Max)

	e.place(cid, base, finalX, finalY, finalW, finalH)
}

// resolveAxis applies the horizontal constraint table from the ABSOLUTE
// mode spec. Vertical constraints mirror it via verticalAsHorizontal.
func resolveAxis(pos, size, contentExtent float64, constraint scene.ConstraintValue) (finalPos, finalSize float64) {
	r := contentExtent - (pos + size)
	switch constraint {
	case scene.ConstraintRight:
		return contentExtent - size - r, size
	case scene.ConstraintLeftRight:
		return pos, contentExtent - pos - r
	case scene.ConstraintCenter:
		return (contentExtent - size) / 2, size
	case scene.ConstraintScale:
		return pos, size // W0 == W on a fresh pass
	default: // LEFT, or unset
		return pos, size
	}
}

// verticalAsHorizontal maps the vertical constraint vocabulary onto the
// same resolveAxis switch (TOP≡LEFT, BOTTOM≡RIGHT, TOP_BOTTOM≡LEFT_RIGHT).
func verticalAsHorizontal(v scene.ConstraintValue) scene.ConstraintValue {
	switch v {
	case "BOTTOM":
		return scene.ConstraintRight
	case "TOP_BOTTOM":
		return scene.ConstraintLeftRight
	case scene.ConstraintCenter:
		return scene.ConstraintCenter
	case scene.ConstraintScale:
		return scene.ConstraintScale
	default:
		return scene.ConstraintLeft
	}
}
