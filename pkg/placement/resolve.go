package placement

import "github.com/matzehuels/tooltip/pkg/geom"

// Resolve returns the placement a tooltip should actually use.
//
// With auto disabled the requested placement is returned unchanged. With auto
// enabled the side is flipped when the box plus spacing would reach the
// viewport edge on the requested side, then the alignment is checked against
// the cross-axis edges of the viewport. Both passes are independent and the
// result is always a valid placement.
func Resolve(req Placement, target, viewport geom.Rect, size geom.Size, spacing float64, auto bool) Placement {
	if !auto {
		return req
	}

	p := req
	p.Side = resolveSide(req.Side, target, viewport, size, spacing)
	if p.Side.Vertical() {
		p.Align = resolveHorizontalAlign(req.Align, target, viewport, size)
	} else {
		p.Align = resolveVerticalAlign(req.Align, target, viewport, size)
	}
	return p
}

func resolveSide(side Side, target, viewport geom.Rect, size geom.Size, spacing float64) Side {
	switch side {
	case Top:
		if target.Top-size.Height-spacing <= viewport.Top {
			return Bottom
		}
	case Bottom:
		if target.Bottom+size.Height+spacing >= viewport.Bottom {
			return Top
		}
	case Left:
		if target.Left-size.Width-spacing <= viewport.Left {
			return Right
		}
	case Right:
		if target.Right+size.Width+spacing >= viewport.Right {
			return Left
		}
	}
	return side
}

// resolveHorizontalAlign handles the cross axis of top/bottom placements.
func resolveHorizontalAlign(align Align, target, viewport geom.Rect, size geom.Size) Align {
	switch align {
	case AlignLeft:
		if target.Right-size.Width <= viewport.Left {
			return AlignRight
		}
	case AlignRight:
		if target.Left+size.Width >= viewport.Right {
			return AlignLeft
		}
	default:
		// Right edge first: a box wider than the viewport ends up left-aligned.
		if target.Left+target.Width/2+size.Width/2 >= viewport.Right {
			return AlignLeft
		}
		if target.Right-target.Width/2-size.Width/2 <= viewport.Left {
			return AlignRight
		}
	}
	return align
}

// resolveVerticalAlign handles the cross axis of left/right placements.
func resolveVerticalAlign(align Align, target, viewport geom.Rect, size geom.Size) Align {
	switch align {
	case AlignTop:
		if target.Bottom-size.Height <= viewport.Top {
			return AlignBottom
		}
	case AlignBottom:
		if target.Top+size.Height >= viewport.Bottom {
			return AlignTop
		}
	default:
		if target.Top+target.Height/2+size.Height/2 >= viewport.Bottom {
			return AlignTop
		}
		if target.Bottom-target.Height/2-size.Height/2 <= viewport.Top {
			return AlignBottom
		}
	}
	return align
}
