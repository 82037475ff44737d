// Package placement decides where a tooltip sits relative to its target and
// computes the pixel offset of its box.
//
// # Placements
//
// A [Placement] is a primary [Side] plus an optional cross-axis [Align]. Its
// external form is a hyphenated string; there are exactly twelve valid
// values:
//
//	top     top-left     top-right
//	bottom  bottom-left  bottom-right
//	left    left-top     left-bottom
//	right   right-top    right-bottom
//
// The alignment names the direction the box extends towards: "top-left" sits
// above the target with its right edge on the target's right edge, so it
// grows to the left.
//
// # Resolving and positioning
//
// [Resolve] is the auto-flip heuristic. With auto disabled it returns the
// requested placement. Otherwise it flips the side when the tooltip would not
// fit between the target and the viewport edge, then independently fixes the
// alignment. It is a greedy single pass, not a constraint solver: the result
// can still clip when neither side fits.
//
// [Offset] maps a placement to the top-left corner of the tooltip box. It is
// exact; renderers round with [geom.Offset.Round].
//
// [Compute] chains both and is what hosts normally call:
//
//	req, err := placement.Parse("top")
//	if err != nil {
//	    return err // INVALID_PLACEMENT
//	}
//	res := placement.Compute(req, target, viewport, size, 8, true)
//	fmt.Println(res.Resolved, res.X, res.Y)
package placement
