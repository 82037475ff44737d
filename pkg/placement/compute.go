package placement

import (
	"github.com/matzehuels/tooltip/pkg/geom"
	"github.com/matzehuels/tooltip/pkg/observability"
)

// Result is the outcome of one position update.
type Result struct {
	Requested Placement
	Resolved  Placement
	Offset    geom.Offset // exact
	X, Y      int         // Offset rounded half away from zero
}

// Flipped reports whether auto-flip changed the requested placement.
func (r Result) Flipped() bool { return r.Requested != r.Resolved }

// Box returns the rectangle the tooltip occupies at the exact offset.
func (r Result) Box(size geom.Size) geom.Rect { return size.At(r.Offset) }

// Compute resolves the placement and computes the tooltip's offset.
func Compute(req Placement, target, viewport geom.Rect, size geom.Size, spacing float64, auto bool) Result {
	resolved := Resolve(req, target, viewport, size, spacing, auto)
	off := Offset(resolved, target, size, spacing)
	x, y := off.Round()

	observability.Placement().OnResolve(req.String(), resolved.String())

	return Result{
		Requested: req,
		Resolved:  resolved,
		Offset:    off,
		X:         x,
		Y:         y,
	}
}
