package geom

import (
	"fmt"
	"math"

	"github.com/matzehuels/tooltip/pkg/errors"
)

// Rect is an axis-aligned box.
// Right and Bottom are always Left+Width and Top+Height for values built by
// the constructors in this package.
type Rect struct {
	Left   float64 `json:"left" toml:"left"`
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// NewRect creates a Rect from its top-left corner and dimensions.
func NewRect(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
		Width:  width,
		Height: height,
	}
}

// FromEdges creates a Rect from its four edges.
func FromEdges(left, top, right, bottom float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  right,
		Bottom: bottom,
		Width:  right - left,
		Height: bottom - top,
	}
}

// Point creates a zero-size Rect anchored at (x, y).
// Coordinates are truncated toward zero so that explicit positions always
// land on whole pixels.
func Point(x, y float64) Rect {
	tx, ty := math.Trunc(x), math.Trunc(y)
	return Rect{Left: tx, Top: ty, Right: tx, Bottom: ty}
}

// Normalize returns r with Right/Bottom or Width/Height filled in from the
// other pair. Rects decoded from JSON or TOML may carry only one of them.
func (r Rect) Normalize() Rect {
	if r.Width == 0 && r.Height == 0 && (r.Right != r.Left || r.Bottom != r.Top) {
		return FromEdges(r.Left, r.Top, r.Right, r.Bottom)
	}
	if r.Right == 0 && r.Bottom == 0 && (r.Width != 0 || r.Height != 0) {
		return NewRect(r.Left, r.Top, r.Width, r.Height)
	}
	return r
}

// Validate reports an INVALID_RECT error when the edges are inverted or the
// stored dimensions disagree with the edges.
func (r Rect) Validate() error {
	if err := errors.ValidateFinite("rect", r.Left, r.Top, r.Right, r.Bottom, r.Width, r.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRect, err, "malformed rect %s", r)
	}
	if r.Right < r.Left {
		return errors.New(errors.ErrCodeInvalidRect, "right (%g) is left of left (%g)", r.Right, r.Left)
	}
	if r.Bottom < r.Top {
		return errors.New(errors.ErrCodeInvalidRect, "bottom (%g) is above top (%g)", r.Bottom, r.Top)
	}
	if !near(r.Right-r.Left, r.Width) || !near(r.Bottom-r.Top, r.Height) {
		return errors.New(errors.ErrCodeInvalidRect, "dimensions do not match edges in %s", r)
	}
	return nil
}

// near compares with a relative tolerance so that rects built from
// fractional edges still validate.
func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// IsEmpty reports whether r has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ContainsRect reports whether o lies fully inside r (edges inclusive).
func (r Rect) ContainsRect(o Rect) bool {
	return o.Left >= r.Left && o.Top >= r.Top && o.Right <= r.Right && o.Bottom <= r.Bottom
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return NewRect(r.Left+dx, r.Top+dy, r.Width, r.Height)
}

// CenterX returns the horizontal center of r.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center of r.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

func (r Rect) String() string {
	return fmt.Sprintf("{left:%g top:%g right:%g bottom:%g}", r.Left, r.Top, r.Right, r.Bottom)
}

// Size is the measured width and height of the tooltip's content box.
type Size struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// At returns the Rect of a box of this size whose top-left corner is o.
func (s Size) At(o Offset) Rect {
	return NewRect(o.Left, o.Top, s.Width, s.Height)
}

// Offset is the top-left corner a tooltip box is moved to.
type Offset struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// Round returns the offset rounded to whole pixels, half away from zero.
// The returned values are (x, y), i.e. (left, top).
func (o Offset) Round() (x, y int) {
	return int(math.Round(o.Left)), int(math.Round(o.Top))
}
