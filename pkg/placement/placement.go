package placement

import (
	"strings"

	"github.com/matzehuels/tooltip/pkg/errors"
)

// Side is the primary side of the target the tooltip is shown on.
type Side string

const (
	Top    Side = "top"
	Bottom Side = "bottom"
	Left   Side = "left"
	Right  Side = "right"
)

// Vertical reports whether the side is above or below the target.
func (s Side) Vertical() bool { return s == Top || s == Bottom }

// Opposite returns the side across the target.
func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	}
	return s
}

// Align is the cross-axis alignment. The zero value centers the tooltip.
type Align string

const (
	Center      Align = ""
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignTop    Align = "top"
	AlignBottom Align = "bottom"
)

// Opposite returns the mirrored alignment. Center is its own opposite.
func (a Align) Opposite() Align {
	switch a {
	case AlignLeft:
		return AlignRight
	case AlignRight:
		return AlignLeft
	case AlignTop:
		return AlignBottom
	case AlignBottom:
		return AlignTop
	}
	return a
}

// Placement is a side/alignment pair.
type Placement struct {
	Side  Side
	Align Align
}

// Default is the placement used when none is configured.
var Default = Placement{Side: Top}

// all lists the twelve valid placements in a stable order.
var all = []Placement{
	{Top, Center}, {Top, AlignLeft}, {Top, AlignRight},
	{Bottom, Center}, {Bottom, AlignLeft}, {Bottom, AlignRight},
	{Left, Center}, {Left, AlignTop}, {Left, AlignBottom},
	{Right, Center}, {Right, AlignTop}, {Right, AlignBottom},
}

// All returns the twelve valid placements.
func All() []Placement {
	out := make([]Placement, len(all))
	copy(out, all)
	return out
}

// Valid reports whether p is one of the twelve valid placements.
func (p Placement) Valid() bool {
	switch p.Side {
	case Top, Bottom:
		return p.Align == Center || p.Align == AlignLeft || p.Align == AlignRight
	case Left, Right:
		return p.Align == Center || p.Align == AlignTop || p.Align == AlignBottom
	}
	return false
}

// String returns the hyphenated form, e.g. "top" or "left-bottom".
func (p Placement) String() string {
	if p.Align == Center {
		return string(p.Side)
	}
	return string(p.Side) + "-" + string(p.Align)
}

// Class returns the class name a renderer applies for this placement.
// It equals the string form so that stylesheets can target "top-left" etc.
func (p Placement) Class() string {
	return p.String()
}

// MarshalText implements encoding.TextMarshaler.
func (p Placement) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPlacement, "invalid placement %q", p.String())
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Placement) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Parse parses the hyphenated form of a placement. Anything other than the
// twelve valid values yields an INVALID_PLACEMENT error.
func Parse(s string) (Placement, error) {
	side, align, hyphen := strings.Cut(s, "-")
	p := Placement{Side: Side(side), Align: Align(align)}
	if (hyphen && align == "") || !p.Valid() {
		return Placement{}, errors.New(errors.ErrCodeInvalidPlacement,
			"invalid placement %q (want one of %s)", s, strings.Join(Names(), ", "))
	}
	return p, nil
}

// MustParse is like Parse but panics on error. It is meant for constants.
func MustParse(s string) Placement {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Names returns the string forms of all valid placements.
func Names() []string {
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.String()
	}
	return names
}
