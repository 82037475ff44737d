package placement

import "github.com/matzehuels/tooltip/pkg/geom"

// rule computes one coordinate from the target, the tooltip size and spacing.
type rule func(t geom.Rect, s geom.Size, spacing float64) float64

var (
	above   rule = func(t geom.Rect, s geom.Size, sp float64) float64 { return t.Top - s.Height - sp }
	below   rule = func(t geom.Rect, s geom.Size, sp float64) float64 { return t.Bottom + sp }
	before  rule = func(t geom.Rect, s geom.Size, sp float64) float64 { return t.Left - s.Width - sp }
	after   rule = func(t geom.Rect, s geom.Size, sp float64) float64 { return t.Right + sp }
	centerX rule = func(t geom.Rect, s geom.Size, _ float64) float64 { return t.Left + t.Width/2 - s.Width/2 }
	centerY rule = func(t geom.Rect, s geom.Size, _ float64) float64 { return t.Top + t.Height/2 - s.Height/2 }
	endX    rule = func(t geom.Rect, s geom.Size, _ float64) float64 { return t.Right - s.Width }
	startX  rule = func(t geom.Rect, _ geom.Size, _ float64) float64 { return t.Left }
	endY    rule = func(t geom.Rect, s geom.Size, _ float64) float64 { return t.Bottom - s.Height }
	startY  rule = func(t geom.Rect, _ geom.Size, _ float64) float64 { return t.Top }
)

// offsetRules maps each valid placement to its {top, left} rules.
var offsetRules = map[Placement][2]rule{
	{Top, Center}:     {above, centerX},
	{Top, AlignLeft}:  {above, endX},
	{Top, AlignRight}: {above, startX},

	{Bottom, Center}:     {below, centerX},
	{Bottom, AlignLeft}:  {below, endX},
	{Bottom, AlignRight}: {below, startX},

	{Left, Center}:      {centerY, before},
	{Left, AlignTop}:    {endY, before},
	{Left, AlignBottom}: {startY, before},

	{Right, Center}:      {centerY, after},
	{Right, AlignTop}:    {endY, after},
	{Right, AlignBottom}: {startY, after},
}

// Offset returns the exact top-left corner of the tooltip box for placement p.
// p must be valid; an invalid placement yields the target's own corner.
func Offset(p Placement, target geom.Rect, size geom.Size, spacing float64) geom.Offset {
	r, ok := offsetRules[p]
	if !ok {
		return geom.Offset{Top: target.Top, Left: target.Left}
	}
	return geom.Offset{
		Top:  r[0](target, size, spacing),
		Left: r[1](target, size, spacing),
	}
}
