// Package preview renders a placement decision as an SVG drawing.
package preview

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/tooltip/pkg/geom"
	"github.com/matzehuels/tooltip/pkg/placement"
)

const previewCSS = `
    .viewport { fill: #fafafa; stroke: #999; stroke-dasharray: 6 4; }
    .target { fill: #d8e8ff; stroke: #3a78c2; stroke-width: 1.5; }
    .tooltip { fill: #222; stroke: none; }
    .tooltip.flipped { fill: #8a3324; }
    .tooltip-text { fill: #fff; font: 12px sans-serif; dominant-baseline: middle; text-anchor: middle; }
    .pointer { fill: #222; }
    .pointer.flipped { fill: #8a3324; }
    .alt { fill: none; stroke: #bbb; stroke-dasharray: 2 2; }
    .alt-label { fill: #999; font: 9px sans-serif; }
    .caption { fill: #555; font: 12px sans-serif; }`

const pointerSize = 5

// Scene is everything needed to draw one decision.
type Scene struct {
	Viewport geom.Rect
	Target   geom.Rect
	Size     geom.Size
	Spacing  float64
	Content  string
	Result   placement.Result
}

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	margin       float64
	alternatives bool
	caption      bool
}

// WithMargin sets the blank border around the drawing (default 20).
func WithMargin(m float64) Option { return func(r *renderer) { r.margin = math.Max(0, m) } }

// WithAlternatives outlines the boxes of all other placements.
func WithAlternatives() Option { return func(r *renderer) { r.alternatives = true } }

// WithCaption adds a line describing the decision under the drawing.
func WithCaption() Option { return func(r *renderer) { r.caption = true } }

// Render draws the scene as a standalone SVG document.
func Render(s Scene, opts ...Option) []byte {
	r := renderer{margin: 20}
	for _, opt := range opts {
		opt(&r)
	}

	box := s.Result.Box(s.Size)
	bounds := union(s.Viewport, s.Target, box)
	if r.alternatives {
		for _, p := range placement.All() {
			bounds = union(bounds, s.Size.At(placement.Offset(p, s.Target, s.Size, s.Spacing)))
		}
	}
	bounds = geom.FromEdges(bounds.Left-r.margin, bounds.Top-r.margin, bounds.Right+r.margin, bounds.Bottom+r.margin)

	height := bounds.Height
	if r.caption {
		height += 24
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		bounds.Left, bounds.Top, bounds.Width, height, bounds.Width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", previewCSS)

	writeRect(&buf, "viewport", s.Viewport)
	writeRect(&buf, "target", s.Target)

	if r.alternatives {
		for _, p := range placement.All() {
			if p == s.Result.Resolved {
				continue
			}
			alt := s.Size.At(placement.Offset(p, s.Target, s.Size, s.Spacing))
			writeRect(&buf, "alt", alt)
			fmt.Fprintf(&buf, `  <text class="alt-label" x="%.1f" y="%.1f">%s</text>`+"\n",
				alt.Left+2, alt.Top+10, p)
		}
	}

	class := "tooltip " + s.Result.Resolved.Class()
	pointerClass := "pointer"
	if s.Result.Flipped() {
		class += " flipped"
		pointerClass += " flipped"
	}
	writeRect(&buf, class, box)
	writePointer(&buf, pointerClass, s.Result.Resolved, s.Target, box)
	if s.Content != "" {
		fmt.Fprintf(&buf, `  <text class="tooltip-text" x="%.1f" y="%.1f">%s</text>`+"\n",
			box.CenterX(), box.CenterY(), html.EscapeString(s.Content))
	}

	if r.caption {
		fmt.Fprintf(&buf, `  <text class="caption" x="%.1f" y="%.1f">requested %s, resolved %s at (%d, %d)</text>`+"\n",
			bounds.Left+r.margin, bounds.Bottom+16, s.Result.Requested, s.Result.Resolved, s.Result.X, s.Result.Y)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeRect(buf *bytes.Buffer, class string, r geom.Rect) {
	fmt.Fprintf(buf, `  <rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		class, r.Left, r.Top, r.Width, r.Height)
}

// writePointer draws a small triangle on the tooltip edge facing the target,
// placed on the target's center line clamped to the box.
func writePointer(buf *bytes.Buffer, class string, p placement.Placement, target, box geom.Rect) {
	var x1, y1, x2, y2, tx, ty float64
	switch p.Side {
	case placement.Top, placement.Bottom:
		cx := clamp(target.CenterX(), box.Left+pointerSize, box.Right-pointerSize)
		edge, dir := box.Bottom, 1.0
		if p.Side == placement.Bottom {
			edge, dir = box.Top, -1.0
		}
		x1, y1, x2, y2 = cx-pointerSize, edge, cx+pointerSize, edge
		tx, ty = cx, edge+dir*pointerSize
	default:
		cy := clamp(target.CenterY(), box.Top+pointerSize, box.Bottom-pointerSize)
		edge, dir := box.Right, 1.0
		if p.Side == placement.Right {
			edge, dir = box.Left, -1.0
		}
		x1, y1, x2, y2 = edge, cy-pointerSize, edge, cy+pointerSize
		tx, ty = edge+dir*pointerSize, cy
	}
	fmt.Fprintf(buf, `  <polygon class="%s" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f"/>`+"\n",
		class, x1, y1, x2, y2, tx, ty)
}

func union(rs ...geom.Rect) geom.Rect {
	u := rs[0]
	for _, r := range rs[1:] {
		u = geom.FromEdges(
			math.Min(u.Left, r.Left), math.Min(u.Top, r.Top),
			math.Max(u.Right, r.Right), math.Max(u.Bottom, r.Bottom),
		)
	}
	return u
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(v, hi))
}
