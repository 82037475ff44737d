// Package flipgraph draws which placements auto-flip resolves to for one
// geometry, as a Graphviz diagram.
package flipgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tooltip/pkg/geom"
	"github.com/matzehuels/tooltip/pkg/placement"
)

// Geometry is the input every placement is evaluated against.
type Geometry struct {
	Target   geom.Rect
	Viewport geom.Rect
	Size     geom.Size
	Spacing  float64
}

// Options configures diagram generation.
type Options struct {
	// Coordinates adds the resolved offset to each node label.
	Coordinates bool
	// Highlight marks one requested placement with a bold outline.
	Highlight *placement.Placement
}

// ToDOT builds a digraph with one node per placement and an edge from each
// requested placement to the one it resolves to with auto-flip on. Nodes
// whose box fits the viewport as requested are filled green, the others red.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(g Geometry, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph flips {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	type edge struct{ from, to placement.Placement }
	var edges []edge

	for _, p := range placement.All() {
		asIs := placement.Compute(p, g.Target, g.Viewport, g.Size, g.Spacing, false)
		resolved := placement.Resolve(p, g.Target, g.Viewport, g.Size, g.Spacing, true)
		if resolved != p {
			edges = append(edges, edge{p, resolved})
		}
		label := p.String()
		if opts.Coordinates {
			label += fmt.Sprintf("\n(%d, %d)", asIs.X, asIs.Y)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", p.String(), strings.Join(nodeAttrs(label, g.Viewport.ContainsRect(asIs.Box(g.Size)), opts.Highlight != nil && *opts.Highlight == p), ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.from.String(), e.to.String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(label string, fits, highlight bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fits {
		attrs = append(attrs, "fillcolor=\"#d7f0d2\"")
	} else {
		attrs = append(attrs, "fillcolor=\"#f6d3cf\"")
	}
	if highlight {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// viewBox so the diagram scales when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
