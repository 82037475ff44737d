// Package render turns placement decisions into artifacts a person can look
// at or a program can consume.
//
// # Overview
//
// The subpackages are independent of each other and only depend on the
// geometry and placement packages:
//
//   - [preview]: SVG drawing of the viewport, the target and the tooltip box
//   - [report]: JSON document describing one placement decision
//   - [flipgraph]: Graphviz diagram of which requested placements flip where
//
// # Preview
//
// [preview.Render] draws a single scene. With [preview.WithAlternatives] it
// also outlines where every other placement would have landed, which makes
// auto-flip decisions easy to check by eye:
//
//	svg := preview.Render(scene, preview.WithAlternatives())
//
// # Flip graphs
//
// [flipgraph.ToDOT] builds a digraph over the twelve placements with an edge
// from each requested placement to the one auto-flip resolves it to.
// [flipgraph.RenderSVG] lays it out with Graphviz.
package render
