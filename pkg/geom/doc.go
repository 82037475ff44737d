// Package geom defines the geometry values exchanged between a hosting
// renderer and the placement core.
//
// All values share a single viewport-relative coordinate space and are plain
// real numbers with no unit. A [Rect] is a snapshot taken at computation time
// and is never mutated afterwards; methods return new values.
//
// # Rectangles
//
// [Rect] carries all six edge/dimension fields so that the placement rules can
// be written directly against them:
//
//	target := geom.NewRect(100, 50, 100, 30) // left, top, width, height
//	viewport := geom.FromEdges(0, 0, 1000, 1000)
//	anchor := geom.Point(320, 240) // zero-size rect at a coordinate
//
// # Rounding
//
// The placement core computes exact offsets. Renderers that need integral
// pixels call [Offset.Round], which rounds half away from zero.
package geom
