// Package pkg provides the libraries behind the tooltip placement tools.
//
// # Overview
//
// A tooltip is a small floating box shown next to a target rectangle. It is
// placed on a requested side of the target and, with auto-flip enabled,
// moved to the opposite side or alignment when it would leave the viewport.
// The pkg directory is organized into three areas:
//
//  1. Core - geometry, placement decisions and reposition scheduling
//  2. Widget - per-tooltip state driving the core on behalf of a host
//  3. Output - SVG previews, JSON documents and Graphviz diagrams
//
// # Architecture
//
// The typical data flow for one position update:
//
//	Host (viewport, target rect, measured size)
//	         ↓
//	    [tooltip] package (state, spacing, target handle)
//	         ↓
//	    [placement] package (resolve + offset)
//	         ↓
//	    Host.Move / Host.UpdateClasses
//
// Viewport changes enter through [scheduler], which coalesces them into one
// reposition pass per frame over every tracked tooltip.
//
// # Quick Start
//
// Compute a placement directly:
//
//	target := geom.NewRect(100, 50, 100, 30)
//	viewport := geom.FromEdges(0, 40, 400, 300)
//	res := placement.Compute(placement.MustParse("top"), target, viewport,
//	    geom.Size{Width: 60, Height: 20}, 8, true)
//	fmt.Println(res.Resolved, res.X, res.Y) // bottom 120 88
//
// Drive a tooltip through a host:
//
//	sched := scheduler.New(frames)
//	t, _ := tooltip.New(host, "Save changes", tooltip.DefaultConfig(),
//	    tooltip.WithScheduler(sched))
//	t.Attach("save-button")
//	t.Show()
//	// on resize or scroll:
//	sched.NotifyViewportChanged()
//
// Hosts without a frame primitive pass nil and run due passes from their
// own loop:
//
//	sched := scheduler.New(nil)
//	for {
//	    select {
//	    case fn := <-sched.Frames():
//	        fn()
//	    case ev := <-events:
//	        handle(ev)
//	    }
//	}
//
// # Main Packages
//
// [geom] - Rectangles, sizes and offsets in the shared coordinate space.
//
// [placement] - The twelve placements, auto-flip resolution and the offset
// rules that turn a placement into coordinates.
//
// [scheduler] - Frame-coalesced reposition of tracked tooltips.
//
// [tooltip] - Widget state: configuration, class set, show/hide lifecycle,
// target handles and the Host interface.
//
// [render/preview], [render/report], [render/flipgraph] - Output formats.
//
// [errors] - Structured error codes shared by the library, CLI and HTTP API.
//
// [observability] - Optional hooks for placement, scheduler and HTTP events.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/placement/... # Specific package
//	go test -run Example ./...  # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/tooltip/pkg/geom
// [placement]: https://pkg.go.dev/github.com/matzehuels/tooltip/pkg/placement
// [scheduler]: https://pkg.go.dev/github.com/matzehuels/tooltip/pkg/scheduler
// [tooltip]: https://pkg.go.dev/github.com/matzehuels/tooltip/pkg/tooltip
// [render/preview]: https://pkg.go.dev/github.com/matzehuels/tooltip/pkg/render/preview
// [render/report]: https://pkg.go.dev/github.com/matzehuels/tooltip/pkg/render/report
// [render/flipgraph]: https://pkg.go.dev/github.com/matzehuels/tooltip/pkg/render/flipgraph
// [errors]: https://pkg.go.dev/github.com/matzehuels/tooltip/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tooltip/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/tooltip/pkg/buildinfo
package pkg
