package tooltip

import (
	"github.com/matzehuels/tooltip/pkg/geom"
	"github.com/matzehuels/tooltip/pkg/placement"
)

// fakeHost is an in-memory Host that records what the tooltip asked for.
type fakeHost struct {
	viewport    geom.Rect
	size        geom.Size
	spacing     float64
	hasSpacing  bool
	targets     map[TargetID]geom.Rect
	measured    int
	mounted     bool
	moves       []placement.Result
	diffs       []ClassDiff
	mountCount  int
	unmountCall int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		viewport: geom.FromEdges(0, 0, 1000, 1000),
		size:     geom.Size{Width: 60, Height: 20},
		targets: map[TargetID]geom.Rect{
			"button": geom.NewRect(100, 50, 100, 30),
		},
	}
}

func (h *fakeHost) Viewport() geom.Rect { return h.viewport }

func (h *fakeHost) Measure(*Tooltip) geom.Size {
	h.measured++
	return h.size
}

func (h *fakeHost) DefaultSpacing(*Tooltip) (float64, bool) { return h.spacing, h.hasSpacing }

func (h *fakeHost) TargetRect(id TargetID) (geom.Rect, bool) {
	r, ok := h.targets[id]
	return r, ok
}

func (h *fakeHost) Mount(*Tooltip) {
	h.mounted = true
	h.mountCount++
}

func (h *fakeHost) Unmount(*Tooltip) {
	h.mounted = false
	h.unmountCall++
}

func (h *fakeHost) Move(_ *Tooltip, res placement.Result) { h.moves = append(h.moves, res) }

func (h *fakeHost) UpdateClasses(_ *Tooltip, d ClassDiff) { h.diffs = append(h.diffs, d) }

func (h *fakeHost) lastMove() placement.Result {
	if len(h.moves) == 0 {
		return placement.Result{}
	}
	return h.moves[len(h.moves)-1]
}
