package placement

import (
	"testing"

	"github.com/matzehuels/tooltip/pkg/geom"
)

var (
	testViewport = geom.FromEdges(0, 0, 1000, 1000)
	testSize     = geom.Size{Width: 60, Height: 20}
)

const testSpacing = 8

func TestResolve_AutoDisabledIsIdentity(t *testing.T) {
	// A target jammed into the corner would flip everything if auto were on.
	corner := geom.NewRect(0, 0, 5, 5)
	for _, p := range All() {
		t.Run(p.String(), func(t *testing.T) {
			got := Resolve(p, corner, testViewport, testSize, testSpacing, false)
			if got != p {
				t.Errorf("Resolve(auto=false) = %s, want %s", got, p)
			}
		})
	}
}

func TestResolve_NoUnnecessaryFlip(t *testing.T) {
	middle := geom.NewRect(450, 450, 100, 30)
	for _, p := range All() {
		t.Run(p.String(), func(t *testing.T) {
			got := Resolve(p, middle, testViewport, testSize, testSpacing, true)
			if got != p {
				t.Errorf("Resolve() = %s, want %s (room on every side)", got, p)
			}
		})
	}
}

func TestResolve_SideFlip(t *testing.T) {
	tests := []struct {
		name   string
		req    string
		target geom.Rect
		want   string
	}{
		{"top fits", "top", geom.NewRect(100, 50, 100, 30), "top"},
		{"top clips", "top", geom.NewRect(100, 20, 100, 30), "bottom"},
		{"top touches edge", "top", geom.NewRect(100, 28, 100, 30), "bottom"},
		{"bottom fits", "bottom", geom.NewRect(100, 900, 100, 30), "bottom"},
		{"bottom clips", "bottom", geom.NewRect(100, 960, 100, 30), "top"},
		{"bottom touches edge", "bottom", geom.NewRect(100, 942, 100, 30), "top"},
		{"left fits", "left", geom.NewRect(100, 500, 20, 20), "left"},
		{"left clips", "left", geom.NewRect(30, 500, 20, 20), "right"},
		{"right fits", "right", geom.NewRect(900, 500, 20, 20), "right"},
		{"right clips", "right", geom.NewRect(950, 500, 20, 20), "left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(MustParse(tt.req), tt.target, testViewport, testSize, testSpacing, true)
			if got.String() != tt.want {
				t.Errorf("Resolve(%s) = %s, want %s", tt.req, got, tt.want)
			}
		})
	}
}

func TestResolve_FlipSymmetry(t *testing.T) {
	// Mirror a target across the viewport's horizontal and vertical axes.
	// Whatever flips for one side must flip the other way for its mirror.
	tests := []struct {
		name           string
		req, mirrorReq string
		target, mirror geom.Rect
	}{
		{
			name: "vertical", req: "top", mirrorReq: "bottom",
			target: geom.NewRect(470, 10, 60, 20),
			mirror: geom.NewRect(470, 970, 60, 20),
		},
		{
			name: "horizontal", req: "left", mirrorReq: "right",
			target: geom.NewRect(10, 490, 20, 20),
			mirror: geom.NewRect(970, 490, 20, 20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, mirrorReq := MustParse(tt.req), MustParse(tt.mirrorReq)
			got := Resolve(req, tt.target, testViewport, testSize, testSpacing, true)
			mirrored := Resolve(mirrorReq, tt.mirror, testViewport, testSize, testSpacing, true)

			if got.Side != req.Side.Opposite() {
				t.Errorf("Resolve(%s) side = %s, want %s", req, got.Side, req.Side.Opposite())
			}
			if mirrored.Side != mirrorReq.Side.Opposite() {
				t.Errorf("Resolve(%s) side = %s, want %s", mirrorReq, mirrored.Side, mirrorReq.Side.Opposite())
			}
			if got.Side != mirrored.Side.Opposite() {
				t.Errorf("mirrored results %s / %s are not opposite", got, mirrored)
			}
		})
	}
}

func TestResolve_Alignment(t *testing.T) {
	tests := []struct {
		name     string
		req      string
		target   geom.Rect
		viewport geom.Rect
		size     geom.Size
		want     string
	}{
		{"top-left fits", "top-left", geom.NewRect(100, 500, 20, 20), testViewport, testSize, "top-left"},
		{"top-left clips left edge", "top-left", geom.NewRect(10, 500, 20, 20), testViewport, testSize, "top-right"},
		{"top-right clips right edge", "top-right", geom.NewRect(970, 500, 20, 20), testViewport, testSize, "top-left"},
		{"bottom-right clips right edge", "bottom-right", geom.NewRect(970, 500, 20, 20), testViewport, testSize, "bottom-left"},
		{"centered clips right edge", "top", geom.NewRect(980, 500, 10, 20), testViewport, testSize, "top-left"},
		{"centered clips left edge", "bottom", geom.NewRect(5, 500, 10, 20), testViewport, testSize, "bottom-right"},
		{"left-top fits", "left-top", geom.NewRect(500, 100, 20, 10), testViewport, testSize, "left-top"},
		{"left-top clips top edge", "left-top", geom.NewRect(500, 5, 20, 10), testViewport, testSize, "left-bottom"},
		{"right-bottom clips bottom edge", "right-bottom", geom.NewRect(500, 990, 20, 5), testViewport, testSize, "right-top"},
		{"centered clips bottom edge", "right", geom.NewRect(500, 990, 20, 5), testViewport, testSize, "right-top"},
		{"centered clips top edge", "left", geom.NewRect(500, 2, 20, 5), testViewport, testSize, "left-bottom"},
		// A box wider than the viewport overflows both edges; the right edge
		// is checked first so it ends up left-aligned.
		{"centered clips both edges", "top", geom.NewRect(20, 500, 10, 20), geom.FromEdges(0, 0, 50, 1000), geom.Size{Width: 100, Height: 20}, "top-left"},
		{"centered clips both vertical edges", "left", geom.NewRect(500, 20, 10, 10), geom.FromEdges(0, 0, 1000, 15), testSize, "left-top"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(MustParse(tt.req), tt.target, tt.viewport, tt.size, testSpacing, true)
			if got.String() != tt.want {
				t.Errorf("Resolve(%s) = %s, want %s", tt.req, got, tt.want)
			}
		})
	}
}

func TestResolve_SideAndAlignIndependent(t *testing.T) {
	// Target in the top-left corner: requested top-left flips on both axes.
	target := geom.NewRect(10, 10, 20, 20)
	got := Resolve(MustParse("top-left"), target, testViewport, testSize, testSpacing, true)
	if got.String() != "bottom-right" {
		t.Errorf("Resolve(top-left) = %s, want bottom-right", got)
	}

	// Right-side target near the bottom: right flips to left, centered
	// alignment moves up.
	target = geom.NewRect(960, 990, 20, 5)
	got = Resolve(MustParse("right"), target, testViewport, testSize, testSpacing, true)
	if got.String() != "left-top" {
		t.Errorf("Resolve(right) = %s, want left-top", got)
	}
}

func TestResolve_AlwaysValid(t *testing.T) {
	targets := []geom.Rect{
		geom.NewRect(0, 0, 1, 1),
		geom.NewRect(999, 999, 1, 1),
		geom.NewRect(-50, -50, 10, 10),
		geom.NewRect(0, 0, 1000, 1000),
		geom.Point(500, 500),
	}
	sizes := []geom.Size{{}, {Width: 2000, Height: 2000}, testSize}

	for _, p := range All() {
		for _, target := range targets {
			for _, size := range sizes {
				got := Resolve(p, target, testViewport, size, testSpacing, true)
				if !got.Valid() {
					t.Errorf("Resolve(%s, %s, %+v) = invalid %+v", p, target, size, got)
				}
				if got.Side.Vertical() != p.Side.Vertical() {
					t.Errorf("Resolve(%s) changed axis: %s", p, got)
				}
			}
		}
	}
}
