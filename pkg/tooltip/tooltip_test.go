package tooltip

import (
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/tooltip/pkg/errors"
	"github.com/matzehuels/tooltip/pkg/geom"
	"github.com/matzehuels/tooltip/pkg/scheduler"
)

func spacedConfig(sp float64) Config {
	cfg := DefaultConfig()
	cfg.Spacing = Float(sp)
	return cfg
}

func TestNew_ValidatesConfig(t *testing.T) {
	host := newFakeHost()

	tests := []struct {
		name string
		cfg  Config
		code errors.Code
	}{
		{"bad placement", Config{Place: "up"}, errors.ErrCodeInvalidPlacement},
		{"negative spacing", Config{Place: "top", Spacing: Float(-2)}, errors.ErrCodeInvalidSpacing},
		{"bad class", Config{Place: "top", TypeClass: "two words"}, errors.ErrCodeInvalidClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(host, "hi", tt.cfg)
			if !errors.Is(err, tt.code) {
				t.Errorf("New() error = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := New(nil, "hi", DefaultConfig()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New(nil host) error = %v, want INVALID_INPUT", err)
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	host := newFakeHost()
	a, _ := New(host, "a", DefaultConfig())
	b, _ := New(host, "b", DefaultConfig())
	if a.ID() == b.ID() {
		t.Error("tooltips share an ID")
	}
}

func TestShowAttached(t *testing.T) {
	host := newFakeHost()
	tip, err := New(host, "Save", spacedConfig(8))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if tip.Placement() != nil {
		t.Error("Placement() should be nil before the first position update")
	}

	if err := tip.Attach("button"); err != nil {
		t.Fatalf("Attach() error: %v", err)
	}
	if len(host.moves) != 0 {
		t.Error("Attach() on a hidden tooltip should not position it")
	}

	if err := tip.Show(); err != nil {
		t.Fatalf("Show() error: %v", err)
	}

	if !host.mounted || !tip.Visible() {
		t.Error("Show() should mount the tooltip")
	}
	res := host.lastMove()
	if res.Resolved.String() != "top" || res.X != 120 || res.Y != 22 {
		t.Errorf("move = %s (%d, %d), want top (120, 22)", res.Resolved, res.X, res.Y)
	}
	if got := tip.Placement(); got == nil || got.String() != "top" {
		t.Errorf("Placement() = %v, want top", got)
	}

	want := []string{"tooltip", "top", "in"}
	if got := tip.Classes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Classes() = %v, want %v", got, want)
	}
}

func TestPositionEmitsPlacementDiff(t *testing.T) {
	host := newFakeHost()
	cfg := spacedConfig(8)
	cfg.Auto = true
	tip, _ := New(host, "Save", cfg)
	_ = tip.Attach("button")
	_ = tip.Show()

	// Move the viewport edge below the target's top: the tooltip flips.
	host.viewport = geom.FromEdges(0, 40, 1000, 1000)
	host.diffs = nil
	if err := tip.Position(); err != nil {
		t.Fatalf("Position() error: %v", err)
	}

	res := host.lastMove()
	if res.Resolved.String() != "bottom" || res.Y != 88 || res.X != 120 {
		t.Errorf("move = %s (%d, %d), want bottom (120, 88)", res.Resolved, res.X, res.Y)
	}
	if len(host.diffs) != 1 {
		t.Fatalf("diffs = %v, want one placement swap", host.diffs)
	}
	d := host.diffs[0]
	if !reflect.DeepEqual(d.Remove, []string{"top"}) || !reflect.DeepEqual(d.Add, []string{"bottom"}) {
		t.Errorf("diff = %+v, want -top +bottom", d)
	}

	// Same geometry again: no class churn.
	host.diffs = nil
	_ = tip.Position()
	if len(host.diffs) != 0 {
		t.Errorf("unchanged placement produced diffs %v", host.diffs)
	}
}

func TestShowAtCoordinates(t *testing.T) {
	host := newFakeHost()
	cfg := spacedConfig(8)
	cfg.Place = "bottom"
	tip, _ := New(host, "here", cfg)

	if err := tip.ShowAt(300.7, 200.2); err != nil {
		t.Fatalf("ShowAt() error: %v", err)
	}

	// Coordinates are truncated to (300, 200).
	res := host.lastMove()
	if res.X != 270 || res.Y != 208 {
		t.Errorf("move = (%d, %d), want (270, 208)", res.X, res.Y)
	}

	// Position() without arguments reuses the last coordinates.
	host.moves = nil
	_ = tip.Position()
	if got := host.lastMove(); got.X != 270 || got.Y != 208 {
		t.Errorf("reposition = (%d, %d), want (270, 208)", got.X, got.Y)
	}
}

func TestPositionWithoutAnchorDoesNothing(t *testing.T) {
	host := newFakeHost()
	tip, _ := New(host, "x", DefaultConfig())

	if err := tip.Position(); err != nil {
		t.Fatalf("Position() error: %v", err)
	}
	if len(host.moves) != 0 {
		t.Errorf("Position() with no target moved the tooltip: %v", host.moves)
	}
	if _, ok := tip.LastResult(); ok {
		t.Error("LastResult() should be empty")
	}
}

func TestAttachedTargetWinsOverCoordinates(t *testing.T) {
	host := newFakeHost()
	tip, _ := New(host, "x", spacedConfig(8))
	_ = tip.Attach("button")
	_ = tip.PositionAt(500, 500)

	if got := host.lastMove(); got.X != 120 || got.Y != 22 {
		t.Errorf("move = (%d, %d), want target-relative (120, 22)", got.X, got.Y)
	}
}

func TestSpacingResolution(t *testing.T) {
	t.Run("explicit config wins", func(t *testing.T) {
		host := newFakeHost()
		host.spacing, host.hasSpacing = 3, true
		tip, _ := New(host, "x", spacedConfig(8))
		_ = tip.ShowAt(0, 0)
		if tip.Spacing() != 8 {
			t.Errorf("Spacing() = %g, want 8", tip.Spacing())
		}
	})

	t.Run("host default", func(t *testing.T) {
		host := newFakeHost()
		host.spacing, host.hasSpacing = 3, true
		tip, _ := New(host, "x", DefaultConfig())
		_ = tip.ShowAt(0, 0)
		if tip.Spacing() != 3 {
			t.Errorf("Spacing() = %g, want 3", tip.Spacing())
		}
	})

	t.Run("zero fallback", func(t *testing.T) {
		host := newFakeHost()
		tip, _ := New(host, "x", DefaultConfig())
		_ = tip.ShowAt(0, 0)
		if tip.Spacing() != 0 {
			t.Errorf("Spacing() = %g, want 0", tip.Spacing())
		}
	})

	t.Run("negative host default ignored", func(t *testing.T) {
		host := newFakeHost()
		host.spacing, host.hasSpacing = -5, true
		tip, _ := New(host, "x", DefaultConfig())
		_ = tip.ShowAt(0, 0)
		if tip.Spacing() != 0 {
			t.Errorf("Spacing() = %g, want 0", tip.Spacing())
		}
	})

	t.Run("resolved once", func(t *testing.T) {
		host := newFakeHost()
		host.spacing, host.hasSpacing = 3, true
		tip, _ := New(host, "x", DefaultConfig())
		_ = tip.ShowAt(0, 0)
		host.spacing = 10
		_ = tip.SetContent("longer")
		if tip.Spacing() != 3 {
			t.Errorf("Spacing() = %g, want 3 (resolved once)", tip.Spacing())
		}
	})
}

func TestSetContentRemeasures(t *testing.T) {
	host := newFakeHost()
	tip, _ := New(host, "x", spacedConfig(8))
	_ = tip.Attach("button")

	// Hidden: measured but not moved.
	_ = tip.SetContent("hello")
	if host.measured != 1 || len(host.moves) != 0 {
		t.Errorf("measured=%d moves=%d, want 1 and 0", host.measured, len(host.moves))
	}

	_ = tip.Show()
	host.size = geom.Size{Width: 80, Height: 20}
	host.moves = nil
	_ = tip.SetContent("hello world")

	if tip.Size() != host.size {
		t.Errorf("Size() = %+v, want %+v", tip.Size(), host.size)
	}
	// centered: 100 + 50 - 40
	if got := host.lastMove(); got.X != 110 {
		t.Errorf("move x = %d, want 110", got.X)
	}

	// Size is cached between position updates.
	before := host.measured
	_ = tip.Position()
	if host.measured != before {
		t.Error("Position() should use the cached size")
	}
}

func TestPlaceValidates(t *testing.T) {
	host := newFakeHost()
	tip, _ := New(host, "x", spacedConfig(8))
	_ = tip.Attach("button")
	_ = tip.Show()

	if err := tip.Place("diagonal"); !errors.Is(err, errors.ErrCodeInvalidPlacement) {
		t.Errorf("Place(diagonal) error = %v, want INVALID_PLACEMENT", err)
	}
	if tip.Requested().String() != "top" {
		t.Errorf("rejected Place changed requested placement to %s", tip.Requested())
	}

	if err := tip.Place("right-bottom"); err != nil {
		t.Fatalf("Place() error: %v", err)
	}
	if got := host.lastMove(); got.Resolved.String() != "right-bottom" || got.X != 208 || got.Y != 50 {
		t.Errorf("move = %s (%d, %d), want right-bottom (208, 50)", got.Resolved, got.X, got.Y)
	}
	if tip.Config().Place != "right-bottom" {
		t.Errorf("Config().Place = %q", tip.Config().Place)
	}
}

func TestSetAuto(t *testing.T) {
	host := newFakeHost()
	host.viewport = geom.FromEdges(0, 40, 1000, 1000)
	tip, _ := New(host, "x", spacedConfig(8))
	_ = tip.Attach("button")
	_ = tip.Show()

	if got := host.lastMove().Resolved.String(); got != "top" {
		t.Errorf("auto off: placement = %s, want top", got)
	}

	_ = tip.SetAuto(true)
	if got := host.lastMove().Resolved.String(); got != "bottom" {
		t.Errorf("auto on: placement = %s, want bottom", got)
	}
}

func TestHideAndToggle(t *testing.T) {
	host := newFakeHost()
	tip, _ := New(host, "x", spacedConfig(8))
	_ = tip.Attach("button")

	_ = tip.Toggle()
	if !tip.Visible() {
		t.Fatal("Toggle() should show a hidden tooltip")
	}

	host.diffs = nil
	_ = tip.Toggle()
	if tip.Visible() || host.mounted {
		t.Fatal("Toggle() should hide a visible tooltip")
	}
	if len(host.diffs) != 1 || !reflect.DeepEqual(host.diffs[0].Remove, []string{"in"}) {
		t.Errorf("hide diffs = %v, want -in", host.diffs)
	}

	tip.Hide()
	if host.unmountCall != 1 {
		t.Errorf("Unmount called %d times, want 1", host.unmountCall)
	}
}

func TestToggleAt(t *testing.T) {
	host := newFakeHost()
	tip, _ := New(host, "x", spacedConfig(8))

	if err := tip.ToggleAt(300, 300); err != nil {
		t.Fatalf("ToggleAt() error: %v", err)
	}
	if !tip.Visible() {
		t.Fatal("ToggleAt() should show a hidden tooltip")
	}
	if got := host.lastMove(); got.X != 270 || got.Y != 272 {
		t.Errorf("move = (%d, %d), want (270, 272)", got.X, got.Y)
	}

	moves := len(host.moves)
	_ = tip.ToggleAt(10, 10)
	if tip.Visible() {
		t.Error("ToggleAt() should hide a visible tooltip")
	}
	if len(host.moves) != moves {
		t.Error("hiding should not move the tooltip")
	}

	tip.Destroy()
	if err := tip.ToggleAt(1, 1); !errors.Is(err, errors.ErrCodeDestroyed) {
		t.Errorf("ToggleAt() after Destroy error = %v, want DESTROYED", err)
	}
}

func TestShowTwiceMountsOnce(t *testing.T) {
	host := newFakeHost()
	tip, _ := New(host, "x", DefaultConfig())
	_ = tip.ShowAt(10, 10)
	_ = tip.ShowAt(20, 20)
	if host.mountCount != 1 {
		t.Errorf("Mount called %d times, want 1", host.mountCount)
	}
}

func TestSchedulerTracking(t *testing.T) {
	host := newFakeHost()
	var frames []func()
	sched := scheduler.New(scheduler.FrameFunc(func(fn func()) { frames = append(frames, fn) }))

	tip, _ := New(host, "x", spacedConfig(8), WithScheduler(sched))

	_ = tip.ShowAt(10, 10)
	if sched.IsTracked(tip) {
		t.Error("a tooltip shown at coordinates should not be tracked")
	}

	_ = tip.Attach("button")
	if !sched.IsTracked(tip) {
		t.Error("attaching a visible tooltip should track it")
	}

	// Viewport change: one pass repositions against the new geometry.
	host.targets["button"] = geom.NewRect(300, 50, 100, 30)
	host.moves = nil
	sched.NotifyViewportChanged()
	sched.NotifyViewportChanged()
	if len(frames) != 1 {
		t.Fatalf("frames requested = %d, want 1", len(frames))
	}
	frames[0]()
	if len(host.moves) != 1 || host.moves[0].X != 320 {
		t.Errorf("moves = %v, want one move to x=320", host.moves)
	}

	tip.Hide()
	if sched.IsTracked(tip) {
		t.Error("Hide() should untrack")
	}

	_ = tip.Show()
	tip.Destroy()
	if sched.IsTracked(tip) {
		t.Error("Destroy() should untrack")
	}
}

func TestTargetGoneDetaches(t *testing.T) {
	host := newFakeHost()
	sched := scheduler.New(scheduler.FrameFunc(func(fn func()) { fn() }))
	tip, _ := New(host, "x", spacedConfig(8), WithScheduler(sched))
	_ = tip.Attach("button")
	_ = tip.Show()

	delete(host.targets, "button")
	sched.NotifyViewportChanged()

	if tip.Visible() {
		t.Error("tooltip should hide when its target is gone")
	}
	if _, ok := tip.Target(); ok {
		t.Error("target handle should be cleared")
	}
	if sched.IsTracked(tip) {
		t.Error("tooltip should be untracked when its target is gone")
	}
}

func TestTargetGoneKeepsHiddenTooltipStill(t *testing.T) {
	t.Run("visible tooltip is not moved after unmount", func(t *testing.T) {
		host := newFakeHost()
		tip, _ := New(host, "x", spacedConfig(8))
		_ = tip.PositionAt(300, 300)
		_ = tip.Attach("button")
		_ = tip.Show()
		before := len(host.moves)

		delete(host.targets, "button")
		if err := tip.Position(); err != nil {
			t.Fatalf("Position() error: %v", err)
		}
		if tip.Visible() || host.mounted {
			t.Error("tooltip should be hidden and unmounted")
		}
		if len(host.moves) != before {
			t.Errorf("moves = %d, want %d: an unmounted tooltip was moved", len(host.moves), before)
		}
	})

	t.Run("hidden tooltip falls back to coordinates on show", func(t *testing.T) {
		host := newFakeHost()
		tip, _ := New(host, "x", spacedConfig(8))
		_ = tip.PositionAt(300, 300)
		_ = tip.Attach("missing")
		if err := tip.Show(); err != nil {
			t.Fatalf("Show() error: %v", err)
		}
		if !tip.Visible() {
			t.Fatal("Show() should mount the tooltip")
		}
		if got := host.lastMove(); got.X != 270 || got.Y != 272 {
			t.Errorf("move = (%d, %d), want (270, 272)", got.X, got.Y)
		}
	})
}

func TestTimerFallbackRunsOnHostLoop(t *testing.T) {
	host := newFakeHost()
	sched := scheduler.New(nil)
	tip, _ := New(host, "x", spacedConfig(8), WithScheduler(sched))
	_ = tip.Attach("button")
	_ = tip.Show()

	passes := 0
	for i := 0; i < 50; i++ {
		sched.NotifyViewportChanged()
		_ = tip.Place("bottom")
		_ = tip.Place("top")
		select {
		case fn := <-sched.Frames():
			fn()
			passes++
		case <-time.After(2 * time.Second):
			t.Fatalf("frame %d never delivered", i)
		}
	}

	if passes != 50 {
		t.Errorf("passes = %d, want 50", passes)
	}
	if sched.Pending() {
		t.Error("Pending() = true after every frame ran")
	}
	// One move on show, two per iteration from Place, one per pass.
	if len(host.moves) != 151 {
		t.Errorf("moves = %d, want 151", len(host.moves))
	}
	if got := host.lastMove(); got.X != 120 || got.Y != 22 {
		t.Errorf("last move = (%d, %d), want (120, 22)", got.X, got.Y)
	}
}

func TestDetach(t *testing.T) {
	host := newFakeHost()
	tip, _ := New(host, "x", spacedConfig(8))
	_ = tip.Attach("button")
	_ = tip.Show()

	if err := tip.Detach(); err != nil {
		t.Fatalf("Detach() error: %v", err)
	}
	if tip.Visible() {
		t.Error("Detach() should hide")
	}
	if id, ok := tip.Target(); ok || id != "" {
		t.Errorf("Target() = %q, %v after Detach", id, ok)
	}
}

func TestSetTypeAndEffect(t *testing.T) {
	host := newFakeHost()
	tip, _ := New(host, "x", DefaultConfig())

	if err := tip.SetType("success"); err != nil {
		t.Fatalf("SetType() error: %v", err)
	}
	if err := tip.SetType("error"); err != nil {
		t.Fatalf("SetType() error: %v", err)
	}
	if err := tip.SetEffect("fade"); err != nil {
		t.Fatalf("SetEffect() error: %v", err)
	}
	if err := tip.SetEffect("fade"); err != nil {
		t.Fatalf("SetEffect() error: %v", err)
	}
	if err := tip.SetType(""); err != nil {
		t.Fatalf("SetType(\"\") error: %v", err)
	}

	want := []ClassDiff{
		{Add: []string{"success"}},
		{Add: []string{"error"}, Remove: []string{"success"}},
		{Add: []string{"fade"}},
		{Remove: []string{"error"}},
	}
	if !reflect.DeepEqual(host.diffs, want) {
		t.Errorf("diffs = %+v, want %+v", host.diffs, want)
	}

	if err := tip.SetEffect("slide in"); !errors.Is(err, errors.ErrCodeInvalidClass) {
		t.Errorf("SetEffect(invalid) error = %v, want INVALID_CLASS", err)
	}

	if got, want := tip.Classes(), []string{"tooltip", "fade"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Classes() = %v, want %v", got, want)
	}
}

func TestDestroy(t *testing.T) {
	host := newFakeHost()
	tip, _ := New(host, "x", DefaultConfig())
	_ = tip.ShowAt(1, 1)

	tip.Destroy()
	tip.Destroy()

	if host.mounted || host.unmountCall != 1 {
		t.Errorf("mounted=%v unmountCalls=%d, want false and 1", host.mounted, host.unmountCall)
	}

	calls := map[string]error{
		"Show":       tip.Show(),
		"SetContent": tip.SetContent("y"),
		"Place":      tip.Place("top"),
		"Attach":     tip.Attach("button"),
		"Position":   tip.Position(),
		"SetType":    tip.SetType("a"),
	}
	for name, err := range calls {
		if !errors.Is(err, errors.ErrCodeDestroyed) {
			t.Errorf("%s() after Destroy error = %v, want DESTROYED", name, err)
		}
	}

	// Reposition from a stale scheduler pass must be harmless.
	tip.Reposition()
}

func TestPositionAtRejectsNaN(t *testing.T) {
	host := newFakeHost()
	tip, _ := New(host, "x", DefaultConfig())
	var zero float64
	if err := tip.PositionAt(zero/zero, 1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("PositionAt(NaN) error = %v, want INVALID_INPUT", err)
	}
}
