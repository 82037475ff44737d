// Package tooltip holds the per-instance state of a floating annotation and
// drives the placement core on its behalf.
//
// The package never touches a rendering surface. Everything it needs from the
// outside world goes through a [Host]: the viewport, the measured content
// size, target rectangles, and the sink for moves and class changes. A DOM
// binding, a terminal renderer or an SVG previewer can all act as hosts.
//
// A tooltip references its target through a [TargetID] handle and never
// owns it. When the host no longer knows the target, the tooltip detaches
// itself on the next position update.
package tooltip

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tooltip/pkg/errors"
	"github.com/matzehuels/tooltip/pkg/geom"
	"github.com/matzehuels/tooltip/pkg/placement"
	"github.com/matzehuels/tooltip/pkg/scheduler"
)

// TargetID is a non-owning handle to a target known by the host.
type TargetID string

// Host is the rendering layer a tooltip is shown on.
type Host interface {
	// Viewport returns the visible area in the shared coordinate space.
	Viewport() geom.Rect
	// Measure returns the rendered size of t's content.
	Measure(t *Tooltip) geom.Size
	// DefaultSpacing returns the gap implied by the tooltip's default
	// styling, if the host has one.
	DefaultSpacing(t *Tooltip) (float64, bool)
	// TargetRect looks up a target. ok is false once the target is gone.
	TargetRect(id TargetID) (r geom.Rect, ok bool)

	Mount(t *Tooltip)
	Unmount(t *Tooltip)
	Move(t *Tooltip, res placement.Result)
	UpdateClasses(t *Tooltip, diff ClassDiff)
}

// Option configures a Tooltip.
type Option func(*Tooltip)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(t *Tooltip) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithScheduler registers the tooltip with s while it is shown attached to a
// target, so that viewport changes reposition it.
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(t *Tooltip) { t.sched = s }
}

// Tooltip is one floating annotation.
type Tooltip struct {
	id     uuid.UUID
	host   Host
	sched  *scheduler.Scheduler
	logger *log.Logger

	cfg     Config
	place   placement.Placement
	content string

	size       geom.Size
	sized      bool
	spacing    float64
	spacingSet bool

	visible   bool
	destroyed bool

	target   TargetID
	attached bool
	point    *[2]float64

	current *placement.Placement
	last    *placement.Result
}

// New creates a hidden tooltip with the given content. The configuration is
// validated here so that placement and spacing errors surface at
// construction rather than at the first position update.
func New(host Host, content string, cfg Config, opts ...Option) (*Tooltip, error) {
	if host == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "tooltip requires a host")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	place, _ := cfg.Placement()

	t := &Tooltip{
		id:      uuid.New(),
		host:    host,
		logger:  log.New(io.Discard),
		cfg:     cfg,
		place:   place,
		content: content,
	}
	if cfg.Spacing != nil {
		t.spacing = *cfg.Spacing
		t.spacingSet = true
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// ID returns the instance identifier.
func (t *Tooltip) ID() uuid.UUID { return t.id }

// Content returns the current content.
func (t *Tooltip) Content() string { return t.content }

// Config returns a copy of the current configuration.
func (t *Tooltip) Config() Config { return t.cfg }

// Visible reports whether the tooltip is shown.
func (t *Tooltip) Visible() bool { return t.visible }

// Interactive reports whether pointer events should reach the tooltip.
func (t *Tooltip) Interactive() bool { return t.cfg.Interactive }

// Size returns the cached content size.
func (t *Tooltip) Size() geom.Size { return t.size }

// Spacing returns the resolved spacing, 0 until the first measurement.
func (t *Tooltip) Spacing() float64 { return t.spacing }

// Requested returns the configured placement.
func (t *Tooltip) Requested() placement.Placement { return t.place }

// Placement returns the placement in effect, or nil before the first
// position update.
func (t *Tooltip) Placement() *placement.Placement { return t.current }

// Target returns the attached target handle.
func (t *Tooltip) Target() (TargetID, bool) { return t.target, t.attached }

// LastResult returns the most recent position update.
func (t *Tooltip) LastResult() (placement.Result, bool) {
	if t.last == nil {
		return placement.Result{}, false
	}
	return *t.last, true
}

// Classes returns the classes the rendered element should carry, in a
// stable order: base, type, effect, placement, in.
func (t *Tooltip) Classes() []string {
	var out []string
	for _, c := range []string{t.cfg.BaseClass, t.cfg.TypeClass, t.cfg.EffectClass} {
		if c != "" {
			out = append(out, c)
		}
	}
	if t.current != nil {
		out = append(out, t.current.Class())
	}
	if t.visible && t.cfg.InClass != "" {
		out = append(out, t.cfg.InClass)
	}
	return out
}

// SetContent replaces the content. The size is re-measured and, when the
// tooltip is visible, it is repositioned.
func (t *Tooltip) SetContent(content string) error {
	if err := t.alive(); err != nil {
		return err
	}
	t.content = content
	t.measure()
	if t.visible {
		t.position()
	}
	return nil
}

// UpdateSize re-measures the content, e.g. after the host's fonts changed.
func (t *Tooltip) UpdateSize() error {
	return t.SetContent(t.content)
}

// Place sets the requested placement. An invalid value is rejected with
// INVALID_PLACEMENT and leaves the tooltip unchanged.
func (t *Tooltip) Place(s string) error {
	if err := t.alive(); err != nil {
		return err
	}
	p, err := placement.Parse(s)
	if err != nil {
		return err
	}
	t.place = p
	t.cfg.Place = s
	if t.visible {
		t.position()
	}
	return nil
}

// SetAuto toggles auto-flip.
func (t *Tooltip) SetAuto(auto bool) error {
	if err := t.alive(); err != nil {
		return err
	}
	t.cfg.Auto = auto
	if t.visible {
		t.position()
	}
	return nil
}

// Attach positions the tooltip relative to target from now on.
func (t *Tooltip) Attach(target TargetID) error {
	if err := t.alive(); err != nil {
		return err
	}
	t.target = target
	t.attached = true
	if t.visible {
		t.track()
		t.position()
	}
	return nil
}

// Detach hides the tooltip and drops the target handle.
func (t *Tooltip) Detach() error {
	if err := t.alive(); err != nil {
		return err
	}
	t.Hide()
	t.target = ""
	t.attached = false
	return nil
}

// Position recomputes placement and coordinates against the attached target
// or, without one, the last explicit coordinates.
func (t *Tooltip) Position() error {
	if err := t.alive(); err != nil {
		return err
	}
	t.position()
	return nil
}

// PositionAt positions the tooltip at explicit coordinates. An attached
// target takes precedence; the coordinates are remembered for later use.
func (t *Tooltip) PositionAt(x, y float64) error {
	if err := t.alive(); err != nil {
		return err
	}
	if err := errors.ValidateFinite("coordinates", x, y); err != nil {
		return err
	}
	t.point = &[2]float64{x, y}
	t.position()
	return nil
}

// Reposition implements scheduler.Repositioner.
func (t *Tooltip) Reposition() {
	if t.destroyed || !t.visible {
		return
	}
	t.position()
}

// Show positions the tooltip when it has a target or coordinates, mounts it
// and registers it for viewport changes when attached.
func (t *Tooltip) Show() error {
	if err := t.alive(); err != nil {
		return err
	}
	if t.attached || t.point != nil {
		t.position()
	}
	t.show()
	return nil
}

// ShowAt positions the tooltip at (x, y) and shows it.
func (t *Tooltip) ShowAt(x, y float64) error {
	if err := t.PositionAt(x, y); err != nil {
		return err
	}
	t.show()
	return nil
}

func (t *Tooltip) show() {
	if !t.visible {
		t.visible = true
		t.host.Mount(t)
		if t.cfg.InClass != "" {
			t.host.UpdateClasses(t, ClassDiff{Add: []string{t.cfg.InClass}})
		}
		t.logger.Debug("tooltip shown", "id", t.id, "classes", t.Classes())
	}
	if t.attached {
		t.track()
	}
}

// Hide removes the tooltip from the host and from viewport tracking.
// Hiding a hidden tooltip does nothing.
func (t *Tooltip) Hide() {
	if t.destroyed || !t.visible {
		return
	}
	if t.cfg.InClass != "" {
		t.host.UpdateClasses(t, ClassDiff{Remove: []string{t.cfg.InClass}})
	}
	t.untrack()
	t.visible = false
	t.host.Unmount(t)
	t.logger.Debug("tooltip hidden", "id", t.id)
}

// Toggle shows a hidden tooltip and hides a visible one.
func (t *Tooltip) Toggle() error {
	if t.visible {
		t.Hide()
		return nil
	}
	return t.Show()
}

// ToggleAt shows a hidden tooltip at (x, y) and hides a visible one.
func (t *Tooltip) ToggleAt(x, y float64) error {
	if t.visible {
		t.Hide()
		return nil
	}
	return t.ShowAt(x, y)
}

// Destroy releases the tooltip. Every later call except Destroy fails with
// DESTROYED.
func (t *Tooltip) Destroy() {
	if t.destroyed {
		return
	}
	t.untrack()
	if t.visible {
		t.visible = false
		t.host.Unmount(t)
	}
	t.attached = false
	t.target = ""
	t.destroyed = true
	t.logger.Debug("tooltip destroyed", "id", t.id)
}

// SetType replaces the type class.
func (t *Tooltip) SetType(name string) error {
	return t.changeClass("type_class", &t.cfg.TypeClass, name)
}

// SetEffect replaces the effect class.
func (t *Tooltip) SetEffect(name string) error {
	return t.changeClass("effect_class", &t.cfg.EffectClass, name)
}

func (t *Tooltip) changeClass(option string, field *string, name string) error {
	if err := t.alive(); err != nil {
		return err
	}
	if err := errors.ValidateClassName(option, name); err != nil {
		return err
	}
	diff := swap(*field, name)
	*field = name
	if !diff.Empty() {
		t.host.UpdateClasses(t, diff)
	}
	return nil
}

func (t *Tooltip) alive() error {
	if t.destroyed {
		return errors.New(errors.ErrCodeDestroyed, "tooltip %s was destroyed", t.id)
	}
	return nil
}

// measure caches the content size and resolves spacing on first use:
// explicit config, else the host's default, else 0.
func (t *Tooltip) measure() {
	t.size = t.host.Measure(t)
	t.sized = true
	if t.spacingSet {
		return
	}
	if sp, ok := t.host.DefaultSpacing(t); ok {
		if err := errors.ValidateSpacing(sp); err != nil {
			t.logger.Warn("ignoring host default spacing", "id", t.id, "err", err)
		} else {
			t.spacing = sp
		}
	}
	t.spacingSet = true
}

// anchor returns the rectangle to position against. A tooltip whose target
// vanished while shown is hidden and gets no anchor.
func (t *Tooltip) anchor() (geom.Rect, bool) {
	if t.attached {
		r, ok := t.host.TargetRect(t.target)
		if ok {
			return r, true
		}
		t.logger.Debug("target gone, detaching", "id", t.id, "target", t.target)
		wasVisible := t.visible
		t.Hide()
		t.attached = false
		t.target = ""
		if wasVisible {
			return geom.Rect{}, false
		}
	}
	if t.point != nil {
		return geom.Point(t.point[0], t.point[1]), true
	}
	return geom.Rect{}, false
}

func (t *Tooltip) position() {
	target, ok := t.anchor()
	if !ok {
		return
	}
	if !t.sized {
		t.measure()
	}

	res := placement.Compute(t.place, target, t.host.Viewport(), t.size, t.spacing, t.cfg.Auto)

	if t.current == nil || *t.current != res.Resolved {
		from := ""
		if t.current != nil {
			from = t.current.Class()
		}
		resolved := res.Resolved
		t.current = &resolved
		t.host.UpdateClasses(t, swap(from, resolved.Class()))
	}
	t.last = &res
	t.host.Move(t, res)
}

func (t *Tooltip) track() {
	if t.sched != nil {
		t.sched.Track(t)
	}
}

func (t *Tooltip) untrack() {
	if t.sched != nil {
		t.sched.Untrack(t)
	}
}
