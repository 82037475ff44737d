// Package scheduler coalesces viewport-driven reposition requests from many
// tooltips into a single pass per frame.
//
// A host creates one [Scheduler] per application, wires its resize and scroll
// events to [Scheduler.NotifyViewportChanged], and supplies a
// [FrameRequester] that runs a callback before the next repaint. Tooltips
// register themselves with [Scheduler.Track] while they are shown attached to
// a target and leave with [Scheduler.Untrack] when hidden or destroyed.
//
// However many notifications arrive before the frame fires, exactly one
// callback is outstanding and it repositions every tracked instance once, in
// tracking order.
package scheduler

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tooltip/pkg/observability"
)

// DefaultFrameDelay is the fallback frame interval used by TimerFrames.
const DefaultFrameDelay = 17 * time.Millisecond

// Repositioner is a tracked instance. Implementations must be comparable
// (typically a pointer) since instances are identified by equality.
type Repositioner interface {
	Reposition()
}

// FrameRequester is the host's "run before next repaint" capability.
type FrameRequester interface {
	RequestFrame(fn func())
}

// FrameFunc adapts a function to FrameRequester.
type FrameFunc func(fn func())

// RequestFrame calls f(fn).
func (f FrameFunc) RequestFrame(fn func()) { f(fn) }

// TimerFrames is the fallback for hosts without a frame primitive. After a
// fixed delay each callback is delivered on C; the host's own loop receives
// it and calls it, so reposition passes stay on the host's goroutine.
type TimerFrames struct {
	// C delivers callbacks whose delay has elapsed.
	C <-chan func()

	delay time.Duration
	c     chan func()
}

// NewTimerFrames returns a TimerFrames with the given delay
// (DefaultFrameDelay when delay <= 0).
func NewTimerFrames(delay time.Duration) *TimerFrames {
	if delay <= 0 {
		delay = DefaultFrameDelay
	}
	c := make(chan func(), 1)
	return &TimerFrames{C: c, delay: delay, c: c}
}

// Delay returns the interval between a request and its delivery on C.
func (t *TimerFrames) Delay() time.Duration { return t.delay }

// RequestFrame delivers fn on C once the delay has elapsed. The timer
// goroutine blocks until the host receives the callback.
func (t *TimerFrames) RequestFrame(fn func()) {
	time.AfterFunc(t.delay, func() { t.c <- fn })
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scheduler owns the set of tracked instances.
//
// Passes run wherever the FrameRequester calls the callback, which must be
// the goroutine that owns the tracked instances. The mutex guards the
// tracked set only and is never held while calling into a Repositioner or
// the FrameRequester.
type Scheduler struct {
	frames   FrameRequester
	fallback *TimerFrames
	logger   *log.Logger

	mu      sync.Mutex
	tracked []Repositioner
	pending bool
}

// New creates a Scheduler. A nil frames falls back to a TimerFrames whose
// callbacks the host must receive from [Scheduler.Frames] and call.
func New(frames FrameRequester, opts ...Option) *Scheduler {
	s := &Scheduler{
		frames: frames,
		logger: log.New(io.Discard),
	}
	if frames == nil {
		s.fallback = NewTimerFrames(DefaultFrameDelay)
		s.frames = s.fallback
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Frames returns the channel of due callbacks when the Scheduler was built
// with the TimerFrames fallback, and nil otherwise. A nil channel never
// becomes ready, so a host can select on it unconditionally.
func (s *Scheduler) Frames() <-chan func() {
	if s.fallback == nil {
		return nil
	}
	return s.fallback.C
}

// Track adds r to the tracked set. Tracking an already tracked instance is a
// no-op and keeps its original position.
func (s *Scheduler) Track(r Repositioner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(r) >= 0 {
		return
	}
	s.tracked = append(s.tracked, r)
}

// Untrack removes r from the tracked set. Untracking an absent instance is a
// no-op. An instance untracked before a pending pass fires is skipped.
func (s *Scheduler) Untrack(r Repositioner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(r)
	if i < 0 {
		return
	}
	s.tracked = append(s.tracked[:i], s.tracked[i+1:]...)
}

// IsTracked reports whether r is currently tracked.
func (s *Scheduler) IsTracked(r Repositioner) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(r) >= 0
}

// Tracked returns the number of tracked instances.
func (s *Scheduler) Tracked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tracked)
}

// Pending reports whether a frame callback is outstanding.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// NotifyViewportChanged requests a reposition pass. At most one frame
// callback is outstanding; with nothing tracked the call does nothing.
func (s *Scheduler) NotifyViewportChanged() {
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		observability.Scheduler().OnCoalesced()
		return
	}
	n := len(s.tracked)
	if n == 0 {
		s.mu.Unlock()
		return
	}
	s.pending = true
	s.mu.Unlock()

	s.logger.Debug("reposition frame scheduled", "tracked", n)
	observability.Scheduler().OnFrameScheduled(n)
	s.frames.RequestFrame(s.run)
}

// run is the frame callback. The pending flag is cleared first so that a
// notification raised by a Reposition call schedules the next frame.
func (s *Scheduler) run() {
	start := time.Now()

	s.mu.Lock()
	s.pending = false
	snapshot := make([]Repositioner, len(s.tracked))
	copy(snapshot, s.tracked)
	s.mu.Unlock()

	count := 0
	for _, r := range snapshot {
		if !s.IsTracked(r) {
			continue
		}
		r.Reposition()
		count++
	}

	elapsed := time.Since(start)
	s.logger.Debug("reposition pass", "repositioned", count, "elapsed", elapsed)
	observability.Scheduler().OnRepositionPass(count, elapsed)
}

func (s *Scheduler) indexLocked(r Repositioner) int {
	for i, t := range s.tracked {
		if t == r {
			return i
		}
	}
	return -1
}
