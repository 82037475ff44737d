package cli

import (
	"context"
	"sync"
	"time"
)

// stats counts observability events. It implements the placement, scheduler
// and HTTP hook interfaces and is registered by the serve and demo commands.
type stats struct {
	mu sync.Mutex
	s  statsSnapshot
}

// statsSnapshot is a point-in-time copy of the counters.
type statsSnapshot struct {
	Resolves   int            `json:"resolves"`
	Flips      int            `json:"flips"`
	ByResolved map[string]int `json:"by_resolved"`

	Frames        int           `json:"frames"`
	Coalesced     int           `json:"coalesced"`
	Passes        int           `json:"passes"`
	Repositioned  int           `json:"repositioned"`
	LastPassNanos time.Duration `json:"last_pass_ns"`

	Requests  int         `json:"requests"`
	ByStatus  map[int]int `json:"by_status"`
	SlowestMs int64       `json:"slowest_ms"`
}

func newStats() *stats {
	return &stats{s: statsSnapshot{
		ByResolved: map[string]int{},
		ByStatus:   map[int]int{},
	}}
}

func (st *stats) OnResolve(requested, resolved string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Resolves++
	st.s.ByResolved[resolved]++
	if requested != resolved {
		st.s.Flips++
	}
}

func (st *stats) OnFrameScheduled(int) {
	st.mu.Lock()
	st.s.Frames++
	st.mu.Unlock()
}

func (st *stats) OnCoalesced() {
	st.mu.Lock()
	st.s.Coalesced++
	st.mu.Unlock()
}

func (st *stats) OnRepositionPass(n int, d time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Passes++
	st.s.Repositioned += n
	st.s.LastPassNanos = d
}

func (st *stats) OnRequest(context.Context, string, string) {
	st.mu.Lock()
	st.s.Requests++
	st.mu.Unlock()
}

func (st *stats) OnResponse(_ context.Context, _, _ string, status int, d time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.ByStatus[status]++
	if ms := d.Milliseconds(); ms > st.s.SlowestMs {
		st.s.SlowestMs = ms
	}
}

// snapshot returns a copy safe to serialize while counting continues.
func (st *stats) snapshot() statsSnapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := st.s
	out.ByResolved = make(map[string]int, len(st.s.ByResolved))
	for k, v := range st.s.ByResolved {
		out.ByResolved[k] = v
	}
	out.ByStatus = make(map[int]int, len(st.s.ByStatus))
	for k, v := range st.s.ByStatus {
		out.ByStatus[k] = v
	}
	return out
}
