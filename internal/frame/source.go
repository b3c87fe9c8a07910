package frame

import (
	"sync"
	"time"
)

// Source is a frame-timing primitive. Request schedules fn for the next
// frame; the returned Handle revokes it.
type Source interface {
	Request(fn func(time.Time)) Handle
}

// Handle revokes a pending frame request. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Manual fires frames on demand with a synthetic clock.
type Manual struct {
	mu       sync.Mutex
	now      time.Time
	interval time.Duration
	pending  []*manualRequest
}

type manualRequest struct {
	src     *Manual
	fn      func(time.Time)
	revoked bool
}

func (r *manualRequest) Cancel() {
	r.src.mu.Lock()
	r.revoked = true
	r.src.mu.Unlock()
}

func NewManual(start time.Time, interval time.Duration) *Manual {
	return &Manual{now: start, interval: interval}
}

func (m *Manual) Request(fn func(time.Time)) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := &manualRequest{src: m, fn: fn}
	m.pending = append(m.pending, r)
	return r
}

// Fire advances the clock by one interval and runs every request that was
// pending beforehand. Requests made while firing wait for the next call.
// It returns the number of callbacks run.
func (m *Manual) Fire() int {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	m.now = m.now.Add(m.interval)
	now := m.now
	m.mu.Unlock()

	ran := 0
	for _, r := range batch {
		m.mu.Lock()
		revoked := r.revoked
		m.mu.Unlock()
		if revoked {
			continue
		}
		r.fn(now)
		ran++
	}
	return ran
}

// Advance calls Fire n times and returns the total callbacks run.
func (m *Manual) Advance(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += m.Fire()
	}
	return total
}

// Pending returns the number of live requests.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.pending {
		if !r.revoked {
			n++
		}
	}
	return n
}

// Now returns the synthetic clock.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Timer fires frames from time.AfterFunc at a fixed interval.
type Timer struct {
	interval time.Duration
}

// NewTimer returns a source targeting fps frames per second.
func NewTimer(fps int) *Timer {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Timer{interval: time.Second / time.Duration(fps)}
}

func (t *Timer) Request(fn func(time.Time)) Handle {
	return timerHandle{time.AfterFunc(t.interval, func() { fn(time.Now()) })}
}

type timerHandle struct{ t *time.Timer }

func (h timerHandle) Cancel() { h.t.Stop() }
