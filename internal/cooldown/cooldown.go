// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cooldown tracks the time of the last backend request and decides
// whether a warm-up ping is due.
package cooldown

import (
	"sync"
	"time"
)

// Tracker holds the time of the last request sent to the backend. The zero
// value is not usable; create one with New. A Tracker is safe for concurrent
// use and may be shared by several widgets talking to the same backend.
type Tracker struct {
	mu     sync.Mutex
	last   time.Time
	window time.Duration
	now    func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New returns a Tracker that allows one warm-up per window.
func New(window time.Duration, opts ...Option) *Tracker {
	t := &Tracker{window: window, now: time.Now}
	for _, o := range opts {
		o(t)
	}
	return t
}

// TryWarmUp reports whether more than the window has elapsed since the last
// recorded request. When it has, the current time is recorded before
// returning, so concurrent callers see at most one true per window.
func (t *Tracker) TryWarmUp() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) <= t.window {
		return false
	}
	t.record(now)
	return true
}

// Touch records the current time as the last request time.
func (t *Tracker) Touch() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record(t.now())
}

// Last returns the last recorded request time, or the zero time if nothing
// was sent yet.
func (t *Tracker) Last() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Window returns the configured cooldown window.
func (t *Tracker) Window() time.Duration { return t.window }

// record keeps last monotonically non-decreasing even if the clock steps back.
func (t *Tracker) record(now time.Time) {
	if now.After(t.last) {
		t.last = now
	}
}
