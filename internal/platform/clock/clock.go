// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package clock provides the time source used for staleness checks and
// timestamps, so tests can pin "now".
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// System is the wall clock, truncated to microseconds to match Postgres timestamptz.
type System struct{}

// Now implements [Clock].
func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Fixed is a manually driven clock for tests.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed returns a [Fixed] clock set to t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

// Now implements [Clock].
func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
