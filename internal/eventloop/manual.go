// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/eventloop/manual.go
// Summary: Deterministic Scheduler driven explicitly by tests.

package eventloop

import "time"

// Manual queues deferred calls until Flush and fires timers only when the
// virtual clock is advanced.
type Manual struct {
	now    time.Duration
	queue  []func()
	timers []*manualTimer
}

// NewManual returns an idle manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Defer(fn func()) {
	if fn != nil {
		m.queue = append(m.queue, fn)
	}
}

func (m *Manual) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	t := &manualTimer{interval: d, next: m.now + d, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Pending returns the number of queued deferred calls.
func (m *Manual) Pending() int {
	return len(m.queue)
}

// Flush runs deferred calls, including ones queued while flushing, and
// returns how many ran.
func (m *Manual) Flush() int {
	n := 0
	for len(m.queue) > 0 {
		fn := m.queue[0]
		m.queue = m.queue[1:]
		fn()
		n++
	}
	return n
}

// Advance moves the virtual clock forward, firing every tick that falls
// inside the window in time order. Deferred calls queued by ticks are flushed.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		next := m.nextDue(end)
		if next == nil {
			break
		}
		m.now = next.next
		next.next += next.interval
		next.fn()
		m.Flush()
	}
	m.now = end
	m.prune()
}

// ActiveTimers returns the number of timers that have not been stopped.
func (m *Manual) ActiveTimers() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (m *Manual) nextDue(end time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.stopped || t.next > end {
			continue
		}
		if best == nil || t.next < best.next {
			best = t
		}
	}
	return best
}

func (m *Manual) prune() {
	kept := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	m.timers = kept
}

type manualTimer struct {
	interval time.Duration
	next     time.Duration
	fn       func()
	stopped  bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}
