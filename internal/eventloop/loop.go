// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/eventloop/loop.go
// Summary: Single-goroutine task loop with deferred calls and tickers.
// Usage: Front ends drain Tasks() from their select loop so that every
// callback runs on the goroutine that owns the window manager.

package eventloop

import (
	"sync"
	"time"
)

// Timer is a cancellable periodic callback.
type Timer interface {
	// Stop cancels the timer. It returns true only for the call that
	// actually cancelled it.
	Stop() bool
}

// Scheduler runs callbacks on the owner's event loop.
type Scheduler interface {
	// Defer runs fn on a later turn of the loop, after the current handler returns.
	Defer(fn func())
	// Every runs fn on the loop every d until the returned timer is stopped.
	Every(d time.Duration, fn func()) Timer
}

// Loop is the production Scheduler. Tasks are queued on a channel that the
// owner drains.
type Loop struct {
	tasks     chan func()
	quit      chan struct{}
	closeOnce sync.Once
}

// NewLoop creates a loop with the given task buffer.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		quit:  make(chan struct{}),
	}
}

// Tasks exposes the queue for the owner's select loop.
func (l *Loop) Tasks() <-chan func() {
	return l.tasks
}

// Defer queues fn. When the buffer is full the send happens on a helper
// goroutine so a handler never blocks on its own loop.
func (l *Loop) Defer(fn func()) {
	if fn == nil {
		return
	}
	select {
	case <-l.quit:
		return
	default:
	}
	select {
	case l.tasks <- fn:
	default:
		go l.post(fn)
	}
}

func (l *Loop) post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.quit:
	}
}

// Every starts a ticker whose ticks are posted onto the loop. A tick that is
// still queued when the timer is stopped is dropped.
func (l *Loop) Every(d time.Duration, fn func()) Timer {
	t := &loopTimer{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.ticker.C:
				l.post(func() {
					if !t.stopped() {
						fn()
					}
				})
			case <-t.done:
				return
			case <-l.quit:
				t.Stop()
				return
			}
		}
	}()
	return t
}

// RunPending executes queued tasks without blocking and returns how many ran.
func (l *Loop) RunPending() int {
	n := 0
	for {
		select {
		case fn := <-l.tasks:
			fn()
			n++
		default:
			return n
		}
	}
}

// Close stops every ticker and rejects further tasks.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.quit)
	})
}

type loopTimer struct {
	ticker *time.Ticker
	done   chan struct{}
	mu     sync.Mutex
	isDone bool
}

func (t *loopTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isDone {
		return false
	}
	t.isDone = true
	t.ticker.Stop()
	close(t.done)
	return true
}

func (t *loopTimer) stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isDone
}
