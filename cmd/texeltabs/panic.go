// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeltabs/panic.go
// Summary: Restores the terminal and records stack traces on panic.

package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"
)

// panicLogger captures panic stack traces and optionally persists them to disk.
type panicLogger struct {
	path    string
	restore func()
	mu      sync.Mutex
}

func newPanicLogger(path string, restore func()) *panicLogger {
	return &panicLogger{path: path, restore: restore}
}

// Recover should be deferred in goroutines to capture panics.
func (p *panicLogger) Recover(context string) {
	if r := recover(); r != nil {
		p.logPanic(context, r)
		os.Exit(2)
	}
}

func (p *panicLogger) logPanic(context string, r interface{}) {
	if p.restore != nil {
		p.restore()
	}
	buf := make([]byte, 1<<16)
	n := runtime.Stack(buf, true)
	stack := buf[:n]
	msg := fmt.Sprintf("panic in %s: %v\n%s", context, r, stack)
	log.Print(msg)
	fmt.Fprintln(os.Stderr, msg)
	if p.path == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("panic: unable to write panic log: %v", err)
		return
	}
	defer f.Close()
	ts := time.Now().Format(time.RFC3339Nano)
	fmt.Fprintf(f, "[%s] panic in %s: %v\n%s\n", ts, context, r, stack)
}
