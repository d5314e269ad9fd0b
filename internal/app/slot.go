// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package app

import "sync"

// slot hands the newest sample from the acquisition task to the render
// task. It holds exactly one value: a fresh Store replaces the previous
// sample whether or not it was ever read.
type slot struct {
	mu  sync.Mutex
	s   Sample
	seq uint64
}

// Store publishes s as the newest sample.
func (l *slot) Store(s Sample) {
	l.mu.Lock()
	l.s = s
	l.seq++
	l.mu.Unlock()
}

// Load returns a copy of the newest sample and its sequence number. The
// sequence is 0 while nothing was ever stored.
func (l *slot) Load() (Sample, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s, l.seq
}
