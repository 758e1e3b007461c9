// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ls027b7dh01

import "sync"

// pool owns the three frame slots and their role assignment. producing is
// the slot the application writes, transmitting the slot the transfer
// engine reads, staged the slot transmitting will take at the next
// rotation. The idle slot is never stored: it is always 3−producing−
// transmitting, so the three indices cannot fall out of being a permutation
// of {0, 1, 2}.
//
// The mutex guards only the index triple. Its critical sections are a few
// assignments, the single synchronization point between application and
// timer/interrupt context.
type pool struct {
	mu           sync.Mutex
	frames       [3][]byte
	producing    int
	transmitting int
	staged       int
}

// newPool allocates the three frames, scaffolds the initial transmitting
// slot and copies it into the producing slot. The remaining slot stays
// blank; it only ever becomes producing through publish, which overwrites
// it with the staged frame first.
func newPool() *pool {
	p := &pool{producing: 1}
	for i := range p.frames {
		p.frames[i] = make([]byte, FrameLen)
	}
	buildScaffold(p.frames[p.transmitting])
	copy(p.frames[p.producing], p.frames[p.transmitting])
	return p
}

// producingFrame returns the slot the application may write.
func (p *pool) producingFrame() []byte {
	p.mu.Lock()
	f := p.frames[p.producing]
	p.mu.Unlock()
	return f
}

// publish stages the producing slot for transmission and hands the
// producing role the idle slot. It returns the new producing frame and the
// staged frame so the caller can copy contents forward outside the
// critical section.
func (p *pool) publish() (dst, src []byte) {
	p.mu.Lock()
	old := p.producing
	p.producing = 3 - old - p.transmitting
	p.staged = old
	dst, src = p.frames[p.producing], p.frames[p.staged]
	p.mu.Unlock()
	return dst, src
}

// advance rotates the transmitting role to the staged slot and returns its
// frame. Timer-callback context only; nothing else writes transmitting.
func (p *pool) advance() []byte {
	p.mu.Lock()
	p.transmitting = p.staged
	f := p.frames[p.transmitting]
	p.mu.Unlock()
	return f
}

// snapshot returns the role indices as one consistent observation.
func (p *pool) snapshot() (producing, transmitting, idle int) {
	p.mu.Lock()
	producing, transmitting = p.producing, p.transmitting
	p.mu.Unlock()
	return producing, transmitting, 3 - producing - transmitting
}
