// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dma defines the transfer-engine contract used by drivers that
// stream fixed-length buffers to a peripheral without CPU involvement, plus
// a goroutine-backed software engine for hosts whose transport (e.g. spidev)
// exposes no user-visible DMA API.
package dma

import (
	"errors"
	"sync"

	"periph.io/x/conn/v3"
)

// NumChannels is the channel budget of the software engine returned by New.
// It mirrors the 12 channels of the RP2040 DMA block.
const NumChannels = 12

// ErrNoChannel is returned by Engine.Claim when every channel is in use.
var ErrNoChannel = errors.New("dma: no unused channel available")

// Engine hands out transfer channels. Channels are claimed for the life of
// the process; there is no release operation.
type Engine interface {
	Claim() (Channel, error)
}

// Channel streams a fixed-length buffer to a bound peripheral connection.
//
// Configure and SetInterrupt must be called before the first Start. Start is
// non-blocking; the registered handler runs when the transfer completes, in
// the engine's completion context. A channel carries at most one transfer at
// a time; the owner must not call Start again before the handler has run.
type Channel interface {
	// Configure binds the channel to its destination and fixes the number of
	// bytes moved per transfer.
	Configure(dst conn.Conn, length int)
	// SetInterrupt registers fn as the transfer-complete handler and enables
	// its delivery.
	SetInterrupt(fn func())
	// Start begins a transfer reading from src. The source is read with an
	// auto-incrementing address; src must stay valid until the handler runs.
	Start(src []byte)
}

// New returns a software engine with n channels (NumChannels if n <= 0).
//
// Each transfer runs on its own goroutine: the bound length is written to
// the destination connection in one Tx, then the completion handler is
// invoked on that goroutine. A write error cannot be reported to anyone in
// completion context; the handler still runs, since for a continuously
// refreshed target the next cycle retransmits the same data anyway.
func New(n int) Engine {
	if n <= 0 {
		n = NumChannels
	}
	e := &engine{}
	for i := 0; i < n; i++ {
		e.free = append(e.free, &channel{})
	}
	return e
}

type engine struct {
	mu   sync.Mutex
	free []*channel
}

func (e *engine) Claim() (Channel, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.free) == 0 {
		return nil, ErrNoChannel
	}
	c := e.free[len(e.free)-1]
	e.free = e.free[:len(e.free)-1]
	return c, nil
}

type channel struct {
	mu      sync.Mutex
	dst     conn.Conn
	length  int
	handler func()
}

func (c *channel) Configure(dst conn.Conn, length int) {
	c.mu.Lock()
	c.dst = dst
	c.length = length
	c.mu.Unlock()
}

func (c *channel) SetInterrupt(fn func()) {
	c.mu.Lock()
	c.handler = fn
	c.mu.Unlock()
}

func (c *channel) Start(src []byte) {
	c.mu.Lock()
	dst, n, fn := c.dst, c.length, c.handler
	c.mu.Unlock()

	if n > len(src) {
		n = len(src)
	}
	go func() {
		if dst != nil {
			_ = dst.Tx(src[:n], nil)
		}
		if fn != nil {
			fn()
		}
	}()
}
