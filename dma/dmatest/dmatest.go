// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dmatest is meant to be used to test drivers over a fake transfer
// engine. Completion interrupts are delivered manually via Channel.Finish,
// so a test controls exactly when the driver's handler runs.
package dmatest

import (
	"sync"

	"periph.io/x/conn/v3"

	"periph.io/x/memorylcd/dma"
)

// Channel implements dma.Channel and records every transfer.
type Channel struct {
	sync.Mutex
	// Dst is the bound destination, if any. Recorded transfers are also
	// forwarded to it when non-nil.
	Dst conn.Conn
	// Length is the configured transfer length.
	Length int
	// Handler is the registered completion handler.
	Handler func()
	// Ops holds a copy of the bytes moved by each Start call, in order.
	Ops [][]byte
}

// Configure implements dma.Channel.
func (c *Channel) Configure(dst conn.Conn, length int) {
	c.Lock()
	c.Dst = dst
	c.Length = length
	c.Unlock()
}

// SetInterrupt implements dma.Channel.
func (c *Channel) SetInterrupt(fn func()) {
	c.Lock()
	c.Handler = fn
	c.Unlock()
}

// Start implements dma.Channel. It records the transfer synchronously and
// returns without running the handler; call Finish to simulate completion.
func (c *Channel) Start(src []byte) {
	c.Lock()
	n := c.Length
	if n <= 0 || n > len(src) {
		n = len(src)
	}
	op := make([]byte, n)
	copy(op, src)
	c.Ops = append(c.Ops, op)
	dst := c.Dst
	c.Unlock()
	if dst != nil {
		_ = dst.Tx(op, nil)
	}
}

// Finish delivers the completion interrupt for the transfer in flight.
func (c *Channel) Finish() {
	c.Lock()
	fn := c.Handler
	c.Unlock()
	if fn != nil {
		fn()
	}
}

// Count returns the number of transfers started so far.
func (c *Channel) Count() int {
	c.Lock()
	defer c.Unlock()
	return len(c.Ops)
}

// Last returns a copy of the most recent transfer, or nil.
func (c *Channel) Last() []byte {
	c.Lock()
	defer c.Unlock()
	if len(c.Ops) == 0 {
		return nil
	}
	op := c.Ops[len(c.Ops)-1]
	out := make([]byte, len(op))
	copy(out, op)
	return out
}

// Engine implements dma.Engine over a fixed set of channels.
type Engine struct {
	sync.Mutex
	// Channels is the pool handed out by Claim, in order.
	Channels []dma.Channel

	next int
}

// Claim implements dma.Engine.
func (e *Engine) Claim() (dma.Channel, error) {
	e.Lock()
	defer e.Unlock()
	if e.next >= len(e.Channels) {
		return nil, dma.ErrNoChannel
	}
	c := e.Channels[e.next]
	e.next++
	return c, nil
}

var _ dma.Channel = &Channel{}
var _ dma.Engine = &Engine{}
