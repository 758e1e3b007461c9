// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"periph.io/x/memorylcd/termview"
)

// viewPort is an spi.Port whose connection forwards every write to a
// termview.View, paced to the connect frequency so the simulated wire
// carries roughly as many bytes per second as the real one.
type viewPort struct {
	view *termview.View
}

func (p *viewPort) String() string {
	return "lcdsim"
}

func (p *viewPort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	return &viewConn{view: p.view, byteTime: 8 * f.Period()}, nil
}

type viewConn struct {
	view     *termview.View
	byteTime time.Duration
}

func (c *viewConn) String() string {
	return "lcdsim"
}

func (c *viewConn) Tx(w, r []byte) error {
	time.Sleep(time.Duration(len(w)) * c.byteTime)
	_, err := c.view.Write(w)
	return err
}

func (c *viewConn) Duplex() conn.Duplex {
	return conn.Half
}

func (c *viewConn) TxPackets(p []spi.Packet) error {
	return errors.New("lcdsim: packets not supported")
}

var _ spi.Port = &viewPort{}
var _ spi.Conn = &viewConn{}
