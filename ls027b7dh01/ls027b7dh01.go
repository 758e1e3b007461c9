// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ls027b7dh01

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"periph.io/x/memorylcd/dma"
)

// Errors returned by the driver. Precondition violations are detected
// synchronously at the offending call; nothing is retried internally.
var (
	// ErrNotInitialized is returned by every operation before a successful
	// initialization.
	ErrNotInitialized = errors.New("ls027b7dh01: not initialized")
	// ErrUnsupportedReinit is returned by Init when called with options
	// different from the first successful call. Reconfiguration is not
	// supported.
	ErrUnsupportedReinit = errors.New("ls027b7dh01: reinitialization with different parameters not supported")
	// ErrInvalidParam wraps all parameter validation failures.
	ErrInvalidParam = errors.New("ls027b7dh01: invalid parameter")
)

// Alarm schedules a single callback after a delay. The pipeline arms one
// alarm per refresh cycle; implementations must not block in After.
type Alarm interface {
	After(d time.Duration, fn func())
}

// Timers implements Alarm on the Go runtime timer.
type Timers struct{}

// After implements Alarm.
func (Timers) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Opts identifies the bus and pin assignment of the panel.
//
// The clock and data pins are muxed to the SPI peripheral by the host
// driver; together with BusID and SelectPin they form the configuration
// identity checked on reinitialization.
type Opts struct {
	// BusID is the SPI peripheral the panel hangs off. Supported values are
	// 0 and 1.
	BusID int
	// ClockPin and DataPin carry SCLK and MOSI.
	ClockPin int
	DataPin  int
	// SelectPin is the chip select, driven directly by the driver. Active
	// high, unlike most SPI devices.
	SelectPin int
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{BusID: 0, ClockPin: 2, DataPin: 3, SelectPin: 5}

// Dev is a handle to an initialized display. All exported methods are safe
// for concurrent use; the refresh cycle runs unattended until process exit.
type Dev struct {
	c     conn.Conn
	cs    gpio.PinOut
	ch    dma.Channel
	alarm Alarm
	pool  *pool
	opts  Opts

	// vcom is the polarity of the next refresh. Alarm-callback context only.
	vcom bool

	errMu sync.Mutex
	err   error

	ready bool
}

// New performs the one-time panel setup and starts the refresh cycle: it
// connects the SPI port at 2MHz, claims a transfer channel (failing with
// dma.ErrNoChannel when none is free), scaffolds the frame buffers, binds
// the channel to the connection and synchronously triggers the first
// transfer.
//
// Most callers want Init instead; New exists for tests and simulators that
// inject their own peripherals.
func New(p spi.Port, cs gpio.PinOut, eng dma.Engine, al Alarm, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	if opts.BusID != 0 && opts.BusID != 1 {
		return nil, fmt.Errorf("%w: SPI id %d, expected 0 or 1", ErrInvalidParam, opts.BusID)
	}
	c, err := p.Connect(2*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	ch, err := eng.Claim()
	if err != nil {
		return nil, fmt.Errorf("ls027b7dh01: %w", err)
	}

	d := &Dev{
		c:     c,
		cs:    cs,
		ch:    ch,
		alarm: al,
		pool:  newPool(),
		opts:  *opts,
		ready: true,
	}

	ch.Configure(c, FrameLen)
	ch.SetInterrupt(d.transferDone)
	if err := cs.Out(gpio.Low); err != nil {
		return nil, err
	}

	// Enter the pipeline once as if the alarm had already fired, so the
	// first transfer does not wait for a tick.
	d.transmit()
	if err := d.fatal(); err != nil {
		return nil, err
	}
	return d, nil
}

// PaintTile copies an 8-pixel-tall-row-major bitmap into the backbuffer at
// tile granularity. bitmap must hold srcW*srcH*8 bytes, one byte per
// scanline per 8-pixel column; it is tiled across the destination region
// when the region is larger. The painted frame is not shown until Publish.
func (d *Dev) PaintTile(bitmap []byte, srcW, srcH, tileX, tileY, tileW, tileH int) error {
	if d == nil || !d.ready {
		return ErrNotInitialized
	}
	if err := d.fatal(); err != nil {
		return err
	}
	if err := checkTile(bitmap, srcW, srcH, tileX, tileY, tileW, tileH); err != nil {
		return err
	}
	blitTile(d.pool.producingFrame(), bitmap, srcW, srcH, tileX, tileY, tileW, tileH)
	return nil
}

// Publish hands the painted frame to the refresh cycle. The next rotation
// transmits it, and keeps retransmitting it until the next Publish.
//
// The backbuffer is reloaded with a copy of the published frame, so later
// PaintTile calls accumulate on top of it; publishing twice without
// painting republishes identical pixel content.
func (d *Dev) Publish() error {
	if d == nil || !d.ready {
		return ErrNotInitialized
	}
	if err := d.fatal(); err != nil {
		return err
	}
	dst, src := d.pool.publish()
	// Skip the mode byte: it belongs to the pipeline, which may rewrite it
	// on the staged slot while this copy runs.
	copy(dst[1:], src[1:])
	return nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, GridW*8, GridH*8)
}

// Draw implements display.Drawer: it converts src to 1-bit, paints it into
// the backbuffer at pixel granularity and publishes the result.
// image1bit.On maps to the panel's white state.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	if d == nil || !d.ready {
		return ErrNotInitialized
	}
	if err := d.fatal(); err != nil {
		return err
	}
	dstRect = dstRect.Intersect(d.Bounds())
	if dstRect.Empty() {
		return nil
	}

	next := image1bit.NewVerticalLSB(dstRect)
	draw.Src.Draw(next, dstRect, src, srcPts)

	f := d.pool.producingFrame()
	for y := dstRect.Min.Y; y < dstRect.Max.Y; y++ {
		for x := dstRect.Min.X; x < dstRect.Max.X; x++ {
			i := 1 + y*rowStride + 1 + x/8
			mask := byte(0x80) >> uint(x%8)
			if next.BitAt(x, y) {
				f[i] |= mask
			} else {
				f[i] &^= mask
			}
		}
	}
	return d.Publish()
}

// Halt implements conn.Resource by publishing an all-white frame. The
// refresh cycle keeps running: the panel loses its contents without
// continuous refresh, so there is no stop operation.
func (d *Dev) Halt() error {
	if d == nil || !d.ready {
		return ErrNotInitialized
	}
	if err := d.fatal(); err != nil {
		return err
	}
	f := d.pool.producingFrame()
	for row := 0; row < rows; row++ {
		i := 1 + row*rowStride + 1
		for j := 0; j < rowData; j++ {
			f[i+j] = 0xFF
		}
	}
	return d.Publish()
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("ls027b7dh01.Dev{%s, %s, SPI%d}", d.c, d.cs, d.opts.BusID)
}

var _ display.Drawer = &Dev{}
