// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ls027b7dh01

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Mode byte bits, as they appear MSB-first on the wire.
const (
	bitWriteCmd byte = 0x80
	bitVCOM     byte = 0x40
)

// csSettle is the minimum time the select line must stay deasserted between
// transfers. 100µs is the observed electrical minimum and 75µs is not
// enough, so run with a 2x margin.
const csSettle = 200 * time.Microsecond

// transmit runs in alarm-callback context: rotate the transmitting role,
// refresh the VCOM bit and hand the frame to the transfer engine. The
// select line is active high on this panel.
func (d *Dev) transmit() {
	f := d.pool.advance()

	cmd := bitWriteCmd
	if !d.vcom {
		cmd |= bitVCOM
	}
	d.vcom = !d.vcom
	f[0] = cmd

	if err := d.cs.Out(gpio.High); err != nil {
		d.fail(err)
		return
	}
	d.ch.Start(f)
}

// transferDone runs in completion-interrupt context: deassert the select
// line and arm the dead-time alarm. The alarm is one-shot and rearmed every
// cycle, never periodic.
func (d *Dev) transferDone() {
	if err := d.cs.Out(gpio.Low); err != nil {
		d.fail(err)
		return
	}
	d.alarm.After(csSettle, d.transmit)
}

// fail records the first asynchronous-context failure and stops the refresh
// cycle by not rearming it. A stuck pipeline must not go unnoticed, so the
// error is returned from every later public call.
func (d *Dev) fail(err error) {
	d.errMu.Lock()
	if d.err == nil {
		d.err = err
	}
	d.errMu.Unlock()
}

func (d *Dev) fatal() error {
	d.errMu.Lock()
	defer d.errMu.Unlock()
	return d.err
}
