// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ls027b7dh01

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"

	"periph.io/x/memorylcd/dma"
)

// One panel per process. The gate rejects a second configuration instead of
// silently supporting multiple instances.
var (
	gateMu   sync.Mutex
	gateDev  *Dev
	gateOpts Opts

	gateOpen = open
)

// Init opens the process-wide display, resolving the bus and pins from
// opts against the host registries. The host must already be initialized
// (host.Init).
//
// The first call performs all one-time setup and starts the refresh cycle.
// Later calls with equal options return the same handle and do nothing.
// Calls with different options fail with ErrUnsupportedReinit.
func Init(opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	gateMu.Lock()
	defer gateMu.Unlock()
	if gateDev != nil {
		if *opts != gateOpts {
			return nil, ErrUnsupportedReinit
		}
		return gateDev, nil
	}
	d, err := gateOpen(opts)
	if err != nil {
		return nil, err
	}
	gateDev, gateOpts = d, *opts
	return d, nil
}

// checkOpts validates the configuration before any resource is acquired.
func checkOpts(opts *Opts) error {
	if opts.BusID != 0 && opts.BusID != 1 {
		return fmt.Errorf("%w: SPI id %d, expected 0 or 1", ErrInvalidParam, opts.BusID)
	}
	if opts.ClockPin < 0 || opts.DataPin < 0 || opts.SelectPin < 0 {
		return fmt.Errorf("%w: negative pin number", ErrInvalidParam)
	}
	return nil
}

// open validates opts and acquires the peripherals. The SPI clock and data
// pins are muxed by the host's bus driver itself; their numbers only take
// part in the configuration identity.
func open(opts *Opts) (*Dev, error) {
	if err := checkOpts(opts); err != nil {
		return nil, err
	}
	p, err := spireg.Open(fmt.Sprintf("SPI%d.0", opts.BusID))
	if err != nil {
		return nil, err
	}
	cs := gpioreg.ByName(fmt.Sprintf("GPIO%d", opts.SelectPin))
	if cs == nil {
		return nil, fmt.Errorf("%w: no pin GPIO%d", ErrInvalidParam, opts.SelectPin)
	}
	return New(p, cs, dma.New(dma.NumChannels), Timers{}, opts)
}
