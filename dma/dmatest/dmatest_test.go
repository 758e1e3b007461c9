// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dmatest

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/memorylcd/dma"
)

func TestChannelRecords(t *testing.T) {
	ch := &Channel{}
	ch.Configure(nil, 3)

	fired := 0
	ch.SetInterrupt(func() { fired++ })

	src := []byte{1, 2, 3, 4}
	ch.Start(src)
	if fired != 0 {
		t.Error("handler ran before Finish")
	}
	ch.Finish()
	if fired != 1 {
		t.Errorf("handler ran %d times, want 1", fired)
	}

	if ch.Count() != 1 || !bytes.Equal(ch.Last(), []byte{1, 2, 3}) {
		t.Errorf("recorded %v, want [[1 2 3]]", ch.Ops)
	}

	// Recorded bytes are copies, not aliases.
	src[0] = 99
	if ch.Last()[0] != 1 {
		t.Error("recorded transfer aliases the source buffer")
	}
}

func TestEngineClaim(t *testing.T) {
	a, b := &Channel{}, &Channel{}
	e := &Engine{Channels: []dma.Channel{a, b}}

	got1, err := e.Claim()
	if err != nil {
		t.Fatalf("Claim() failed: %v", err)
	}
	got2, err := e.Claim()
	if err != nil {
		t.Fatalf("Claim() failed: %v", err)
	}
	if got1 != dma.Channel(a) || got2 != dma.Channel(b) {
		t.Error("Claim() did not hand out channels in order")
	}
	if _, err := e.Claim(); !errors.Is(err, dma.ErrNoChannel) {
		t.Errorf("Claim() on exhausted engine = %v, want dma.ErrNoChannel", err)
	}
}
