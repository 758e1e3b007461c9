// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview renders LS027B7DH01 wire-format frames to a terminal
// using ANSI color codes, one character cell per 8×8 tile.
//
// Useful to watch the refresh pipeline run without wiring up a panel.
package termview

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"periph.io/x/memorylcd/ls027b7dh01"
)

// Opts represents the options available for this sink.
type Opts struct {
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Writer defaults to a colorable stdout.
	Writer io.Writer

	_ struct{}
}

// View renders frames to the console.
type View struct {
	w       io.Writer
	palette ansi256.Palette

	buf bytes.Buffer
}

// New returns a View that displays at the console.
func New(opts *Opts) *View {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &View{w: w, palette: *p}
}

func (v *View) String() string {
	return "TermView"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the console is not left corrupted.
func (v *View) Halt() error {
	_, err := v.w.Write([]byte("\n\033[0m"))
	return err
}

// Write accepts one wire-format frame and repaints the console. Each 8×8
// tile becomes one block whose gray level is the tile's share of white
// pixels.
func (v *View) Write(frame []byte) (int, error) {
	if len(frame) != ls027b7dh01.FrameLen {
		return 0, errors.New("termview: invalid frame length")
	}
	// Minimize allocations per call: one buffer, rewound every frame.
	v.buf.Reset()
	_, _ = v.buf.WriteString("\033[H\033[0m")
	for ty := 0; ty < ls027b7dh01.GridH; ty++ {
		for tx := 0; tx < ls027b7dh01.GridW; tx++ {
			white := 0
			for line := 0; line < 8; line++ {
				for bit := 0; bit < 8; bit++ {
					if ls027b7dh01.BitAt(frame, tx*8+bit, ty*8+line) {
						white++
					}
				}
			}
			g := uint8(255 * white / 64)
			_, _ = io.WriteString(&v.buf, v.palette.Block(color.NRGBA{g, g, g, 255}))
		}
		_, _ = v.buf.WriteString("\033[0m\n")
	}
	_, err := v.buf.WriteTo(v.w)
	return len(frame), err
}

var _ fmt.Stringer = &View{}
