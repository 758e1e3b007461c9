// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ls027b7dh01

import (
	"fmt"
	"math/bits"
)

// Panel geometry. The addressable grid is GridW×GridH tiles of 8×8 pixels,
// i.e. 400×240 pixels.
const (
	GridW = 50
	GridH = 30

	rows      = GridH * 8    // pixel rows
	rowData   = GridW        // pixel bytes per row, one byte per tile column
	rowStride = rowData + 2  // address byte + pixel bytes + dummy byte

	// FrameLen is the wire length of one full frame: the mode/VCOM byte,
	// rows of [address | pixels | dummy], and a final trailer byte.
	FrameLen = 1 + rows*rowStride + 1
)

// buildScaffold writes the fixed protocol bytes of a frame: every pixel
// byte 0xFF (bit set = white, the panel's reflective state), each row's
// address byte and zeroed dummy byte, and the final trailer. Row addresses
// are 1-based and bit-reversed because the panel shifts the address out
// LSB-first while the bus sends MSB-first.
//
// Called once per frame; the address bytes are never rewritten afterwards.
func buildScaffold(f []byte) {
	for i := range f {
		f[i] = 0xFF
	}
	for row := 1; row <= rows; row++ {
		i := 1 + (row-1)*rowStride
		f[i] = bits.Reverse8(byte(row))
		f[i+rowStride-1] = 0
	}
	f[FrameLen-1] = 0
}

// checkTile validates blitTile arguments. A rejected call must not have
// written anything, so validation is complete before any copy starts.
func checkTile(bitmap []byte, srcW, srcH, tileX, tileY, tileW, tileH int) error {
	if srcW < 1 || srcH < 1 || tileW < 1 || tileH < 1 || tileX < 0 || tileY < 0 ||
		tileX+tileW > GridW || tileY+tileH > GridH {
		return fmt.Errorf("%w: tile region out of bounds", ErrInvalidParam)
	}
	if len(bitmap) != srcW*srcH*8 {
		return fmt.Errorf("%w: bitmap length %d, want %d", ErrInvalidParam, len(bitmap), srcW*srcH*8)
	}
	return nil
}

// blitTile copies an 8-pixel-tall-row-major bitmap into the frame at tile
// granularity. The source wraps modulo both axes, so a source smaller than
// the destination region repeats across it. Arguments must already have
// passed checkTile.
func blitTile(f, bitmap []byte, srcW, srcH, tileX, tileY, tileW, tileH int) {
	srcY := 0
	for ty := tileY; ty < tileY+tileH; ty++ {
		base := ty*8*rowStride + 2
		for line := 0; line < 8; line++ {
			off := base + line*rowStride
			srcX := 0
			for tx := tileX; tx < tileX+tileW; tx++ {
				f[off+tx] = bitmap[(srcY*8+line)*srcW+srcX]
				if srcX++; srcX >= srcW {
					srcX = 0
				}
			}
		}
		if srcY++; srcY >= srcH {
			srcY = 0
		}
	}
}

// BitAt reports the pixel at (x, y) of a wire-format frame. A set bit is
// white. Coordinates outside the 400×240 grid are the caller's problem.
func BitAt(f []byte, x, y int) bool {
	i := 1 + y*rowStride + 1 + x/8
	return f[i]&(0x80>>uint(x%8)) != 0
}
