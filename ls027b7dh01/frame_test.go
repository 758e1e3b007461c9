// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ls027b7dh01

import (
	"bytes"
	"errors"
	"math/bits"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildScaffold(t *testing.T) {
	f := make([]byte, FrameLen)
	buildScaffold(f)

	for row := 1; row <= rows; row++ {
		i := 1 + (row-1)*rowStride
		if got, want := f[i], bits.Reverse8(byte(row)); got != want {
			t.Errorf("row %d address byte = %#02x, want %#02x", row, got, want)
		}
		if f[i+rowStride-1] != 0 {
			t.Errorf("row %d dummy byte = %#02x, want 0", row, f[i+rowStride-1])
		}
		if got, want := f[i+1:i+1+rowData], bytes.Repeat([]byte{0xFF}, rowData); !bytes.Equal(got, want) {
			t.Errorf("row %d pixel bytes not all 0xFF", row)
		}
	}
	if f[FrameLen-1] != 0 {
		t.Errorf("trailer byte = %#02x, want 0", f[FrameLen-1])
	}

	// Spot-check the bit reversal against hand-computed values.
	for _, tc := range []struct {
		row  int
		want byte
	}{
		{1, 0x80},
		{2, 0x40},
		{3, 0xC0},
		{240, 0x0F},
	} {
		if got := f[1+(tc.row-1)*rowStride]; got != tc.want {
			t.Errorf("row %d address byte = %#02x, want %#02x", tc.row, got, tc.want)
		}
	}
}

func TestCheckTile(t *testing.T) {
	for _, tc := range []struct {
		name                       string
		bitmapLen                  int
		srcW, srcH                 int
		tileX, tileY, tileW, tileH int
		wantErr                    bool
	}{
		{name: "full grid", bitmapLen: GridW * GridH * 8, srcW: GridW, srcH: GridH, tileW: GridW, tileH: GridH},
		{name: "single tile", bitmapLen: 8, srcW: 1, srcH: 1, tileW: 1, tileH: 1},
		{name: "bottom right corner", bitmapLen: 8, srcW: 1, srcH: 1, tileX: GridW - 1, tileY: GridH - 1, tileW: 1, tileH: 1},
		{name: "x past edge", bitmapLen: 8, srcW: 1, srcH: 1, tileX: GridW - 1, tileY: GridH - 1, tileW: 2, tileH: 1, wantErr: true},
		{name: "y past edge", bitmapLen: 8, srcW: 1, srcH: 1, tileX: GridW - 1, tileY: GridH - 1, tileW: 1, tileH: 2, wantErr: true},
		{name: "zero width", bitmapLen: 8, srcW: 1, srcH: 1, tileW: 0, tileH: 1, wantErr: true},
		{name: "zero height", bitmapLen: 8, srcW: 1, srcH: 1, tileW: 1, tileH: 0, wantErr: true},
		{name: "negative x", bitmapLen: 8, srcW: 1, srcH: 1, tileX: -1, tileW: 1, tileH: 1, wantErr: true},
		{name: "negative y", bitmapLen: 8, srcW: 1, srcH: 1, tileY: -1, tileW: 1, tileH: 1, wantErr: true},
		{name: "zero source width", bitmapLen: 0, srcW: 0, srcH: 1, tileW: 1, tileH: 1, wantErr: true},
		{name: "bitmap too short", bitmapLen: 7, srcW: 1, srcH: 1, tileW: 1, tileH: 1, wantErr: true},
		{name: "bitmap too long", bitmapLen: 9, srcW: 1, srcH: 1, tileW: 1, tileH: 1, wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := checkTile(make([]byte, tc.bitmapLen), tc.srcW, tc.srcH, tc.tileX, tc.tileY, tc.tileW, tc.tileH)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidParam) {
					t.Errorf("checkTile() = %v, want ErrInvalidParam", err)
				}
			} else if err != nil {
				t.Errorf("checkTile() = %v, want nil", err)
			}
		})
	}
}

func TestBlitTile(t *testing.T) {
	// One tile of recognizable scanlines.
	src := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}

	f := make([]byte, FrameLen)
	buildScaffold(f)
	before := make([]byte, FrameLen)
	copy(before, f)

	// A 1×1-tile source wraps across a 2×2-tile region.
	blitTile(f, src, 1, 1, 3, 2, 2, 2)

	for ty := 2; ty < 4; ty++ {
		for line := 0; line < 8; line++ {
			row := ty*8 + line // 0-based pixel row
			for tx := 3; tx < 5; tx++ {
				i := 1 + row*rowStride + 1 + tx
				if f[i] != src[line] {
					t.Fatalf("tile (%d,%d) line %d = %#02x, want %#02x", tx, ty, line, f[i], src[line])
				}
				before[i] = f[i]
			}
		}
	}

	// Nothing outside the region changed, scaffolding included.
	if diff := cmp.Diff(f, before); diff != "" {
		t.Errorf("bytes outside the painted region changed (-got +want):\n%s", diff)
	}
}

func TestBitAt(t *testing.T) {
	f := make([]byte, FrameLen)
	buildScaffold(f)

	if !BitAt(f, 0, 0) || !BitAt(f, GridW*8-1, GridH*8-1) {
		t.Error("scaffolded frame should be all white")
	}

	// Clear the pixel byte covering x 8..15 of row 0.
	blitTile(f, make([]byte, 8), 1, 1, 1, 0, 1, 1)
	for x := 0; x < 24; x++ {
		want := x < 8 || x >= 16
		if got := BitAt(f, x, 0); got != want {
			t.Errorf("BitAt(%d, 0) = %t, want %t", x, got, want)
		}
	}
	if !BitAt(f, 8, 8) {
		t.Error("row below the painted tile should stay white")
	}
}
