// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ls027b7dh01 controls a Sharp LS027B7DH01 memory-in-pixel display
// (400×240, 1-bit) over SPI, refreshed continuously by a transfer engine.
//
// The panel needs continuous refresh: once initialized the driver streams
// the last published frame forever, alternating the VCOM polarity bit on
// every refresh as the datasheet requires. The application paints
// 8×8-pixel tiles into a backbuffer and publishes complete frames; the
// publish path and the refresh cycle never block each other for longer
// than a few index assignments.
//
// Datasheet:
// https://www.sharpsde.com/fileadmin/products/Displays/Specs/LS027B7DH01_Spec.pdf
package ls027b7dh01
