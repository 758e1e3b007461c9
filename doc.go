// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package memorylcd is a container for the Sharp memory-in-pixel display
// driver and its supporting packages.
package memorylcd
