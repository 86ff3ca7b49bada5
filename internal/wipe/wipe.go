// Copyright 2024 The tidesalt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wipe clears key material from memory.
package wipe

import "runtime"

// Bytes sets every byte of b to zero and keeps the buffer reachable until the
// writes have happened, so the zeroing cannot be treated as a dead store.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
