// Copyright 2024 The tidesalt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package salsa

// XORKeyStream crypts bytes from in to out using the given key and counters.
// In and out must overlap entirely or not at all. Counter
// contains the raw salsa20 counter bytes (both nonce and block counter).
func XORKeyStream(out, in []byte, counter *[16]byte, key *[32]byte) {
	if len(in) == 0 {
		return
	}
	_ = out[len(in)-1] // fail if the length of out is shorter than in
	genericXORKeyStream(out, in, counter, key)
}

// XORKeyStreamWithRounds is like XORKeyStream but runs the given number of
// Salsa rounds (8, 12 or 20) instead of the default 20.
func XORKeyStreamWithRounds(out, in []byte, counter *[16]byte, key *[32]byte, rounds uint64) {
	if len(in) == 0 {
		return
	}
	_ = out[len(in)-1] // fail if the length of out is shorter than in
	generic20nXORKeyStream(out, in, counter, key, rounds)
}

// KeyStream writes len(out) bytes of raw Salsa20 key stream into out using
// the given key and counter. It is equivalent to calling XORKeyStream with a
// zeroed input, without a caller-visible input buffer. A zero-length request
// performs no work.
func KeyStream(out []byte, counter *[16]byte, key *[32]byte) {
	if len(out) == 0 {
		return
	}
	genericKeyStream(out, counter, key)
}
