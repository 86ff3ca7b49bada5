// Copyright 2024 The tidesalt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package salsa20 implements the Salsa20 stream cipher as specified in
// https://cr.yp.to/snuffle/spec.pdf.
//
// Salsa20 differs from many other stream ciphers in that it is message
// orientated rather than byte orientated. Each call to XORKeyStream operates
// on an independent message and the cipher's block counter restarts at zero.
//
// Another aspect of this difference is that part of the counter is exposed as
// a nonce in each call. Encrypting two different messages with the same key
// and nonce is insecure, so the nonce must be unique per message. Nonces of
// 24 bytes select the XSalsa20 variant, whose nonce space is large enough for
// nonces to be chosen at random for each message.
package salsa20

import (
	"github.com/tidesalt/nacl/internal/alias"
	"github.com/tidesalt/nacl/internal/wipe"
	"github.com/tidesalt/nacl/salsa20/salsa"
)

// setup derives the effective 32-byte key and 16-byte counter block for the
// given nonce. An 8-byte nonce selects plain Salsa20; a 24-byte nonce selects
// XSalsa20, deriving a subkey from the leading 16 nonce bytes with HSalsa20.
// The subkey, when one is produced, is written to subKey and must be wiped by
// the caller once the message has been processed.
func setup(subKey *[32]byte, counter *[16]byte, nonce []byte, key *[32]byte) *[32]byte {
	switch len(nonce) {
	case 24:
		var hNonce [16]byte
		copy(hNonce[:], nonce[:16])
		salsa.HSalsa20(subKey, &hNonce, key, &salsa.Sigma)
		copy(counter[:8], nonce[16:])
		return subKey
	case 8:
		copy(counter[:8], nonce)
		return key
	}
	panic("salsa20: nonce must be 8 or 24 bytes")
}

// XORKeyStream crypts bytes from in to out using the given key and nonce.
// In and out must overlap entirely or not at all. Nonce must
// be either 8 or 24 bytes long. If len(out) < len(in), XORKeyStream panics.
func XORKeyStream(out, in []byte, nonce []byte, key *[32]byte) {
	if len(out) < len(in) {
		panic("salsa20: output smaller than input")
	}
	if alias.InexactOverlap(out[:len(in)], in) {
		panic("salsa20: invalid buffer overlap")
	}

	var subKey [32]byte
	var counter [16]byte
	k := setup(&subKey, &counter, nonce, key)
	salsa.XORKeyStream(out, in, &counter, k)
	wipe.Bytes(subKey[:])
}

// KeyStream writes len(out) bytes of raw key stream into out using the given
// key and nonce, without a message buffer. Nonce must be either 8 or 24 bytes
// long.
func KeyStream(out []byte, nonce []byte, key *[32]byte) {
	var subKey [32]byte
	var counter [16]byte
	k := setup(&subKey, &counter, nonce, key)
	salsa.KeyStream(out, &counter, k)
	wipe.Bytes(subKey[:])
}
