// Copyright 2024 The tidesalt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package secretbox encrypts and authenticates small messages.
//
// Secretbox uses XSalsa20 and Poly1305 to encrypt and authenticate messages
// with secret-key cryptography. The length of messages is not hidden.
//
// It is the caller's responsibility to ensure the uniqueness of nonces, for
// example by using nonce 1 for the first message, nonce 2 for the second
// message, etc. Nonces are long enough that randomly generated nonces have
// negligible risk of collision.
//
// Messages should be small because:
//
//  1. The whole message needs to be held in memory to be processed.
//
//  2. Using large messages pressures implementations on small machines to
//     decrypt and process plaintext before authenticating it. This is very
//     dangerous, and this package does not do it, but a protocol that uses
//     excessive message sizes might present some implementations with no
//     other choice.
//
// This package produces ciphertext laid out as the 16-byte Poly1305 tag
// followed by the encrypted message; the zero-padded buffers of the classic
// NaCl C interface are an internal detail and never appear in the API.
//
// This package is interoperable with [NaCl].
//
// [NaCl]: https://nacl.cr.yp.to/secretbox.html
package secretbox

import (
	"errors"

	"golang.org/x/crypto/poly1305"

	"github.com/tidesalt/nacl/internal/alias"
	"github.com/tidesalt/nacl/internal/wipe"
	"github.com/tidesalt/nacl/salsa20/salsa"
)

const (
	// KeySize is the size, in bytes, of a secretbox key.
	KeySize = 32
	// NonceSize is the size, in bytes, of a secretbox nonce.
	NonceSize = 24
	// Overhead is the number of bytes of overhead when boxing a message.
	Overhead = poly1305.TagSize
)

var (
	// ErrTooShort is returned by OpenError when the input is shorter than
	// Overhead and so cannot contain a tag.
	ErrTooShort = errors.New("secretbox: ciphertext shorter than overhead")

	// ErrAuthFailed is returned by OpenError when the tag does not
	// authenticate the ciphertext. The input is forged or corrupted and no
	// plaintext is produced.
	ErrAuthFailed = errors.New("secretbox: message authentication failed")
)

// setup produces a sub-key and Salsa20 counter given a nonce and key. The
// first 16 nonce bytes feed the HSalsa20 derivation; the remaining 8 seed the
// counter block, whose block counter starts at zero.
func setup(subKey *[32]byte, counter *[16]byte, nonce *[24]byte, key *[32]byte) {
	var hNonce [16]byte
	copy(hNonce[:], nonce[:16])
	salsa.HSalsa20(subKey, &hNonce, key, &salsa.Sigma)
	copy(counter[:8], nonce[16:])
}

// sliceForAppend takes a slice and a requested number of bytes. It returns a
// slice with the contents of the given slice followed by that many bytes and a
// second slice that aliases into it and contains only the extra bytes. If the
// original slice has sufficient capacity then no allocation is performed.
func sliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}

// Seal appends an encrypted and authenticated copy of message to out, which
// must not overlap message. The key and nonce pair must be unique for each
// distinct message and the output will be Overhead bytes longer than message.
func Seal(out, message []byte, nonce *[24]byte, key *[32]byte) []byte {
	var subKey [32]byte
	var counter [16]byte
	setup(&subKey, &counter, nonce, key)

	// The first block of key stream is split in two: the first 32 bytes key
	// the one-time Poly1305 authenticator, the second 32 encrypt the leading
	// message bytes. The rest of the message streams from block one.
	var firstBlock [64]byte
	salsa.KeyStream(firstBlock[:], &counter, &subKey)

	var poly1305Key [32]byte
	copy(poly1305Key[:], firstBlock[:32])

	ret, out := sliceForAppend(out, len(message)+Overhead)
	if alias.AnyOverlap(out, message) {
		panic("secretbox: invalid buffer overlap")
	}

	firstMessageBlock := message
	if len(firstMessageBlock) > 32 {
		firstMessageBlock = firstMessageBlock[:32]
	}

	tagOut := out
	out = out[Overhead:]
	for i, x := range firstMessageBlock {
		out[i] = firstBlock[32+i] ^ x
	}
	message = message[len(firstMessageBlock):]
	ciphertext := out
	out = out[len(firstMessageBlock):]

	counter[8] = 1
	salsa.XORKeyStream(out, message, &counter, &subKey)

	var tag [poly1305.TagSize]byte
	poly1305.Sum(&tag, ciphertext, &poly1305Key)
	copy(tagOut, tag[:])

	wipe.Bytes(subKey[:])
	wipe.Bytes(poly1305Key[:])
	wipe.Bytes(firstBlock[:])
	return ret
}

// Open authenticates and decrypts a box produced by Seal and appends the
// message to out, which must not overlap box. The output will be Overhead
// bytes smaller than box.
func Open(out, box []byte, nonce *[24]byte, key *[32]byte) ([]byte, bool) {
	ret, err := OpenError(out, box, nonce, key)
	return ret, err == nil
}

// OpenError is like Open but reports why opening failed: ErrTooShort when box
// cannot even hold a tag, ErrAuthFailed when the tag does not match. The tag
// is verified in constant time before any byte is decrypted, so a forgery
// never observes plaintext.
func OpenError(out, box []byte, nonce *[24]byte, key *[32]byte) ([]byte, error) {
	if len(box) < Overhead {
		return nil, ErrTooShort
	}

	var subKey [32]byte
	var counter [16]byte
	setup(&subKey, &counter, nonce, key)

	var firstBlock [64]byte
	salsa.KeyStream(firstBlock[:], &counter, &subKey)

	var poly1305Key [32]byte
	copy(poly1305Key[:], firstBlock[:32])

	var tag [poly1305.TagSize]byte
	copy(tag[:], box)

	if !poly1305.Verify(&tag, box[Overhead:], &poly1305Key) {
		wipe.Bytes(subKey[:])
		wipe.Bytes(poly1305Key[:])
		wipe.Bytes(firstBlock[:])
		return nil, ErrAuthFailed
	}

	ret, out := sliceForAppend(out, len(box)-Overhead)
	if alias.AnyOverlap(out, box) {
		panic("secretbox: invalid buffer overlap")
	}

	firstMessageBlock := box[Overhead:]
	if len(firstMessageBlock) > 32 {
		firstMessageBlock = firstMessageBlock[:32]
	}
	for i, x := range firstMessageBlock {
		out[i] = firstBlock[32+i] ^ x
	}
	box = box[Overhead+len(firstMessageBlock):]
	out = out[len(firstMessageBlock):]

	counter[8] = 1
	salsa.XORKeyStream(out, box, &counter, &subKey)

	wipe.Bytes(subKey[:])
	wipe.Bytes(poly1305Key[:])
	wipe.Bytes(firstBlock[:])
	return ret, nil
}
