// Copyright 2024 The tidesalt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package salsa20

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/tidesalt/nacl/salsa20/salsa"
)

func fromHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex %q: %v", s, err)
	}
	return b
}

func TestXSalsa20Vector(t *testing.T) {
	// Key stream from the NaCl documentation: XSalsa20 under the long-term
	// key and a full 24-byte nonce.
	var key [32]byte
	copy(key[:], fromHex(t, "1b27556473e985d462cd51197a9a46c76009549eac6474f206c4ee0844f68389"))
	nonce := fromHex(t, "69696ee955b62b73cd62bda875fc73d68219e0036b7a0b37")

	out := make([]byte, 64)
	XORKeyStream(out, make([]byte, 64), nonce, &key)

	expected := fromHex(t, "eea6a7251c1e72916d11c2cb214d3c25"+
		"2539121d8e234e652d651fa4c8cff880"+
		"309e645a74e9e0a60d8243acd9177ab5"+
		"1a1beb8d5a2f5d700c093c5e55855796")
	if !bytes.Equal(out, expected) {
		t.Errorf("\nexpected: % 02x,\n     got: % 02x", expected, out)
	}
}

func TestEightByteNonce(t *testing.T) {
	// An 8-byte nonce is plain Salsa20: the nonce and a zero block counter
	// form the raw counter block.
	var key [32]byte
	for i := range key {
		key[i] = byte(i + 1)
	}
	nonce := []byte{3, 1, 4, 1, 5, 9, 2, 6}

	in := make([]byte, 157)
	for i := range in {
		in[i] = byte(i * 3)
	}

	out := make([]byte, len(in))
	XORKeyStream(out, in, nonce, &key)

	var counter [16]byte
	copy(counter[:8], nonce)
	want := make([]byte, len(in))
	salsa.XORKeyStream(want, in, &counter, &key)

	if !bytes.Equal(out, want) {
		t.Error("8-byte nonce disagrees with raw salsa counter block")
	}
}

func TestDeterministic(t *testing.T) {
	var key [32]byte
	key[7] = 0xa9
	nonce := fromHex(t, "000102030405060708090a0b0c0d0e0f1011121314151617")

	a := make([]byte, 300)
	b := make([]byte, 300)
	KeyStream(a, nonce, &key)
	KeyStream(b, nonce, &key)
	if !bytes.Equal(a, b) {
		t.Error("identical inputs produced different key streams")
	}

	// Changing only the nonce must change the stream.
	nonce[23] ^= 1
	KeyStream(b, nonce, &key)
	if bytes.Equal(a, b) {
		t.Error("distinct nonces produced identical key streams")
	}
}

func TestKeyStreamMatchesXOR(t *testing.T) {
	var key [32]byte
	copy(key[:], fromHex(t, "dc908dda0b9344a953629b733820778880f3ceb421bb61b91cbd4c3e66256ce4"))
	nonce := fromHex(t, "8219e0036b7a0b37")

	ks := make([]byte, 113)
	KeyStream(ks, nonce, &key)

	xored := make([]byte, 113)
	XORKeyStream(xored, make([]byte, 113), nonce, &key)
	if !bytes.Equal(ks, xored) {
		t.Error("KeyStream disagrees with XORKeyStream over zeros")
	}
}

func TestPanics(t *testing.T) {
	var key [32]byte
	mustPanic := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		f()
	}
	mustPanic("bad nonce size", func() {
		XORKeyStream(make([]byte, 16), make([]byte, 16), make([]byte, 16), &key)
	})
	mustPanic("short output", func() {
		XORKeyStream(make([]byte, 15), make([]byte, 16), make([]byte, 8), &key)
	})
}
