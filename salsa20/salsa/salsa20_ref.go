// Copyright 2024 The tidesalt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package salsa

import (
	"encoding/binary"
	"math/bits"
)

// coreSalsa applies the Salsa20 core function to the 16-byte input in, the
// 32-byte key k and the 16-byte constant c, and puts the 64-byte result into
// out. The 16 state words are loaded little-endian in the fixed interleaving
// {c, k[0:16], c, in, c, k[16:32], c}; after the rounds the pre-round words
// are added back in (the feedback that makes the function one-way).
func coreSalsa(out *[64]byte, in *[16]byte, k *[32]byte, c *[16]byte, rounds int) {
	j0 := binary.LittleEndian.Uint32(c[0:4])
	j1 := binary.LittleEndian.Uint32(k[0:4])
	j2 := binary.LittleEndian.Uint32(k[4:8])
	j3 := binary.LittleEndian.Uint32(k[8:12])
	j4 := binary.LittleEndian.Uint32(k[12:16])
	j5 := binary.LittleEndian.Uint32(c[4:8])
	j6 := binary.LittleEndian.Uint32(in[0:4])
	j7 := binary.LittleEndian.Uint32(in[4:8])
	j8 := binary.LittleEndian.Uint32(in[8:12])
	j9 := binary.LittleEndian.Uint32(in[12:16])
	j10 := binary.LittleEndian.Uint32(c[8:12])
	j11 := binary.LittleEndian.Uint32(k[16:20])
	j12 := binary.LittleEndian.Uint32(k[20:24])
	j13 := binary.LittleEndian.Uint32(k[24:28])
	j14 := binary.LittleEndian.Uint32(k[28:32])
	j15 := binary.LittleEndian.Uint32(c[12:16])

	x0, x1, x2, x3, x4, x5, x6, x7 := j0, j1, j2, j3, j4, j5, j6, j7
	x8, x9, x10, x11, x12, x13, x14, x15 := j8, j9, j10, j11, j12, j13, j14, j15

	for i := rounds; i > 0; i -= 2 {
		x4 ^= bits.RotateLeft32(x0+x12, 7)
		x8 ^= bits.RotateLeft32(x4+x0, 9)
		x12 ^= bits.RotateLeft32(x8+x4, 13)
		x0 ^= bits.RotateLeft32(x12+x8, 18)

		x9 ^= bits.RotateLeft32(x5+x1, 7)
		x13 ^= bits.RotateLeft32(x9+x5, 9)
		x1 ^= bits.RotateLeft32(x13+x9, 13)
		x5 ^= bits.RotateLeft32(x1+x13, 18)

		x14 ^= bits.RotateLeft32(x10+x6, 7)
		x2 ^= bits.RotateLeft32(x14+x10, 9)
		x6 ^= bits.RotateLeft32(x2+x14, 13)
		x10 ^= bits.RotateLeft32(x6+x2, 18)

		x3 ^= bits.RotateLeft32(x15+x11, 7)
		x7 ^= bits.RotateLeft32(x3+x15, 9)
		x11 ^= bits.RotateLeft32(x7+x3, 13)
		x15 ^= bits.RotateLeft32(x11+x7, 18)

		x1 ^= bits.RotateLeft32(x0+x3, 7)
		x2 ^= bits.RotateLeft32(x1+x0, 9)
		x3 ^= bits.RotateLeft32(x2+x1, 13)
		x0 ^= bits.RotateLeft32(x3+x2, 18)

		x6 ^= bits.RotateLeft32(x5+x4, 7)
		x7 ^= bits.RotateLeft32(x6+x5, 9)
		x4 ^= bits.RotateLeft32(x7+x6, 13)
		x5 ^= bits.RotateLeft32(x4+x7, 18)

		x11 ^= bits.RotateLeft32(x10+x9, 7)
		x8 ^= bits.RotateLeft32(x11+x10, 9)
		x9 ^= bits.RotateLeft32(x8+x11, 13)
		x10 ^= bits.RotateLeft32(x9+x8, 18)

		x12 ^= bits.RotateLeft32(x15+x14, 7)
		x13 ^= bits.RotateLeft32(x12+x15, 9)
		x14 ^= bits.RotateLeft32(x13+x12, 13)
		x15 ^= bits.RotateLeft32(x14+x13, 18)
	}

	binary.LittleEndian.PutUint32(out[0:4], x0+j0)
	binary.LittleEndian.PutUint32(out[4:8], x1+j1)
	binary.LittleEndian.PutUint32(out[8:12], x2+j2)
	binary.LittleEndian.PutUint32(out[12:16], x3+j3)
	binary.LittleEndian.PutUint32(out[16:20], x4+j4)
	binary.LittleEndian.PutUint32(out[20:24], x5+j5)
	binary.LittleEndian.PutUint32(out[24:28], x6+j6)
	binary.LittleEndian.PutUint32(out[28:32], x7+j7)
	binary.LittleEndian.PutUint32(out[32:36], x8+j8)
	binary.LittleEndian.PutUint32(out[36:40], x9+j9)
	binary.LittleEndian.PutUint32(out[40:44], x10+j10)
	binary.LittleEndian.PutUint32(out[44:48], x11+j11)
	binary.LittleEndian.PutUint32(out[48:52], x12+j12)
	binary.LittleEndian.PutUint32(out[52:56], x13+j13)
	binary.LittleEndian.PutUint32(out[56:60], x14+j14)
	binary.LittleEndian.PutUint32(out[60:64], x15+j15)
}

// incrementCounter adds one to the 8-byte little-endian block counter held in
// counter[8:16], propagating the carry across bytes. The low 8 bytes are the
// per-message nonce and are left untouched.
func incrementCounter(counter *[16]byte) {
	u := uint32(1)
	for i := 8; i < 16; i++ {
		u += uint32(counter[i])
		counter[i] = byte(u)
		u >>= 8
	}
}

func genericXORKeyStream(out, in []byte, counter *[16]byte, key *[32]byte) {
	generic20nXORKeyStream(out, in, counter, key, 20)
}

func generic20nXORKeyStream(out, in []byte, counter *[16]byte, key *[32]byte, rounds uint64) {
	var block [64]byte
	var counterCopy [16]byte
	copy(counterCopy[:], counter[:])

	for len(in) >= 64 {
		coreSalsa(&block, &counterCopy, key, &Sigma, int(rounds))
		for i, x := range block {
			out[i] = in[i] ^ x
		}
		incrementCounter(&counterCopy)
		in = in[64:]
		out = out[64:]
	}

	if len(in) > 0 {
		coreSalsa(&block, &counterCopy, key, &Sigma, int(rounds))
		for i, v := range in {
			out[i] = v ^ block[i]
		}
	}
}

func genericKeyStream(out []byte, counter *[16]byte, key *[32]byte) {
	var block [64]byte
	var counterCopy [16]byte
	copy(counterCopy[:], counter[:])

	for len(out) >= 64 {
		coreSalsa(&block, &counterCopy, key, &Sigma, 20)
		copy(out, block[:])
		incrementCounter(&counterCopy)
		out = out[64:]
	}

	if len(out) > 0 {
		coreSalsa(&block, &counterCopy, key, &Sigma, 20)
		copy(out, block[:len(out)])
	}
}
