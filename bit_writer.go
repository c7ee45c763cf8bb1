// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "github.com/lzwrb/lzw/internal"

// The bitWriter packs variable width codes densely into a byte slice.
// There is never any padding between codes, and the final partial byte is
// padded with zero bits by Finish.
//
// In LSB mode, the low bits of each code occupy the low bit positions of each
// byte (as in GIF). In MSB mode, the high bits of each code occupy the high
// bit positions of each byte (as in TIFF and PDF).

type bitWriter struct {
	out     []byte
	bufBits uint64 // Buffer to hold some bits
	numBits uint   // Number of valid bits in bufBits
	lsb     bool
}

func (bw *bitWriter) Init(lsb bool, sizeHint int) {
	*bw = bitWriter{out: bw.out[:0], lsb: lsb}
	if cap(bw.out) < sizeHint {
		bw.out = make([]byte, 0, sizeHint)
	}
}

// WriteBits writes the lower nb bits of v. The upper bits must be zero.
func (bw *bitWriter) WriteBits(v uint32, nb uint) {
	if internal.Debug && uint64(v)>>nb != 0 {
		panic(Error("code does not fit in its width"))
	}
	if bw.lsb {
		bw.bufBits |= uint64(v) << bw.numBits
		bw.numBits += nb
		for bw.numBits >= 8 {
			bw.out = append(bw.out, byte(bw.bufBits))
			bw.bufBits >>= 8
			bw.numBits -= 8
		}
		return
	}
	bw.bufBits = bw.bufBits<<nb | uint64(v)
	bw.numBits += nb
	for bw.numBits >= 8 {
		bw.numBits -= 8
		bw.out = append(bw.out, byte(bw.bufBits>>bw.numBits))
	}
	bw.bufBits &= 1<<bw.numBits - 1
}

// BitsWritten reports the number of bits written so far.
func (bw *bitWriter) BitsWritten() int64 {
	return 8*int64(len(bw.out)) + int64(bw.numBits)
}

// Finish flushes the partial byte, if any, and returns the packed output.
// The bitWriter must be re-initialized before further use.
func (bw *bitWriter) Finish() []byte {
	if bw.numBits > 0 {
		if bw.lsb {
			bw.out = append(bw.out, byte(bw.bufBits))
		} else {
			bw.out = append(bw.out, byte(bw.bufBits<<(8-bw.numBits)))
		}
		bw.bufBits, bw.numBits = 0, 0
	}
	return bw.out
}
