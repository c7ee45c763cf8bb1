// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// The bitReader is the inverse of the bitWriter. It never fails: when fewer
// bits remain than requested, TryReadBits reports false and the trailing bits
// are left unread. This is how the zero padding of the final byte is skipped.

type bitReader struct {
	data    []byte
	bufBits uint64 // Buffer to hold some bits
	numBits uint   // Number of valid bits in bufBits
	offset  int    // Number of bytes consumed from data
	lsb     bool
}

func (br *bitReader) Init(data []byte, lsb bool) {
	*br = bitReader{data: data, lsb: lsb}
}

// TryReadBits reads nb bits, where nb is at most 32.
func (br *bitReader) TryReadBits(nb uint) (uint32, bool) {
	for br.numBits < nb {
		if br.offset >= len(br.data) {
			return 0, false
		}
		c := br.data[br.offset]
		br.offset++
		if br.lsb {
			br.bufBits |= uint64(c) << br.numBits
		} else {
			br.bufBits = br.bufBits<<8 | uint64(c)
		}
		br.numBits += 8
	}

	mask := uint64(1)<<nb - 1
	br.numBits -= nb
	if br.lsb {
		v := br.bufBits & mask
		br.bufBits >>= nb
		return uint32(v), true
	}
	v := (br.bufBits >> br.numBits) & mask
	br.bufBits &= 1<<br.numBits - 1
	return uint32(v), true
}

// BitsRead reports the number of bits consumed so far.
func (br *bitReader) BitsRead() int64 {
	return 8*int64(br.offset) - int64(br.numBits)
}
