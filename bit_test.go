// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	"testing"

	"github.com/lzwrb/lzw/internal"
	"github.com/lzwrb/lzw/internal/testutil"
)

func TestBitPacking(t *testing.T) {
	type code struct {
		v  uint32
		nb uint
	}
	var vectors = []struct {
		codes []code
		lsb   string // BitGen script of the LSB packing
		msb   string // BitGen script of the MSB packing
	}{{
		codes: nil,
		lsb:   "<<<",
		msb:   ">>>",
	}, {
		codes: []code{{5, 3}},
		lsb:   "<<< < D3:5",
		msb:   ">>> > D3:5",
	}, {
		codes: []code{{256, 9}, {65, 9}, {511, 9}, {3, 2}},
		lsb:   "<<< < D9:256 D9:65 D9:511 D2:3",
		msb:   ">>> > D9:256 D9:65 D9:511 D2:3",
	}, {
		codes: []code{{0xffffffff, 32}, {1, 1}, {0, 7}},
		lsb:   "<<< < H32:ffffffff 1 0000000",
		msb:   ">>> > H32:ffffffff 1 0000000",
	}, {
		codes: []code{{1, 1}, {2, 2}, {4, 3}, {8, 4}, {16, 5}, {32, 6}, {64, 7}, {128, 8}, {4095, 12}},
		lsb:   "<<< < D1:1 D2:2 D3:4 D4:8 D5:16 D6:32 D7:64 D8:128 D12:4095",
		msb:   ">>> > D1:1 D2:2 D3:4 D4:8 D5:16 D6:32 D7:64 D8:128 D12:4095",
	}}

	for i, v := range vectors {
		var total int64
		for _, c := range v.codes {
			total += int64(c.nb)
		}

		for _, lsb := range []bool{true, false} {
			want := testutil.MustDecodeBitGen(v.msb)
			if lsb {
				want = testutil.MustDecodeBitGen(v.lsb)
			}

			var bw bitWriter
			bw.Init(lsb, 0)
			for _, c := range v.codes {
				bw.WriteBits(c.v, c.nb)
			}
			if got := bw.BitsWritten(); got != total {
				t.Errorf("test %d (lsb: %v), BitsWritten() = %d, want %d", i, lsb, got, total)
			}
			got := bw.Finish()
			if !bytes.Equal(got, want) {
				t.Errorf("test %d (lsb: %v), mismatching output:\ngot  %x\nwant %x", i, lsb, got, want)
				continue
			}

			var br bitReader
			br.Init(got, lsb)
			for j, c := range v.codes {
				if v, ok := br.TryReadBits(c.nb); !ok || v != c.v {
					t.Errorf("test %d (lsb: %v), code %d: got (%d, %v), want %d", i, lsb, j, v, ok, c.v)
				}
			}
			if got := br.BitsRead(); got != total {
				t.Errorf("test %d (lsb: %v), BitsRead() = %d, want %d", i, lsb, got, total)
			}
			if _, ok := br.TryReadBits(8); ok {
				t.Errorf("test %d (lsb: %v), unexpected read from the padding", i, lsb)
			}
		}
	}
}

// TestBitMirror checks that MSB packing is LSB packing of the bit-reversed
// codes with every output byte reversed.
func TestBitMirror(t *testing.T) {
	r := testutil.NewRand(0)
	for i := 0; i < 100; i++ {
		var lsb, msb bitWriter
		lsb.Init(true, 0)
		msb.Init(false, 0)
		for n := r.Intn(64); n > 0; n-- {
			nb := uint(1 + r.Intn(32))
			v := uint32(r.Int()) & uint32(1<<nb-1)
			msb.WriteBits(v, nb)
			lsb.WriteBits(internal.ReverseUint32N(v, nb), nb)
		}
		want := msb.Finish()
		got := lsb.Finish()
		for j, b := range got {
			got[j] = internal.ReverseLUT[b]
		}
		if !bytes.Equal(got, want) {
			t.Errorf("test %d, mismatching output:\ngot  %x\nwant %x", i, got, want)
		}
	}
}
