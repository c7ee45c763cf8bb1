// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	stdlzw "compress/lzw"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/lzwrb/lzw/internal/testutil"
)

func mustNew(t testing.TB, opts ...Option) *Codec {
	t.Helper()
	c, err := New(append([]Option{WithVerbosity(Silent)}, opts...)...)
	if err != nil {
		t.Fatalf("unexpected New error: %v", err)
	}
	return c
}

func TestEncoder(t *testing.T) {
	greek := []Option{WithAlphabet(Alphabet("αβγ")), WithMinBits(2), WithMaxBits(8), WithClear(true), WithStop(true)}
	var vectors = []struct {
		desc   string
		opts   []Option
		input  string
		output string // Hex-encoded
	}{{
		desc:   "gif preset",
		opts:   []Option{WithPreset(PresetGIF)},
		input:  "TOBEORNOTTOBEORTOBEORNOT",
		output: "00a93c1152e48914274fa80824687061c183090302",
	}, {
		desc:   "gif preset with MSB packing",
		opts:   []Option{WithPreset(PresetGIF), WithLSB(false)},
		input:  "TOBEORNOTTOBEORTOBEORNOT",
		output: "801509e422293ca44e2795205048342e0b0784c040",
	}, {
		desc:   "gif preset with empty input",
		opts:   []Option{WithPreset(PresetGIF)},
		input:  "",
		output: "000302",
	}, {
		desc:   "gif preset with a single symbol",
		opts:   []Option{WithPreset(PresetGIF)},
		input:  "A",
		output: "00830404",
	}, {
		desc:   "gif preset with a code used before its entry exists",
		opts:   []Option{WithPreset(PresetGIF)},
		input:  "AAA",
		output: "0083080c08",
	}, {
		desc:   "best preset",
		opts:   []Option{WithPreset(PresetBest)},
		input:  "abababababab",
		output: "6162000a0c4810",
	}, {
		desc:   "best preset with empty input",
		opts:   []Option{WithPreset(PresetBest)},
		input:  "",
		output: "",
	}, {
		desc:   "fast preset",
		opts:   []Option{WithPreset(PresetFast)},
		input:  "abababababab",
		output: "610062000001020101010401",
	}, {
		desc:   "decimal digits",
		opts:   []Option{WithAlphabet(Dec)},
		input:  "11111111112222222222",
		output: "b1dcf2302a",
	}, {
		desc:   "multi-byte symbols",
		opts:   greek,
		input:  "αβαβαβγγγ",
		output: "435a4902",
	}}

	for i, v := range vectors {
		c := mustNew(t, v.opts...)
		got, err := c.Encode([]byte(v.input))
		if err != nil {
			t.Errorf("test %d (%s), unexpected Encode error: %v", i, v.desc, err)
			continue
		}
		want := testutil.MustDecodeHex(v.output)
		if !bytes.Equal(got, want) {
			t.Errorf("test %d (%s), mismatching output:\ngot  %x\nwant %x", i, v.desc, got, want)
		}
		dec, err := c.Decode(got)
		if err != nil {
			t.Errorf("test %d (%s), unexpected Decode error: %v", i, v.desc, err)
			continue
		}
		if string(dec) != v.input {
			t.Errorf("test %d (%s), round-trip mismatch: got %q, want %q", i, v.desc, dec, v.input)
		}
	}
}

func TestDecoder(t *testing.T) {
	var vectors = []struct {
		desc   string
		input  string // BitGen script of a gif preset stream
		output string
		err    error
	}{{
		desc:   "code used before its entry exists",
		input:  "<<< < D9:256 D9:65 D9:258 D9:257",
		output: "AAA",
	}, {
		desc:   "missing initial clear",
		input:  "<<< < D9:65 D9:257",
		output: "A",
	}, {
		desc:   "missing stop",
		input:  "<<< < D9:256 D9:65 D9:66",
		output: "AB",
	}, {
		desc:   "data after stop",
		input:  "<<< < D9:256 D9:65 D9:257 D9:66",
		output: "A",
	}, {
		desc:   "clear in the middle",
		input:  "<<< < D9:256 D9:65 D9:66 D9:256 D9:67 D9:257",
		output: "ABC",
	}, {
		desc:   "empty stream",
		input:  "<<<",
		output: "",
	}, {
		desc:  "first code is unassigned",
		input: "<<< < D9:256 D9:300",
		err:   ErrCorrupt,
	}, {
		desc:  "code beyond the next entry",
		input: "<<< < D9:256 D9:65 D9:259",
		err:   ErrCorrupt,
	}}

	for i, v := range vectors {
		c := mustNew(t, WithPreset(PresetGIF))
		got, err := c.Decode(testutil.MustDecodeBitGen(v.input))
		if !errors.Is(err, v.err) {
			t.Errorf("test %d (%s), mismatching error: got %v, want %v", i, v.desc, err, v.err)
			continue
		}
		if v.err == nil && string(got) != v.output {
			t.Errorf("test %d (%s), mismatching output: got %q, want %q", i, v.desc, got, v.output)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	const textual = "abcdefghijklmnopqrstuvwxyzλμνξπ日本語"
	maxBits := 24
	if testing.Short() {
		maxBits = 12
	}

	r := testutil.NewRand(0)
	for lo := 2; lo <= maxBits; lo++ {
		for hi := lo; hi <= maxBits; hi++ {
			t.Run(fmt.Sprintf("Bits:%d-%d", lo, hi), func(t *testing.T) {
				for flags := 0; flags < 32; flags++ {
					opts := []Option{
						WithMinBits(lo), WithMaxBits(hi),
						WithClear(flags&1 != 0),
						WithStop(flags&2 != 0),
						WithDeferred(flags&4 != 0),
						WithLSB(flags&8 == 0),
					}
					if flags&16 != 0 {
						opts = append(opts, WithAlphabet(Alphabet(textual)))
					}
					c := mustNew(t, opts...)
					cfg := c.Config()

					syms := cfg.Alphabet
					if len(syms) > 6 {
						syms = syms[:6]
					}
					var input []byte
					if cfg.Binary {
						for _, s := range testutil.Pick(r, syms, 2048) {
							input = append(input, byte(s))
						}
					} else {
						input = []byte(string(testutil.Pick(r, syms, 2048)))
					}

					enc, err := c.Encode(input)
					if err != nil {
						t.Fatalf("flags %05b, unexpected Encode error: %v", flags, err)
					}
					dec, err := c.Decode(enc)
					if err != nil {
						t.Fatalf("flags %05b, unexpected Decode error: %v", flags, err)
					}
					if !bytes.Equal(dec, input) {
						t.Fatalf("flags %05b, round-trip mismatch (%v)", flags, cfg)
					}
				}
			})
		}
	}
}

func TestEmpty(t *testing.T) {
	for _, p := range []Preset{PresetGIF, PresetFast, PresetBest} {
		for _, lsb := range []bool{true, false} {
			c := mustNew(t, WithPreset(p), WithLSB(lsb))
			enc, err := c.Encode(nil)
			if err != nil {
				t.Errorf("%s (lsb: %v), unexpected Encode error: %v", p.Name(), lsb, err)
				continue
			}
			dec, err := c.Decode(enc)
			if err != nil || len(dec) != 0 {
				t.Errorf("%s (lsb: %v), Decode() = (%q, %v), want empty", p.Name(), lsb, dec, err)
			}
		}
	}
}

func TestTableReset(t *testing.T) {
	type emit struct {
		code  uint32
		width uint
	}
	r := testutil.NewRand(1)
	input := []byte(string(testutil.Pick(r, []rune("ab"), 2000)))

	t.Run("Clear", func(t *testing.T) {
		c := mustNew(t, WithAlphabet(Alphabet("ab")), WithMinBits(2), WithMaxBits(4), WithClear(true), WithStop(true))
		var emits []emit
		c.enc.trace = func(code uint32, width uint) { emits = append(emits, emit{code, width}) }

		enc, err := c.Encode(input)
		if err != nil {
			t.Fatalf("unexpected Encode error: %v", err)
		}
		clearCode, _ := c.Config().ClearCode()
		if len(emits) == 0 || emits[0] != (emit{clearCode, 2}) {
			t.Fatalf("stream does not start with a CLEAR code at 2 bits")
		}
		var resets int
		for i, e := range emits {
			if e.width > 4 {
				t.Errorf("code %d, width %d exceeds the maximum", i, e.width)
			}
			if i == 0 || e.code != clearCode {
				continue
			}
			resets++
			if e.width != 4 {
				t.Errorf("code %d, CLEAR written at %d bits, want 4", i, e.width)
			}
			if i+1 >= len(emits) || emits[i+1].width != 2 {
				t.Errorf("code %d, code after CLEAR not written at 2 bits", i)
			}
		}
		if resets == 0 || resets != c.Stats().Resets {
			t.Errorf("mismatching resets: got %d, want %d (non-zero)", c.Stats().Resets, resets)
		}

		for _, deferred := range []bool{false, true} {
			d := mustNew(t, WithAlphabet(Alphabet("ab")), WithMinBits(2), WithMaxBits(4), WithClear(true), WithStop(true), WithDeferred(deferred))
			dec, err := d.Decode(enc)
			if err != nil {
				t.Errorf("deferred %v, unexpected Decode error: %v", deferred, err)
				continue
			}
			if !bytes.Equal(dec, input) {
				t.Errorf("deferred %v, round-trip mismatch", deferred)
			}
			if d.Stats().Resets < resets {
				t.Errorf("deferred %v, decoder saw %d resets, want at least %d", deferred, d.Stats().Resets, resets)
			}
		}
	})

	t.Run("NoClear", func(t *testing.T) {
		c := mustNew(t, WithAlphabet(Alphabet("ab")), WithMinBits(2), WithMaxBits(4), WithClear(false))
		var emits []emit
		c.enc.trace = func(code uint32, width uint) { emits = append(emits, emit{code, width}) }

		enc, err := c.Encode(input)
		if err != nil {
			t.Fatalf("unexpected Encode error: %v", err)
		}
		for i, e := range emits {
			if e.width > 4 {
				t.Errorf("code %d, width %d exceeds the maximum", i, e.width)
			}
		}
		const entries = 1<<4 - 3 // Codes not used by the symbols and STOP
		if st := c.Stats(); !st.Frozen || st.Resets != 0 {
			t.Errorf("encoder Stats() = %+v, want frozen without resets", st)
		}
		if n := len(c.enc.tbl.codes); n != entries {
			t.Errorf("encoder holds %d entries, want %d", n, entries)
		}

		dec, err := c.Decode(enc)
		if err != nil {
			t.Fatalf("unexpected Decode error: %v", err)
		}
		if !bytes.Equal(dec, input) {
			t.Errorf("round-trip mismatch")
		}
		if st := c.Stats(); !st.Frozen || st.Resets != 0 {
			t.Errorf("decoder Stats() = %+v, want frozen without resets", st)
		}
		if n := len(c.dec.tbl.prefix); n != entries {
			t.Errorf("decoder holds %d entries, want %d", n, entries)
		}
	})
}

func TestSafeMode(t *testing.T) {
	var vectors = []struct {
		opts  []Option
		input []byte
		err   string
	}{{
		opts:  []Option{WithAlphabet(Dec), WithSafe(true)},
		input: []byte("0123456789"),
	}, {
		opts:  []Option{WithAlphabet(Dec), WithSafe(true)},
		input: []byte("12a"),
		err:   "lzw: data contains symbols not present in the alphabet: 'a'",
	}, {
		opts:  []Option{WithAlphabet(Dec), WithSafe(true)},
		input: []byte("12a4b5cdeaa"),
		err:   "lzw: data contains symbols not present in the alphabet: 'a', 'b', 'c', ...",
	}, {
		opts:  []Option{WithAlphabet(Dec), WithSafe(true)},
		input: []byte("1λ2λ"),
		err:   "lzw: data contains symbols not present in the alphabet: 'λ'",
	}, {
		opts:  []Option{WithBits(4), WithSafe(true)},
		input: []byte{1, 2, 0x20, 0xff, 0x20},
		err:   "lzw: data contains symbols not present in the alphabet: 0x20, 0xff",
	}, {
		opts:  []Option{WithAlphabet(Alphabet("ab\uFFFD")), WithMinBits(2), WithSafe(true)},
		input: []byte("a\uFFFDb"),
	}, {
		opts:  []Option{WithAlphabet(Alphabet("ab\uFFFD")), WithMinBits(2), WithSafe(true)},
		input: []byte("a\xffb\xfe\uFFFD"),
		err:   "lzw: data contains symbols not present in the alphabet: 0xff, 0xfe",
	}}

	for i, v := range vectors {
		c := mustNew(t, v.opts...)
		_, err := c.Encode(v.input)
		if v.err == "" {
			if err != nil {
				t.Errorf("test %d, unexpected error: %v", i, err)
			}
			continue
		}
		if !errors.Is(err, ErrSymbol) || err.Error() != v.err {
			t.Errorf("test %d, mismatching error:\ngot  %v\nwant %s", i, err, v.err)
		}
	}

	// Without safe mode, the failure is only found while encoding.
	c := mustNew(t, WithAlphabet(Dec))
	if _, err := c.Encode([]byte("12a")); !errors.Is(err, errAbsentCode) || errors.Is(err, ErrSymbol) {
		t.Errorf("mismatching error: got %v, want %v", err, errAbsentCode)
	}

	// Invalid UTF-8 is never taken for U+FFFD, even when that is a symbol.
	c = mustNew(t, WithAlphabet(Alphabet("ab\uFFFD")), WithMinBits(2))
	if _, err := c.Encode([]byte("ab\xff")); !errors.Is(err, errAbsentCode) {
		t.Errorf("mismatching error: got %v, want %v", err, errAbsentCode)
	}
}

func TestStats(t *testing.T) {
	c := mustNew(t, WithPreset(PresetGIF))
	input := []byte("TOBEORNOTTOBEORTOBEORNOT")
	enc, err := c.Encode(input)
	if err != nil {
		t.Fatalf("unexpected Encode error: %v", err)
	}
	ignore := cmpopts.IgnoreFields(Stats{}, "Elapsed")
	want := Stats{Input: 24, Output: 21, Codes: 18}
	if diff := cmp.Diff(want, c.Stats(), ignore); diff != "" {
		t.Errorf("mismatching encode stats (-want +got):\n%s", diff)
	}
	if got := c.Stats().Ratio(); got != 21.0/24.0 {
		t.Errorf("Ratio() = %v, want %v", got, 21.0/24.0)
	}

	if _, err := c.Decode(enc); err != nil {
		t.Fatalf("unexpected Decode error: %v", err)
	}
	want = Stats{Input: 21, Output: 24, Codes: 18, Decoded: true}
	if diff := cmp.Diff(want, c.Stats(), ignore); diff != "" {
		t.Errorf("mismatching decode stats (-want +got):\n%s", diff)
	}
	if got := c.Stats().Ratio(); got != 21.0/24.0 {
		t.Errorf("Ratio() after decode = %v, want %v", got, 21.0/24.0)
	}

	// Random data expands, so the ratio exceeds 1 both ways.
	c = mustNew(t, WithPreset(PresetFast))
	input = testutil.NewRand(0).Bytes(1000)
	if enc, err = c.Encode(input); err != nil {
		t.Fatalf("unexpected Encode error: %v", err)
	}
	if len(enc) <= len(input) {
		t.Fatalf("encoded size %d, want more than %d", len(enc), len(input))
	}
	wantRatio := float64(len(enc)) / float64(len(input))
	if got := c.Stats().Ratio(); got != wantRatio {
		t.Errorf("Ratio() of expanding encode = %v, want %v", got, wantRatio)
	}
	if _, err := c.Decode(enc); err != nil {
		t.Fatalf("unexpected Decode error: %v", err)
	}
	if got := c.Stats().Ratio(); got != wantRatio {
		t.Errorf("Ratio() of expanding decode = %v, want %v", got, wantRatio)
	}
	if got := (Stats{}).Ratio(); got != 0 {
		t.Errorf("Ratio() of empty job = %v, want 0", got)
	}
}

// TestStdInterop checks that streams are exchangeable with compress/lzw,
// which implements the GIF and TIFF flavors for 8 bit literals.
func TestStdInterop(t *testing.T) {
	r := testutil.NewRand(2)
	var inputs [][]byte
	for _, n := range []int{0, 1, 2, 100, 5000, 30000} {
		for _, k := range []int{2, 4, 256} {
			b := r.Bytes(n)
			if k < 256 {
				for i := range b {
					b[i] %= byte(k)
				}
			}
			inputs = append(inputs, b)
		}
	}

	for _, order := range []stdlzw.Order{stdlzw.LSB, stdlzw.MSB} {
		c := mustNew(t, WithPreset(PresetGIF), WithLSB(order == stdlzw.LSB))
		for i, input := range inputs {
			var buf bytes.Buffer
			wr := stdlzw.NewWriter(&buf, order, 8)
			if _, err := wr.Write(input); err != nil {
				t.Fatalf("test %d, unexpected Write error: %v", i, err)
			}
			if err := wr.Close(); err != nil {
				t.Fatalf("test %d, unexpected Close error: %v", i, err)
			}
			got, err := c.Decode(buf.Bytes())
			if err != nil || !bytes.Equal(got, input) {
				t.Errorf("test %d (order: %d), decoding compress/lzw output failed: %v", i, order, err)
			}

			enc, err := c.Encode(input)
			if err != nil {
				t.Fatalf("test %d, unexpected Encode error: %v", i, err)
			}
			rd := stdlzw.NewReader(bytes.NewReader(enc), order, 8)
			got, err = io.ReadAll(rd)
			rd.Close()
			if err != nil || !bytes.Equal(got, input) {
				t.Errorf("test %d (order: %d), compress/lzw failed to decode output: %v", i, order, err)
			}
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	input := testutil.ResizeData([]byte("TOBEORNOTTOBEORTOBEORNOT#"), 1<<20)
	c := mustNew(b, WithPreset(PresetGIF))
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Encode(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	input := testutil.ResizeData([]byte("TOBEORNOTTOBEORTOBEORNOT#"), 1<<20)
	c := mustNew(b, WithPreset(PresetGIF))
	enc, err := c.Encode(input)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Decode(enc); err != nil {
			b.Fatal(err)
		}
	}
}
