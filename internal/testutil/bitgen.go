// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"github.com/lzwrb/lzw/internal"
)

// DecodeBitGen decodes a BitGen formatted string into a bit-stream.
//
// BitGen scripts a code stream as a list of whitespace separated tokens.
// Anything following a '#' on a line is a comment.
//
// The first token selects how bits fill each byte: "<<<" fills bytes starting
// at the least-significant bit (as in GIF), while ">>>" fills them starting
// at the most-significant bit (as in TIFF).
//
// The standalone tokens "<" and ">" select the order in which the bits of
// each following value are written: "<" writes the least-significant bit
// first, ">" the most-significant bit first. The default is "<". A value token
// prefixed with "<" or ">" uses that order for itself only. Scripting codes
// of an LSB packed stream thus uses "<<< <", and an MSB packed one ">>> >".
//
// Value tokens are:
//
//	0110          a bit-string of up to 64 bits, written as a number
//	D9:256        a 9 bit value in decimal
//	H12:fff       a 12 bit value in hexadecimal
//	X:deadbeef    literal bytes, only allowed on a byte boundary
//
// Any value token may be followed by "*n" to repeat it n times.
// The final partial byte is padded with zero bits.
func DecodeBitGen(str string) ([]byte, error) {
	var toks []string
	for _, line := range strings.Split(str, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		toks = append(toks, strings.Fields(line)...)
	}
	if len(toks) == 0 || (toks[0] != "<<<" && toks[0] != ">>>") {
		return nil, errors.New("testutil: missing bit-packing mode")
	}
	msbPacking := toks[0] == ">>>"

	var bb bitBuffer
	var msbValues bool
	for _, t := range toks[1:] {
		msb := msbValues
		if t[0] == '<' || t[0] == '>' {
			msb = t[0] == '>'
			if t = t[1:]; t == "" {
				msbValues = msb
				continue
			}
		}

		rep := 1
		if i := strings.LastIndexByte(t, '*'); i >= 0 {
			n, err := strconv.Atoi(t[i+1:])
			if err != nil || n < 0 {
				return nil, errors.New("testutil: invalid repeat count: " + t)
			}
			t, rep = t[:i], n
		}

		if strings.HasPrefix(t, "X:") {
			b, err := hex.DecodeString(t[2:])
			if err != nil {
				return nil, errors.New("testutil: invalid literal bytes: " + t)
			}
			for ; rep > 0; rep-- {
				if err := bb.WriteBytes(b); err != nil {
					return nil, err
				}
			}
			continue
		}

		v, n, err := parseValue(t)
		if err != nil {
			return nil, err
		}
		if msb {
			v = internal.ReverseUint64N(v, n)
		}
		for ; rep > 0; rep-- {
			bb.WriteBits64(v, n)
		}
	}

	out := bb.b
	if msbPacking {
		for i, b := range out {
			out[i] = internal.ReverseLUT[b]
		}
	}
	return out, nil
}

// parseValue parses a bit-string, decimal, or hexadecimal token into its value
// and bit length.
func parseValue(t string) (uint64, uint, error) {
	if t == "" {
		return 0, 0, errors.New("testutil: empty token")
	}
	if t[0] == '0' || t[0] == '1' {
		if len(t) > 64 || strings.Trim(t, "01") != "" {
			return 0, 0, errors.New("testutil: invalid bit-string: " + t)
		}
		v, _ := strconv.ParseUint(t, 2, 64)
		return v, uint(len(t)), nil
	}

	base := 0
	switch t[0] {
	case 'D':
		base = 10
	case 'H':
		base = 16
	}
	i := strings.IndexByte(t, ':')
	if base == 0 || i < 0 {
		return 0, 0, errors.New("testutil: invalid token: " + t)
	}
	n, err1 := strconv.ParseUint(t[1:i], 10, 8)
	v, err2 := strconv.ParseUint(t[i+1:], base, 64)
	if err1 != nil || err2 != nil || n > 64 {
		return 0, 0, errors.New("testutil: invalid numeric token: " + t)
	}
	if n < 64 && v>>n != 0 {
		return 0, 0, errors.New("testutil: value does not fit in token width: " + t)
	}
	return v, uint(n), nil
}

// bitBuffer appends bits starting at the least-significant bit of each byte.
type bitBuffer struct {
	b    []byte
	nbit uint // Number of bits used in the last byte, 0 if none
}

func (bb *bitBuffer) WriteBytes(b []byte) error {
	if bb.nbit != 0 {
		return errors.New("testutil: literal bytes not on a byte boundary")
	}
	bb.b = append(bb.b, b...)
	return nil
}

func (bb *bitBuffer) WriteBits64(v uint64, n uint) {
	for ; n > 0; n-- {
		if bb.nbit == 0 {
			bb.b = append(bb.b, 0)
		}
		bb.b[len(bb.b)-1] |= byte(v&1) << bb.nbit
		bb.nbit = (bb.nbit + 1) % 8
		v >>= 1
	}
}
