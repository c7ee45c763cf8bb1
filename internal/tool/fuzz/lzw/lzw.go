// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package lzw

import (
	"bytes"
	stdlzw "compress/lzw"
	"io"

	"github.com/lzwrb/lzw"
)

var configs = [][]lzw.Option{
	{lzw.WithPreset(lzw.PresetGIF)},
	{lzw.WithPreset(lzw.PresetGIF), lzw.WithLSB(false)},
	{lzw.WithPreset(lzw.PresetFast)},
	{lzw.WithPreset(lzw.PresetBest), lzw.WithMaxBits(9)},
	{lzw.WithMinBits(2), lzw.WithMaxBits(10), lzw.WithAlphabet(lzw.Binary), lzw.WithStop(false)},
	{lzw.WithBits(12), lzw.WithClear(true), lzw.WithDeferred(true)},
}

func Fuzz(data []byte) int {
	ok := testDecoders(data)
	for _, opts := range configs {
		testRoundTrip(data, opts)
	}
	if ok {
		return 1 // Favor valid inputs
	}
	return 0
}

func newCodec(opts []lzw.Option) *lzw.Codec {
	c, err := lzw.New(append(opts, lzw.WithVerbosity(lzw.Silent))...)
	if err != nil {
		panic(err)
	}
	return c
}

// testDecoders checks that the GIF preset decoder agrees with compress/lzw
// on every stream that both accept. The native decoder is more lenient about
// a missing STOP code, so a failure of only one side is not an error.
func testDecoders(data []byte) bool {
	nb, nerr := newCodec(configs[0]).Decode(data)
	sr := stdlzw.NewReader(bytes.NewReader(data), stdlzw.LSB, 8)
	defer sr.Close()
	sb, serr := io.ReadAll(sr)

	if nerr != nil || serr != nil {
		return false
	}
	if !bytes.Equal(nb, sb) {
		panic("mismatching bytes")
	}
	return true
}

// testRoundTrip encodes the input data and then checks that decoding the
// output gives the input back.
func testRoundTrip(data []byte, opts []lzw.Option) {
	c := newCodec(opts)
	enc, err := c.Encode(data)
	if err != nil {
		panic(err)
	}
	dec, err := c.Decode(enc)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(dec, data) {
		panic("mismatching bytes")
	}
}
