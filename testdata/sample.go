// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore
// +build ignore

// Generates sample.gif and random.lzw.
//
// sample.gif is the 10x10 four color image commonly used to walk through the
// GIF format, and its LZW payload is what any conforming encoder must produce
// for these pixels.
//
// random.lzw holds the 8 bit GIF stream of 20000 pseudo-random pixels, which
// fills the 12 bit table five times. gifenc produces the same bytes.
package main

import (
	"bytes"
	"image"
	"image/color"
	"os"

	"github.com/lzwrb/lzw/gif"
)

const (
	name       = "sample.gif"
	randomName = "random.lzw"
)

// randomPixels mirrors the generator in gif_test.go.
func randomPixels(n int) []byte {
	b := make([]byte, n)
	x := uint32(1)
	for i := range b {
		x = x*1103515245 + 12345
		b[i] = byte(x >> 16)
	}
	return b
}

var rows = []string{
	"1111122222",
	"1111122222",
	"1111122222",
	"1110000222",
	"1110000222",
	"2220000111",
	"2220000111",
	"2222211111",
	"2222211111",
	"2222211111",
}

func main() {
	palette := color.Palette{
		color.RGBA{0xff, 0xff, 0xff, 0xff},
		color.RGBA{0xff, 0x00, 0x00, 0xff},
		color.RGBA{0x00, 0x00, 0xff, 0xff},
		color.RGBA{0x00, 0x00, 0x00, 0xff},
	}
	m := image.NewPaletted(image.Rect(0, 0, 10, 10), palette)
	for y, row := range rows {
		for x, c := range row {
			m.SetColorIndex(x, y, uint8(c-'0'))
		}
	}

	var buf bytes.Buffer
	if err := gif.Encode(&buf, m); err != nil {
		panic(err)
	}
	if err := os.WriteFile(name, buf.Bytes(), 0664); err != nil {
		panic(err)
	}

	c, err := gif.NewCodec(8)
	if err != nil {
		panic(err)
	}
	data, err := c.Encode(randomPixels(20000))
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(randomName, data, 0664); err != nil {
		panic(err)
	}
}
