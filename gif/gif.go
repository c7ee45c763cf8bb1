// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package gif implements the GIF packaging of LZW compressed image data.
//
// In a GIF file, the image data is the LZW minimum code size (the literal
// width) followed by the LZW stream split into sub-blocks of at most 255 bytes,
// each prefixed by its length and terminated by an empty sub-block.
package gif

import (
	"fmt"

	"github.com/lzwrb/lzw"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "gif: " + string(e) }

var (
	// ErrFormat is returned for data that does not follow the GIF format.
	ErrFormat error = Error("invalid format")

	// ErrLitWidth is returned for literal widths outside of 2..8.
	ErrLitWidth error = Error("invalid literal width")
)

const maxBlockSize = 255

// Blockify splits data into sub-blocks, including the terminating empty one.
func Blockify(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/maxBlockSize+2)
	for len(data) > 0 {
		n := len(data)
		if n > maxBlockSize {
			n = maxBlockSize
		}
		out = append(out, byte(n))
		out = append(out, data[:n]...)
		data = data[n:]
	}
	return append(out, 0)
}

// Deblockify joins the sub-blocks at the start of data up to the terminating
// empty one. Anything after the terminator is ignored.
func Deblockify(data []byte) ([]byte, error) {
	var out []byte
	for {
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: unterminated data sub-blocks", ErrFormat)
		}
		size := int(data[0])
		if size == 0 {
			return out, nil
		}
		if 1+size > len(data) {
			return nil, fmt.Errorf("%w: truncated data sub-block", ErrFormat)
		}
		out = append(out, data[1:1+size]...)
		data = data[1+size:]
	}
}

// NewCodec returns a codec for GIF image data of the given literal width,
// which is the number of bits per color index. Additional options are applied
// after the GIF parameters.
func NewCodec(litWidth int, opts ...lzw.Option) (*lzw.Codec, error) {
	if litWidth < 2 || litWidth > 8 {
		return nil, ErrLitWidth
	}
	alpha := make(lzw.Alphabet, 1<<uint(litWidth))
	for i := range alpha {
		alpha[i] = rune(i)
	}
	base := []lzw.Option{
		lzw.WithPreset(lzw.PresetGIF),
		lzw.WithMinBits(litWidth),
		lzw.WithAlphabet(alpha),
		lzw.WithBinary(true),
		lzw.WithVerbosity(lzw.Minimal),
	}
	return lzw.New(append(base, opts...)...)
}

// Compress encodes color indexes into the image data of a GIF file.
// Every index must be below 1<<litWidth.
func Compress(pixels []byte, litWidth int, opts ...lzw.Option) ([]byte, error) {
	c, err := NewCodec(litWidth, opts...)
	if err != nil {
		return nil, err
	}
	enc, err := c.Encode(pixels)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(litWidth)}, Blockify(enc)...), nil
}

// Decompress decodes the image data of a GIF file into color indexes.
func Decompress(data []byte, opts ...lzw.Option) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrFormat
	}
	payload, err := Deblockify(data[1:])
	if err != nil {
		return nil, err
	}
	c, err := NewCodec(int(data[0]), opts...)
	if err != nil {
		return nil, err
	}
	return c.Decode(payload)
}
