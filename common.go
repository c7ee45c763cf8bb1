// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lzw implements a configurable Lempel-Ziv-Welch compressor.
//
// The codec supports variable-length codes between a minimum and maximum bit
// width, optional CLEAR and STOP control codes, deferred CLEAR handling on the
// decoder side, and arbitrary symbol alphabets. With PresetGIF, the output is
// byte-for-byte the LZW payload stored in the image-data blocks of a GIF file
// (see the gif sub-package for the block framing).
//
// A Codec holds all state for a single job and is not safe for concurrent
// use; concurrent jobs must use independent codecs.
package lzw

import (
	"math/bits"
	"runtime"

	"golang.org/x/exp/constraints"
)

// MaxBits is the largest code width that can be configured.
const MaxBits = 32

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "lzw: " + string(e) }

var (
	// ErrCorrupt is returned by Decode when the input holds a code that
	// cannot have been produced by an encoder with the same configuration.
	ErrCorrupt error = Error("stream is corrupted")

	// ErrAlphabet is returned when the alphabet is empty or contains symbols
	// that cannot be used in the selected mode.
	ErrAlphabet error = Error("invalid alphabet")

	// ErrBits is returned for non-positive or oversized code widths.
	ErrBits error = Error("invalid code size")

	// ErrSymbol is returned by Encode in safe mode when the input contains
	// symbols that are not part of the alphabet.
	ErrSymbol error = Error("data contains symbols not present in the alphabet")

	errAbsentCode error = Error("found symbol not in alphabet")
)

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}

// bitLen reports the number of bits needed to represent v.
// The result is 0 for v <= 0.
func bitLen[T constraints.Integer](v T) uint {
	if v <= 0 {
		return 0
	}
	return uint(bits.Len64(uint64(v)))
}

// first returns the first non-nil value.
func first[T any](vals ...*T) (T, bool) {
	for _, v := range vals {
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}
