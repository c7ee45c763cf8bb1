// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "strings"

// A Preset is a named bundle of parameters used as the fallback for those not
// given explicitly to New.
//
// Only the code sizes, the bit order, and the use of CLEAR, STOP, and deferred
// CLEAR are taken from a preset.
type Preset struct {
	name string
	s    settings
}

// NewPreset creates a preset from a list of options.
func NewPreset(name string, opts ...Option) Preset {
	p := Preset{name: name}
	for _, o := range opts {
		o(&p.s)
	}
	p.s.preset = nil
	return p
}

func (p Preset) Name() string { return p.name }

var (
	// PresetGIF matches the LZW flavor of the GIF format.
	PresetGIF = NewPreset("gif",
		WithMinBits(8), WithMaxBits(12), WithLSB(true),
		WithClear(true), WithStop(true), WithDeferred(true))

	// PresetFast uses constant 16 bit codes, which avoids tracking widths.
	PresetFast = NewPreset("fast",
		WithMinBits(16), WithMaxBits(16), WithLSB(true),
		WithClear(false), WithStop(false))

	// PresetBest grows codes from 8 up to 16 bits for a better ratio.
	PresetBest = NewPreset("best",
		WithMinBits(8), WithMaxBits(16), WithLSB(true),
		WithClear(false), WithStop(false))
)

// LookupPreset returns the predefined preset with the given name.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range []Preset{PresetGIF, PresetFast, PresetBest} {
		if strings.EqualFold(p.name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
