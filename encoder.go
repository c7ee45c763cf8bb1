// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// maxReported is the number of offending symbols named by a validation error.
const maxReported = 3

type encoder struct {
	cfg *Config
	lg  logger
	tbl encTable
	bw  bitWriter

	acc    uint32 // Code of the longest known sequence read so far
	hasAcc bool

	numCodes  int64
	numResets int

	trace func(code uint32, width uint) // Called for every emitted code
}

func (e *encoder) Init(cfg *Config, lg logger) {
	*e = encoder{cfg: cfg, lg: lg, trace: e.trace, bw: e.bw}
}

// Encode compresses data into a newly allocated buffer.
func (e *encoder) Encode(data []byte) (out []byte, err error) {
	defer errRecover(&err)

	if e.cfg.Safe {
		if err := e.validate(data); err != nil {
			return nil, err
		}
	}

	e.tbl.Init(e.cfg)
	e.bw.Init(e.cfg.LSB, len(data)/2+8)
	e.hasAcc, e.numCodes, e.numResets = false, 0, 0
	if e.cfg.Clear {
		e.emit(e.cfg.clearCode)
	}

	syms := e.cfg.syms
	if e.cfg.Binary {
		for _, c := range data {
			idx, ok := syms.Lookup(rune(c))
			if !ok {
				panic(fmt.Errorf("%w: 0x%02x", errAbsentCode, c))
			}
			e.step(idx)
		}
	} else {
		for len(data) > 0 {
			r, n := utf8.DecodeRune(data)
			if r == utf8.RuneError && n == 1 {
				panic(fmt.Errorf("%w: invalid UTF-8 byte 0x%02x", errAbsentCode, data[0]))
			}
			data = data[n:]
			idx, ok := syms.Lookup(r)
			if !ok {
				panic(fmt.Errorf("%w: %q", errAbsentCode, r))
			}
			e.step(idx)
		}
	}

	if e.hasAcc {
		e.emit(e.acc)

		// The decoder assigns one more code after reading the last one,
		// so STOP is written at the width it will read it with.
		if e.tbl.Inc() {
			e.tbl.Check()
		}
	}
	if e.cfg.Stop {
		e.emit(e.cfg.stopCode)
	}
	out = e.bw.Finish()
	e.bw.out = nil // The caller owns the output
	return out, nil
}

// step feeds the next symbol index into the encoder.
func (e *encoder) step(sym uint32) {
	if !e.hasAcc {
		e.acc, e.hasAcc = sym, true
		return
	}
	if code, ok := e.tbl.Lookup(e.acc, sym); ok {
		e.acc = code
		return
	}

	e.emit(e.acc)
	if e.tbl.Add(e.acc, sym) && e.tbl.Check() == checkFull {
		if e.cfg.Clear {
			e.emit(e.cfg.clearCode)
			e.tbl.Reset()
			e.numResets++
			e.lg.Debugf("Table full at %d bits: reset after %d codes.", e.tbl.maxBits, e.numCodes)
		} else {
			e.tbl.Freeze()
			e.lg.Debugf("Table full at %d bits: no more entries will be added.", e.tbl.maxBits)
		}
	}
	e.acc = sym
}

func (e *encoder) emit(code uint32) {
	e.bw.WriteBits(code, e.tbl.width)
	e.numCodes++
	if e.trace != nil {
		e.trace(code, e.tbl.width)
	}
}

// validate checks that every symbol in data is part of the alphabet.
func (e *encoder) validate(data []byte) error {
	var bad []string
	var more bool
	report := func(s string) {
		switch {
		case slices.Contains(bad, s):
		case len(bad) < maxReported:
			bad = append(bad, s)
		default:
			more = true
		}
	}

	syms := e.cfg.syms
	if e.cfg.Binary {
		for _, c := range data {
			if _, ok := syms.Lookup(rune(c)); !ok {
				report(fmt.Sprintf("0x%02x", c))
			}
		}
	} else {
		for len(data) > 0 {
			r, n := utf8.DecodeRune(data)
			switch _, ok := syms.Lookup(r); {
			case r == utf8.RuneError && n == 1:
				report(fmt.Sprintf("0x%02x", data[0]))
			case !ok:
				report(fmt.Sprintf("%q", r))
			}
			data = data[n:]
		}
	}
	if len(bad) == 0 {
		return nil
	}
	if more {
		bad = append(bad, "...")
	}
	return fmt.Errorf("%w: %s", ErrSymbol, strings.Join(bad, ", "))
}
