// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "unicode/utf8"

type decoder struct {
	cfg *Config
	lg  logger
	tbl decTable
	br  bitReader

	numCodes  int64
	numResets int
}

func (d *decoder) Init(cfg *Config, lg logger) {
	*d = decoder{cfg: cfg, lg: lg, tbl: d.tbl}
}

// Decode decompresses data into a newly allocated buffer.
// Decoding ends at a STOP code or when the remaining bits cannot hold another
// code, whichever comes first.
func (d *decoder) Decode(data []byte) (out []byte, err error) {
	defer errRecover(&err)

	cfg := d.cfg
	numSyms := uint32(cfg.syms.Len())
	d.tbl.Init(cfg)
	d.br.Init(data, cfg.LSB)
	d.numCodes, d.numResets = 0, 0
	out = make([]byte, 0, 2*len(data))

	var prev, prevFirst uint32
	var hasPrev bool
	width := d.tbl.width
	for {
		code, ok := d.br.TryReadBits(width)
		if !ok {
			break
		}
		d.numCodes++

		if cfg.Clear && code == cfg.clearCode {
			d.reset()
			hasPrev = false
			width = d.tbl.width
			continue
		}
		if cfg.Stop && code == cfg.stopCode {
			break
		}

		var seq []uint32
		switch {
		case !hasPrev:
			if !d.tbl.Known(code, numSyms) {
				panic(ErrCorrupt)
			}
			seq = d.tbl.Expand(code)
		case d.tbl.Known(code, numSyms):
			seq = d.tbl.Expand(code)
			d.tbl.Add(prev, seq[0])
		case uint64(code) == d.tbl.cnt && !d.tbl.frozen:
			// The code is the one being defined by this step.
			d.tbl.Add(prev, prevFirst)
			seq = d.tbl.Expand(code)
		default:
			panic(ErrCorrupt)
		}
		out = d.appendSymbols(out, seq)
		prevFirst = seq[0]

		if d.tbl.Check() == checkFull {
			if cfg.Clear && !cfg.Deferred {
				// The encoder follows up with a CLEAR at the full width.
				hold := d.tbl.width
				d.reset()
				hasPrev = false
				width = hold
				continue
			}
			if !d.tbl.frozen {
				d.lg.Debugf("Table full at %d bits: no more entries will be added.", d.tbl.maxBits)
			}
			d.tbl.Freeze()
		}
		prev, hasPrev = code, true
		width = d.tbl.width
	}
	return out, nil
}

func (d *decoder) reset() {
	if d.tbl.state != stateSeeded {
		d.numResets++
		d.lg.Debugf("Table reset at %d bits after %d codes.", d.tbl.width, d.numCodes)
	}
	d.tbl.Reset()
}

func (d *decoder) appendSymbols(out []byte, seq []uint32) []byte {
	syms := d.cfg.syms.syms
	if d.cfg.Binary {
		for _, i := range seq {
			out = append(out, byte(syms[i]))
		}
		return out
	}
	for _, i := range seq {
		out = utf8.AppendRune(out, syms[i])
	}
	return out
}
