// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

type tableState int

const (
	stateSeeded  tableState = iota // Only the seed codes are assigned
	stateGrowing                   // Accepting new entries
	stateFull                      // Full at the maximum width
)

func (s tableState) String() string {
	switch s {
	case stateSeeded:
		return "seeded"
	case stateGrowing:
		return "growing"
	case stateFull:
		return "full"
	}
	return "invalid"
}

// Events reported by dict.Check.
const (
	checkNone = iota
	checkGrew
	checkFull
)

// dict tracks code assignment and the code width of one side of a job.
//
// The decoder learns every entry one code later than the encoder assigns it,
// so both sides count codes with a lag of one between them. For the encoder,
// cnt is the last code assigned; for the decoder, it is the next code to be
// assigned. With this, both sides grow their width at the same position in
// the code stream.
type dict struct {
	seeds   uint32 // Number of seeded codes
	minBits uint
	maxBits uint
	lag     uint64

	cnt    uint64
	width  uint
	frozen bool
	state  tableState
}

func (d *dict) Init(cfg *Config, decoding bool) {
	*d = dict{
		seeds:   cfg.numSeeds(),
		minBits: uint(cfg.MinBits),
		maxBits: uint(cfg.MaxBits),
	}
	if decoding {
		d.lag = 1
	}
	d.Reset()
}

// Reset reseeds the table, starting a new epoch.
func (d *dict) Reset() {
	d.cnt = uint64(d.seeds) - 1 + d.lag
	d.width = d.minBits
	if n := bitLen(d.seeds - 1); n > d.width {
		d.width = n
	}
	d.frozen = false
	d.state = stateSeeded
}

// Inc assigns the next code. It reports false if the table is frozen.
func (d *dict) Inc() bool {
	if d.frozen {
		return false
	}
	d.cnt++
	d.state = stateGrowing
	return true
}

// Freeze stops all growth until the next Reset.
func (d *dict) Freeze() { d.frozen = true }

// Check grows the width when the current one is exhausted.
// It reports checkFull when this is no longer possible.
func (d *dict) Check() int {
	if d.cnt != uint64(1)<<d.width {
		return checkNone
	}
	if d.width < d.maxBits {
		d.width++
		return checkGrew
	}
	d.state = stateFull
	return checkFull
}

// encTable maps (prefix code, symbol) pairs to codes.
type encTable struct {
	dict
	codes map[uint64]uint32
	limit uint64 // Codes at or above limit cannot be stored
}

func (t *encTable) Init(cfg *Config) {
	t.dict.Init(cfg, false)
	t.codes = make(map[uint64]uint32)
	t.limit = uint64(1) << uint(cfg.MaxBits)
}

func (t *encTable) Reset() {
	t.dict.Reset()
	clear(t.codes)
}

func (t *encTable) Lookup(prefix, sym uint32) (uint32, bool) {
	c, ok := t.codes[uint64(prefix)<<32|uint64(sym)]
	return c, ok
}

// Add assigns the next code to prefix followed by sym.
// It is a no-op if the table is frozen.
func (t *encTable) Add(prefix, sym uint32) bool {
	if !t.Inc() {
		return false
	}
	if t.cnt < t.limit {
		t.codes[uint64(prefix)<<32|uint64(sym)] = uint32(t.cnt)
	}
	return true
}

// decTable maps codes to symbol sequences. Every entry is stored as its
// prefix code and last symbol.
type decTable struct {
	dict
	prefix  []uint32
	suffix  []uint32
	scratch []uint32
}

func (t *decTable) Init(cfg *Config) {
	t.dict.Init(cfg, true)
	t.prefix = t.prefix[:0]
	t.suffix = t.suffix[:0]
}

func (t *decTable) Reset() {
	t.dict.Reset()
	t.prefix = t.prefix[:0]
	t.suffix = t.suffix[:0]
}

// Known reports whether code has been assigned to a sequence.
func (t *decTable) Known(code uint32, numSyms uint32) bool {
	return code < numSyms || (code >= t.seeds && uint64(code) < t.cnt)
}

// Add assigns the next code to prefix followed by sym.
// It is a no-op if the table is frozen.
func (t *decTable) Add(prefix, sym uint32) bool {
	if !t.Inc() {
		return false
	}
	t.prefix = append(t.prefix, prefix)
	t.suffix = append(t.suffix, sym)
	return true
}

// Expand returns the symbols of code, which must be known.
// The result is only valid until the next call.
func (t *decTable) Expand(code uint32) []uint32 {
	buf := t.scratch[:0]
	for code >= t.seeds {
		i := code - t.seeds
		buf = append(buf, t.suffix[i])
		code = t.prefix[i]
	}
	buf = append(buf, code)
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	t.scratch = buf
	return buf
}
