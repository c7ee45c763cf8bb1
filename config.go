// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"fmt"
	"log"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// defaults holds the values used for settings that are neither given
// explicitly nor provided by a preset.
var defaults = struct {
	minBits, maxBits           int
	lsb, clear, stop, deferred bool
	verbosity                  Verbosity
}{
	minBits:   8,
	maxBits:   16,
	lsb:       true,
	clear:     false,
	stop:      false,
	deferred:  false,
	verbosity: Quiet,
}

// settings records the construction parameters as given by the caller.
// A nil pointer means the parameter was not given.
type settings struct {
	preset *settings

	bits, minBits, maxBits             *int
	binary, lsb, clear, stop, deferred *bool
	safe                               bool
	alphabet                           Alphabet

	verbosity *Verbosity
	logger    *log.Logger
	hasLogger bool
}

// An Option sets a construction parameter of a Codec.
//
// Every parameter that is not set explicitly is taken from the preset (if
// any), and otherwise from the library defaults.
type Option func(*settings)

// WithPreset uses p as the fallback for parameters not set explicitly.
func WithPreset(p Preset) Option {
	return func(s *settings) {
		ps := p.s
		s.preset = &ps
	}
}

// WithBits uses constant length codes of n bits.
// It supersedes WithMinBits and WithMaxBits.
func WithBits(n int) Option { return func(s *settings) { s.bits = &n } }

// WithMinBits sets the minimum code width for variable length codes.
// If it is not set, the minimum is derived from the alphabet size.
func WithMinBits(n int) Option { return func(s *settings) { s.minBits = &n } }

// WithMaxBits sets the maximum code width for variable length codes.
func WithMaxBits(n int) Option { return func(s *settings) { s.maxBits = &n } }

// WithBinary selects binary mode, where each input byte is a symbol.
// Otherwise the input is treated as UTF-8 text where each rune is a symbol.
// By default, binary mode is used if the alphabet is Binary.
func WithBinary(on bool) Option { return func(s *settings) { s.binary = &on } }

// WithAlphabet sets the symbols that compose the messages to encode.
// Duplicate symbols are removed. The default is Binary.
func WithAlphabet(a Alphabet) Option {
	return func(s *settings) { s.alphabet = slices.Clone(a) }
}

// WithSafe verifies before encoding that every input symbol is part of the
// alphabet.
func WithSafe(on bool) Option { return func(s *settings) { s.safe = on } }

// WithLSB selects least significant bit first packing.
// Otherwise codes are packed most significant bit first.
func WithLSB(on bool) Option { return func(s *settings) { s.lsb = &on } }

// WithClear enables CLEAR codes, emitted at the start of the stream and every
// time the table is full and gets reinitialized.
func WithClear(on bool) Option { return func(s *settings) { s.clear = &on } }

// WithStop enables a STOP code marking the end of the data.
func WithStop(on bool) Option { return func(s *settings) { s.stop = &on } }

// WithDeferred makes the decoder keep a full table until an explicit CLEAR
// code is received, instead of reinitializing it right away.
func WithDeferred(on bool) Option { return func(s *settings) { s.deferred = &on } }

// WithVerbosity sets the level of diagnostic output.
func WithVerbosity(v Verbosity) Option { return func(s *settings) { s.verbosity = &v } }

// WithLogger sets the destination of diagnostic output.
// A nil logger discards all output.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) { s.logger, s.hasLogger = l, true }
}

// Config is a resolved, internally consistent set of parameters.
// It must be treated as read-only.
type Config struct {
	MinBits  int // Initial code width
	MaxBits  int // Final code width
	Clear    bool
	Stop     bool
	Deferred bool
	LSB      bool
	Binary   bool
	Safe     bool
	Alphabet Alphabet

	syms      *symbolTable
	clearCode uint32
	stopCode  uint32
}

// ClearCode reports the code assigned to CLEAR, if it is used.
func (c *Config) ClearCode() (uint32, bool) { return c.clearCode, c.Clear }

// StopCode reports the code assigned to STOP, if it is used.
func (c *Config) StopCode() (uint32, bool) { return c.stopCode, c.Stop }

// numSeeds is the number of codes assigned when the table is initialized.
func (c *Config) numSeeds() uint32 {
	n := uint32(c.syms.Len())
	if c.Clear {
		n++
	}
	if c.Stop {
		n++
	}
	return n
}

func (c *Config) String() string {
	bits := fmt.Sprintf("%d-%d", c.MinBits, c.MaxBits)
	if c.MinBits == c.MaxBits {
		bits = fmt.Sprint(c.MinBits)
	}
	codes := "no special codes"
	switch {
	case c.Clear && c.Stop:
		codes = "CLEAR & STOP codes"
	case c.Clear:
		codes = "CLEAR codes"
	case c.Stop:
		codes = "STOP codes"
	}
	order, mode := "MSB", "textual"
	if c.LSB {
		order = "LSB"
	}
	if c.Binary {
		mode = "binary"
	}
	return fmt.Sprintf("%s bit codes, %s packing, %s, %s mode", bits, order, codes, mode)
}

// Resolve validates the options and returns the resulting configuration.
// Inconsistent parameters that can be repaired are fixed with a warning.
func Resolve(opts ...Option) (*Config, error) {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	cfg, _, err := resolve(&s)
	return cfg, err
}

func resolve(s *settings) (*Config, logger, error) {
	p := s.preset
	if p == nil {
		p = new(settings)
	}

	lg := logger{lg: defaultLogger, v: defaults.verbosity}
	if v, ok := first(s.verbosity); ok {
		lg.v = v
	}
	if s.hasLogger {
		lg.lg = s.logger
	}
	fail := func(err error) (*Config, logger, error) {
		lg.Errorf("%v", err)
		return nil, lg, err
	}

	// Alphabet.
	alpha := s.alphabet
	if alpha == nil {
		alpha = Binary
	}
	if len(alpha) == 0 {
		return fail(fmt.Errorf("%w: the alphabet must not be empty", ErrAlphabet))
	}
	for _, r := range alpha {
		if !utf8.ValidRune(r) {
			return fail(fmt.Errorf("%w: symbol %U is not a valid character", ErrAlphabet, r))
		}
	}
	syms, dups := newSymbolTable(alpha)
	if dups > 0 {
		lg.Warnf("Removed %d duplicate entries from alphabet.", dups)
	}
	binary, ok := first(s.binary)
	if !ok {
		binary = slices.Equal(alpha, Binary)
	}
	if binary {
		for _, r := range syms.syms {
			if r > 0xff {
				return fail(fmt.Errorf("%w: binary mode requires byte values, found %U", ErrAlphabet, r))
			}
		}
	}

	// Code sizes.
	var minBits, maxBits int
	var pinned bool
	if n, ok := first(s.bits); ok {
		if n < 1 {
			return fail(fmt.Errorf("%w: code size should be a positive integer", ErrBits))
		}
		minBits, maxBits, pinned = n, n, true
	} else {
		if minBits, pinned = first(s.minBits, p.minBits); !pinned {
			minBits = defaults.minBits
		}
		if maxBits, ok = first(s.maxBits, p.maxBits); !ok {
			maxBits = defaults.maxBits
		}
		if minBits < 1 || maxBits < 1 {
			return fail(fmt.Errorf("%w: code sizes should be positive integers", ErrBits))
		}
		if maxBits < minBits {
			lg.Warnf("Max code size (%d) should be higher than min code size (%d): changed max code size to %d.", maxBits, minBits, minBits)
			maxBits = minBits
		}
	}
	if !pinned {
		minBits = int(bitLen(syms.Len() - 1))
		if maxBits < minBits {
			maxBits = minBits
		}
	}
	if maxBits > MaxBits {
		return fail(fmt.Errorf("%w: code size cannot exceed %d bits", ErrBits, MaxBits))
	}

	// Control codes.
	useClear, ok := first(s.clear, p.clear)
	if !ok {
		useClear = defaults.clear
	}
	useStop, stopSet := first(s.stop, p.stop)
	if !stopSet {
		useStop = defaults.stop
	}
	if !useStop && minBits < 8 {
		useStop = true
		if stopSet {
			lg.Warnf("Stop codes are necessary for code sizes below 8 bits to prevent ambiguity: enabled stop codes.")
		}
	}

	// Fit the alphabet and control codes within the code sizes.
	var extra int
	if useClear {
		extra++
	}
	if useStop {
		extra++
	}
	if uint64(syms.Len()+extra) > uint64(1)<<uint(maxBits) {
		if binary {
			n := 1<<uint(maxBits) - extra
			if n < 1 {
				return fail(fmt.Errorf("%w: no room for symbols in %d bit codes", ErrAlphabet, maxBits))
			}
			syms.truncate(n)
			lg.Warnf("Using %d bit binary alphabet (%d entries).", bitLen(n-1), n)
		} else {
			maxBits = int(bitLen(syms.Len() + extra - 1))
			lg.Warnf("Max code size needs to fit the alphabet (and clear & stop codes, if used): increased to %d bits.", maxBits)
		}
	}
	if uint64(syms.Len()+extra) > uint64(1)<<uint(minBits) {
		minBits = int(bitLen(syms.Len() + extra - 1))
	}

	cfg := &Config{
		MinBits:  minBits,
		MaxBits:  maxBits,
		Clear:    useClear,
		Stop:     useStop,
		Binary:   binary,
		Safe:     s.safe,
		Alphabet: slices.Clone(Alphabet(syms.syms)),
		syms:     syms,
	}
	next := uint32(syms.Len())
	if useClear {
		cfg.clearCode, next = next, next+1
	}
	if useStop {
		cfg.stopCode = next
	}
	if cfg.Deferred, ok = first(s.deferred, p.deferred); !ok {
		cfg.Deferred = defaults.deferred
	}
	if cfg.LSB, ok = first(s.lsb, p.lsb); !ok {
		cfg.LSB = defaults.lsb
	}
	return cfg, lg, nil
}
