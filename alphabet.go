// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// An Alphabet is the ordered list of symbols that compose the messages to
// encode. The symbol at position i is assigned code i.
type Alphabet []rune

// Predefined alphabets. These must be treated as read-only.
var (
	Dec        = Alphabet("0123456789")
	HexUpper   = Alphabet("0123456789ABCDEF")
	HexLower   = Alphabet("0123456789abcdef")
	LatinUpper = Alphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	LatinLower = Alphabet("abcdefghijklmnopqrstuvwxyz")
	AlphaUpper = concat(LatinUpper, Dec)
	AlphaLower = concat(LatinLower, Dec)
	Alpha      = concat(LatinUpper, LatinLower, Dec)
	Printable  = runeRange(32, 127)
	ASCII      = runeRange(0, 128)
	Binary     = runeRange(0, 256)
)

var alphabets = map[string]Alphabet{
	"dec":         Dec,
	"hex_upper":   HexUpper,
	"hex_lower":   HexLower,
	"latin_upper": LatinUpper,
	"latin_lower": LatinLower,
	"alpha_upper": AlphaUpper,
	"alpha_lower": AlphaLower,
	"alpha":       Alpha,
	"printable":   Printable,
	"ascii":       ASCII,
	"binary":      Binary,
}

// LookupAlphabet returns the predefined alphabet with the given name.
// Names are case-insensitive and use underscores (e.g., "hex_upper").
func LookupAlphabet(name string) (Alphabet, bool) {
	a, ok := alphabets[strings.ToLower(name)]
	return slices.Clone(a), ok
}

func runeRange(lo, hi rune) Alphabet {
	a := make(Alphabet, 0, hi-lo)
	for r := lo; r < hi; r++ {
		a = append(a, r)
	}
	return a
}

func concat(as ...Alphabet) Alphabet {
	var out Alphabet
	for _, a := range as {
		out = append(out, a...)
	}
	return out
}

// String renders the alphabet as text. Non-printable symbols are escaped.
func (a Alphabet) String() string {
	var sb strings.Builder
	for _, r := range a {
		if r >= 0x20 && r != 0x7f && utf8.ValidRune(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteString(strings.Trim(strconv.QuoteRune(r), "'"))
		}
	}
	return sb.String()
}

// symbolTable is an insertion-ordered, duplicate-free set of symbols with
// constant time lookup in both directions.
type symbolTable struct {
	syms  []rune
	index map[rune]uint32
	lut   [256]int32 // Index of byte-valued symbols, or -1
}

// newSymbolTable builds the set from a, dropping duplicates while keeping
// the first occurrence. It reports how many entries were dropped.
func newSymbolTable(a Alphabet) (st *symbolTable, dups int) {
	st = &symbolTable{index: make(map[rune]uint32, len(a))}
	for i := range st.lut {
		st.lut[i] = -1
	}
	for _, r := range a {
		if _, ok := st.index[r]; ok {
			dups++
			continue
		}
		st.index[r] = uint32(len(st.syms))
		if r >= 0 && r < 256 {
			st.lut[r] = int32(len(st.syms))
		}
		st.syms = append(st.syms, r)
	}
	return st, dups
}

// truncate keeps only the first n symbols.
func (st *symbolTable) truncate(n int) {
	for _, r := range st.syms[n:] {
		delete(st.index, r)
		if r >= 0 && r < 256 {
			st.lut[r] = -1
		}
	}
	st.syms = st.syms[:n:n]
}

func (st *symbolTable) Len() int { return len(st.syms) }

func (st *symbolTable) Lookup(r rune) (uint32, bool) {
	if r >= 0 && r < 256 {
		i := st.lut[r]
		return uint32(i), i >= 0
	}
	i, ok := st.index[r]
	return i, ok
}
