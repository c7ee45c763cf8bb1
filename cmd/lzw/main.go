// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command lzw compresses and decompresses files using LZW.
//
// Example usage:
//
//	$ lzw -preset gif -o out.lzw in.bin
//	$ lzw -d -preset gif -o in.bin out.lzw
//	$ lzw -alphabet dec -max 12 -v debug < digits.txt > digits.lzw
//
// Parameters may also be loaded from a YAML profile using -config. Its keys
// mirror the flag names (min_bits and max_bits stand for -min and -max), and
// flags given on the command line take precedence over it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/lzwrb/lzw"
	"github.com/lzwrb/lzw/gif"
	"sigs.k8s.io/yaml"
)

// optBool is a boolean flag that remembers whether it was given.
type optBool struct {
	set bool
	val bool
}

func (b *optBool) String() string {
	if b == nil || !b.set {
		return "unset"
	}
	return strconv.FormatBool(b.val)
}

func (b *optBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.set, b.val = true, v
	return nil
}

func (b *optBool) IsBoolFlag() bool { return true }

// optInt is an integer flag that remembers whether it was given.
type optInt struct {
	set bool
	val int
}

func (n *optInt) String() string {
	if n == nil || !n.set {
		return "unset"
	}
	return strconv.Itoa(n.val)
}

func (n *optInt) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	n.set, n.val = true, v
	return nil
}

// profile holds the parameters loaded from a YAML file.
type profile struct {
	Preset    string `json:"preset,omitempty"`
	Bits      *int   `json:"bits,omitempty"`
	MinBits   *int   `json:"min_bits,omitempty"`
	MaxBits   *int   `json:"max_bits,omitempty"`
	Alphabet  string `json:"alphabet,omitempty"`
	Binary    *bool  `json:"binary,omitempty"`
	Safe      *bool  `json:"safe,omitempty"`
	LSB       *bool  `json:"lsb,omitempty"`
	Clear     *bool  `json:"clear,omitempty"`
	Stop      *bool  `json:"stop,omitempty"`
	Deferred  *bool  `json:"deferred,omitempty"`
	Verbosity string `json:"verbosity,omitempty"`
}

func loadProfile(file string) (*profile, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	p := new(profile)
	if err := yaml.UnmarshalStrict(b, p); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %v", file, err)
	}
	return p, nil
}

// options converts the profile into codec options.
func (p *profile) options() ([]lzw.Option, error) {
	var opts []lzw.Option
	if p.Preset != "" {
		ps, ok := lzw.LookupPreset(p.Preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", p.Preset)
		}
		opts = append(opts, lzw.WithPreset(ps))
	}
	if p.Alphabet != "" {
		opts = append(opts, lzw.WithAlphabet(parseAlphabet(p.Alphabet)))
	}
	if p.Verbosity != "" {
		v, err := lzw.ParseVerbosity(p.Verbosity)
		if err != nil {
			return nil, err
		}
		opts = append(opts, lzw.WithVerbosity(v))
	}
	for _, o := range []struct {
		v  *int
		fn func(int) lzw.Option
	}{{p.Bits, lzw.WithBits}, {p.MinBits, lzw.WithMinBits}, {p.MaxBits, lzw.WithMaxBits}} {
		if o.v != nil {
			opts = append(opts, o.fn(*o.v))
		}
	}
	for _, o := range []struct {
		v  *bool
		fn func(bool) lzw.Option
	}{
		{p.Binary, lzw.WithBinary}, {p.Safe, lzw.WithSafe}, {p.LSB, lzw.WithLSB},
		{p.Clear, lzw.WithClear}, {p.Stop, lzw.WithStop}, {p.Deferred, lzw.WithDeferred},
	} {
		if o.v != nil {
			opts = append(opts, o.fn(*o.v))
		}
	}
	return opts, nil
}

// parseAlphabet resolves a predefined alphabet name, or otherwise uses the
// characters of s as the alphabet.
func parseAlphabet(s string) lzw.Alphabet {
	if a, ok := lzw.LookupAlphabet(s); ok {
		return a
	}
	return lzw.Alphabet(s)
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "lzw: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lzw", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dashd      = fs.Bool("d", false, "decode instead of encode")
		dasho      = fs.String("o", "-", "output file (or - for stdout)")
		dashgif    = fs.Bool("gif", false, "frame the output in GIF sub-blocks (or de-frame the input when decoding)")
		dashconfig = fs.String("config", "", "YAML profile with default parameters")
		dashpreset = fs.String("preset", "", "named parameter bundle (gif, fast, or best)")
		dashalpha  = fs.String("alphabet", "", "predefined alphabet name or literal symbols")
		dashv      = fs.String("v", "", "verbosity (silent, minimal, quiet, normal, or debug)")

		dashbits, dashmin, dashmax                         optInt
		dashbinary, dashsafe, dashlsb, dashclear, dashstop optBool
		dashdeferred                                       optBool
	)
	fs.Var(&dashbits, "bits", "constant code width")
	fs.Var(&dashmin, "min", "minimum code width")
	fs.Var(&dashmax, "max", "maximum code width")
	fs.Var(&dashbinary, "binary", "treat every byte as a symbol instead of UTF-8 text")
	fs.Var(&dashsafe, "safe", "check the input symbols before encoding")
	fs.Var(&dashlsb, "lsb", "pack codes least significant bit first")
	fs.Var(&dashclear, "clear", "use CLEAR codes")
	fs.Var(&dashstop, "stop", "use a STOP code")
	fs.Var(&dashdeferred, "deferred", "defer table resets until a CLEAR code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("too many input files: %v", fs.Args())
	}

	// Parameters from the profile come first so that flags override them.
	opts := []lzw.Option{
		lzw.WithLogger(log.New(stderr, "", log.Ltime|log.Lmicroseconds)),
		lzw.WithVerbosity(lzw.Normal),
	}
	if *dashconfig != "" {
		p, err := loadProfile(*dashconfig)
		if err != nil {
			return err
		}
		popts, err := p.options()
		if err != nil {
			return err
		}
		opts = append(opts, popts...)
	}
	fp := profile{Preset: *dashpreset, Alphabet: *dashalpha, Verbosity: *dashv}
	for _, o := range []struct {
		flag *optInt
		dst  **int
	}{{&dashbits, &fp.Bits}, {&dashmin, &fp.MinBits}, {&dashmax, &fp.MaxBits}} {
		if o.flag.set {
			*o.dst = &o.flag.val
		}
	}
	for _, o := range []struct {
		flag *optBool
		dst  **bool
	}{
		{&dashbinary, &fp.Binary}, {&dashsafe, &fp.Safe}, {&dashlsb, &fp.LSB},
		{&dashclear, &fp.Clear}, {&dashstop, &fp.Stop}, {&dashdeferred, &fp.Deferred},
	} {
		if o.flag.set {
			*o.dst = &o.flag.val
		}
	}
	fopts, err := fp.options()
	if err != nil {
		return err
	}
	opts = append(opts, fopts...)

	c, err := lzw.New(opts...)
	if err != nil {
		return err
	}

	var input []byte
	if name := fs.Arg(0); name == "" || name == "-" {
		input, err = io.ReadAll(stdin)
	} else {
		input, err = os.ReadFile(name)
	}
	if err != nil {
		return err
	}

	var output []byte
	if *dashd {
		if *dashgif {
			if input, err = gif.Deblockify(input); err != nil {
				return err
			}
		}
		output, err = c.Decode(input)
	} else {
		output, err = c.Encode(input)
		if err == nil && *dashgif {
			output = gif.Blockify(output)
		}
	}
	if err != nil {
		return err
	}

	if *dasho == "-" {
		_, err = stdout.Write(output)
		return err
	}
	return os.WriteFile(*dasho, output, 0664)
}
