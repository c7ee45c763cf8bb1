// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"time"

	"github.com/dsnet/golib/unitconv"
)

// Stats describes the last job run by a Codec.
type Stats struct {
	Input   int64 // Size of the input in bytes
	Output  int64 // Size of the output in bytes
	Codes   int64 // Number of codes emitted or consumed
	Resets  int   // Number of table resets after the start of the job
	Frozen  bool  // Whether the table ended full without being reset
	Decoded bool  // Whether the job was a decode, so Input is the packed side
	Elapsed time.Duration
}

// Ratio reports the size of the compressed side relative to the
// uncompressed side. It exceeds 1 when coding expanded the data.
func (s Stats) Ratio() float64 {
	raw, packed := s.Input, s.Output
	if s.Decoded {
		raw, packed = packed, raw
	}
	if raw == 0 {
		return 0
	}
	return float64(packed) / float64(raw)
}

// Rate reports the input processed per second.
func (s Stats) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Input) / s.Elapsed.Seconds()
}

// Codec encodes and decodes LZW streams of a single configuration.
// It is not safe for concurrent use.
type Codec struct {
	cfg   *Config
	lg    logger
	enc   encoder
	dec   decoder
	stats Stats
}

// New creates a Codec from the given options.
func New(opts ...Option) (*Codec, error) {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	cfg, lg, err := resolve(&s)
	if err != nil {
		return nil, err
	}
	c := &Codec{cfg: cfg, lg: lg}
	c.enc.Init(cfg, lg)
	c.dec.Init(cfg, lg)
	lg.Debugf("Codec ready: %v.", cfg)
	return c, nil
}

// Config returns the resolved configuration. It must not be modified.
func (c *Codec) Config() *Config { return c.cfg }

// Stats returns the statistics of the last successful job.
func (c *Codec) Stats() Stats { return c.stats }

// Encode compresses data.
//
// In binary mode, every byte is a symbol. Otherwise data is UTF-8 text and
// every rune is a symbol.
func (c *Codec) Encode(data []byte) ([]byte, error) {
	c.lg.Infof("Encoding %s (%v).", sizeString(int64(len(data))), c.cfg)
	start := time.Now()
	out, err := c.enc.Encode(data)
	if err != nil {
		c.lg.Errorf("%v", err)
		return nil, err
	}
	c.stats = Stats{
		Input:   int64(len(data)),
		Output:  int64(len(out)),
		Codes:   c.enc.numCodes,
		Resets:  c.enc.numResets,
		Frozen:  c.enc.tbl.frozen,
		Elapsed: time.Since(start),
	}
	c.logStats("Encoded")
	return out, nil
}

// Decode decompresses data produced by a Codec with the same configuration.
func (c *Codec) Decode(data []byte) ([]byte, error) {
	c.lg.Infof("Decoding %s (%v).", sizeString(int64(len(data))), c.cfg)
	start := time.Now()
	out, err := c.dec.Decode(data)
	if err != nil {
		c.lg.Errorf("%v", err)
		return nil, err
	}
	c.stats = Stats{
		Input:   int64(len(data)),
		Output:  int64(len(out)),
		Codes:   c.dec.numCodes,
		Resets:  c.dec.numResets,
		Frozen:  c.dec.tbl.frozen,
		Decoded: true,
		Elapsed: time.Since(start),
	}
	c.logStats("Decoded")
	return out, nil
}

func (c *Codec) logStats(verb string) {
	if !c.lg.enabled(Normal) {
		return
	}
	s := c.stats
	c.lg.Infof("%s %s into %s in %v (%sB/s, %.2f%%, %d codes, %d resets).",
		verb, sizeString(s.Input), sizeString(s.Output), s.Elapsed,
		unitconv.FormatPrefix(s.Rate(), unitconv.Base1024, 2),
		100*s.Ratio(), s.Codes, s.Resets)
}

func sizeString(n int64) string {
	return unitconv.FormatPrefix(float64(n), unitconv.Base1024, 2) + "B"
}
