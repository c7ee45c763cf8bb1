// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Verbosity gates the diagnostic output of a Codec.
// Each level includes everything printed by the levels below it.
type Verbosity int

const (
	Silent  Verbosity = iota // Print nothing
	Minimal                  // Print only errors
	Quiet                    // Print errors and warnings
	Normal                   // Print errors, warnings, and job information
	Debug                    // Print everything, including table resets
)

var verbosityNames = []string{"silent", "minimal", "quiet", "normal", "debug"}

func (v Verbosity) String() string {
	if v < Silent || v > Debug {
		return fmt.Sprintf("Verbosity(%d)", int(v))
	}
	return verbosityNames[v]
}

// ParseVerbosity parses a verbosity name. Besides the level names, it accepts
// "errors", "warnings", and "info" as aliases for Minimal, Quiet, and Normal.
func ParseVerbosity(s string) (Verbosity, error) {
	switch s = strings.ToLower(s); s {
	case "errors":
		return Minimal, nil
	case "warnings":
		return Quiet, nil
	case "info":
		return Normal, nil
	}
	for i, name := range verbosityNames {
		if s == name {
			return Verbosity(i), nil
		}
	}
	return Normal, fmt.Errorf("lzw: unknown verbosity level %q", s)
}

var defaultLogger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)

// logger writes leveled diagnostics. A nil *log.Logger discards everything.
type logger struct {
	lg *log.Logger
	v  Verbosity
}

func (l logger) enabled(v Verbosity) bool { return l.lg != nil && v <= l.v }

func (l logger) printf(v Verbosity, mark, format string, args ...interface{}) {
	if !l.enabled(v) {
		return
	}
	l.lg.Printf("LZW "+mark+format, args...)
}

func (l logger) Errorf(format string, args ...interface{}) {
	l.printf(Minimal, "✗ ", format, args...)
}

func (l logger) Warnf(format string, args ...interface{}) {
	l.printf(Quiet, "! ", format, args...)
}

func (l logger) Infof(format string, args ...interface{}) {
	l.printf(Normal, "", format, args...)
}

func (l logger) Debugf(format string, args ...interface{}) {
	l.printf(Debug, "D ", format, args...)
}
