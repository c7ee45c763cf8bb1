// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_native_lib
// +build !no_native_lib

package bench

import (
	"bytes"
	"io"

	"github.com/lzwrb/lzw"
)

// The native codec uses the GIF preset so that its streams are exchangeable
// with the other LZW codecs. The compression level is ignored.
func newNativeCodec() *lzw.Codec {
	c, err := lzw.New(lzw.WithPreset(lzw.PresetGIF), lzw.WithVerbosity(lzw.Silent))
	if err != nil {
		panic(err)
	}
	return c
}

func init() {
	RegisterEncoder(FormatLZW, "native",
		func(w io.Writer, lvl int) io.WriteCloser {
			return &lzwWriter{w: w, c: newNativeCodec()}
		})
	RegisterDecoder(FormatLZW, "native",
		func(r io.Reader) io.ReadCloser {
			return &lzwReader{r: r, c: newNativeCodec()}
		})
}

// lzwWriter buffers all input and compresses it on Close.
type lzwWriter struct {
	w   io.Writer
	c   *lzw.Codec
	buf bytes.Buffer
}

func (zw *lzwWriter) Write(b []byte) (int, error) { return zw.buf.Write(b) }

func (zw *lzwWriter) Close() error {
	out, err := zw.c.Encode(zw.buf.Bytes())
	if err != nil {
		return err
	}
	_, err = zw.w.Write(out)
	return err
}

// lzwReader reads all input and decompresses it on the first Read.
type lzwReader struct {
	r   io.Reader
	c   *lzw.Codec
	out *bytes.Reader
	err error
}

func (zr *lzwReader) Read(b []byte) (int, error) {
	if zr.out == nil && zr.err == nil {
		var in, out []byte
		if in, zr.err = io.ReadAll(zr.r); zr.err == nil {
			out, zr.err = zr.c.Decode(in)
		}
		zr.out = bytes.NewReader(out)
	}
	if zr.err != nil {
		return 0, zr.err
	}
	return zr.out.Read(b)
}

func (zr *lzwReader) Close() error { return nil }
