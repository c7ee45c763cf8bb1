// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package gif

import (
	"bufio"
	"fmt"
	"io"
)

// Block introducers of the GIF format.
const (
	sepExtension = 0x21
	sepImage     = 0x2c
	sepTrailer   = 0x3b
)

const (
	flagColorTable = 0x80 // Global or local color table present
	maskTableSize  = 0x07
)

type reader struct {
	rd  *bufio.Reader
	buf [256]byte
}

// ReadImageData reads a GIF file up to its first image and returns the literal
// width and the LZW stream of that image, without the sub-block framing.
func ReadImageData(r io.Reader) (litWidth int, data []byte, err error) {
	gr := reader{rd: bufio.NewReader(r)}
	return gr.readImageData()
}

func (gr *reader) readImageData() (int, []byte, error) {
	// Header and logical screen descriptor.
	hdr, err := gr.readFull(13)
	if err != nil {
		return 0, nil, err
	}
	if sig := string(hdr[:6]); sig != "GIF87a" && sig != "GIF89a" {
		return 0, nil, fmt.Errorf("%w: unknown signature %q", ErrFormat, sig)
	}
	if err := gr.skipColorTable(hdr[10]); err != nil {
		return 0, nil, err
	}

	for {
		c, err := gr.readByte()
		if err != nil {
			return 0, nil, err
		}
		switch c {
		case sepExtension:
			if _, err := gr.readByte(); err != nil { // Label
				return 0, nil, err
			}
			if _, err := gr.readBlocks(); err != nil {
				return 0, nil, err
			}
		case sepImage:
			desc, err := gr.readFull(9)
			if err != nil {
				return 0, nil, err
			}
			if err := gr.skipColorTable(desc[8]); err != nil {
				return 0, nil, err
			}
			lw, err := gr.readByte()
			if err != nil {
				return 0, nil, err
			}
			if lw < 2 || lw > 8 {
				return 0, nil, fmt.Errorf("%w: %d", ErrLitWidth, lw)
			}
			data, err := gr.readBlocks()
			if err != nil {
				return 0, nil, err
			}
			return int(lw), data, nil
		case sepTrailer:
			return 0, nil, fmt.Errorf("%w: no image data", ErrFormat)
		default:
			return 0, nil, fmt.Errorf("%w: unknown block type 0x%02x", ErrFormat, c)
		}
	}
}

func (gr *reader) skipColorTable(flags byte) error {
	if flags&flagColorTable == 0 {
		return nil
	}
	n := 3 << (1 + flags&maskTableSize)
	_, err := gr.rd.Discard(n)
	return noEOF(err)
}

// readBlocks reads data sub-blocks up to and including the terminator.
func (gr *reader) readBlocks() ([]byte, error) {
	var out []byte
	for {
		n, err := gr.readByte()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return out, nil
		}
		b, err := gr.readFull(int(n))
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
}

func (gr *reader) readByte() (byte, error) {
	c, err := gr.rd.ReadByte()
	return c, noEOF(err)
}

// readFull reads n bytes, which are valid until the next call.
func (gr *reader) readFull(n int) ([]byte, error) {
	b := gr.buf[:n]
	_, err := io.ReadFull(gr.rd, b)
	return b, noEOF(err)
}

// noEOF converts io.EOF to io.ErrUnexpectedEOF since every read expects data.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
