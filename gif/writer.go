// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package gif

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"math/bits"

	"github.com/lzwrb/lzw"
)

// Encode writes m as a single image GIF89a file, using the palette of m as the
// global color table.
func Encode(w io.Writer, m *image.Paletted, opts ...lzw.Option) error {
	b := m.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || b.Dx() > 0xffff || b.Dy() > 0xffff {
		return fmt.Errorf("%w: image size %v", ErrFormat, b.Size())
	}
	if len(m.Palette) == 0 || len(m.Palette) > 256 {
		return fmt.Errorf("%w: palette of %d colors", ErrFormat, len(m.Palette))
	}

	// The color table holds a power of two entries, at least 2.
	depth := bits.Len(uint(len(m.Palette) - 1))
	if depth < 1 {
		depth = 1
	}
	litWidth := depth
	if litWidth < 2 {
		litWidth = 2
	}

	pixels := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		pixels = append(pixels, m.Pix[i:i+b.Dx()]...)
	}
	for _, p := range pixels {
		if int(p) >= len(m.Palette) {
			return fmt.Errorf("%w: color index %d out of palette", ErrFormat, p)
		}
	}
	imgData, err := Compress(pixels, litWidth, opts...)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	var hdr [13]byte
	copy(hdr[:], "GIF89a")
	binary.LittleEndian.PutUint16(hdr[6:], uint16(b.Dx()))
	binary.LittleEndian.PutUint16(hdr[8:], uint16(b.Dy()))
	hdr[10] = flagColorTable | byte(depth-1)<<4 | byte(depth-1)
	bw.Write(hdr[:])

	for i := 0; i < 1<<uint(depth); i++ {
		var rgb [3]byte
		if i < len(m.Palette) {
			cr, cg, cb, _ := m.Palette[i].RGBA()
			rgb = [3]byte{byte(cr >> 8), byte(cg >> 8), byte(cb >> 8)}
		}
		bw.Write(rgb[:])
	}

	// Graphic control extension with no delay and no transparency.
	bw.Write([]byte{sepExtension, 0xf9, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00})

	var desc [10]byte
	desc[0] = sepImage
	binary.LittleEndian.PutUint16(desc[5:], uint16(b.Dx()))
	binary.LittleEndian.PutUint16(desc[7:], uint16(b.Dy()))
	bw.Write(desc[:])
	bw.Write(imgData)
	bw.WriteByte(sepTrailer)
	return bw.Flush()
}
