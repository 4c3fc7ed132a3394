// Package bitplane reads and writes densely packed pixel buffers:
// two bits per pixel for the display surface and one bit per pixel
// for masks.
package bitplane

import "fmt"

// Pixel is a palette index in the range 0-3.
type Pixel uint8

const (
	pixelsPerByte2 = 4
	pixelsPerByte1 = 8
)

// Read2bpp returns the pixel at (x, y) of a 2bpp buffer whose rows are
// stride pixels wide. The first pixel of each byte is in its low bits.
func Read2bpp(buf []byte, stride, x, y int) Pixel {
	off := y*stride + x
	shift := (off % pixelsPerByte2) * 2
	return Pixel(buf[off/pixelsPerByte2]>>shift) & 0x3
}

// Write2bpp sets the pixel at (x, y) of a 2bpp buffer.
func Write2bpp(buf []byte, stride, x, y int, p Pixel) {
	off := y*stride + x
	shift := (off % pixelsPerByte2) * 2
	b := &buf[off/pixelsPerByte2]
	*b = *b&^(0x3<<shift) | byte(p&0x3)<<shift
}

// Read1bpp reports whether the bit for (x, y) of a 1bpp buffer is set.
// The first pixel of each byte is its most significant bit.
func Read1bpp(buf []byte, width, x, y int) bool {
	off := y*width + x
	shift := 7 - off%pixelsPerByte1
	return buf[off/pixelsPerByte1]>>shift&1 != 0
}

// Write1bpp clears, then conditionally sets, the bit for (x, y).
// Only the byte holding that bit is touched.
func Write1bpp(buf []byte, width, x, y int, bit bool) {
	off := y*width + x
	shift := 7 - off%pixelsPerByte1
	b := buf[off/pixelsPerByte1] &^ (1 << shift)
	if bit {
		b |= 1 << shift
	}
	buf[off/pixelsPerByte1] = b
}

// Surface is a 2bpp pixel grid that owns its buffer.
// Access outside the grid panics.
type Surface struct {
	buf  []byte
	w, h int
}

// NewSurface returns a zeroed w×h surface.
func NewSurface(w, h int) *Surface {
	if w <= 0 || h <= 0 || w*h%pixelsPerByte2 != 0 {
		panic(fmt.Sprintf("bitplane: bad surface size %dx%d", w, h))
	}
	return &Surface{buf: make([]byte, w*h/pixelsPerByte2), w: w, h: h}
}

func (s *Surface) Width() int  { return s.w }
func (s *Surface) Height() int { return s.h }

// Bytes returns the packed buffer. The caller must not retain it
// across a Clear.
func (s *Surface) Bytes() []byte { return s.buf }

// In reports whether (x, y) lies on the surface.
func (s *Surface) In(x, y int) bool {
	return 0 <= x && x < s.w && 0 <= y && y < s.h
}

func (s *Surface) At(x, y int) Pixel {
	s.check(x, y)
	return Read2bpp(s.buf, s.w, x, y)
}

func (s *Surface) Set(x, y int, p Pixel) {
	s.check(x, y)
	Write2bpp(s.buf, s.w, x, y, p)
}

// Clear sets every pixel to zero.
func (s *Surface) Clear() {
	for i := range s.buf {
		s.buf[i] = 0
	}
}

func (s *Surface) check(x, y int) {
	if !s.In(x, y) {
		panic(fmt.Sprintf("bitplane: (%d, %d) outside %dx%d surface", x, y, s.w, s.h))
	}
}

// MaskSize returns the number of bytes holding a w×h 1bpp mask.
func MaskSize(w, h int) int {
	return (w*h + pixelsPerByte1 - 1) / pixelsPerByte1
}

// Mask is a 1bpp bitmap that owns its buffer.
// Padding bits in the final byte are never read.
type Mask struct {
	buf  []byte
	w, h int
}

// NewMask returns a cleared w×h mask.
func NewMask(w, h int) *Mask {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("bitplane: bad mask size %dx%d", w, h))
	}
	return &Mask{buf: make([]byte, MaskSize(w, h)), w: w, h: h}
}

func (m *Mask) Width() int    { return m.w }
func (m *Mask) Height() int   { return m.h }
func (m *Mask) Bytes() []byte { return m.buf }

// In reports whether (x, y) lies within the mask.
func (m *Mask) In(x, y int) bool {
	return 0 <= x && x < m.w && 0 <= y && y < m.h
}

func (m *Mask) At(x, y int) bool {
	m.check(x, y)
	return Read1bpp(m.buf, m.w, x, y)
}

func (m *Mask) Set(x, y int, bit bool) {
	m.check(x, y)
	Write1bpp(m.buf, m.w, x, y, bit)
}

// Count returns the number of set pixels.
func (m *Mask) Count() (n int) {
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if Read1bpp(m.buf, m.w, x, y) {
				n++
			}
		}
	}
	return n
}

func (m *Mask) check(x, y int) {
	if !m.In(x, y) {
		panic(fmt.Sprintf("bitplane: (%d, %d) outside %dx%d mask", x, y, m.w, m.h))
	}
}
