// Package machine implements a small fantasy console: a 160×160
// four-colour display, a palette, draw colours and a handful of
// drawing primitives, plus frontends that show it.
package machine

import (
	"image"
	"log"

	"github.com/nf/rainbow/bitplane"
)

// ScreenSize is the width and height of the display.
const ScreenSize = 160

// DefaultPalette is loaded into the palette on Reset.
var DefaultPalette = [4]uint32{0xe0f8cf, 0x86c06c, 0x306850, 0x071821}

// DefaultDrawColors is loaded into the draw colours on Reset.
const DefaultDrawColors = 0x1203

// BlitFlags select the source format and orientation of a Blit.
type BlitFlags uint32

const (
	Blit1BPP  BlitFlags = 0
	Blit2BPP  BlitFlags = 1 << 0
	BlitFlipX BlitFlags = 1 << 1
	BlitFlipY BlitFlags = 1 << 2
)

func (f BlitFlags) TwoBit() bool { return f&Blit2BPP != 0 }
func (f BlitFlags) FlipX() bool  { return f&BlitFlipX != 0 }
func (f BlitFlags) FlipY() bool  { return f&BlitFlipY != 0 }

// Machine is the console state shared by a cart and the frontends.
type Machine struct {
	fb         *bitplane.Surface
	palette    [4]uint32
	drawColors uint16
	sys        System
}

func New() *Machine {
	m := &Machine{fb: bitplane.NewSurface(ScreenSize, ScreenSize)}
	m.Reset()
	return m
}

// Reset restores the power-on state.
func (m *Machine) Reset() {
	m.fb.Clear()
	m.palette = DefaultPalette
	m.drawColors = DefaultDrawColors
	m.sys = 0
}

// Framebuffer returns the display surface.
func (m *Machine) Framebuffer() *bitplane.Surface { return m.fb }

func (m *Machine) Palette() [4]uint32 { return m.palette }

// SetPalette sets palette slot (0-3) to the 0xRRGGBB colour rgb.
func (m *Machine) SetPalette(slot int, rgb uint32) {
	m.palette[slot] = rgb & 0xffffff
}

func (m *Machine) DrawColors() uint16 { return m.drawColors }

// SetDrawColors sets the draw colours. Nibble n (from the least
// significant) gives the palette slot plus one used for source colour n;
// zero leaves those pixels untouched.
func (m *Machine) SetDrawColors(dc uint16) { m.drawColors = dc }

func (m *Machine) System() System     { return m.sys }
func (m *Machine) SetSystem(s System) { m.sys = s }

// drawColor resolves source colour n through the draw colours.
func (m *Machine) drawColor(n int) (c bitplane.Pixel, ok bool) {
	dc := m.drawColors >> (4 * n) & 0xf
	if dc == 0 {
		return 0, false
	}
	return bitplane.Pixel(dc-1) & 0x3, true
}

func (m *Machine) plot(x, y, n int) {
	if !m.fb.In(x, y) {
		return
	}
	if c, ok := m.drawColor(n); ok {
		m.fb.Set(x, y, c)
	}
}

// HLine draws a horizontal line of length pixels starting at (x, y)
// in draw colour 0.
func (m *Machine) HLine(x, y, length int) {
	c, ok := m.drawColor(0)
	if !ok || y < 0 || y >= m.fb.Height() {
		return
	}
	x0, x1 := x, x+length
	if x0 < 0 {
		x0 = 0
	}
	if w := m.fb.Width(); x1 > w {
		x1 = w
	}
	for ; x0 < x1; x0++ {
		m.fb.Set(x0, y, c)
	}
}

// Blit draws the w×h sprite in data at (x, y). Sprite pixels are packed
// most significant bits first, one or two bits per pixel.
func (m *Machine) Blit(data []byte, x, y, w, h int, flags BlitFlags) {
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			var n int
			if flags.TwoBit() {
				off := sy*w + sx
				n = int(data[off/4] >> (6 - off%4*2) & 0x3)
			} else if bitplane.Read1bpp(data, w, sx, sy) {
				n = 1
			}
			dx, dy := sx, sy
			if flags.FlipX() {
				dx = w - 1 - sx
			}
			if flags.FlipY() {
				dy = h - 1 - sy
			}
			m.plot(x+dx, y+dy, n)
		}
	}
}

// Text draws s with its top-left corner at (x, y). Glyph pixels use
// draw colour 0 and the glyph background draw colour 1.
func (m *Machine) Text(s string, x, y int) {
	cx := x
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' {
			cx = x
			y += 8
			continue
		}
		if c < 0x20 || c > 0x7e {
			c = '?'
		}
		g := &font[c-0x20]
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				n := 1
				if g[row]>>col&1 != 0 {
					n = 0
				}
				m.plot(cx+col, y+row, n)
			}
		}
		cx += 8
	}
}

// Trace writes msg to the log.
func (m *Machine) Trace(msg string) {
	log.Printf("trace: %s", msg)
}

// Render writes the display, through the palette, into dst,
// which must be ScreenSize pixels square.
func (m *Machine) Render(dst *image.RGBA) {
	var theme [4][4]byte
	for i, c := range m.palette {
		theme[i] = [4]byte{byte(c >> 16), byte(c >> 8), byte(c), 0xff}
	}
	w, h := m.fb.Width(), m.fb.Height()
	if dst.Rect.Dx() != w || dst.Rect.Dy() != h {
		panic("machine: render target has wrong size")
	}
	buf := m.fb.Bytes()
	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			copy(row[x*4:x*4+4], theme[bitplane.Read2bpp(buf, w, x, y)][:])
		}
	}
}

// Image returns a new image of the display.
func (m *Machine) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.fb.Width(), m.fb.Height()))
	m.Render(img)
	return img
}
