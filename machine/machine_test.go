package machine

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/nf/rainbow/bitplane"
)

func row(m *Machine, y, x0, x1 int) []bitplane.Pixel {
	var ps []bitplane.Pixel
	for x := x0; x < x1; x++ {
		ps = append(ps, m.Framebuffer().At(x, y))
	}
	return ps
}

func TestReset(t *testing.T) {
	m := New()
	m.SetPalette(0, 0x123456)
	m.SetDrawColors(0x4321)
	m.Framebuffer().Set(3, 3, 2)
	m.SetSystem(PreserveFramebuffer)
	m.Reset()
	if m.Palette() != DefaultPalette {
		t.Errorf("Palette() == %x, want %x", m.Palette(), DefaultPalette)
	}
	if m.DrawColors() != DefaultDrawColors {
		t.Errorf("DrawColors() == %x, want %x", m.DrawColors(), DefaultDrawColors)
	}
	if m.System() != 0 {
		t.Errorf("System() == %v, want 0", m.System())
	}
	if p := m.Framebuffer().At(3, 3); p != 0 {
		t.Errorf("pixel (3, 3) == %d after Reset", p)
	}
}

func TestSetPaletteMasksAlpha(t *testing.T) {
	m := New()
	m.SetPalette(2, 0xff123456)
	if got := m.Palette()[2]; got != 0x123456 {
		t.Errorf("Palette()[2] == %x, want 123456", got)
	}
}

func TestHLine(t *testing.T) {
	for _, c := range []struct {
		name      string
		dc        uint16
		x, y, n   int
		from, to  int
		want      bitplane.Pixel
		untouched bool
	}{
		{name: "slot 1", dc: 2, x: 2, y: 5, n: 3, from: 2, to: 5, want: 1},
		{name: "slot 3", dc: 4, x: 0, y: 0, n: 1, from: 0, to: 1, want: 3},
		{name: "clip left", dc: 3, x: -4, y: 7, n: 6, from: 0, to: 2, want: 2},
		{name: "clip right", dc: 3, x: ScreenSize - 2, y: 7, n: 10, from: ScreenSize - 2, to: ScreenSize, want: 2},
		{name: "transparent", dc: 0x40, x: 0, y: 1, n: 8, from: 0, to: 8, untouched: true},
		{name: "above", dc: 2, x: 0, y: -1, n: ScreenSize, untouched: true},
		{name: "below", dc: 2, x: 0, y: ScreenSize, n: ScreenSize, untouched: true},
	} {
		t.Run(c.name, func(t *testing.T) {
			m := New()
			m.SetDrawColors(c.dc)
			m.HLine(c.x, c.y, c.n)
			if c.untouched {
				for _, b := range m.Framebuffer().Bytes() {
					if b != 0 {
						t.Fatalf("framebuffer changed")
					}
				}
				return
			}
			for x, p := range row(m, c.y, 0, ScreenSize) {
				want := bitplane.Pixel(0)
				if x >= c.from && x < c.to {
					want = c.want
				}
				if p != want {
					t.Errorf("pixel (%d, %d) == %d, want %d", x, c.y, p, want)
				}
			}
		})
	}
}

func TestBlit1BPP(t *testing.T) {
	// A 10×2 sprite: row 0 is 1100000001, row 1 is all zeros.
	sprite := make([]byte, bitplane.MaskSize(10, 2))
	bitplane.Write1bpp(sprite, 10, 0, 0, true)
	bitplane.Write1bpp(sprite, 10, 1, 0, true)
	bitplane.Write1bpp(sprite, 10, 9, 0, true)

	m := New()
	m.SetDrawColors(0x10) // 0 transparent, 1 to slot 0
	for x := 0; x < ScreenSize; x++ {
		m.Framebuffer().Set(x, 20, 3)
		m.Framebuffer().Set(x, 21, 3)
	}
	m.Blit(sprite, 4, 20, 10, 2, Blit1BPP)

	want0 := []bitplane.Pixel{3, 3, 3, 3, 0, 0, 3, 3, 3, 3, 3, 3, 3, 0, 3}
	if got := row(m, 20, 0, 15); !equal(got, want0) {
		t.Errorf("row 20 == %v, want %v", got, want0)
	}
	for x, p := range row(m, 21, 0, ScreenSize) {
		if p != 3 {
			t.Errorf("pixel (%d, 21) == %d, want 3 (transparent)", x, p)
		}
	}
}

func TestBlit2BPPFlip(t *testing.T) {
	// One row of four pixels: 0, 1, 2, 3, most significant bits first.
	sprite := []byte{0b00_01_10_11}
	for _, c := range []struct {
		flags BlitFlags
		want  []bitplane.Pixel
	}{
		{Blit2BPP, []bitplane.Pixel{0, 1, 2, 3}},
		{Blit2BPP | BlitFlipX, []bitplane.Pixel{3, 2, 1, 0}},
		{Blit2BPP | BlitFlipY, []bitplane.Pixel{0, 1, 2, 3}},
	} {
		m := New()
		m.SetDrawColors(0x4321)
		m.Blit(sprite, 0, 0, 4, 1, c.flags)
		if got := row(m, 0, 0, 4); !equal(got, c.want) {
			t.Errorf("Blit(%b) drew %v, want %v", c.flags, got, c.want)
		}
	}
}

func TestBlitClips(t *testing.T) {
	sprite := []byte{0xff, 0xff}
	m := New()
	m.SetDrawColors(0x20)
	m.Blit(sprite, -4, -1, 8, 2, Blit1BPP)
	m.Blit(sprite, ScreenSize-4, ScreenSize-1, 8, 2, Blit1BPP)
	if got, want := row(m, 0, 0, 5), []bitplane.Pixel{1, 1, 1, 1, 0}; !equal(got, want) {
		t.Errorf("row 0 == %v, want %v", got, want)
	}
	if got, want := row(m, ScreenSize-1, ScreenSize-5, ScreenSize), []bitplane.Pixel{0, 1, 1, 1, 1}; !equal(got, want) {
		t.Errorf("last row == %v, want %v", got, want)
	}
}

func TestText(t *testing.T) {
	m := New()
	m.SetDrawColors(2)
	m.Text("I", 0, 0)
	// Glyph 'I' row 0 is 0x1E: pixels 1 to 4 set.
	if got, want := row(m, 0, 0, 8), []bitplane.Pixel{0, 1, 1, 1, 1, 0, 0, 0}; !equal(got, want) {
		t.Errorf("row 0 == %v, want %v", got, want)
	}
	// Row 7 is blank, and the background is transparent.
	if got, want := row(m, 7, 0, 8), make([]bitplane.Pixel, 8); !equal(got, want) {
		t.Errorf("row 7 == %v, want %v", got, want)
	}
}

func TestTextBackgroundAndNewline(t *testing.T) {
	m := New()
	m.SetDrawColors(0x32)
	m.Text(" \n ", 8, 0)
	for _, p := range []image.Point{{8, 0}, {15, 7}, {8, 8}, {15, 15}} {
		if got := m.Framebuffer().At(p.X, p.Y); got != 2 {
			t.Errorf("pixel %v == %d, want 2", p, got)
		}
	}
	for _, p := range []image.Point{{16, 0}, {7, 0}, {16, 8}} {
		if got := m.Framebuffer().At(p.X, p.Y); got != 0 {
			t.Errorf("pixel %v == %d, want 0", p, got)
		}
	}
}

func TestTextUnprintable(t *testing.T) {
	a, b := New(), New()
	a.SetDrawColors(2)
	b.SetDrawColors(2)
	a.Text("\x01é", 0, 0)
	b.Text("???", 0, 0)
	if !bytes.Equal(a.Framebuffer().Bytes(), b.Framebuffer().Bytes()) {
		t.Error("unprintable bytes did not render as '?'")
	}
}

func TestRender(t *testing.T) {
	m := New()
	m.SetPalette(0, 0x000000)
	m.SetPalette(3, 0xff8000)
	m.Framebuffer().Set(5, 6, 3)
	img := m.Image()
	if got := img.RGBAAt(5, 6); got.R != 0xff || got.G != 0x80 || got.B != 0 || got.A != 0xff {
		t.Errorf("RGBAAt(5, 6) == %v, want ff8000", got)
	}
	if got := img.RGBAAt(0, 0); got.R != 0 || got.G != 0 || got.B != 0 || got.A != 0xff {
		t.Errorf("RGBAAt(0, 0) == %v, want opaque black", got)
	}
}

func TestWritePNG(t *testing.T) {
	m := New()
	m.Framebuffer().Set(0, 0, 3)
	var buf bytes.Buffer
	if err := WritePNG(&buf, m.Image(), 2); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.Bounds().Size(), (image.Point{ScreenSize * 2, ScreenSize * 2}); got != want {
		t.Errorf("PNG size == %v, want %v", got, want)
	}
	r0, g0, b0, _ := img.At(1, 1).RGBA()
	r1, g1, b1, _ := img.At(2, 2).RGBA()
	if r0 == r1 && g0 == g1 && b0 == b1 {
		t.Error("scaled pixel (1, 1) matches (2, 2); want nearest neighbour blocks")
	}
	if err := WritePNG(&buf, m.Image(), 0); err == nil {
		t.Error("WritePNG with scale 0 succeeded")
	}
}

func TestFit(t *testing.T) {
	for _, c := range []struct {
		w, h int
		want image.Rectangle
	}{
		{480, 480, image.Rect(0, 0, 480, 480)},
		{500, 400, image.Rect(90, 40, 410, 360)},
		{100, 200, image.Rect(0, 50, 100, 150)},
	} {
		if got := fit(c.w, c.h); got != c.want {
			t.Errorf("fit(%d, %d) returned %v, want %v", c.w, c.h, got, c.want)
		}
	}
}

func equal(a, b []bitplane.Pixel) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
