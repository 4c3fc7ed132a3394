package rainbow

import (
	"fmt"

	"github.com/nf/rainbow/bitplane"
	"github.com/nf/rainbow/machine"
	"github.com/nf/rainbow/scale3x"
)

const (
	CharWidth  = 8
	CharHeight = 8
	Scale      = 3

	// Background is the colour of palette slot 0 for the whole run.
	// It fills the screen outside the stripes and the label's glyphs.
	Background = 0x000000

	textColors = 0x2  // text in slot 1
	maskColors = 0x10 // 0 transparent, 1 in slot 0
)

// Host is the part of the machine a cart draws with.
type Host interface {
	SetPalette(slot int, rgb uint32)
	SetDrawColors(dc uint16)
	HLine(x, y, length int)
	Blit(data []byte, x, y, w, h int, flags machine.BlitFlags)
	Text(s string, x, y int)
	Framebuffer() *bitplane.Surface
	Trace(msg string)
}

func MaskWidth(label string) int { return CharWidth * Scale * len(label) }

const MaskHeight = CharHeight * Scale

// Prescale draws label at the origin of h's framebuffer and returns it
// enlarged by Scale3x as a 1bpp mask, with every glyph pixel set.
func Prescale(h Host, label string) *bitplane.Mask {
	var (
		fb   = h.Framebuffer()
		w    = CharWidth * len(label)
		mask = bitplane.NewMask(MaskWidth(label), MaskHeight)
		n    int
	)
	if w > fb.Width() || CharHeight > fb.Height() {
		panic(fmt.Sprintf("rainbow: label %q does not fit the framebuffer", label))
	}

	h.SetPalette(0, Background)
	h.SetDrawColors(textColors)
	h.Text(label, 0, 0)

	// Slot 0 is the background of a freshly cleared framebuffer.
	const bg = bitplane.Pixel(0)
	scale3x.Enlarge(fb, w, CharHeight, func(x, y int, p bitplane.Pixel) {
		mask.Set(x, y, p != bg)
		n++
	})
	if n != mask.Width()*mask.Height() || len(mask.Bytes()) != bitplane.MaskSize(n, 1) {
		panic(fmt.Sprintf("rainbow: wrote %d pixels into %dx%d mask of %d bytes",
			n, mask.Width(), mask.Height(), len(mask.Bytes())))
	}
	return mask
}
