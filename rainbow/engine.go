package rainbow

import (
	"github.com/nf/rainbow/bitplane"
	"github.com/nf/rainbow/machine"
)

// Engine scrolls colour stripes down the screen and draws the label
// mask over them. Its only state is the clock, the screen row at the
// top of the visible stripe window.
type Engine struct {
	colors []uint32
	stripe int // stripe height
	cycled int
	speed  int
	height int // screen height

	clock int
}

func NewEngine(c Config, screenHeight int) *Engine {
	return &Engine{
		colors: c.Colors,
		stripe: c.StripeHeight,
		cycled: c.CycledColors,
		speed:  c.Speed,
		height: screenHeight,
	}
}

func (e *Engine) Clock() int         { return e.clock }
func (e *Engine) SetClock(clock int) { e.clock = clock }

// Window returns the number of rows drawn each frame.
func (e *Engine) Window() int { return (e.cycled - 1) * e.stripe }

// Stripe returns the index of the stripe under row y.
func (e *Engine) Stripe(y int) int { return floorDiv(y, e.stripe) }

// Band returns the draw colours for row y.
func (e *Engine) Band(y int) uint16 {
	return uint16(2 + mod(e.Stripe(y), e.cycled))
}

// Palette returns the colours of palette slots 1 to CycledColors
// for the given clock.
func (e *Engine) Palette(clock int) []uint32 {
	var (
		stripe = e.Stripe(clock)
		draw   = mod(stripe, e.cycled)
		screen = mod(stripe, len(e.colors))
		p      = make([]uint32, e.cycled)
	)
	for i := 0; i < e.cycled; i++ {
		p[mod(draw+i, e.cycled)] = e.colors[mod(screen+i, len(e.colors))]
	}
	return p
}

// Update draws one frame and advances the clock.
func (e *Engine) Update(h Host, mask *bitplane.Mask) {
	for i, c := range e.Palette(e.clock) {
		h.SetPalette(1+i, c)
	}

	fb := h.Framebuffer()
	for y := e.clock; y < e.clock+e.Window(); y++ {
		h.SetDrawColors(e.Band(y))
		h.HLine(0, y, fb.Width())
	}

	h.SetDrawColors(maskColors)
	h.Blit(mask.Bytes(),
		fb.Width()/2-mask.Width()/2, fb.Height()/2-mask.Height()/2,
		mask.Width(), mask.Height(), machine.Blit1BPP)

	e.Advance()
}

// Advance moves the clock on one frame, wrapping back above the top
// of the screen once it passes the bottom.
func (e *Engine) Advance() {
	e.clock += e.speed
	if e.clock >= e.height {
		e.clock = -e.Window() + 1
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// mod returns a modulo b in [0, b) for positive b.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
