package rainbow

import (
	"errors"
	"fmt"

	"github.com/nf/rainbow/machine"
)

// ScreenColors is the rainbow the stripes cycle through.
var ScreenColors = []uint32{
	0xff0000, 0xff7f00, 0xffff00, 0x00ff00, 0x0000ff, 0x4b0082, 0x9400d3,
}

// Config describes a rainbow cart.
type Config struct {
	Label        string   // printable ASCII, drawn enlarged in the centre
	Colors       []uint32 // 0xRRGGBB stripe colours
	StripeHeight int      // rows per stripe
	CycledColors int      // palette slots given to stripes, from slot 1
	Speed        int      // rows scrolled per frame
}

func DefaultConfig() Config {
	colors := append([]uint32(nil), ScreenColors...)
	return Config{
		Label:        "wasm-4",
		Colors:       colors,
		StripeHeight: StripeHeightFor(machine.ScreenSize, len(colors)),
		CycledColors: 3,
		Speed:        4,
	}
}

// StripeHeightFor returns the stripe height that fits n stripes
// into screen rows, rounding up.
func StripeHeightFor(screen, n int) int {
	return (screen + n - 1) / n
}

// Validate reports whether c can be run on the machine.
func (c Config) Validate() error {
	if c.Label == "" {
		return errors.New("empty label")
	}
	for i := 0; i < len(c.Label); i++ {
		if b := c.Label[i]; b < 0x20 || b > 0x7e {
			return fmt.Errorf("label %q: byte %#x at %d is not printable ASCII", c.Label, b, i)
		}
	}
	if w := MaskWidth(c.Label); w > machine.ScreenSize {
		return fmt.Errorf("label %q: %d pixels wide when enlarged, screen is %d",
			c.Label, w, machine.ScreenSize)
	}
	if len(c.Colors) == 0 {
		return errors.New("no colors")
	}
	if c.CycledColors < 1 || c.CycledColors > 3 {
		return fmt.Errorf("cycled colors %d outside 1-3", c.CycledColors)
	}
	if c.StripeHeight < 1 {
		return fmt.Errorf("stripe height %d not positive", c.StripeHeight)
	}
	if c.Speed < 1 {
		return fmt.Errorf("speed %d not positive", c.Speed)
	}
	return nil
}
