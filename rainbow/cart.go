// Package rainbow is a cart that scrolls rainbow stripes behind a
// label enlarged with Scale3x.
package rainbow

import (
	"fmt"

	"github.com/nf/rainbow/bitplane"
	"github.com/nf/rainbow/machine"
)

type Cart struct {
	cfg    Config
	mask   *bitplane.Mask
	engine *Engine
}

func New(c Config) (*Cart, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Cart{cfg: c}, nil
}

func (c *Cart) Config() Config { return c.cfg }

// Mask returns the enlarged label, or nil before Start.
func (c *Cart) Mask() *bitplane.Mask { return c.mask }

// Engine returns the animation engine, or nil before Start.
func (c *Cart) Engine() *Engine { return c.engine }

func (c *Cart) Start(m *machine.Machine) { c.start(m) }

func (c *Cart) Update(m *machine.Machine) { c.engine.Update(m, c.mask) }

func (c *Cart) start(h Host) {
	c.mask = Prescale(h, c.cfg.Label)
	c.engine = NewEngine(c.cfg, h.Framebuffer().Height())
	h.Trace(fmt.Sprintf("label %q prescaled to %dx%d (%d bytes)",
		c.cfg.Label, c.mask.Width(), c.mask.Height(), len(c.mask.Bytes())))
}
