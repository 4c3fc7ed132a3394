package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/rainbow/machine"
	"github.com/nf/rainbow/rainbow"
)

var commands = []string{"pause", "continue", "step", "exit"}

// debugger shows the runner's state in the terminal and sends it
// commands typed at its prompt.
type debugger struct {
	run *machine.Runner

	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	stopped atomic.Bool
}

func newDebugger() *debugger {
	d := &debugger{
		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 3, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetAutocompleteFunc(func(t string) (entries []string) {
		if t == "" {
			return nil
		}
		for _, c := range commands {
			if strings.HasPrefix(c, t) && c != t {
				entries = append(entries, c)
			}
		}
		return
	})
	d.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			d.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := strings.TrimSpace(d.input.GetText())
		if cmd == "" {
			return
		}
		d.input.SetText("")
		if cmd == "exit" {
			d.app.Stop()
			return
		}
		go d.run.Debug(cmd)
	})
	return d
}

// start runs the debugger alongside r, with the log shown in its
// log pane. Exiting the debugger exits r.
func (d *debugger) start(r *machine.Runner) {
	d.run = r
	log.SetPrefix("")
	log.SetOutput(d.log)
	go func() {
		err := d.app.Run()
		d.stopped.Store(true)
		log.SetOutput(os.Stderr)
		log.SetPrefix("rainbow: ")
		if err != nil {
			log.Printf("debug: %v", err)
		}
		r.Debug("exit")
	}()
}

func (d *debugger) stop() { d.app.Stop() }

func (d *debugger) StateFunc(m *machine.Machine, c machine.Cart, frame uint64, k machine.StateKind) {
	if d.stopped.Load() {
		return
	}
	var (
		watch = watchContent(c)
		state = stateMsg(m, c, frame, k)
	)
	d.app.QueueUpdateDraw(func() {
		switch k {
		case machine.RunState:
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case machine.PauseState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case machine.ExitState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkRed)
		}
		d.watch.SetText(watch)
		d.state.SetText(state)
	})
}

// stateMsg describes the frame just drawn, with a swatch for each
// palette slot.
func stateMsg(m *machine.Machine, c machine.Cart, frame uint64, k machine.StateKind) string {
	var b strings.Builder
	fmt.Fprintf(&b, "frame %-6d %-8s", frame, k)
	if rc, ok := c.(*rainbow.Cart); ok && rc.Engine() != nil {
		e := rc.Engine()
		fmt.Fprintf(&b, " clock %-4d stripe %-3d", e.Clock(), e.Stripe(e.Clock()))
	}
	b.WriteString("\npalette")
	for i, rgb := range m.Palette() {
		fmt.Fprintf(&b, "  %d [#%06x]██[-] %06x", i, rgb, rgb)
	}
	fmt.Fprintf(&b, "\ndraw colors %04x  system %02x", m.DrawColors(), m.System())
	return b.String()
}

// watchContent lists the running cart's settings.
func watchContent(c machine.Cart) string {
	rc, ok := c.(*rainbow.Cart)
	if !ok {
		return ""
	}
	cfg := rc.Config()
	var b strings.Builder
	fmt.Fprintf(&b, "label %q\n", cfg.Label)
	fmt.Fprintf(&b, "stripe %d speed %d cycled %d\n", cfg.StripeHeight, cfg.Speed, cfg.CycledColors)
	if e := rc.Engine(); e != nil {
		fmt.Fprintf(&b, "window %d rows\n", e.Window())
	}
	if m := rc.Mask(); m != nil {
		fmt.Fprintf(&b, "mask %dx%d %d set", m.Width(), m.Height(), m.Count())
	}
	return b.String()
}
