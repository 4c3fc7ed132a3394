// Command rainbow scrolls rainbow stripes behind a label enlarged
// with Scale3x, on a 160×160 four-colour display.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/nf/rainbow/machine"
	"github.com/nf/rainbow/rainbow"
)

func main() {
	log.SetPrefix("rainbow: ")
	log.SetFlags(0)

	def := rainbow.DefaultConfig()
	var (
		labelFlag  = flag.String("label", def.Label, "label `text` drawn in the centre")
		speedFlag  = flag.Int("speed", def.Speed, "`rows` scrolled per frame")
		stripeFlag = flag.Int("stripe", def.StripeHeight, "stripe height in `rows`")

		cliFlag      = flag.Bool("cli", false, "draw in the terminal instead of a window")
		headlessFlag = flag.Int("headless", 0, "run `n` frames without a display and exit")
		pngFlag      = flag.String("png", "", "write the last headless frame to `file`")
		scaleFlag    = flag.Int("scale", 3, "enlarge the PNG by `factor`")
		devFlag      = flag.String("dev", "", "read the label from `file` and reload it on change")
		debugFlag    = flag.Bool("debug", false, "enable debugger")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-cli] [-label text] [-speed n] [-stripe n]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [-dev label.txt] [-debug]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -headless n [-png file] [-scale n]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
	}

	cfg := def
	cfg.Label = *labelFlag
	cfg.Speed = *speedFlag
	cfg.StripeHeight = *stripeFlag
	o := options{
		gui:      !*cliFlag,
		debug:    *debugFlag,
		dev:      *devFlag,
		headless: *headlessFlag,
		png:      *pngFlag,
		scale:    *scaleFlag,
	}
	if err := o.check(); err != nil {
		log.Print(err)
		flag.Usage()
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	err := run(cfg, o)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

type options struct {
	gui, debug bool
	dev        string
	headless   int
	png        string
	scale      int
}

func (o options) check() error {
	switch {
	case o.headless < 0:
		return fmt.Errorf("-headless %d: frame count is negative", o.headless)
	case o.png != "" && o.headless == 0:
		return errors.New("-png requires -headless")
	case o.headless > 0 && (o.dev != "" || o.debug):
		return errors.New("-dev and -debug cannot be used with -headless")
	case o.debug && !o.gui:
		return errors.New("-debug needs the terminal; drop -cli")
	case o.scale < 1:
		return fmt.Errorf("-scale %d: must be at least 1", o.scale)
	}
	return nil
}

func run(cfg rainbow.Config, o options) error {
	if o.dev != "" {
		label, err := readLabel(o.dev)
		if err != nil {
			return err
		}
		cfg.Label = label
	}
	cart, err := rainbow.New(cfg)
	if err != nil {
		return err
	}

	if o.headless > 0 {
		return runHeadless(cart, o.headless, o.png, o.scale)
	}

	var (
		d     *debugger
		state machine.StateFunc
	)
	if o.debug {
		d = newDebugger()
		state = d.StateFunc
	}
	r := machine.NewRunner(cart, state)
	if d != nil {
		d.start(r)
		defer d.stop()
	}
	if o.dev != "" {
		stop, err := devMode(r, cfg, o.dev)
		if err != nil {
			return err
		}
		defer stop()
	}

	if o.gui {
		return machine.RunGUI(r, "rainbow")
	}
	return machine.RunTerminal(r)
}

func runHeadless(cart machine.Cart, frames int, pngFile string, scale int) error {
	img := machine.RunHeadless(machine.NewRunner(cart, nil), frames)
	if pngFile == "" {
		return nil
	}
	f, err := os.Create(pngFile)
	if err != nil {
		return err
	}
	if err := machine.WritePNG(f, img, scale); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %v", pngFile, err)
	}
	return f.Close()
}
