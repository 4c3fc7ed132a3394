package machine

import (
	"log"
	"sync"
	"time"
)

// FrameRate is the number of frames per second the frontends run at.
const FrameRate = 60

// Cart is a program for the machine. Start is called once before
// the first Update, and Update once per frame.
type Cart interface {
	Start(m *Machine)
	Update(m *Machine)
}

type StateKind int

const (
	RunState StateKind = iota
	PauseState
	ExitState
)

func (k StateKind) String() string {
	switch k {
	case RunState:
		return "run"
	case PauseState:
		return "pause"
	case ExitState:
		return "exit"
	}
	return "unknown"
}

// StateFunc is called after every frame with the machine, the current
// cart and the number of updates run so far.
type StateFunc func(m *Machine, c Cart, frame uint64, k StateKind)

// Runner steps a cart on a machine one frame at a time.
// Step must be called from a single goroutine; Swap, Debug and Exit
// may be called from any goroutine and take effect between frames.
type Runner struct {
	m     *Machine
	cart  Cart
	state StateFunc

	started bool
	paused  bool
	frame   uint64

	swap  chan Cart
	debug chan string

	done     chan struct{}
	doneOnce sync.Once
}

func NewRunner(c Cart, state StateFunc) *Runner {
	return &Runner{
		m:     New(),
		cart:  c,
		state: state,
		swap:  make(chan Cart),
		debug: make(chan string),
		done:  make(chan struct{}),
	}
}

func (r *Runner) Machine() *Machine { return r.m }

// Frame returns the number of updates run by the current cart.
func (r *Runner) Frame() uint64 { return r.frame }

// Done is closed once the runner has exited.
func (r *Runner) Done() <-chan struct{} { return r.done }

// Exit stops the runner. Subsequent calls to Step return false.
func (r *Runner) Exit() {
	r.doneOnce.Do(func() { close(r.done) })
}

// Swap replaces the running cart at the next frame boundary.
// The machine is reset and the new cart started afresh.
func (r *Runner) Swap(c Cart) {
	select {
	case r.swap <- c:
	case <-r.done:
	}
}

// Debug issues a debugger command: pause, continue, step or exit.
func (r *Runner) Debug(cmd string) {
	select {
	case r.debug <- cmd:
	case <-r.done:
	}
}

// Step runs one frame, starting the cart first if necessary.
// It reports false once the runner has exited.
func (r *Runner) Step() bool {
	step := false
	for pending := true; pending; {
		select {
		case c := <-r.swap:
			r.cart = c
			r.started = false
			r.frame = 0
		case cmd := <-r.debug:
			switch cmd {
			case "p", "pause":
				r.paused = true
			case "c", "continue":
				r.paused = false
			case "s", "step":
				r.paused = true
				step = true
			case "exit":
				r.Exit()
			default:
				log.Printf("unknown command %q", cmd)
			}
		case <-r.done:
			r.notify(ExitState)
			return false
		default:
			pending = false
		}
	}
	if r.paused && !step {
		r.notify(PauseState)
		return true
	}

	if !r.started {
		r.m.Reset()
		r.cart.Start(r.m)
		r.started = true
	}
	if r.m.sys&PreserveFramebuffer == 0 {
		r.m.fb.Clear()
	}
	r.cart.Update(r.m)
	r.frame++

	if r.paused {
		r.notify(PauseState)
	} else {
		r.notify(RunState)
	}
	return true
}

func (r *Runner) notify(k StateKind) {
	if r.state != nil {
		r.state(r.m, r.cart, r.frame, k)
	}
}

// tick calls fn at FrameRate until fn returns false or the runner exits.
func (r *Runner) tick(fn func() bool) {
	t := time.NewTicker(time.Second / FrameRate)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if !fn() {
				return
			}
		case <-r.done:
			return
		}
	}
}
