package machine

// System holds the console's system flags.
type System byte

const (
	// PreserveFramebuffer stops the runner clearing the display
	// before each update.
	PreserveFramebuffer System = 1 << iota
)
