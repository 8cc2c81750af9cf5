// Package watchdog models the hardware watchdog timer with
// interrupt-before-reset semantics: the first unrefreshed timeout
// delivers a trap, the second forces the hardware reset.
//
// Two implementations are provided. Sim is a deterministic model
// driven by explicit time advancement, for tests and scripted runs.
// Timer is a wall-clock model backed by a goroutine, for the demo.
package watchdog

// Watchdog is the timer interface the monitor arms and refreshes.
type Watchdog interface {
	// Arm enables the watchdog with the given timeout.
	Arm(timeout Timeout)
	// Disarm disables the watchdog entirely.
	Disarm()
	// Refresh restarts the watchdog countdown.
	Refresh()
}

// TrapContext is the narrow platform boundary that exposes the
// program-counter bytes the trap-entry hardware pushed onto the call
// stack, read before anything else can grow the stack over them.
type TrapContext interface {
	// ReturnBytes returns the pushed program-counter bytes in the
	// order they sit above the stack pointer.
	ReturnBytes() []byte
}

// TrapFunc handles a watchdog trap. pc holds the raw captured
// program-counter bytes, in hardware push order. The handler must not
// resume normal execution; it records what it can and leaves the
// re-armed watchdog to force the reset.
type TrapFunc func(pc []byte)
