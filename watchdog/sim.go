package watchdog

import (
	"log"
	"time"
)

// Sim is a deterministic watchdog model driven by explicit time
// advancement. The first expiry after arming delivers a trap with the
// program-counter bytes from Context; a second expiry without a
// Refresh in between delivers the hardware reset.
//
// An Arm() call from inside OnTrap restarts the countdown but keeps
// the trap latch set, so the following expiry resets. This matches the
// record-then-reset sequence the trap handler relies on.
type Sim struct {
	Verbose bool

	Context TrapContext // Source of the pushed program-counter bytes.
	OnTrap  TrapFunc    // First-expiry handler.
	OnReset func()      // Second-expiry handler.

	Traps  int // Count of traps delivered.
	Resets int // Count of resets delivered.

	armed   bool
	trapped bool
	timeout Timeout
	elapsed time.Duration
}

var _ Watchdog = (*Sim)(nil)

// Arm enables the watchdog with the given timeout.
func (sim *Sim) Arm(timeout Timeout) {
	sim.armed = true
	sim.timeout = timeout
	sim.elapsed = 0

	if sim.Verbose {
		log.Printf("watchdog: armed %v", timeout)
	}
}

// Disarm disables the watchdog and clears the trap latch.
func (sim *Sim) Disarm() {
	sim.armed = false
	sim.trapped = false
	sim.elapsed = 0

	if sim.Verbose {
		log.Printf("watchdog: disarmed")
	}
}

// Refresh restarts the countdown.
func (sim *Sim) Refresh() {
	sim.elapsed = 0
}

// Advance moves simulated time forward, delivering any traps and
// resets that fall within the advanced span.
func (sim *Sim) Advance(d time.Duration) {
	if !sim.armed {
		return
	}

	sim.elapsed += d
	for sim.armed && sim.elapsed >= sim.timeout.Duration() {
		sim.elapsed -= sim.timeout.Duration()
		sim.expire()
	}
}

func (sim *Sim) expire() {
	if !sim.trapped {
		sim.trapped = true
		sim.Traps++

		if sim.Verbose {
			log.Printf("watchdog: trap")
		}

		if sim.OnTrap != nil {
			var pc []byte
			if sim.Context != nil {
				pc = sim.Context.ReturnBytes()
			}
			sim.OnTrap(pc)
		}
		return
	}

	sim.armed = false
	sim.trapped = false
	sim.Resets++

	if sim.Verbose {
		log.Printf("watchdog: reset")
	}

	if sim.OnReset != nil {
		sim.OnReset()
	}
}
