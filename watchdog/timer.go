package watchdog

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a wall-clock watchdog backed by a goroutine and a kick
// channel. Refresh restarts the countdown; the first expiry delivers
// the trap on the watchdog goroutine, after which refreshes from
// normal execution are ignored and the goroutine waits out the
// handler's re-armed timeout before delivering the reset. That wait is
// the trap handler's non-returning spin.
type Timer struct {
	Verbose bool

	Context TrapContext // Source of the pushed program-counter bytes.
	OnTrap  TrapFunc    // First-expiry handler.
	OnReset func()      // Second-expiry handler.

	mu      sync.Mutex
	trapped atomic.Bool
	refresh chan struct{}
	disarm  chan struct{}
	rearm   chan Timeout
}

var _ Watchdog = (*Timer)(nil)

// Arm enables the watchdog with the given timeout. Called again from
// inside OnTrap, it hands the reset timeout to the running countdown
// instead of starting a fresh one.
func (wd *Timer) Arm(timeout Timeout) {
	wd.mu.Lock()
	defer wd.mu.Unlock()

	if wd.trapped.Load() {
		select {
		case wd.rearm <- timeout:
		default:
		}
		return
	}

	wd.stopLocked()

	wd.refresh = make(chan struct{}, 1)
	wd.disarm = make(chan struct{})
	wd.rearm = make(chan Timeout, 1)

	if wd.Verbose {
		log.Printf("watchdog: armed %v", timeout)
	}

	go wd.watch(timeout, wd.refresh, wd.disarm, wd.rearm)
}

// Disarm disables the watchdog entirely.
func (wd *Timer) Disarm() {
	wd.mu.Lock()
	defer wd.mu.Unlock()

	wd.stopLocked()
	wd.trapped.Store(false)
}

func (wd *Timer) stopLocked() {
	if wd.disarm != nil {
		close(wd.disarm)
		wd.refresh = nil
		wd.disarm = nil
		wd.rearm = nil
	}
}

// Refresh restarts the countdown. After the trap has fired, refreshes
// have no effect; the reset is already committed.
func (wd *Timer) Refresh() {
	wd.mu.Lock()
	defer wd.mu.Unlock()

	if wd.refresh == nil || wd.trapped.Load() {
		return
	}

	select {
	case wd.refresh <- struct{}{}:
	default:
	}
}

func (wd *Timer) watch(timeout Timeout, refresh <-chan struct{}, disarm <-chan struct{}, rearm <-chan Timeout) {
	expiry := time.NewTimer(timeout.Duration())
	defer expiry.Stop()

	for {
		select {
		case <-refresh:
			if !expiry.Stop() {
				select {
				case <-expiry.C:
				default:
				}
			}
			expiry.Reset(timeout.Duration())

		case <-disarm:
			return

		case <-expiry.C:
			wd.trapped.Store(true)

			if wd.Verbose {
				log.Printf("watchdog: trap")
			}

			if wd.OnTrap != nil {
				var pc []byte
				if wd.Context != nil {
					pc = wd.Context.ReturnBytes()
				}
				wd.OnTrap(pc)
			}

			// The handler re-arms with its reset timeout; without a
			// handler the configured period carries over.
			reset := timeout
			select {
			case reset = <-rearm:
			default:
			}
			expiry.Reset(reset.Duration())

			// Normal execution never resumes. Only a disarm or the
			// final expiry ends the wait.
			select {
			case <-disarm:
			case <-expiry.C:
				if wd.Verbose {
					log.Printf("watchdog: reset")
				}
				if wd.OnReset != nil {
					wd.OnReset()
				}
			}
			wd.trapped.Store(false)
			return
		}
	}
}
