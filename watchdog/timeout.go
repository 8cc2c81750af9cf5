package watchdog

import (
	"fmt"
	"iter"
	"maps"
	"time"
)

// Timeout selects one of the fixed watchdog timeout durations.
type Timeout int

const (
	Timeout15ms = Timeout(iota)
	Timeout30ms
	Timeout60ms
	Timeout120ms
	Timeout250ms
	Timeout500ms
	Timeout1s
	Timeout2s
	Timeout4s
	Timeout8s
)

var _timeout_durations = [...]time.Duration{
	Timeout15ms:  15 * time.Millisecond,
	Timeout30ms:  30 * time.Millisecond,
	Timeout60ms:  60 * time.Millisecond,
	Timeout120ms: 120 * time.Millisecond,
	Timeout250ms: 250 * time.Millisecond,
	Timeout500ms: 500 * time.Millisecond,
	Timeout1s:    1 * time.Second,
	Timeout2s:    2 * time.Second,
	Timeout4s:    4 * time.Second,
	Timeout8s:    8 * time.Second,
}

var _timeout_names = [...]string{
	Timeout15ms:  "15ms",
	Timeout30ms:  "30ms",
	Timeout60ms:  "60ms",
	Timeout120ms: "120ms",
	Timeout250ms: "250ms",
	Timeout500ms: "500ms",
	Timeout1s:    "1s",
	Timeout2s:    "2s",
	Timeout4s:    "4s",
	Timeout8s:    "8s",
}

// Duration returns the wall-clock duration of the timeout. Values
// outside the ladder clamp to the longest timeout.
func (t Timeout) Duration() time.Duration {
	if t < 0 || int(t) >= len(_timeout_durations) {
		return _timeout_durations[len(_timeout_durations)-1]
	}

	return _timeout_durations[t]
}

// String returns the configuration name of the timeout.
func (t Timeout) String() string {
	if t < 0 || int(t) >= len(_timeout_names) {
		return fmt.Sprintf("Timeout(%d)", int(t))
	}

	return _timeout_names[t]
}

// TimeoutByName looks up a timeout from its configuration name.
func TimeoutByName(name string) (t Timeout, ok bool) {
	for n, tn := range _timeout_names {
		if tn == name {
			t = Timeout(n)
			ok = true
			return
		}
	}

	return
}

var _watchdog_defines = map[string]string{
	"TIMEOUT_15MS":  fmt.Sprintf("%d", Timeout15ms),
	"TIMEOUT_30MS":  fmt.Sprintf("%d", Timeout30ms),
	"TIMEOUT_60MS":  fmt.Sprintf("%d", Timeout60ms),
	"TIMEOUT_120MS": fmt.Sprintf("%d", Timeout120ms),
	"TIMEOUT_250MS": fmt.Sprintf("%d", Timeout250ms),
	"TIMEOUT_500MS": fmt.Sprintf("%d", Timeout500ms),
	"TIMEOUT_1S":    fmt.Sprintf("%d", Timeout1s),
	"TIMEOUT_2S":    fmt.Sprintf("%d", Timeout2s),
	"TIMEOUT_4S":    fmt.Sprintf("%d", Timeout4s),
	"TIMEOUT_8S":    fmt.Sprintf("%d", Timeout8s),
}

// Defines for the watchdog timeouts.
func Defines() iter.Seq2[string, string] {
	return maps.All(_watchdog_defines)
}
