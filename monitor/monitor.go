// Package monitor ties the watchdog timer to the persistent crash log.
//
// The monitor is armed once at program start, and the running program
// calls Heartbeat more often than the armed timeout. If it stops, the
// watchdog trap fires and the monitor records the interrupted program
// address plus the diagnostic word the program last set, then re-arms
// the watchdog so the second timeout resets the hardware. After the
// reset, the saved reports can be enumerated or dumped.
package monitor

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/appmon/crashlog"
	"github.com/ezrec/appmon/internal"
	"github.com/ezrec/appmon/nvram"
	"github.com/ezrec/appmon/watchdog"
)

const (
	// DEFAULT_BASE_ADDRESS is the default crash log location in the byte store.
	DEFAULT_BASE_ADDRESS = 500
	// DEFAULT_MAX_ENTRIES is the default report slot count.
	DEFAULT_MAX_ENTRIES = 10

	// RESET_TIMEOUT is the timeout the trap handler re-arms with. Short,
	// but generous enough that the record path finishes well before it
	// fires and forces the reset.
	RESET_TIMEOUT = watchdog.Timeout120ms
)

// Monitor records where the program was executing when the watchdog
// trap fired. Exactly one Monitor owns a given non-volatile region;
// subsystems share the instance by reference rather than constructing
// another over the same layout.
type Monitor struct {
	Verbose bool

	Store  nvram.Store       // Byte store holding the crash log.
	Dog    watchdog.Watchdog // Watchdog primitive.
	Layout crashlog.Layout   // Crash log layout.

	report crashlog.Report // In-progress report; Address is filled at trap time.
}

// NewMonitor creates the monitor for a crash log at baseAddress with
// maxEntries report slots. Configuration errors surface here and never
// at trap time.
func NewMonitor(store nvram.Store, dog watchdog.Watchdog, baseAddress int, maxEntries int) (mon *Monitor, err error) {
	if store == nil {
		err = ErrStoreMissing
		return
	}
	if dog == nil {
		err = ErrWatchdogMissing
		return
	}

	layout, err := crashlog.NewLayout(baseAddress, maxEntries)
	if err != nil {
		return
	}

	mon = &Monitor{
		Store:  store,
		Dog:    dog,
		Layout: layout,
	}

	return
}

// Arm enables the watchdog trap with the given timeout.
func (mon *Monitor) Arm(timeout watchdog.Timeout) {
	if mon.Verbose {
		log.Printf("monitor: arm %v", timeout)
	}
	mon.Dog.Arm(timeout)
}

// Disarm disables the watchdog entirely. It has no effect on a trap
// already in progress.
func (mon *Monitor) Disarm() {
	if mon.Verbose {
		log.Printf("monitor: disarm")
	}
	mon.Dog.Disarm()
}

// Heartbeat tells the watchdog the program is still alive. Call it
// more often than the armed timeout elapses.
func (mon *Monitor) Heartbeat() {
	mon.Dog.Refresh()
}

// SetData sets the diagnostic word captured into the next report.
func (mon *Monitor) SetData(data uint32) {
	mon.report.Data = data
}

// GetData returns the diagnostic word of the in-progress report.
func (mon *Monitor) GetData() uint32 {
	return mon.report.Data
}

// LoadHeader reads the persisted header and sanitizes it against
// erased or stale memory.
func (mon *Monitor) LoadHeader() (hdr crashlog.Header) {
	hdr = crashlog.DecodeHeader(mon.Store.ReadBytes(mon.Layout.HeaderOffset(), crashlog.HEADER_SIZE))
	mon.Layout.Sanitize(&hdr)

	return
}

func (mon *Monitor) saveHeader(hdr crashlog.Header) {
	mon.Store.WriteBytes(mon.Layout.HeaderOffset(), hdr.Bytes())
}

func (mon *Monitor) loadReport(slot int) (rep crashlog.Report) {
	rep = crashlog.DecodeReport(mon.Store.ReadBytes(mon.Layout.ReportOffset(slot), crashlog.REPORT_SIZE))

	return
}

// WatchdogTrap persists the in-progress report when the watchdog trap
// fires. pc holds the program-counter bytes exactly as the hardware
// pushed them; they are stored raw and corrected on read. The report
// lands in the next slot, the header advances with circular overwrite,
// and the watchdog is re-armed so the following timeout resets the
// hardware. A storage failure here has no audience; the reset is
// guaranteed either way.
func (mon *Monitor) WatchdogTrap(pc []byte) {
	hdr := mon.LoadHeader()

	for n := range mon.report.Address {
		mon.report.Address[n] = crashlog.ERASED
	}
	copy(mon.report.Address[:], pc)

	if mon.Verbose {
		log.Printf("monitor: trap at % x, data 0x%X", pc, mon.report.Data)
	}

	mon.Store.WriteBytes(mon.Layout.ReportOffset(int(hdr.NextReport)), mon.report.Bytes())

	hdr.NextReport++
	if int(hdr.NextReport) >= mon.Layout.MaxEntries {
		// Wrapped: the log is full and the oldest slot is next to go.
		hdr.NextReport = 0
		hdr.SavedReports = uint8(mon.Layout.MaxEntries)
	} else if int(hdr.SavedReports) < mon.Layout.MaxEntries {
		hdr.SavedReports++
	}
	mon.saveHeader(hdr)

	// Let the next unrefreshed timeout reset the hardware.
	mon.Dog.Arm(RESET_TIMEOUT)
}

// Defines for the monitor and its watchdog timeouts.
func (mon *Monitor) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		maps.All(map[string]string{
			"BASE_ADDRESS": fmt.Sprintf("%d", mon.Layout.BaseAddress),
			"MAX_ENTRIES":  fmt.Sprintf("%d", mon.Layout.MaxEntries),
		}),
		watchdog.Defines(),
	)
}
