package monitor

import (
	"fmt"
	"io"
	"iter"

	"github.com/ezrec/appmon/crashlog"
)

// Reports enumerates the saved reports in physical slot order,
// re-reading storage on every call. Once the log has wrapped, slot
// order no longer matches trap order; use RecentReports for that.
func (mon *Monitor) Reports() iter.Seq2[int, crashlog.Report] {
	return func(yield func(slot int, rep crashlog.Report) bool) {
		hdr := mon.LoadHeader()
		for slot := range int(hdr.SavedReports) {
			if !yield(slot, mon.loadReport(slot)) {
				return
			}
		}
	}
}

// RecentReports enumerates the saved reports most recent first,
// starting at the slot behind NextReport and walking backwards with
// wrap-around. Like Reports, each call re-reads storage.
func (mon *Monitor) RecentReports() iter.Seq2[int, crashlog.Report] {
	return func(yield func(slot int, rep crashlog.Report) bool) {
		hdr := mon.LoadHeader()
		slot := int(hdr.NextReport)
		for range int(hdr.SavedReports) {
			slot--
			if slot < 0 {
				slot = mon.Layout.MaxEntries - 1
			}
			if !yield(slot, mon.loadReport(slot)) {
				return
			}
		}
	}
}

// Dump writes the header counters and every saved report to w. With
// onlyIfPresent set, an empty log produces no output at all.
func (mon *Monitor) Dump(w io.Writer, onlyIfPresent bool) {
	hdr := mon.LoadHeader()
	if onlyIfPresent && hdr.SavedReports == 0 {
		return
	}

	fmt.Fprintln(w, "Application Monitor")
	fmt.Fprintln(w, "-------------------")
	fmt.Fprintf(w, "Saved reports: %d\n", hdr.SavedReports)
	fmt.Fprintf(w, "Next report: %d\n", hdr.NextReport)

	for slot, rep := range mon.Reports() {
		fmt.Fprintf(w, "%d: word-address=0x%X: byte-address=0x%X, data=0x%X\n",
			slot, rep.WordAddress(), rep.ByteAddress(), rep.Data)
	}
}
