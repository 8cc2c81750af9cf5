package crashlog

// Layout computes where the header and each report slot live in the
// byte store. Pure arithmetic, no I/O.
type Layout struct {
	BaseAddress int // Offset of the header in the byte store.
	MaxEntries  int // Number of report slots.
}

// NewLayout validates the layout parameters. Configuration errors
// surface here; nothing re-checks them at trap time.
func NewLayout(baseAddress int, maxEntries int) (layout Layout, err error) {
	if baseAddress < 0 {
		err = ErrBaseAddress
		return
	}
	if maxEntries < 1 || maxEntries > MAX_ENTRIES_LIMIT {
		err = ErrMaxEntries
		return
	}

	layout = Layout{
		BaseAddress: baseAddress,
		MaxEntries:  maxEntries,
	}

	return
}

// HeaderOffset returns the byte offset of the header.
func (layout Layout) HeaderOffset() int {
	return layout.BaseAddress
}

// ReportOffset returns the byte offset of report slot n, defined for
// 0 <= n < MaxEntries. Out-of-range slots land on the first slot
// rather than addressing past the log.
func (layout Layout) ReportOffset(n int) (offset int) {
	offset = layout.BaseAddress + HEADER_SIZE
	if n >= 0 && n < layout.MaxEntries {
		offset += n * REPORT_SIZE
	}

	return
}

// Size returns the total byte footprint of the header plus all slots.
func (layout Layout) Size() int {
	return HEADER_SIZE + layout.MaxEntries*REPORT_SIZE
}

// Sanitize repairs a header read from memory that may be erased or
// stale from a different layout. An erased report count reads as zero,
// an oversized count clamps to MaxEntries, and an out-of-range next
// slot resets to zero. Sanitize is idempotent.
func (layout Layout) Sanitize(hdr *Header) {
	if hdr.SavedReports == ERASED {
		hdr.SavedReports = 0
	} else if int(hdr.SavedReports) > layout.MaxEntries {
		hdr.SavedReports = uint8(layout.MaxEntries)
	}

	if int(hdr.NextReport) >= layout.MaxEntries {
		hdr.NextReport = 0
	}
}
