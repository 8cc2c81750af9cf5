// Package nvram models the byte-addressable non-volatile memory the
// application monitor logs crash reports into.
//
// The store is deliberately primitive: byte-wise reads and writes with
// no atomicity across a power loss mid-write. Callers must tolerate a
// region whose individual records are well-formed but mutually
// inconsistent after an interrupted write sequence.
package nvram

// Store is the byte store interface required by the crash log.
//
// Neither operation returns an error: once the watchdog trap is in
// flight there is no channel left to report a storage failure on, so
// the primitives follow EEPROM semantics of best-effort access.
type Store interface {
	// ReadBytes reads length bytes starting at offset.
	ReadBytes(offset int, length int) []byte
	// WriteBytes writes data starting at offset.
	WriteBytes(offset int, data []byte)
}
