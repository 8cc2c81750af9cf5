// Package crashlog defines the persisted layout of the watchdog crash
// log: a two-byte header followed by a circular run of fixed-size
// report slots, byte-packed at a configurable base address in
// non-volatile memory.
//
// The package is pure data layout. It computes slot offsets, repairs
// headers read back from erased or stale memory, and encodes/decodes
// the header and report records, including the byte-order correction
// for program addresses captured off the call stack.
package crashlog
