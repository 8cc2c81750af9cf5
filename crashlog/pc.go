//go:build !mega

package crashlog

// PC_SIZE is the width in bytes of a captured program address.
// Targets with 16-bit program counters push two bytes at trap entry.
const PC_SIZE = 2
