//go:build mega

package crashlog

// PC_SIZE is the width in bytes of a captured program address.
// Large-flash targets push three program-counter bytes at trap entry.
const PC_SIZE = 3
