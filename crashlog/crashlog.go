package crashlog

const (
	// ERASED is the byte value non-volatile memory reads as before any write.
	ERASED = byte(0xff)

	// HEADER_SIZE is the persisted size of the Header in bytes.
	HEADER_SIZE = 2

	// REPORT_SIZE is the persisted size of one Report slot in bytes.
	REPORT_SIZE = PC_SIZE + 4

	// MAX_ENTRIES_LIMIT bounds the slot count so the header counters fit a byte.
	MAX_ENTRIES_LIMIT = 255
)

// Header tracks how many report slots hold valid data and which slot
// receives the next report.
type Header struct {
	SavedReports uint8 // Count of populated report slots.
	NextReport   uint8 // Slot index for the next report.
}

// DecodeHeader decodes a header from its two persisted bytes.
func DecodeHeader(data []byte) (hdr Header) {
	hdr.SavedReports = data[0]
	hdr.NextReport = data[1]

	return
}

// Bytes returns the persisted form of the header.
func (hdr Header) Bytes() []byte {
	return []byte{hdr.SavedReports, hdr.NextReport}
}

// Report is one crash record: the program address that was executing
// when the watchdog trap fired, plus the diagnostic word the program
// last set.
type Report struct {
	// Address holds the captured program-counter bytes. At capture
	// time they arrive in the order the hardware pushed them onto the
	// call stack; DecodeReport reverses them into numeric byte order.
	Address [PC_SIZE]byte

	// Data is the program-supplied diagnostic word.
	Data uint32
}

// Bytes returns the persisted form of the report. The address bytes
// are stored verbatim, still in push order.
func (rep Report) Bytes() (data []byte) {
	data = make([]byte, 0, REPORT_SIZE)
	data = append(data, rep.Address[:]...)
	data = append(data,
		byte(rep.Data),
		byte(rep.Data>>8),
		byte(rep.Data>>16),
		byte(rep.Data>>24),
	)

	return
}

// DecodeReport decodes a report from its persisted bytes. The address
// came off the call stack reversed, so decoding swaps it end for end
// into numeric byte order.
func DecodeReport(data []byte) (rep Report) {
	copy(rep.Address[:], data[:PC_SIZE])
	rep.Address[0], rep.Address[PC_SIZE-1] = rep.Address[PC_SIZE-1], rep.Address[0]

	rep.Data = uint32(data[PC_SIZE]) |
		uint32(data[PC_SIZE+1])<<8 |
		uint32(data[PC_SIZE+2])<<16 |
		uint32(data[PC_SIZE+3])<<24

	return
}

// WordAddress returns the corrected address as a program word offset.
func (rep Report) WordAddress() (value uint32) {
	for n := PC_SIZE - 1; n >= 0; n-- {
		value = (value << 8) | uint32(rep.Address[n])
	}

	return
}

// ByteAddress returns the corrected address as a byte offset. Program
// words are two bytes wide.
func (rep Report) ByteAddress() uint32 {
	return rep.WordAddress() * 2
}
