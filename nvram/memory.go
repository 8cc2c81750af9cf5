package nvram

import (
	"io"
)

const (
	// ERASED is the value every byte reads as before it is first written.
	ERASED = byte(0xff)

	// MEMORY_DEFAULT_SIZE is the default capacity in bytes of a new memory.
	MEMORY_DEFAULT_SIZE = 1024
)

// Memory is an in-RAM EEPROM model. A fresh memory reads as all-ones,
// out-of-range reads yield ERASED, and out-of-range writes are dropped.
type Memory struct {
	Size int // Capacity in bytes.

	Writes int // Count of bytes written since creation or erase.

	Data []byte
}

var _ Store = (*Memory)(nil)

// NewMemory creates an erased memory of the given byte size.
func NewMemory(size int) (mem *Memory) {
	mem = &Memory{Size: size}
	mem.Erase()

	return
}

// Erase resets every byte to the erased state and zeros the write counter.
func (mem *Memory) Erase() {
	if mem.Size == 0 {
		mem.Size = MEMORY_DEFAULT_SIZE
	}

	mem.Data = make([]byte, mem.Size)
	for n := range mem.Data {
		mem.Data[n] = ERASED
	}
	mem.Writes = 0
}

// ReadBytes reads length bytes starting at offset. Bytes outside the
// memory read as ERASED.
func (mem *Memory) ReadBytes(offset int, length int) (data []byte) {
	data = make([]byte, length)
	for n := range data {
		addr := offset + n
		if addr < 0 || addr >= len(mem.Data) {
			data[n] = ERASED
			continue
		}
		data[n] = mem.Data[addr]
	}

	return
}

// WriteBytes writes data starting at offset. Bytes outside the memory
// are dropped.
func (mem *Memory) WriteBytes(offset int, data []byte) {
	for n, value := range data {
		addr := offset + n
		if addr < 0 || addr >= len(mem.Data) {
			continue
		}
		mem.Data[addr] = value
		mem.Writes++
	}
}

// Unmarshal loads memory contents from a reader, replacing any existing data.
func (mem *Memory) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	mem.Data = data
	mem.Size = len(data)

	return
}

// Marshal writes the memory contents to a writer.
func (mem *Memory) Marshal(file io.Writer) (err error) {
	_, err = file.Write(mem.Data)

	return
}
