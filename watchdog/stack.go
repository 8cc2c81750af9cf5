package watchdog

const (
	STACK_SIZE = 64 // Default call stack size in bytes.
)

// CallStack models the target's downward-growing call stack. SP names
// the next free byte, so the most recently pushed byte sits at SP+1.
//
// Trap-entry hardware pushes the interrupted program counter low byte
// first, which is why the bytes read back above SP in reversed numeric
// order.
type CallStack struct {
	PCSize int // Width in bytes of a pushed program counter.

	SP   int
	Data []byte
}

var _ TrapContext = (*CallStack)(nil)

// NewCallStack creates an empty call stack of the given byte size for
// a target pushing pcSize program-counter bytes per call.
func NewCallStack(size int, pcSize int) (stack *CallStack) {
	stack = &CallStack{
		PCSize: pcSize,
		Data:   make([]byte, size),
	}
	stack.Reset()

	return
}

// Reset empties the stack.
func (stack *CallStack) Reset() {
	stack.SP = len(stack.Data) - 1
}

// Push pushes a single byte.
func (stack *CallStack) Push(value byte) (ok bool) {
	if stack.SP < 0 {
		return
	}

	stack.Data[stack.SP] = value
	stack.SP--
	ok = true

	return
}

// PushReturn pushes a program counter the way the trap-entry hardware
// does: low byte first.
func (stack *CallStack) PushReturn(pc uint32) (ok bool) {
	for n := range stack.PCSize {
		if !stack.Push(byte(pc >> (8 * n))) {
			return
		}
	}
	ok = true

	return
}

// ReturnBytes returns the PCSize bytes just above the stack pointer.
func (stack *CallStack) ReturnBytes() (pc []byte) {
	top := stack.SP + 1
	if top+stack.PCSize > len(stack.Data) {
		return
	}
	pc = stack.Data[top : top+stack.PCSize]

	return
}
