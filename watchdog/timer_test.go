package watchdog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_TrapThenReset(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	stack := NewCallStack(8, 2)
	stack.PushReturn(0x1234)

	trapC := make(chan []byte, 1)
	resetC := make(chan struct{})

	wd := &Timer{Context: stack}
	wd.OnTrap = func(pc []byte) {
		trapC <- append([]byte(nil), pc...)
		wd.Arm(Timeout15ms)
	}
	wd.OnReset = func() { close(resetC) }

	wd.Arm(Timeout15ms)

	select {
	case pc := <-trapC:
		assert.Equal([]byte{0x12, 0x34}, pc)
	case <-time.After(2 * time.Second):
		require.Fail("trap never fired")
	}

	select {
	case <-resetC:
	case <-time.After(2 * time.Second):
		require.Fail("reset never fired")
	}
}

func TestTimer_RefreshKeepsAlive(t *testing.T) {
	assert := assert.New(t)

	trapC := make(chan []byte, 1)

	wd := &Timer{}
	wd.OnTrap = func(pc []byte) { trapC <- pc }

	wd.Arm(Timeout250ms)
	defer wd.Disarm()

	for range 10 {
		time.Sleep(50 * time.Millisecond)
		wd.Refresh()
	}

	select {
	case <-trapC:
		assert.Fail("trap fired despite refreshes")
	default:
	}
}

func TestTimer_Disarm(t *testing.T) {
	assert := assert.New(t)

	trapC := make(chan []byte, 1)

	wd := &Timer{}
	wd.OnTrap = func(pc []byte) { trapC <- pc }

	wd.Arm(Timeout15ms)
	wd.Disarm()

	time.Sleep(100 * time.Millisecond)

	select {
	case <-trapC:
		assert.Fail("trap fired after disarm")
	default:
	}
}
