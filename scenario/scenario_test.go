package scenario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/appmon/monitor"
	"github.com/ezrec/appmon/nvram"
	"github.com/ezrec/appmon/watchdog"
)

func newTestRig(t *testing.T) (mon *monitor.Monitor, sim *watchdog.Sim) {
	t.Helper()

	sim = &watchdog.Sim{Context: watchdog.NewCallStack(8, 2)}

	mon, err := monitor.NewMonitor(nvram.NewMemory(1024), sim,
		monitor.DEFAULT_BASE_ADDRESS, monitor.DEFAULT_MAX_ENTRIES)
	require.NoError(t, err)
	sim.OnTrap = mon.WatchdogTrap

	return
}

func TestScenario_RunToHang(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	const script = `
def loop(n):
    alive()
    set_data(n)
    if n == 3:
        hang()
`

	mon, sim := newTestRig(t)
	sc, err := Load("hang.star", script, mon)
	require.NoError(err)

	mon.Arm(watchdog.Timeout1s)
	require.NoError(sc.Run(sim, 100, 200*time.Millisecond))

	assert.True(sc.Hung())
	assert.Equal(1, sim.Traps)
	assert.Equal(1, sim.Resets)

	// The report captured the diagnostic word from the hung iteration.
	for _, rep := range mon.Reports() {
		assert.Equal(uint32(3), rep.Data)
	}
	hdr := mon.LoadHeader()
	assert.Equal(uint8(1), hdr.SavedReports)
}

func TestScenario_RunHealthy(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	const script = `
def setup():
    set_data(0xC0FFEE)

def loop(n):
    alive()
`

	mon, sim := newTestRig(t)
	sc, err := Load("healthy.star", script, mon)
	require.NoError(err)

	mon.Arm(watchdog.Timeout1s)
	require.NoError(sc.Run(sim, 50, 200*time.Millisecond))

	assert.False(sc.Hung())
	assert.Equal(0, sim.Traps)
	assert.Equal(uint32(0xC0FFEE), mon.GetData())
}

func TestScenario_Defines(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	const script = `
def loop(n):
    set_data(MAX_ENTRIES)
`

	mon, _ := newTestRig(t)
	sc, err := Load("defines.star", script, mon)
	require.NoError(err)

	require.NoError(sc.Step(0))

	assert.Equal(uint32(monitor.DEFAULT_MAX_ENTRIES), mon.GetData())
}

func TestScenario_LoopMissing(t *testing.T) {
	assert := assert.New(t)

	mon, _ := newTestRig(t)
	_, err := Load("empty.star", "x = 1\n", mon)

	assert.ErrorIs(err, ErrHookMissing("loop"))
}

func TestScenario_Data(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	const script = `
def loop(n):
    set_data(data() + 1)
`

	mon, _ := newTestRig(t)
	sc, err := Load("count.star", script, mon)
	require.NoError(err)

	for n := range 5 {
		require.NoError(sc.Step(n))
	}

	assert.Equal(uint32(5), mon.GetData())
}
