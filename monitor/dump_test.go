package monitor

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/appmon/crashlog"
)

func TestMonitor_Dump(t *testing.T) {
	if crashlog.PC_SIZE != 2 {
		t.Skip("golden output assumes the 2-byte target")
	}

	mon, _, _ := newTestMonitor(t, 10)

	mon.SetData(0xCAFEBABE)
	mon.WatchdogTrap([]byte{0x12, 0x34})
	mon.SetData(0xDEADBEEF)
	mon.WatchdogTrap([]byte{0x56, 0x78})

	var sink bytes.Buffer
	mon.Dump(&sink, true)

	g := goldie.New(t)
	g.Assert(t, "dump", sink.Bytes())
}

func TestMonitor_DumpEmptyHeader(t *testing.T) {
	assert := assert.New(t)

	mon, _, _ := newTestMonitor(t, 10)

	// Without onlyIfPresent an empty log still shows its counters.
	var sink bytes.Buffer
	mon.Dump(&sink, false)

	assert.Contains(sink.String(), "Application Monitor")
	assert.Contains(sink.String(), "Saved reports: 0")
	assert.Contains(sink.String(), "Next report: 0")
}
