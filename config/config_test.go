package config

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/appmon/crashlog"
	"github.com/ezrec/appmon/watchdog"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.NoError(cfg.Validate())
	assert.Equal(watchdog.Timeout4s, cfg.WatchdogTimeout())
	assert.Equal(500, cfg.BaseAddress)
	assert.Equal(10, cfg.MaxEntries)
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	const doc = `
image: crash.nvram
memory_size: 2048
base_address: 100
max_entries: 16
timeout: 2s
step_ms: 50
iterations: 40
scenario: demo.star
`

	cfg, err := Load(strings.NewReader(doc))
	require.NoError(err)

	assert.Equal("crash.nvram", cfg.Image)
	assert.Equal(2048, cfg.MemorySize)
	assert.Equal(100, cfg.BaseAddress)
	assert.Equal(16, cfg.MaxEntries)
	assert.Equal(watchdog.Timeout2s, cfg.WatchdogTimeout())
	assert.Equal("50ms", cfg.Step().String())
	assert.Equal("demo.star", cfg.Scenario)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	cfg, err := Load(strings.NewReader("timeout: 1s\n"))
	require.NoError(err)

	assert.Equal(watchdog.Timeout1s, cfg.WatchdogTimeout())
	assert.Equal(Default().BaseAddress, cfg.BaseAddress)
	assert.Equal(Default().MaxEntries, cfg.MaxEntries)
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Mutate func(cfg *Config)
		Err    error
	}){
		{Mutate: func(cfg *Config) {}},
		{Mutate: func(cfg *Config) { cfg.MemorySize = 0 }, Err: ErrMemorySize},
		{Mutate: func(cfg *Config) { cfg.MaxEntries = 0 }, Err: crashlog.ErrMaxEntries},
		{Mutate: func(cfg *Config) { cfg.BaseAddress = -5 }, Err: crashlog.ErrBaseAddress},
		{Mutate: func(cfg *Config) { cfg.BaseAddress = 1020 }, Err: ErrLayoutOverflow},
		{Mutate: func(cfg *Config) { cfg.Timeout = "11s" }, Err: ErrTimeoutName},
		{Mutate: func(cfg *Config) { cfg.StepMs = 0 }, Err: ErrStep},
		{Mutate: func(cfg *Config) { cfg.Iterations = -1 }, Err: ErrIterations},
	}

	for n, testcase := range table {
		cfg := Default()
		testcase.Mutate(&cfg)

		err := cfg.Validate()
		if testcase.Err != nil {
			assert.ErrorIs(err, testcase.Err, fmt.Sprintf("case %d", n))
		} else {
			assert.NoError(err, fmt.Sprintf("case %d", n))
		}
	}
}
