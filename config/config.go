// Package config loads the YAML run configuration for the appmon demo.
package config

import (
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/appmon/crashlog"
	"github.com/ezrec/appmon/monitor"
	"github.com/ezrec/appmon/watchdog"
)

// Config describes one demo run: where the non-volatile image lives,
// the crash log layout inside it, the armed timeout, and the scenario
// that stands in for the application loop.
type Config struct {
	Image       string `yaml:"image"`        // NVRAM image file, created if absent.
	MemorySize  int    `yaml:"memory_size"`  // Byte store size in bytes.
	BaseAddress int    `yaml:"base_address"` // Crash log base offset.
	MaxEntries  int    `yaml:"max_entries"`  // Report slot count.
	Timeout     string `yaml:"timeout"`      // Watchdog timeout name ("15ms".."8s").
	StepMs      int    `yaml:"step_ms"`      // Loop step period in milliseconds.
	Iterations  int    `yaml:"iterations"`   // Loop steps before the run ends.
	Scenario    string `yaml:"scenario"`     // Scenario script path; empty for the built-in.
}

// Default returns the configuration matching the original demo:
// a 1KiB store with the log at offset 500, ten slots, a 4s timeout,
// and a 200ms loop step.
func Default() Config {
	return Config{
		Image:       "appmon.nvram",
		MemorySize:  1024,
		BaseAddress: monitor.DEFAULT_BASE_ADDRESS,
		MaxEntries:  monitor.DEFAULT_MAX_ENTRIES,
		Timeout:     watchdog.Timeout4s.String(),
		StepMs:      200,
		Iterations:  20,
	}
}

// Load reads a configuration, applying defaults for absent fields.
func Load(file io.Reader) (cfg Config, err error) {
	cfg = Default()

	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return
	}

	err = cfg.Validate()

	return
}

// LoadFile reads and validates the configuration file at path.
func LoadFile(path string) (cfg Config, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	return Load(file)
}

// Validate checks the configuration without mutating it.
func (cfg *Config) Validate() (err error) {
	if cfg.MemorySize <= 0 {
		return ErrMemorySize
	}

	layout, err := crashlog.NewLayout(cfg.BaseAddress, cfg.MaxEntries)
	if err != nil {
		return
	}
	if cfg.BaseAddress+layout.Size() > cfg.MemorySize {
		return ErrLayoutOverflow
	}

	if _, ok := watchdog.TimeoutByName(cfg.Timeout); !ok {
		return ErrTimeoutName
	}

	if cfg.StepMs <= 0 {
		return ErrStep
	}
	if cfg.Iterations < 0 {
		return ErrIterations
	}

	return
}

// WatchdogTimeout returns the configured watchdog timeout.
func (cfg *Config) WatchdogTimeout() (t watchdog.Timeout) {
	t, _ = watchdog.TimeoutByName(cfg.Timeout)

	return
}

// Step returns the loop step period.
func (cfg *Config) Step() time.Duration {
	return time.Duration(cfg.StepMs) * time.Millisecond
}
