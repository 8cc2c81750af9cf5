package config

import (
	"errors"

	"github.com/ezrec/appmon/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrMemorySize     = errors.New(f("memory size must be positive"))
	ErrLayoutOverflow = errors.New(f("crash log does not fit the memory"))
	ErrTimeoutName    = errors.New(f("unknown watchdog timeout"))
	ErrStep           = errors.New(f("step must be positive"))
	ErrIterations     = errors.New(f("iterations must not be negative"))
)
