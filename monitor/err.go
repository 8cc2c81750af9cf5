package monitor

import (
	"errors"

	"github.com/ezrec/appmon/translate"
)

var f = translate.From

var (
	// Monitor construction errors
	ErrStoreMissing    = errors.New(f("byte store missing"))
	ErrWatchdogMissing = errors.New(f("watchdog missing"))
)
