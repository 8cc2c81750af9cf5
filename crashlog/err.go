package crashlog

import (
	"errors"

	"github.com/ezrec/appmon/translate"
)

var f = translate.From

var (
	// Layout configuration errors
	ErrBaseAddress = errors.New(f("base address negative"))
	ErrMaxEntries  = errors.New(f("max entries out of range"))
)
