package scenario

import (
	"github.com/ezrec/appmon/translate"
)

var f = translate.From

type ErrHookMissing string

func (err ErrHookMissing) Error() string {
	return f("scenario hook %v missing", string(err))
}

type ErrHookNotCallable string

func (err ErrHookNotCallable) Error() string {
	return f("scenario hook %v is not callable", string(err))
}
