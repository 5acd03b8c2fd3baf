package observerx

import "github.com/pkg/errors"

// ErrIndexOutOfRange is returned when removing an observer at a position
// outside [0, len).
var ErrIndexOutOfRange = errors.New("observer index out of range")

func indexOutOfRange(index, length int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "remove observer at %d (have %d)", index, length)
}
