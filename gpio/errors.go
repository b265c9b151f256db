package gpio

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArg is wrapped by every validation failure: pin numbers
	// out of range or reserved, attribute codes the variant does not
	// know, nil chip arguments.
	ErrInvalidArg = errors.New("gpio: invalid argument")

	// ErrNotSupported is returned by backends for operations their
	// hardware cannot perform, such as drive strength or sleep hold on
	// hosts without those pad controls.
	ErrNotSupported = errors.New("gpio: not supported")
)

// DriverError reports a failed driver call. The backend's error is
// preserved for errors.Is matching.
type DriverError struct {
	Op  string // driver operation, e.g. "set_level"
	Pin uint32
	Err error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("gpio: %s on pin %d: %v", e.Op, e.Pin, e.Err)
}

func (e *DriverError) Unwrap() error { return e.Err }
