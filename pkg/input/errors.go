package input

import "errors"

var (
	// ErrUnhandledDevice is returned by device drivers for nodes that are
	// not usable input devices: wrong device class, no input capabilities.
	// It is an informational outcome, not a failure.
	ErrUnhandledDevice = errors.New("input: device not handled")

	// ErrNilInterface is returned when a context is created without
	// interface callbacks.
	ErrNilInterface = errors.New("input: nil interface")

	// ErrNilBackend is returned when a context is created without a
	// backend.
	ErrNilBackend = errors.New("input: nil backend")

	// ErrEmptySeatName is returned when a seat move is requested with an
	// empty logical name.
	ErrEmptySeatName = errors.New("input: empty seat name")
)
