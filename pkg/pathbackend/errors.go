package pathbackend

import "errors"

var (
	// ErrWrongBackend is returned when a path operation is invoked on a
	// context that was not created by this backend.
	ErrWrongBackend = errors.New("pathbackend: context is not using the path backend")

	// ErrDeviceUnusable is returned when a registered path cannot be
	// turned into a usable device.
	ErrDeviceUnusable = errors.New("pathbackend: device could not be enabled")

	// ErrEmptyPath is returned when an empty device path is added.
	ErrEmptyPath = errors.New("pathbackend: empty device path")

	// ErrDeviceRemoved is returned when an operation targets a device
	// that has already been removed.
	ErrDeviceRemoved = errors.New("pathbackend: device already removed")
)
