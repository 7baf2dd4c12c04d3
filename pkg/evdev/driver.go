// Package evdev is the production device driver for Linux evdev nodes. It
// opens a node through the context's interface, probes name, identity and
// capability bitmaps via ioctl, and hands back a handle only for nodes
// that deliver input a seat can use. Event decoding is not its business:
// consumers read the open file themselves.
package evdev

import (
	"fmt"

	"codeberg.org/miketth/evseat/pkg/input"
)

// Driver creates devices from evdev nodes. The zero value is ready to use.
type Driver struct{}

// NewDriver returns the evdev driver.
func NewDriver() *Driver {
	return &Driver{}
}

// CreateDevice opens devnode through the seat's context interface, probes
// it and attaches it to the seat. Nodes that advertise none of the
// recognized capabilities are closed again and reported with
// input.ErrUnhandledDevice: an accelerometer or a PC speaker is a working
// evdev node, just not one a seat has any use for.
func (d *Driver) CreateDevice(seat *input.Seat, devnode, sysname string) (*input.Device, error) {
	iface := seat.Context().Interface()

	f, err := iface.OpenRestricted(devnode)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	h := &Handle{
		file:        f,
		iface:       iface,
		calibration: input.IdentityMatrix(),
	}

	if err := h.probe(); err != nil {
		iface.CloseRestricted(f)
		return nil, fmt.Errorf("probe: %w", err)
	}

	if len(h.caps) == 0 {
		iface.CloseRestricted(f)
		return nil, input.ErrUnhandledDevice
	}

	return seat.NewDevice(devnode, sysname, h), nil
}
