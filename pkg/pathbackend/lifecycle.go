package pathbackend

import (
	"errors"
	"fmt"

	"codeberg.org/miketth/evseat/pkg/input"
)

// enablePath resolves the seat for rec and asks the driver for a device.
// The physical seat name is always the default because added paths carry no
// seat hints; logicalOverride selects the logical name, falling back to the
// default when empty.
//
// The local seat reference taken here is released unconditionally after the
// driver call: on success the device's membership keeps the seat alive, and
// on failure a seat created just for this device must go away again.
func (b *Backend) enablePath(ctx *input.Context, rec *pathRecord, logicalOverride string) (*input.Device, error) {
	log := ctx.Log()

	logical := DefaultSeatLogical
	if logicalOverride != "" {
		logical = logicalOverride
	}

	seat := ctx.FindSeat(DefaultSeatPhysical, logical)
	if seat != nil {
		seat.Ref()
	} else {
		seat = ctx.NewSeat(DefaultSeatPhysical, logical)
	}

	dev, err := b.driver.CreateDevice(seat, rec.devnode, rec.sysname)
	seat.Unref()

	switch {
	case errors.Is(err, input.ErrUnhandledDevice):
		log.Infof("%-7s - not using input device '%s'", rec.sysname, rec.devnode)
		return nil, err
	case err != nil:
		log.Infof("%-7s - failed to create input device '%s': %v", rec.sysname, rec.devnode, err)
		return nil, err
	case dev == nil:
		log.Infof("%-7s - failed to create input device '%s'", rec.sysname, rec.devnode)
		return nil, errNoDevice
	}

	b.applyCalibration(ctx, dev)

	return dev, nil
}

var errNoDevice = errors.New("driver returned no device")

// applyCalibration hands the stored matrix for the devnode, if any, to
// calibratable device handles. Store trouble downgrades to a warning: the
// device stays enabled, only uncalibrated.
func (b *Backend) applyCalibration(ctx *input.Context, dev *input.Device) {
	if b.calib == nil {
		return
	}
	cal, ok := dev.Handle().(input.Calibratable)
	if !ok {
		return
	}

	m, found, err := b.calib.Get(dev.Devnode())
	if err != nil {
		ctx.Log().Warnf("%s: calibration lookup for '%s': %v", dev.Sysname(), dev.Devnode(), err)
		return
	}
	if !found {
		return
	}

	cal.SetCalibration(m)
	ctx.Log().Debugf("%s: applied stored calibration to '%s'", dev.Sysname(), dev.Devnode())
}

// createDevice registers devnode and enables it. The fresh record is rolled
// back when no device comes up, so a failed add leaves no trace in the
// registry.
func (b *Backend) createDevice(ctx *input.Context, devnode, logicalOverride string) (*input.Device, error) {
	rec := b.addPath(devnode)

	dev, err := b.enablePath(ctx, rec, logicalOverride)
	if dev == nil {
		b.removePath(rec.devnode)
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnusable, err)
	}
	return dev, nil
}

// removeDevice is the removal shared by the public entry point and the
// change-seat path. Only an attached device unlinks its path record; a
// device that is already gone leaves the registry alone, which keeps
// removal idempotent even when the same devnode has been re-added since.
func (b *Backend) removeDevice(device *input.Device) {
	if !device.Attached() {
		return
	}

	b.removePath(device.Devnode())

	seat := device.Seat()
	seat.Ref()
	device.Remove()
	seat.Unref()
}

// Resume enables every registered path with default seat names. The first
// path that fails to come back aborts the resume: everything enabled so far
// is disabled again and the failure is reported, so the context never ends
// up half-resumed.
func (b *Backend) Resume(ctx *input.Context) error {
	for _, rec := range b.paths {
		if _, err := b.enablePath(ctx, rec, ""); err != nil {
			b.Suspend(ctx)
			return fmt.Errorf("resume '%s': %w", rec.devnode, err)
		}
	}
	return nil
}

// Suspend disables every device on every seat. Each seat is pinned with a
// reference for the duration of its sweep: removing the last device would
// otherwise destroy the seat mid-iteration. Path records survive, so a
// later Resume recreates every device.
func (b *Backend) Suspend(ctx *input.Context) {
	for _, seat := range ctx.Seats() {
		seat.Ref()
		for _, dev := range seat.Devices() {
			dev.Remove()
		}
		seat.Unref()
	}
}

// Destroy drops the path registry. Seats need no teardown of their own:
// the suspend sweep that precedes backend destruction removes every device,
// and the last device of a seat takes the seat with it.
func (b *Backend) Destroy(*input.Context) {
	b.paths = nil
}

// DeviceChangeSeat moves device to the logical seat named logical. The move
// is destructive: the device is removed from both registries and re-added
// from scratch, so when enabling under the new name fails the device is
// gone rather than restored to its old seat.
func (b *Backend) DeviceChangeSeat(device *input.Device, logical string) error {
	if !device.Attached() {
		return ErrDeviceRemoved
	}

	ctx := device.Seat().Context()
	devnode := device.Devnode()

	b.removeDevice(device)

	if _, err := b.createDevice(ctx, devnode, logical); err != nil {
		return fmt.Errorf("recreate '%s': %w", devnode, err)
	}
	return nil
}
