// Package pathbackend manages seats for explicitly added device nodes. It
// is the backend for setups without hotplug discovery: kiosks, embedded
// compositors and tests hand it concrete /dev/input paths, and it takes
// care of seat grouping, enable/disable transitions and seat moves.
package pathbackend

import (
	"go.uber.org/zap"

	"codeberg.org/miketth/evseat/pkg/calibstore"
	"codeberg.org/miketth/evseat/pkg/evdev"
	"codeberg.org/miketth/evseat/pkg/input"
)

// Default seat names for devices added through this backend. Explicitly
// added paths carry no seat hints, so every device lands on the default
// physical seat; only the logical name can be changed, through
// Device.SetSeatLogicalName.
const (
	DefaultSeatPhysical = "seat0"
	DefaultSeatLogical  = "default"
)

// Backend implements input.Backend for explicitly added device paths. It
// owns the path registry: one record per added devnode, kept independent of
// seat membership so that suspended devices can be resumed.
type Backend struct {
	paths  []*pathRecord
	driver input.DeviceDriver
	calib  calibstore.Store
}

// CreateContext creates a context running the path backend. driver may be
// nil for the production evdev driver, calib may be nil to skip stored
// calibration, log may be nil for no logging.
func CreateContext(iface input.Interface, driver input.DeviceDriver, calib calibstore.Store, log *zap.SugaredLogger) (*input.Context, error) {
	if driver == nil {
		driver = evdev.NewDriver()
	}

	b := &Backend{
		driver: driver,
		calib:  calib,
	}

	return input.NewContext(iface, b, log)
}

// AddDevice registers a device node with ctx and enables it. The context
// must have been created by CreateContext: handing in a context running a
// different backend is a client bug and does nothing beyond logging one.
// When the node cannot be enabled, the path registration is rolled back and
// ErrDeviceUnusable is returned; the reasons are in the context log.
func AddDevice(ctx *input.Context, devnode string) (*input.Device, error) {
	b, ok := ctx.Backend().(*Backend)
	if !ok {
		ctx.ClientBug("mismatching backends")
		return nil, ErrWrongBackend
	}
	if devnode == "" {
		return nil, ErrEmptyPath
	}

	return b.createDevice(ctx, devnode, "")
}

// RemoveDevice unregisters the device's path and disables the device.
// Removing a device twice is a no-op, as is handing in a device from a
// context running a different backend (a client bug, logged as such).
func RemoveDevice(device *input.Device) {
	ctx := device.Seat().Context()
	b, ok := ctx.Backend().(*Backend)
	if !ok {
		ctx.ClientBug("mismatching backends")
		return
	}

	b.removeDevice(device)
}
