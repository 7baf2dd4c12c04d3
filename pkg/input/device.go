package input

// DeviceHandle is the driver-owned half of a live device: whatever the
// driver needs to keep the underlying device open. Handles may additionally
// implement Calibratable and Capable.
type DeviceHandle interface {
	// Name returns the human-readable device name reported by the driver.
	Name() string
	// Close releases the driver resources behind the device.
	Close() error
}

// Calibratable is implemented by handles of devices that accept a
// coordinate calibration, typically anything with absolute axes.
type Calibratable interface {
	SetCalibration(CalibrationMatrix)
	Calibration() CalibrationMatrix
}

// Capable is implemented by handles that report input capabilities.
type Capable interface {
	Has(Capability) bool
	Capabilities() []Capability
}

// Device is one enabled input device attached to a seat. The seat reference
// is a weak back-reference: the seat registry owns seats, and the device's
// membership on the seat's list is what holds the seat alive.
type Device struct {
	devnode string
	sysname string
	seat    *Seat
	handle  DeviceHandle
}

// Devnode returns the device node path the device was created from.
func (d *Device) Devnode() string { return d.devnode }

// Sysname returns the node name derived from the devnode, e.g. "event3".
func (d *Device) Sysname() string { return d.sysname }

// Seat returns the seat the device was attached to.
func (d *Device) Seat() *Seat { return d.seat }

// Handle returns the driver handle behind the device.
func (d *Device) Handle() DeviceHandle { return d.handle }

// Name returns the driver-reported device name.
func (d *Device) Name() string { return d.handle.Name() }

// Has reports whether the device advertises the capability. Devices whose
// handle reports no capabilities at all answer false for everything.
func (d *Device) Has(c Capability) bool {
	if cap, ok := d.handle.(Capable); ok {
		return cap.Has(c)
	}
	return false
}

// Capabilities returns the device's capabilities, or nil when the handle
// does not report any.
func (d *Device) Capabilities() []Capability {
	if cap, ok := d.handle.(Capable); ok {
		return cap.Capabilities()
	}
	return nil
}

// Attached reports whether the device is still on its seat's device list.
// A removed device stays safe to inspect but is detached forever.
func (d *Device) Attached() bool {
	for _, dev := range d.seat.devices {
		if dev == d {
			return true
		}
	}
	return false
}

// SetSeatLogicalName moves the device to the seat with the given logical
// name. The move destroys this device and enables a brand-new one from the
// same devnode under the target seat; the receiver must not be used for
// anything but inspection afterwards. An empty name is an error.
func (d *Device) SetSeatLogicalName(name string) error {
	if name == "" {
		return ErrEmptySeatName
	}
	return d.seat.ctx.backend.DeviceChangeSeat(d, name)
}

// Remove detaches the device from its seat, closes the driver handle and
// releases the membership seat reference, destroying the seat when this was
// its last device. Backends drive this from their removal and suspend
// paths; library consumers go through their backend's remove entry point.
// Removing an already-removed device is a no-op.
func (d *Device) Remove() {
	seat := d.seat
	if !seat.removeDevice(d) {
		return
	}
	if err := d.handle.Close(); err != nil {
		seat.ctx.log.Warnf("%s: closing device handle: %v", d.sysname, err)
	}
	seat.ctx.notifyRemoved(d)
	seat.Unref()
}
