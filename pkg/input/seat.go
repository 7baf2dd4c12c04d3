package input

// Seat is a named grouping of input devices, identified by its physical and
// logical name pair. Seats are created on demand when the first device
// resolves to a name pair and destroyed the moment the last reference goes:
// each attached device holds one membership reference, and operations that
// sweep a seat pin it with a reference of their own for the duration.
type Seat struct {
	ctx          *Context
	physicalName string
	logicalName  string
	refcount     int
	devices      []*Device
}

// PhysicalName returns the seat's physical name, e.g. "seat0".
func (s *Seat) PhysicalName() string { return s.physicalName }

// LogicalName returns the seat's logical name, e.g. "default".
func (s *Seat) LogicalName() string { return s.logicalName }

// Context returns the context owning the seat.
func (s *Seat) Context() *Context { return s.ctx }

// Devices returns the attached devices in attach order. The slice is a
// snapshot: removing devices while iterating it is safe.
func (s *Seat) Devices() []*Device {
	return append([]*Device(nil), s.devices...)
}

// Ref takes a reference on the seat and returns it.
func (s *Seat) Ref() *Seat {
	s.refcount++
	return s
}

// Unref releases one reference. Dropping the last reference unlinks the
// seat from its context immediately; a seat is never kept around at
// refcount zero. Every Ref must be paired with exactly one Unref, on error
// paths too.
func (s *Seat) Unref() {
	if s.refcount <= 0 {
		panic("input: seat refcount underflow")
	}
	s.refcount--
	if s.refcount == 0 {
		s.ctx.removeSeat(s)
	}
}

// NewDevice attaches a freshly created device to the seat and takes the
// membership reference that keeps the seat alive while the device is on it.
// Device drivers call this once their probe succeeded.
func (s *Seat) NewDevice(devnode, sysname string, handle DeviceHandle) *Device {
	d := &Device{
		seat:    s,
		devnode: devnode,
		sysname: sysname,
		handle:  handle,
	}
	s.Ref()
	s.devices = append(s.devices, d)
	s.ctx.notifyAdded(d)
	return d
}

// removeDevice unlinks dev from the device list. It reports false when the
// device is not attached, which keeps removal idempotent.
func (s *Seat) removeDevice(dev *Device) bool {
	for i, d := range s.devices {
		if d == dev {
			s.devices = append(s.devices[:i], s.devices[i+1:]...)
			return true
		}
	}
	return false
}
