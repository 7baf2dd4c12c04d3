// Package input holds the backend-independent core of the library: contexts,
// reference-counted seats, live devices, and the narrow contracts through
// which backends, device drivers and library consumers plug together.
package input

import (
	"go.uber.org/zap"
)

// Context is the top-level object of the library. It owns the seat list,
// carries the caller's interface callbacks and dispatches suspend, resume,
// destroy and seat moves to whichever backend created it.
//
// A context is single-threaded: every operation runs to completion on the
// calling goroutine and the core takes no locks.
type Context struct {
	iface    Interface
	backend  Backend
	log      *zap.SugaredLogger
	seats    []*Seat
	observer DeviceObserver
}

// NewContext assembles a context from interface callbacks and a backend.
// Backends wrap this in their own create functions; library consumers
// normally go through those instead.
func NewContext(iface Interface, backend Backend, log *zap.SugaredLogger) (*Context, error) {
	if iface == nil {
		return nil, ErrNilInterface
	}
	if backend == nil {
		return nil, ErrNilBackend
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Context{
		iface:   iface,
		backend: backend,
		log:     log,
	}, nil
}

// Interface returns the caller-supplied device access callbacks.
func (c *Context) Interface() Interface { return c.iface }

// Backend returns the backend the context was created with.
func (c *Context) Backend() Backend { return c.backend }

// Log returns the context logger.
func (c *Context) Log() *zap.SugaredLogger { return c.log }

// SetObserver registers o for device lifecycle notifications. Passing nil
// removes the current observer.
func (c *Context) SetObserver(o DeviceObserver) { c.observer = o }

// Seats returns the live seats in creation order. The slice is a snapshot
// and stays valid while seats are created or destroyed; the seats themselves
// are shared.
func (c *Context) Seats() []*Seat {
	return append([]*Seat(nil), c.seats...)
}

// FindSeat returns the live seat matching both names exactly, or nil. At
// most one seat per name pair exists in a context.
func (c *Context) FindSeat(physical, logical string) *Seat {
	for _, s := range c.seats {
		if s.physicalName == physical && s.logicalName == logical {
			return s
		}
	}
	return nil
}

// NewSeat creates a seat, links it into the context and hands the creation
// reference to the caller. The caller must pair it with an Unref; the seat
// stays alive as long as attached devices hold their membership references.
// At most one live seat exists per name pair: callers resolve with FindSeat
// first and create only on a miss. Creating a duplicate panics.
func (c *Context) NewSeat(physical, logical string) *Seat {
	if c.FindSeat(physical, logical) != nil {
		panic("input: duplicate seat " + physical + ":" + logical)
	}

	s := &Seat{
		ctx:          c,
		physicalName: physical,
		logicalName:  logical,
		refcount:     1,
	}
	c.seats = append(c.seats, s)
	return s
}

// removeSeat unlinks a seat whose last reference is gone. Seats never
// linger at refcount zero.
func (c *Context) removeSeat(seat *Seat) {
	for i, s := range c.seats {
		if s == seat {
			c.seats = append(c.seats[:i], c.seats[i+1:]...)
			return
		}
	}
}

// Suspend disables every device on every seat. Backend registries survive,
// so a later Resume brings the devices back.
func (c *Context) Suspend() {
	c.backend.Suspend(c)
}

// Resume enables everything the backend has registered. On failure the
// context is suspended again before the error is returned: either every
// registered device comes up or none stays up.
func (c *Context) Resume() error {
	return c.backend.Resume(c)
}

// Destroy disables every device and releases the backend's registries. The
// context must not be used afterwards.
func (c *Context) Destroy() {
	c.backend.Suspend(c)
	c.backend.Destroy(c)
}

// ClientBug reports a programming error in the calling program, such as
// handing a context to the wrong backend. The offending call is expected to
// turn into a no-op rather than corrupt state.
func (c *Context) ClientBug(format string, args ...any) {
	c.log.Errorf("client bug: "+format, args...)
}

func (c *Context) notifyAdded(d *Device) {
	if c.observer != nil {
		c.observer.DeviceAdded(d)
	}
}

func (c *Context) notifyRemoved(d *Device) {
	if c.observer != nil {
		c.observer.DeviceRemoved(d)
	}
}
