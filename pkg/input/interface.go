package input

import (
	"os"

	"golang.org/x/sys/unix"
)

// Interface supplies privileged device-node access to a context. Compositors
// typically route OpenRestricted through a logind or seatd fd broker; the
// library itself never opens device nodes on its own.
type Interface interface {
	// OpenRestricted opens a device node for the context. The returned file
	// is expected to be open read-write and non-blocking.
	OpenRestricted(path string) (*os.File, error)
	// CloseRestricted closes a file obtained through OpenRestricted.
	CloseRestricted(f *os.File)
}

// DirectInterface opens device nodes directly, without a broker. It works
// for tools running as root or in the input group; compositors should
// supply their own Interface instead.
type DirectInterface struct{}

func (DirectInterface) OpenRestricted(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR|unix.O_NONBLOCK, 0)
}

func (DirectInterface) CloseRestricted(f *os.File) {
	_ = f.Close()
}

// DeviceDriver turns an added device node into a live device on a seat.
// The production implementation lives in the evdev package; tests plug in
// fakes.
type DeviceDriver interface {
	// CreateDevice probes devnode and, when the node is a usable input
	// device, attaches a new device to seat (through Seat.NewDevice) and
	// returns it. Nodes that are not usable input devices yield
	// ErrUnhandledDevice; any other error means the probe itself failed.
	CreateDevice(seat *Seat, devnode, sysname string) (*Device, error)
}

// DeviceObserver receives device lifecycle notifications. Callbacks run
// synchronously inside context operations and must not call back into the
// context. DeviceAdded fires when the device is attached to its seat;
// backend post-configuration such as calibration may still follow.
type DeviceObserver interface {
	DeviceAdded(*Device)
	DeviceRemoved(*Device)
}

// Backend is the set of operations a concrete backend provides to the
// generic context. The context dispatches through it without the seat registry
// knowing which backend is active.
type Backend interface {
	// Resume enables everything the backend has registered, all or nothing.
	Resume(*Context) error
	// Suspend disables every device on every seat.
	Suspend(*Context)
	// Destroy releases the backend's registries. The context runs a suspend
	// sweep first, so Destroy does not walk seats.
	Destroy(*Context)
	// DeviceChangeSeat moves a device to another logical seat by destroying
	// it and enabling a replacement.
	DeviceChangeSeat(device *Device, logicalName string) error
}
