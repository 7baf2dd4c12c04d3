package evdev

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"codeberg.org/miketth/evseat/pkg/input"
)

// ID identifies the device model as the kernel reports it. The layout
// matches struct input_id, so it is filled straight from EVIOCGID.
type ID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// Handle is a live evdev device: the open device node plus what probing
// found out about it. It implements input.DeviceHandle, input.Calibratable
// and input.Capable. The node stays open for the handle's lifetime and is
// closed through the interface it was opened with.
type Handle struct {
	file  *os.File
	iface input.Interface

	name string
	id   ID
	caps []input.Capability

	calibration input.CalibrationMatrix
}

// Name returns the kernel-reported device name.
func (h *Handle) Name() string { return h.name }

// ID returns the kernel-reported device identity.
func (h *Handle) ID() ID { return h.id }

// File returns the open device node, for consumers that feed the fd into
// their own event loop.
func (h *Handle) File() *os.File { return h.file }

// Close releases the device node through the opening interface.
func (h *Handle) Close() error {
	h.iface.CloseRestricted(h.file)
	return nil
}

// SetCalibration stores the transformation matrix applied to absolute
// coordinates.
func (h *Handle) SetCalibration(m input.CalibrationMatrix) { h.calibration = m }

// Calibration returns the current calibration matrix, identity unless a
// matrix has been set.
func (h *Handle) Calibration() input.CalibrationMatrix { return h.calibration }

// Has reports whether probing classified the device with the capability.
func (h *Handle) Has(c input.Capability) bool {
	for _, have := range h.caps {
		if have == c {
			return true
		}
	}
	return false
}

// Capabilities returns the capabilities probing found, in a fresh slice.
func (h *Handle) Capabilities() []input.Capability {
	return append([]input.Capability(nil), h.caps...)
}

// probe fills name, identity and capabilities from the open node.
func (h *Handle) probe() error {
	var name [256]byte
	if err := ioctl(h.file, eviocgname(len(name)), unsafe.Pointer(&name[0])); err != nil {
		return fmt.Errorf("device name: %w", err)
	}
	h.name = unix.ByteSliceToString(name[:])

	if err := ioctl(h.file, eviocgid(), unsafe.Pointer(&h.id)); err != nil {
		return fmt.Errorf("device id: %w", err)
	}

	bits, err := h.queryBits()
	if err != nil {
		return err
	}
	h.caps = bits.capabilities()

	return nil
}

// queryBits reads the event-type bitmap and, for each type the device
// delivers, the per-code bitmap.
func (h *Handle) queryBits() (*bitmaps, error) {
	types := make([]byte, bitmapBytes(evMax))
	if err := ioctl(h.file, eviocgbit(0, len(types)), unsafe.Pointer(&types[0])); err != nil {
		return nil, fmt.Errorf("event type bits: %w", err)
	}

	b := &bitmaps{}

	read := func(ev, max int) ([]byte, error) {
		if !bitSet(types, ev) {
			return nil, nil
		}
		buf := make([]byte, bitmapBytes(max))
		if err := ioctl(h.file, eviocgbit(ev, len(buf)), unsafe.Pointer(&buf[0])); err != nil {
			return nil, fmt.Errorf("event code bits for type %#x: %w", ev, err)
		}
		return buf, nil
	}

	var err error
	if b.keys, err = read(evKey, keyMax); err != nil {
		return nil, err
	}
	if b.rels, err = read(evRel, relMax); err != nil {
		return nil, err
	}
	if b.abs, err = read(evAbs, absMax); err != nil {
		return nil, err
	}
	if b.sws, err = read(evSw, swMax); err != nil {
		return nil, err
	}

	return b, nil
}
