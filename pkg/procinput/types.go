package procinput

import "strings"

// SystemDevice is one stanza of /proc/bus/input/devices.
type SystemDevice struct {
	Bus     uint16
	Vendor  uint16
	Product uint16
	Version uint16

	Name     string
	Phys     string
	Sysfs    string
	Uniq     string
	Handlers []string

	// EVBits is the bitmap of event types from the B: EV= line.
	EVBits uint64
}

// EventNode returns the /dev/input node behind the device's evdev handler,
// or the empty string when the device has none.
func (d *SystemDevice) EventNode() string {
	for _, h := range d.Handlers {
		if strings.HasPrefix(h, "event") {
			return "/dev/input/" + h
		}
	}
	return ""
}
