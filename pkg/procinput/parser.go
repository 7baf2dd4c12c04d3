// Package procinput enumerates the input devices the kernel knows about by
// parsing /proc/bus/input/devices. It answers "which nodes could I add"
// without opening a single device.
package procinput

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultPath is where the kernel exposes the device list.
const DefaultPath = "/proc/bus/input/devices"

var ErrMalformed = errors.New("procinput: malformed device list")

// List parses the kernel's device list from DefaultPath.
func List() ([]SystemDevice, error) {
	f, err := os.Open(DefaultPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", DefaultPath, err)
	}
	defer f.Close()

	devs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", DefaultPath, err)
	}

	return devs, nil
}

// Parse reads stanzas in the /proc/bus/input/devices format. Every stanza
// starts with an I: identity line; a blank line ends it.
func Parse(r io.Reader) ([]SystemDevice, error) {
	var (
		devs []SystemDevice
		cur  *SystemDevice
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			cur = nil
			continue
		}
		if len(line) < 3 || line[1] != ':' || line[2] != ' ' {
			return nil, fmt.Errorf("%w: %q", ErrMalformed, line)
		}

		kind, rest := line[0], line[3:]

		if kind == 'I' {
			devs = append(devs, SystemDevice{})
			cur = &devs[len(devs)-1]
			if err := parseIdentity(cur, rest); err != nil {
				return nil, err
			}
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("%w: %q outside a stanza", ErrMalformed, line)
		}

		switch kind {
		case 'N':
			cur.Name = unquote(strings.TrimPrefix(rest, "Name="))
		case 'P':
			cur.Phys = strings.TrimPrefix(rest, "Phys=")
		case 'S':
			cur.Sysfs = strings.TrimPrefix(rest, "Sysfs=")
		case 'U':
			cur.Uniq = strings.TrimPrefix(rest, "Uniq=")
		case 'H':
			cur.Handlers = strings.Fields(strings.TrimPrefix(rest, "Handlers="))
		case 'B':
			if v, ok := strings.CutPrefix(rest, "EV="); ok {
				bits, err := strconv.ParseUint(v, 16, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: EV bitmap %q", ErrMalformed, v)
				}
				cur.EVBits = bits
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return devs, nil
}

func parseIdentity(d *SystemDevice, s string) error {
	for _, field := range strings.Fields(s) {
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return fmt.Errorf("%w: identity field %q", ErrMalformed, field)
		}
		n, err := strconv.ParseUint(v, 16, 16)
		if err != nil {
			return fmt.Errorf("%w: identity value %q", ErrMalformed, field)
		}

		switch k {
		case "Bus":
			d.Bus = uint16(n)
		case "Vendor":
			d.Vendor = uint16(n)
		case "Product":
			d.Product = uint16(n)
		case "Version":
			d.Version = uint16(n)
		}
	}

	return nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
