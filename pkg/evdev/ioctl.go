package evdev

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl request encoding, as in asm-generic/ioctl.h. Only the read
// direction is needed here: probing is query-only.
const (
	iocRead = 2

	iocNrShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | size<<iocSizeShift | typ<<iocTypeShift | nr<<iocNrShift
}

// eviocgname is EVIOCGNAME(n): read the device name into an n-byte buffer.
func eviocgname(n int) uintptr {
	return ioc(iocRead, 'E', 0x06, uintptr(n))
}

// eviocgid is EVIOCGID: read the bus/vendor/product/version identity.
func eviocgid() uintptr {
	return ioc(iocRead, 'E', 0x02, unsafe.Sizeof(ID{}))
}

// eviocgbit is EVIOCGBIT(ev, n): read the capability bitmap for event type
// ev into an n-byte buffer. Type 0 selects the bitmap of event types
// itself. The kernel copies its bitmap in whole longs, capped only by n,
// so n must be the destination buffer's length.
func eviocgbit(ev, n int) uintptr {
	return ioc(iocRead, 'E', 0x20+uintptr(ev), uintptr(n))
}

func ioctl(f *os.File, req uintptr, p unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, uintptr(p))
	if errno != 0 {
		return errno
	}
	return nil
}
