package evdev

import "codeberg.org/miketth/evseat/pkg/input"

// Kernel constants from linux/input-event-codes.h, limited to what the
// capability classification needs.
const (
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03
	evSw  = 0x05
	evMax = 0x1f

	keyMax = 0x2ff
	relMax = 0x0f
	absMax = 0x3f
	swMax  = 0x10

	keyEsc = 0x01
	keyD   = 0x20

	relX = 0x00
	relY = 0x01

	absX      = 0x00
	absY      = 0x01
	absMTSlot = 0x2f

	btnLeft  = 0x110
	btnTouch = 0x14a
)

// bitmaps holds the kernel capability bitmaps of one device node. The
// slices are little-endian bit arrays as EVIOCGBIT returns them; a nil
// slice means the device does not deliver that event type at all.
type bitmaps struct {
	keys []byte
	rels []byte
	abs  []byte
	sws  []byte
}

// bitmapBytes returns the buffer length for the bitmap of codes 0..max.
// The kernel copies bitmaps out in whole longs, so buffers are sized in
// longs even when max ends mid-long.
func bitmapBytes(max int) int {
	return (max/64 + 1) * 8
}

// bitSet reports whether bit is set. Bits beyond the bitmap are unset.
func bitSet(bits []byte, bit int) bool {
	if bit/8 >= len(bits) {
		return false
	}
	return bits[bit/8]&(1<<(bit%8)) != 0
}

// capabilities classifies the bitmaps into what a seat cares about: the
// kind of input the node delivers, not the exact codes it advertises.
func (b *bitmaps) capabilities() []input.Capability {
	var caps []input.Capability

	if b.isKeyboard() {
		caps = append(caps, input.CapKeyboard)
	}
	if b.isPointer() {
		caps = append(caps, input.CapPointer)
	}
	if b.isTouch() {
		caps = append(caps, input.CapTouch)
	}
	if b.isSwitch() {
		caps = append(caps, input.CapSwitch)
	}
	return caps
}

// isKeyboard requires a key from the classic alphanumeric block. Gamepads,
// remotes and headset buttons have EV_KEY too but sit outside it.
func (b *bitmaps) isKeyboard() bool {
	for code := keyEsc; code <= keyD; code++ {
		if bitSet(b.keys, code) {
			return true
		}
	}
	return false
}

func (b *bitmaps) isPointer() bool {
	return bitSet(b.rels, relX) && bitSet(b.rels, relY) && bitSet(b.keys, btnLeft)
}

// isTouch accepts both multitouch slots and the single-touch combination
// of absolute axes with a touch button.
func (b *bitmaps) isTouch() bool {
	if bitSet(b.abs, absMTSlot) {
		return true
	}
	return bitSet(b.abs, absX) && bitSet(b.abs, absY) && bitSet(b.keys, btnTouch)
}

func (b *bitmaps) isSwitch() bool {
	for code := 0; code <= swMax; code++ {
		if bitSet(b.sws, code) {
			return true
		}
	}
	return false
}
