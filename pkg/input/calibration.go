package input

// Capability classifies what kind of input a device delivers.
type Capability int

const (
	CapKeyboard Capability = iota
	CapPointer
	CapTouch
	CapSwitch
)

func (c Capability) String() string {
	switch c {
	case CapKeyboard:
		return "keyboard"
	case CapPointer:
		return "pointer"
	case CapTouch:
		return "touch"
	case CapSwitch:
		return "switch"
	}
	return "unknown"
}

// CalibrationMatrix holds the first two rows of a 3x3 affine transform
// applied to absolute device coordinates, in row-major order:
//
//	[ a b c ]   [x]
//	[ d e f ] * [y]
//	[ 0 0 1 ]   [1]
type CalibrationMatrix [6]float32

// IdentityMatrix returns the calibration that leaves coordinates untouched.
func IdentityMatrix() CalibrationMatrix {
	return CalibrationMatrix{1, 0, 0, 0, 1, 0}
}

// IsIdentity reports whether the matrix changes nothing.
func (m CalibrationMatrix) IsIdentity() bool {
	return m == IdentityMatrix()
}
