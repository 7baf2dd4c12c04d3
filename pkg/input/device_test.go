package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type capableHandle struct {
	fakeHandle
	caps []Capability
}

func (h *capableHandle) Has(c Capability) bool {
	for _, have := range h.caps {
		if have == c {
			return true
		}
	}
	return false
}

func (h *capableHandle) Capabilities() []Capability { return h.caps }

func TestNewDevice_MembershipKeepsSeatAlive(t *testing.T) {
	ctx, _ := newTestContext(t)
	obs := &recordingObserver{}
	ctx.SetObserver(obs)

	seat := ctx.NewSeat("seat0", "default")
	dev := seat.NewDevice("/dev/input/event3", "event3", &fakeHandle{name: "kbd"})
	seat.Unref()

	assert.Len(t, ctx.Seats(), 1)
	assert.Equal(t, []*Device{dev}, seat.Devices())
	assert.Equal(t, []*Device{dev}, obs.added)
	assert.True(t, dev.Attached())

	dev.Remove()

	assert.Empty(t, ctx.Seats())
	assert.False(t, dev.Attached())
	assert.Equal(t, []*Device{dev}, obs.removed)
}

func TestDeviceRemove_ClosesHandleOnce(t *testing.T) {
	ctx, _ := newTestContext(t)
	obs := &recordingObserver{}
	ctx.SetObserver(obs)

	seat := ctx.NewSeat("seat0", "default")
	h := &fakeHandle{name: "kbd"}
	dev := seat.NewDevice("/dev/input/event3", "event3", h)
	seat.Unref()

	dev.Remove()
	dev.Remove()

	assert.Equal(t, 1, h.closes)
	assert.Len(t, obs.removed, 1)
}

func TestDeviceRemove_WarnsOnCloseError(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx, err := NewContext(fakeInterface{}, &fakeBackend{}, zap.New(core).Sugar())
	require.NoError(t, err)

	seat := ctx.NewSeat("seat0", "default")
	h := &fakeHandle{name: "kbd", closeErr: errors.New("ebadf")}
	dev := seat.NewDevice("/dev/input/event3", "event3", h)
	seat.Unref()

	dev.Remove()

	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "closing device handle")
	assert.False(t, dev.Attached())
}

func TestDevice_Accessors(t *testing.T) {
	ctx, _ := newTestContext(t)

	seat := ctx.NewSeat("seat0", "default")
	h := &fakeHandle{name: "Some Keyboard"}
	dev := seat.NewDevice("/dev/input/event3", "event3", h)

	assert.Equal(t, "/dev/input/event3", dev.Devnode())
	assert.Equal(t, "event3", dev.Sysname())
	assert.Equal(t, "Some Keyboard", dev.Name())
	assert.Same(t, seat, dev.Seat())
	assert.Same(t, DeviceHandle(h), dev.Handle())
}

func TestDeviceCapabilities_PlainHandle(t *testing.T) {
	ctx, _ := newTestContext(t)

	seat := ctx.NewSeat("seat0", "default")
	dev := seat.NewDevice("/dev/input/event3", "event3", &fakeHandle{})

	assert.False(t, dev.Has(CapKeyboard))
	assert.Nil(t, dev.Capabilities())
}

func TestDeviceCapabilities_CapableHandle(t *testing.T) {
	ctx, _ := newTestContext(t)

	seat := ctx.NewSeat("seat0", "default")
	h := &capableHandle{caps: []Capability{CapPointer, CapTouch}}
	dev := seat.NewDevice("/dev/input/event3", "event3", h)

	assert.True(t, dev.Has(CapPointer))
	assert.True(t, dev.Has(CapTouch))
	assert.False(t, dev.Has(CapKeyboard))
	assert.Equal(t, []Capability{CapPointer, CapTouch}, dev.Capabilities())
}

func TestSetSeatLogicalName_EmptyName(t *testing.T) {
	ctx, b := newTestContext(t)

	seat := ctx.NewSeat("seat0", "default")
	dev := seat.NewDevice("/dev/input/event3", "event3", &fakeHandle{})

	assert.ErrorIs(t, dev.SetSeatLogicalName(""), ErrEmptySeatName)
	assert.Empty(t, b.moves)
}

func TestSetSeatLogicalName_DispatchesToBackend(t *testing.T) {
	ctx, b := newTestContext(t)

	seat := ctx.NewSeat("seat0", "default")
	dev := seat.NewDevice("/dev/input/event3", "event3", &fakeHandle{})

	require.NoError(t, dev.SetSeatLogicalName("kiosk"))
	assert.Equal(t, []string{"kiosk"}, b.moves)

	b.moveErr = errors.New("enable failed")
	assert.ErrorIs(t, dev.SetSeatLogicalName("other"), b.moveErr)
}

func TestCapability_String(t *testing.T) {
	assert.Equal(t, "keyboard", CapKeyboard.String())
	assert.Equal(t, "pointer", CapPointer.String())
	assert.Equal(t, "touch", CapTouch.String())
	assert.Equal(t, "switch", CapSwitch.String())
	assert.Equal(t, "unknown", Capability(99).String())
}

func TestCalibrationMatrix_Identity(t *testing.T) {
	assert.True(t, IdentityMatrix().IsIdentity())

	m := IdentityMatrix()
	m[2] = 12.5
	assert.False(t, m.IsIdentity())
}
