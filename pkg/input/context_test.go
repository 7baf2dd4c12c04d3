package input

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeInterface struct{}

func (fakeInterface) OpenRestricted(string) (*os.File, error) {
	return nil, errors.New("no device nodes in tests")
}

func (fakeInterface) CloseRestricted(*os.File) {}

type fakeBackend struct {
	resumeErr error
	resumed   int
	suspended int
	destroyed int
	moves     []string
	moveErr   error
}

func (b *fakeBackend) Resume(*Context) error { b.resumed++; return b.resumeErr }
func (b *fakeBackend) Suspend(*Context)      { b.suspended++ }
func (b *fakeBackend) Destroy(*Context)      { b.destroyed++ }

func (b *fakeBackend) DeviceChangeSeat(d *Device, logical string) error {
	b.moves = append(b.moves, logical)
	return b.moveErr
}

type fakeHandle struct {
	name     string
	closes   int
	closeErr error
}

func (h *fakeHandle) Name() string { return h.name }
func (h *fakeHandle) Close() error { h.closes++; return h.closeErr }

type recordingObserver struct {
	added   []*Device
	removed []*Device
}

func (o *recordingObserver) DeviceAdded(d *Device)   { o.added = append(o.added, d) }
func (o *recordingObserver) DeviceRemoved(d *Device) { o.removed = append(o.removed, d) }

func newTestContext(t *testing.T) (*Context, *fakeBackend) {
	t.Helper()

	b := &fakeBackend{}
	ctx, err := NewContext(fakeInterface{}, b, zap.NewNop().Sugar())
	require.NoError(t, err)

	return ctx, b
}

func TestNewContext_NilInterface(t *testing.T) {
	_, err := NewContext(nil, &fakeBackend{}, nil)
	assert.ErrorIs(t, err, ErrNilInterface)
}

func TestNewContext_NilBackend(t *testing.T) {
	_, err := NewContext(fakeInterface{}, nil, nil)
	assert.ErrorIs(t, err, ErrNilBackend)
}

func TestNewContext_NilLoggerGetsNop(t *testing.T) {
	ctx, err := NewContext(fakeInterface{}, &fakeBackend{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, ctx.Log())
}

func TestNewSeat_CreationReference(t *testing.T) {
	ctx, _ := newTestContext(t)

	seat := ctx.NewSeat("seat0", "default")
	assert.Same(t, seat, ctx.FindSeat("seat0", "default"))
	assert.Len(t, ctx.Seats(), 1)

	seat.Unref()
	assert.Nil(t, ctx.FindSeat("seat0", "default"))
	assert.Empty(t, ctx.Seats())
}

func TestNewSeat_DuplicateNamePairPanics(t *testing.T) {
	ctx, _ := newTestContext(t)

	seat := ctx.NewSeat("seat0", "default")
	assert.Panics(t, func() { ctx.NewSeat("seat0", "default") })

	seat.Unref()
	assert.NotPanics(t, func() { ctx.NewSeat("seat0", "default") })
}

func TestFindSeat_MatchesNamePairExactly(t *testing.T) {
	ctx, _ := newTestContext(t)

	def := ctx.NewSeat("seat0", "default")
	kiosk := ctx.NewSeat("seat0", "kiosk")

	assert.Same(t, def, ctx.FindSeat("seat0", "default"))
	assert.Same(t, kiosk, ctx.FindSeat("seat0", "kiosk"))
	assert.Nil(t, ctx.FindSeat("seat1", "default"))
	assert.Nil(t, ctx.FindSeat("seat0", "other"))
}

func TestSeatRef_PairedUnrefKeepsSeatAlive(t *testing.T) {
	ctx, _ := newTestContext(t)

	seat := ctx.NewSeat("seat0", "default")
	seat.Ref()
	seat.Unref()
	assert.Len(t, ctx.Seats(), 1)

	seat.Unref()
	assert.Empty(t, ctx.Seats())
}

func TestSeatUnref_UnderflowPanics(t *testing.T) {
	ctx, _ := newTestContext(t)

	seat := ctx.NewSeat("seat0", "default")
	seat.Unref()

	assert.Panics(t, func() { seat.Unref() })
}

func TestSeats_ReturnsSnapshot(t *testing.T) {
	ctx, _ := newTestContext(t)

	snap := ctx.Seats()
	ctx.NewSeat("seat0", "default")

	assert.Empty(t, snap)
	assert.Len(t, ctx.Seats(), 1)
}

func TestContext_DispatchesToBackend(t *testing.T) {
	ctx, b := newTestContext(t)

	ctx.Suspend()
	assert.Equal(t, 1, b.suspended)

	b.resumeErr = errors.New("node gone")
	assert.ErrorIs(t, ctx.Resume(), b.resumeErr)
	assert.Equal(t, 1, b.resumed)
}

func TestContextDestroy_SuspendsBeforeBackendDestroy(t *testing.T) {
	ctx, b := newTestContext(t)

	ctx.Destroy()

	assert.Equal(t, 1, b.suspended)
	assert.Equal(t, 1, b.destroyed)
}

func TestClientBug_LogsAtErrorLevel(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	ctx, err := NewContext(fakeInterface{}, &fakeBackend{}, zap.New(core).Sugar())
	require.NoError(t, err)

	ctx.ClientBug("mismatching backends")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "client bug: mismatching backends", entry.Message)
}
