package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codeberg.org/miketth/evseat/pkg/input"
)

func newTestStore(t *testing.T, path string) *CalibrationStore {
	t.Helper()

	store, err := NewCalibrationStore(path, zap.NewNop().Sugar())
	require.NoError(t, err)

	return store
}

func TestRoundtrip(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "calibration.db"))
	defer store.Close()

	_, found, err := store.Get("/dev/input/event3")
	require.NoError(t, err)
	assert.False(t, found)

	m := input.CalibrationMatrix{0, -1, 1, 1, 0, 0}
	require.NoError(t, store.Set("/dev/input/event3", m))

	got, found, err := store.Get("/dev/input/event3")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, m, got)
}

func TestSetOverwrites(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "calibration.db"))
	defer store.Close()

	require.NoError(t, store.Set("/dev/input/event3", input.IdentityMatrix()))

	m := input.CalibrationMatrix{2, 0, 0.5, 0, 2, 0.5}
	require.NoError(t, store.Set("/dev/input/event3", m))

	got, found, err := store.Get("/dev/input/event3")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, m, got)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "calibration.db"))
	defer store.Close()

	require.NoError(t, store.Set("/dev/input/event3", input.IdentityMatrix()))
	require.NoError(t, store.Delete("/dev/input/event3"))

	_, found, err := store.Get("/dev/input/event3")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Delete("/dev/input/event3"))
}

// Reopening runs the migrations again; they must be a no-op and the data
// must survive.
func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.db")
	m := input.CalibrationMatrix{2, 0, 0.5, 0, 2, 0.5}

	store := newTestStore(t, path)
	require.NoError(t, store.Set("/dev/input/event3", m))
	require.NoError(t, store.Close())

	reopened := newTestStore(t, path)
	defer reopened.Close()

	got, found, err := reopened.Get("/dev/input/event3")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, m, got)
}
