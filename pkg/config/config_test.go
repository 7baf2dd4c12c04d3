package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/miketth/evseat/pkg/calibstore"
)

const sampleYAML = `
log:
  level: debug
store:
  backend: json
  path: /var/lib/evseat/calibration.json
devices:
  - path: /dev/input/event3
  - path: /dev/input/event4
    seat: kiosk
`

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, calibstore.BackendJSON, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/evseat/calibration.json", cfg.Store.Path)

	require.Len(t, cfg.Devices, 2)
	assert.Equal(t, "/dev/input/event3", cfg.Devices[0].Path)
	assert.Empty(t, cfg.Devices[0].Seat)
	assert.Equal(t, "/dev/input/event4", cfg.Devices[1].Path)
	assert.Equal(t, "kiosk", cfg.Devices[1].Seat)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "devices:\n  - path: /dev/input/event3\n"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, calibstore.BackendSQLite, cfg.Store.Backend)
	assert.Empty(t, cfg.Store.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "log: [broken"))
	assert.Error(t, err)
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_UnknownLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "chatty"
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownLevel)
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = "redis"
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownBackend)
}

func TestValidate_EmptyDevicePath(t *testing.T) {
	cfg := Default()
	cfg.Devices = []DeviceConfig{{Path: ""}}
	assert.ErrorIs(t, cfg.Validate(), ErrEmptyDevicePath)
}

func TestValidate_DuplicateDevicePath(t *testing.T) {
	cfg := Default()
	cfg.Devices = []DeviceConfig{
		{Path: "/dev/input/event3"},
		{Path: "/dev/input/event3", Seat: "kiosk"},
	}
	assert.ErrorIs(t, cfg.Validate(), ErrDuplicateDevice)
}
