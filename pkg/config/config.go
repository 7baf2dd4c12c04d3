// Package config loads the daemon configuration: log level, calibration
// store selection and the device nodes to add at startup.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"codeberg.org/miketth/evseat/pkg/calibstore"
)

type Config struct {
	Log     LogConfig      `yaml:"log"`
	Store   StoreConfig    `yaml:"store"`
	Devices []DeviceConfig `yaml:"devices"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	// Path of the store file. Empty selects a per-user default under the
	// XDG state directory.
	Path string `yaml:"path"`
}

type DeviceConfig struct {
	Path string `yaml:"path"`
	// Seat is the logical seat the device starts on. Empty means the
	// default seat.
	Seat string `yaml:"seat"`
}

var (
	ErrEmptyDevicePath = errors.New("config: empty device path")
	ErrDuplicateDevice = errors.New("config: duplicate device path")
	ErrUnknownLevel    = errors.New("config: unknown log level")
	ErrUnknownBackend  = errors.New("config: unknown store backend")
)

// Default returns the configuration used when no file is given: info
// logging, sqlite store, no devices.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info"},
		Store: StoreConfig{Backend: calibstore.BackendSQLite},
	}
}

// Load reads and validates the file at path. File values override the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLevel, c.Log.Level)
	}

	switch c.Store.Backend {
	case calibstore.BackendMemory, calibstore.BackendJSON, calibstore.BackendSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Store.Backend)
	}

	seen := make(map[string]bool, len(c.Devices))
	for _, d := range c.Devices {
		if d.Path == "" {
			return ErrEmptyDevicePath
		}
		if seen[d.Path] {
			return fmt.Errorf("%w: %q", ErrDuplicateDevice, d.Path)
		}
		seen[d.Path] = true
	}

	return nil
}
