package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"codeberg.org/miketth/evseat/pkg/calibstore"
	"codeberg.org/miketth/evseat/pkg/config"
	"codeberg.org/miketth/evseat/pkg/input"
	"codeberg.org/miketth/evseat/pkg/pathbackend"
)

// loadConfig reads the --config file, or the default location when the
// flag is unset. A missing file at the default location is fine and yields
// the defaults; a missing explicit one is an error.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = filepath.Join(xdg.ConfigHome, "evseat", "config.yaml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return config.Default(), nil
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// openStore opens the configured calibration store. File-backed stores
// default to the XDG state directory unless the config names a path.
func openStore(cfg *config.Config, log *zap.SugaredLogger) (calibstore.Store, error) {
	path := cfg.Store.Path
	if path == "" && cfg.Store.Backend != calibstore.BackendMemory {
		name := "calibration.db"
		if cfg.Store.Backend == calibstore.BackendJSON {
			name = "calibration.json"
		}

		var err error
		path, err = xdg.StateFile(filepath.Join("evseat", name))
		if err != nil {
			return nil, fmt.Errorf("state file: %w", err)
		}
	}

	store, err := calibstore.Open(cfg.Store.Backend, path, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return store, nil
}

// buildContext creates a context backed by the configured store and adds
// every configured device. The observer is registered first, so it sees
// the startup devices too. Adding keeps going past per-device failures;
// the returned context is usable with whatever came up, and the error
// collects everything that did not.
func buildContext(cfg *config.Config, store calibstore.Store, obs input.DeviceObserver, log *zap.SugaredLogger) (*input.Context, error) {
	ctx, err := pathbackend.CreateContext(input.DirectInterface{}, nil, store, log)
	if err != nil {
		return nil, fmt.Errorf("create context: %w", err)
	}
	ctx.SetObserver(obs)

	var errs *multierror.Error
	for _, dc := range cfg.Devices {
		dev, err := pathbackend.AddDevice(ctx, dc.Path)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("add %s: %w", dc.Path, err))
			continue
		}

		if dc.Seat != "" {
			if err := dev.SetSeatLogicalName(dc.Seat); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("seat of %s: %w", dc.Path, err))
			}
		}
	}

	return ctx, errs.ErrorOrNil()
}
