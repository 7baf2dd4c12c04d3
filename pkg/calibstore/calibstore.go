// Package calibstore persists per-device calibration matrices across
// restarts, keyed by device node path. The memory backend is for tests and
// ephemeral runs, the json backend keeps a single human-editable file, and
// the sqlite backend is the durable default.
package calibstore

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/miketth/evseat/pkg/calibstore/json"
	"codeberg.org/miketth/evseat/pkg/calibstore/memory"
	"codeberg.org/miketth/evseat/pkg/calibstore/sqlite"
	"codeberg.org/miketth/evseat/pkg/input"
)

// Store persists calibration matrices keyed by device node.
type Store interface {
	// Get returns the stored matrix for devnode. found is false when
	// devnode has no stored calibration.
	Get(devnode string) (m input.CalibrationMatrix, found bool, err error)
	// Set stores the matrix for devnode, replacing any previous one.
	Set(devnode string, m input.CalibrationMatrix) error
	// Delete removes the stored matrix for devnode. Unknown devnodes are
	// a no-op.
	Delete(devnode string) error
	// Close flushes and releases the store.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var (
	ErrUnknownBackend = errors.New("calibstore: unknown backend")
	ErrPathRequired   = errors.New("calibstore: backend requires a path")
)

// Open creates the store for the named backend. The memory backend ignores
// path; the file-backed backends require one. log may be nil for no
// logging.
func Open(backend, path string, log *zap.SugaredLogger) (Store, error) {
	if backend != BackendMemory && path == "" {
		return nil, ErrPathRequired
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	switch backend {
	case BackendMemory:
		return memory.NewCalibrationStore(), nil
	case BackendJSON:
		return json.NewCalibrationStore(path)
	case BackendSQLite:
		return sqlite.NewCalibrationStore(path, log)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}
