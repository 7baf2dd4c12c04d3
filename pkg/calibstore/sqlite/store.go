package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"codeberg.org/miketth/evseat/pkg/calibstore/sqlite/migrations"
	"codeberg.org/miketth/evseat/pkg/input"
)

type CalibrationStore struct {
	db *sql.DB
}

func NewCalibrationStore(filename string, log *zap.SugaredLogger) (*CalibrationStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &CalibrationStore{db: db}, nil
}

func (s *CalibrationStore) Close() error {
	return s.db.Close()
}

func (s *CalibrationStore) Get(devnode string) (input.CalibrationMatrix, bool, error) {
	var m input.CalibrationMatrix
	var v [6]float64

	row := s.db.QueryRow(
		`SELECT m0, m1, m2, m3, m4, m5 FROM calibration WHERE devnode = ?`,
		devnode,
	)
	err := row.Scan(&v[0], &v[1], &v[2], &v[3], &v[4], &v[5])
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return m, false, nil
	case err != nil:
		return m, false, fmt.Errorf("sqlite select: %w", err)
	}

	for i, f := range v {
		m[i] = float32(f)
	}
	return m, true, nil
}

func (s *CalibrationStore) Set(devnode string, m input.CalibrationMatrix) error {
	_, err := s.db.Exec(
		`INSERT INTO calibration (devnode, m0, m1, m2, m3, m4, m5)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(devnode) DO UPDATE SET
		   m0 = excluded.m0, m1 = excluded.m1, m2 = excluded.m2,
		   m3 = excluded.m3, m4 = excluded.m4, m5 = excluded.m5`,
		devnode,
		float64(m[0]), float64(m[1]), float64(m[2]),
		float64(m[3]), float64(m[4]), float64(m[5]),
	)
	if err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}

	return nil
}

func (s *CalibrationStore) Delete(devnode string) error {
	_, err := s.db.Exec(`DELETE FROM calibration WHERE devnode = ?`, devnode)
	if err != nil {
		return fmt.Errorf("sqlite delete: %w", err)
	}

	return nil
}
