package json

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"codeberg.org/miketth/evseat/pkg/input"
)

type CalibrationStore struct {
	matrices map[string]input.CalibrationMatrix
	file     *os.File
	lock     sync.Mutex
	dirty    bool
}

func NewCalibrationStore(filename string) (*CalibrationStore, error) {
	fileExists := true
	_, err := os.Stat(filename)
	if os.IsNotExist(err) {
		fileExists = false
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	store := &CalibrationStore{
		matrices: make(map[string]input.CalibrationMatrix),
		file:     file,
		dirty:    true,
	}

	if fileExists {
		err = store.load()
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}

		store.dirty = false
	}

	return store, nil
}

// Close flushes pending changes and closes the file. Callers that run a
// SaveLooper still call Close; the final save is then a no-op.
func (s *CalibrationStore) Close() error {
	if err := s.save(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return s.file.Close()
}

func (s *CalibrationStore) load() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	dec := json.NewDecoder(s.file)
	err = dec.Decode(&s.matrices)
	// an existing but empty file is an empty store
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

func (s *CalibrationStore) save() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty {
		return nil
	}

	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	err = s.file.Truncate(0)
	if err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	enc := json.NewEncoder(s.file)
	err = enc.Encode(s.matrices)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	s.dirty = false

	return nil
}

func (s *CalibrationStore) SaveLooper(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			err := s.save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}

			return ctx.Err()
		case <-time.After(time.Minute):
			err := s.save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}
}

func (s *CalibrationStore) Get(devnode string) (input.CalibrationMatrix, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	m, ok := s.matrices[devnode]
	return m, ok, nil
}

func (s *CalibrationStore) Set(devnode string, m input.CalibrationMatrix) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.matrices[devnode] = m
	s.dirty = true
	return nil
}

func (s *CalibrationStore) Delete(devnode string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.matrices[devnode]; !ok {
		return nil
	}

	delete(s.matrices, devnode)
	s.dirty = true
	return nil
}
