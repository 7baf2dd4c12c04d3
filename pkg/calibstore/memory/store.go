package memory

import "codeberg.org/miketth/evseat/pkg/input"

type CalibrationStore struct {
	matrices map[string]input.CalibrationMatrix
}

func NewCalibrationStore() *CalibrationStore {
	return &CalibrationStore{
		matrices: make(map[string]input.CalibrationMatrix),
	}
}

func (s *CalibrationStore) Get(devnode string) (input.CalibrationMatrix, bool, error) {
	m, ok := s.matrices[devnode]
	return m, ok, nil
}

func (s *CalibrationStore) Set(devnode string, m input.CalibrationMatrix) error {
	s.matrices[devnode] = m
	return nil
}

func (s *CalibrationStore) Delete(devnode string) error {
	delete(s.matrices, devnode)
	return nil
}

func (s *CalibrationStore) Close() error {
	return nil
}
