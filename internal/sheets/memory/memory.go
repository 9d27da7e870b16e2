// Package memory is an in-process series export target, used when no
// spreadsheet is configured and by tests.
package memory

import (
	"context"
	"sync"

	"caixa/internal/core"
)

type Store struct {
	mu     sync.Mutex
	series []core.PeriodRecord
	writes int
}

func New() *Store {
	return &Store{}
}

// WriteSeries replaces the stored export with a copy of the series.
func (s *Store) WriteSeries(_ context.Context, series []core.PeriodRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series = make([]core.PeriodRecord, len(series))
	copy(s.series, series)
	s.writes++
	return nil
}

// Series returns the last exported series.
func (s *Store) Series() []core.PeriodRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.PeriodRecord, len(s.series))
	copy(out, s.series)
	return out
}

// Writes returns how many exports happened.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
