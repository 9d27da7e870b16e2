// Package memstore provides in-memory implementations of the ledger and
// history stores. Used by the memory data backend for throwaway sessions
// and by tests.
package memstore

import (
	"context"
	"sync"

	"caixa/internal/core"
	"caixa/internal/series"
)

// Store keeps transactions and period history in memory. Safe for
// concurrent use.
type Store struct {
	mu     sync.Mutex
	nextID int64
	txs    []core.Transaction
	hist   []core.PeriodRecord
}

func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) Load(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out, nil
}

func (s *Store) Append(ctx context.Context, txs []core.Transaction) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		tx.ID = s.nextID
		s.nextID++
		s.txs = append(s.txs, tx)
		saved = append(saved, tx)
	}
	return saved, nil
}

func (s *Store) ReplaceAll(ctx context.Context, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = nil
	for _, tx := range txs {
		tx.ID = s.nextID
		s.nextID++
		s.txs = append(s.txs, tx)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = nil
	return nil
}

func (s *Store) LoadSeries(ctx context.Context) ([]core.PeriodRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.PeriodRecord, len(s.hist))
	copy(out, s.hist)
	return out, nil
}

func (s *Store) UpsertPeriod(ctx context.Context, rec core.PeriodRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hist = series.Merge(s.hist, rec)
	return nil
}
