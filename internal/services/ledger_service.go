package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"caixa/internal/core"
	"caixa/internal/ledger"
	applog "caixa/internal/log"
)

const ledgerCacheKey = "ledger"

// LedgerService orchestrates transaction ledger operations on top of a
// pluggable store. It keeps a cached snapshot of the full ledger with
// explicit invalidation on every write, so repeated filter and summary
// calls do not hit the store.
type LedgerService struct {
	store TransactionStore
	cache *gocache.Cache
}

func NewLedgerService(store TransactionStore, cacheTTL time.Duration) *LedgerService {
	return &LedgerService{
		store: store,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// List returns the transactions matching the filter, sorted by date.
func (s *LedgerService) List(ctx context.Context, f ledger.Filter) ([]core.Transaction, error) {
	txs, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(txs), nil
}

// Record validates and appends a transaction. When months > 1 the entry
// expands into one occurrence per month, each tagged with its position in
// the series. Returns the stored rows with assigned IDs.
func (s *LedgerService) Record(ctx context.Context, tx core.Transaction, months int) ([]core.Transaction, error) {
	var (
		rows []core.Transaction
		err  error
	)
	if months > 1 {
		rows, err = ledger.ExpandRecurring(tx, months)
		if err != nil {
			return nil, fmt.Errorf("expand recurring transaction: %w", err)
		}
	} else {
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("validate transaction: %w", err)
		}
		rows = []core.Transaction{tx}
	}

	saved, err := s.store.Append(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("append transactions: %w", err)
	}
	s.invalidate()

	slog.InfoContext(ctx, "Transactions recorded",
		applog.FieldRows, len(saved),
		applog.FieldCategory, tx.Category,
		applog.FieldTxType, string(tx.Type))
	return saved, nil
}

// Replace swaps the whole ledger for the given rows. Rows that fail
// validation reject the entire replacement.
func (s *LedgerService) Replace(ctx context.Context, txs []core.Transaction) error {
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("validate row %d: %w", i+1, err)
		}
	}
	if err := s.store.ReplaceAll(ctx, txs); err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}
	s.invalidate()
	return nil
}

// Clear empties the ledger.
func (s *LedgerService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	s.invalidate()
	return nil
}

// Summary aggregates the filtered ledger into monthly totals, extrema and
// the expense category breakdown.
func (s *LedgerService) Summary(ctx context.Context, f ledger.Filter) (ledger.Summary, error) {
	txs, err := s.snapshot(ctx)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Summarize(txs, f), nil
}

func (s *LedgerService) snapshot(ctx context.Context) ([]core.Transaction, error) {
	if cached, ok := s.cache.Get(ledgerCacheKey); ok {
		return cached.([]core.Transaction), nil
	}
	txs, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	s.cache.Set(ledgerCacheKey, txs, gocache.DefaultExpiration)
	return txs, nil
}

func (s *LedgerService) invalidate() {
	s.cache.Delete(ledgerCacheKey)
}
