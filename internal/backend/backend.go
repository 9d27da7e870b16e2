// Package backend selects and wires the persistence layer from the
// configured data backend: sqlite (default), csv files or in-memory.
package backend

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"caixa/internal/config"
	"caixa/internal/ledgerfile"
	"caixa/internal/memstore"
	"caixa/internal/services"
	"caixa/internal/storage"
)

// Kind names a supported data backend.
type Kind string

const (
	SQLite Kind = "sqlite"
	CSV    Kind = "csv"
	Memory Kind = "memory"
)

func (k Kind) IsValid() bool {
	switch k {
	case SQLite, CSV, Memory:
		return true
	default:
		return false
	}
}

// Result bundles the opened stores with their cleanup function. Cleanup
// may be nil when the backend holds no resources.
type Result struct {
	Transactions services.TransactionStore
	History      services.HistoryStore
	Cleanup      func() error
}

// Open builds the stores for the configured backend.
func Open(cfg *config.Config) (*Result, error) {
	kind := Kind(cfg.DataBackend)
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid data backend: %s", cfg.DataBackend)
	}

	switch kind {
	case SQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		slog.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Transactions: repo, History: repo, Cleanup: repo.Close}, nil

	case CSV:
		historyPath := filepath.Join(filepath.Dir(cfg.LedgerCSVPath), "history.csv")
		slog.Info("Initialized csv backend",
			"ledger_path", cfg.LedgerCSVPath, "history_path", historyPath)
		return &Result{
			Transactions: ledgerfile.NewTransactionFile(cfg.LedgerCSVPath),
			History:      ledgerfile.NewHistoryFile(historyPath),
		}, nil

	default: // Memory
		store := memstore.New()
		slog.Info("Initialized memory backend")
		return &Result{Transactions: store, History: store}, nil
	}
}
