package services

import (
	"context"

	"caixa/internal/core"
)

// TransactionStore is the persistence port for the transaction ledger.
// Implemented by storage.SQLiteRepository, ledgerfile.TransactionFile and
// memstore.Store.
type TransactionStore interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Append(ctx context.Context, txs []core.Transaction) ([]core.Transaction, error)
	ReplaceAll(ctx context.Context, txs []core.Transaction) error
	Clear(ctx context.Context) error
}

// HistoryStore is the persistence port for the monthly period series.
type HistoryStore interface {
	LoadSeries(ctx context.Context) ([]core.PeriodRecord, error)
	UpsertPeriod(ctx context.Context, rec core.PeriodRecord) error
}

// ReportPublisher notifies interested consumers that a period was
// submitted and the exported series should be refreshed.
type ReportPublisher interface {
	PublishReportSync(ctx context.Context, period core.Period) error
}
