// Package worker refreshes the exported spreadsheet from the stored
// period history. Messages arrive over AMQP after a submission; a ticker
// in the worker binary re-exports periodically as a backup in case
// messages are lost.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"caixa/internal/amqp"
	"caixa/internal/core"
	"caixa/internal/series"
	"caixa/internal/services"
	"caixa/internal/sheets"
)

type SyncWorker struct {
	history services.HistoryStore
	writer  sheets.SeriesWriter
}

func NewSyncWorker(history services.HistoryStore, writer sheets.SeriesWriter) *SyncWorker {
	return &SyncWorker{history: history, writer: writer}
}

// HandleSyncMessage refreshes the export in response to one sync message.
// The message only names the submitted period; the worker always exports
// the full series so the sheet never drifts from storage.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.ReportSyncMessage) error {
	slog.InfoContext(ctx, "Processing report sync message", "period", msg.Period)

	if _, err := core.ParsePeriod(msg.Period); err != nil {
		return fmt.Errorf("invalid period in message %q: %w", msg.Period, err)
	}
	return w.Export(ctx)
}

// Export loads the stored series, derives the computed columns and writes
// the result to the configured target.
func (w *SyncWorker) Export(ctx context.Context) error {
	stored, err := w.history.LoadSeries(ctx)
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}
	if len(stored) == 0 {
		slog.InfoContext(ctx, "No periods stored, skipping export")
		return nil
	}

	latest := stored[len(stored)-1].Period
	derived := series.Derive(stored, latest)

	if err := w.writer.WriteSeries(ctx, derived); err != nil {
		return fmt.Errorf("write series: %w", err)
	}

	slog.InfoContext(ctx, "Export refreshed", "rows", len(derived), "latest", latest.String())
	return nil
}
