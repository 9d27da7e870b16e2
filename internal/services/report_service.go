package services

import (
	"context"
	"fmt"
	"log/slog"

	"caixa/internal/core"
	applog "caixa/internal/log"
	"caixa/internal/report"
)

// ReportService generates and submits monthly reports. Generation is a
// pure read; submission additionally persists the period into the stored
// history and notifies the spreadsheet sync worker.
type ReportService struct {
	history   HistoryStore
	publisher ReportPublisher
}

func NewReportService(history HistoryStore, publisher ReportPublisher) *ReportService {
	return &ReportService{history: history, publisher: publisher}
}

// Generate builds the report for the period. The uploaded series, when
// non-nil, takes precedence over the stored history; otherwise the stored
// series is used when the caller asked for history context.
func (s *ReportService) Generate(ctx context.Context, params report.Params, uploaded []core.PeriodRecord) (report.Report, error) {
	history, err := s.historyFor(ctx, params, uploaded)
	if err != nil {
		return report.Report{}, err
	}

	rep := report.Build(params, history)
	slog.InfoContext(ctx, "Report generated",
		applog.FieldClient, params.Client,
		applog.FieldPeriod, params.Period.String(),
		applog.FieldAlerts, len(rep.Alerts))
	return rep, nil
}

// Submit generates the report and persists its period row, replacing any
// earlier submission for the same month. A sync message is published so
// the exported spreadsheet refreshes; publish failures are logged but do
// not fail the submission, the period is already saved locally.
func (s *ReportService) Submit(ctx context.Context, params report.Params, uploaded []core.PeriodRecord) (report.Report, error) {
	rep, err := s.Generate(ctx, params, uploaded)
	if err != nil {
		return report.Report{}, err
	}

	if err := s.history.UpsertPeriod(ctx, rep.Current); err != nil {
		return report.Report{}, fmt.Errorf("persist period %s: %w", params.Period, err)
	}

	if s.publisher == nil {
		slog.WarnContext(ctx, "No report publisher configured, skipping sync message")
	} else if err := s.publisher.PublishReportSync(ctx, params.Period); err != nil {
		slog.ErrorContext(ctx, "Failed to publish report sync message",
			applog.FieldPeriod, params.Period.String(), applog.FieldError, err)
	}

	slog.InfoContext(ctx, "Report submitted",
		applog.FieldClient, params.Client, applog.FieldPeriod, params.Period.String())
	return rep, nil
}

// History returns the stored period series with derived columns computed
// through the latest stored period.
func (s *ReportService) History(ctx context.Context) ([]core.PeriodRecord, error) {
	stored, err := s.history.LoadSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return stored, nil
}

func (s *ReportService) historyFor(ctx context.Context, params report.Params, uploaded []core.PeriodRecord) ([]core.PeriodRecord, error) {
	if uploaded != nil {
		return uploaded, nil
	}
	if !params.IncludeHistory {
		return nil, nil
	}
	stored, err := s.history.LoadSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return stored, nil
}
