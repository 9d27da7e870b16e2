package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"caixa/internal/amqp"
	"caixa/internal/cli"
	applog "caixa/internal/log"
	"caixa/internal/sheets"
	"caixa/internal/sheets/google"
	"caixa/internal/sheets/memory"
	"caixa/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	stores := cli.OpenBackend(logger, cfg)
	if stores.Cleanup != nil {
		defer stores.Cleanup()
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	var writer sheets.SeriesWriter
	if cfg.SheetsConfigured() {
		client, err := google.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets export enabled",
			"spreadsheet", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	} else {
		writer = memory.New()
		logger.Warn("Google Sheets not configured, exports stay in memory")
	}

	syncWorker := worker.NewSyncWorker(stores.History, writer)

	// Refresh once on startup so a restart never leaves a stale export.
	if err := syncWorker.Export(ctx); err != nil {
		logger.Error("Startup export failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()

		g.Go(func() error {
			return client.ConsumeReportSync(ctx, func(msg *amqp.ReportSyncMessage) error {
				return syncWorker.HandleSyncMessage(ctx, msg)
			})
		})
	} else {
		logger.Warn("AMQP not configured, relying on periodic export only")
	}

	// Periodic export backs up the message path in case messages are lost.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.ExportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := syncWorker.Export(ctx); err != nil {
					logger.Error("Periodic export failed", "error", err)
				}
			}
		}
	})

	logger.Info("Worker started",
		"backend", cfg.DataBackend, "export_interval", cfg.ExportInterval.String())

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
