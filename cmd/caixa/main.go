package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"caixa/internal/amqp"
	"caixa/internal/cli"
	apphttp "caixa/internal/http"
	applog "caixa/internal/log"
	"caixa/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	stores := cli.OpenBackend(logger, cfg)
	if stores.Cleanup != nil {
		defer stores.Cleanup()
	}

	// Report sync over AMQP is optional; submissions still persist locally
	// without it.
	var publisher services.ReportPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync", "error", err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	ledgerSvc := services.NewLedgerService(stores.Transactions, cfg.CacheTTL)
	reportSvc := services.NewReportService(stores.History, publisher)

	srv := apphttp.New(cfg.Port, ledgerSvc, reportSvc)

	ctx, stop := cli.SignalContext()
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cli.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting caixa server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	// Let the shutdown goroutine finish logging.
	time.Sleep(100 * time.Millisecond)
	logger.Info("Server stopped gracefully")
}
