package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"finance/internal/amqp"
	"finance/internal/cli"
	applog "finance/internal/log"
	gsheet "finance/internal/sheets/google"
	"finance/internal/storage"
	"finance/internal/worker"
)

func main() {
	resync := flag.Bool("resync", false, "copy every stored transaction to the sheet before consuming")
	resyncOnly := flag.Bool("resync-only", false, "run a full resync and exit")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)
	if err := cfg.ValidateWorker(); err != nil {
		cli.Fatal(logger, "Worker configuration invalid", "error", err)
	}

	logger.Info("Starting finance-worker")

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
	}
	defer repo.Close()

	sheet, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize Google Sheets client", "error", err)
	}
	logger.Info("Google Sheets client initialized",
		"spreadsheet_id", cfg.GoogleSpreadsheetID,
		"sheet", cfg.GoogleSheetName)

	syncWorker := worker.NewSyncWorker(repo, sheet, cfg.SyncConcurrency)

	if *resync || *resyncOnly {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		err := syncWorker.Resync(ctx)
		cancel()
		if err != nil {
			logger.Error("Resync failed", "error", err)
			if *resyncOnly {
				cli.Fatal(logger, "Resync-only run failed")
			}
		}
		if *resyncOnly {
			return
		}
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize AMQP client", "error", err)
	}

	consumed := make(chan error, 1)
	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(context.Context) {
		if err := client.Close(); err != nil {
			logger.Error("AMQP close error", "error", err)
		}
	})

	go func() {
		consumed <- client.Consume(ctx, syncWorker.Handle)
	}()

	logger.Info("Consuming transaction changes", "queue", cfg.AMQPQueue)
	select {
	case err := <-consumed:
		if err != nil && !errors.Is(err, context.Canceled) {
			cli.Fatal(logger, "Message consumption failed", "error", err)
		}
	case <-ctx.Done():
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
