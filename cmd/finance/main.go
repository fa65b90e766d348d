package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"finance/internal/backend"
	"finance/internal/cache"
	"finance/internal/cli"
	apphttp "finance/internal/http"
	applog "finance/internal/log"
	"finance/internal/report"
	"finance/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		cli.Fatal(logger, "Invalid backend configuration", "error", err)
	}
	result, err := backend.NewFactory(logger.Logger).CreateBackend(context.Background(), backendConfig)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
	}

	reportCache := cache.NewLRUCache[report.Report](cfg.ReportCacheSize, cfg.ReportCacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(reportCache)
	cacheManager.StartCleanup(5 * time.Minute)

	reports := services.NewReportService(result.Store, report.NewEngine(), reportCache)
	transactions := services.NewTransactionService(result.Store, result.Publisher)
	transactions.OnChange(reports.Invalidate)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Reports:      reports,
		Transactions: transactions,
		Ready:        result.Ready,
		Logger:       logger,
	})

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cacheManager.Stop()
		if err := result.Close(); err != nil {
			logger.Error("Backend cleanup error", "error", err)
		}
	})

	logger.Info("Starting finance server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cli.Fatal(logger, "Server error", "error", err, "port", cfg.Port)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
