package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"roi-engine/internal/config"
	"roi-engine/internal/service"
	"roi-engine/internal/service/report"
	"roi-engine/internal/storage/mysql"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	storage, err := mysql.New(*cfg)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = storage.Migrate(migrateCtx)
	cancel()
	if err != nil {
		log.Error("failed to migrate db", slog.String("error", err.Error()))
		os.Exit(1)
	}

	roiService := service.NewROIService(log, storage, service.Options{
		TimeHorizonMonths: cfg.Calculation.TimeHorizonMonths,
		DebounceInterval:  cfg.Calculation.DebounceInterval,
	})
	adminService := service.NewAdminService(log, storage, roiService)
	reportService := report.NewReportService(roiService)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, roiService, adminService, reportService),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: 2 * cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
