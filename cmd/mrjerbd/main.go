package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tellapart/mrjerb/internal/launchd/api/rest"
	"github.com/tellapart/mrjerb/internal/launchd/service"
	"github.com/tellapart/mrjerb/internal/launchd/storage"
	"github.com/tellapart/mrjerb/internal/launcher"
	"github.com/tellapart/mrjerb/internal/shared/config"
	"github.com/tellapart/mrjerb/internal/shared/logging"
	"github.com/tellapart/mrjerb/internal/shared/pool"
	"github.com/tellapart/mrjerb/pkg/jobs"
)

// queuedLaunchesPerWorker bounds how many launches wait behind each worker.
const queuedLaunchesPerWorker = 16

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	registry := jobs.NewRegistry()
	n, err := registry.LoadFiles(cfg.Jobs.Patterns...)
	if err != nil {
		logger.Fatal("Failed to load job definitions", "patterns", cfg.Jobs.Patterns, "error", err)
	}

	l, closeLauncher, err := launcher.New(cfg.LauncherConfig, logger)
	if err != nil {
		logger.Fatal("Failed to create launcher", "error", err)
	}
	defer closeLauncher()

	// Cancelled once the HTTP server has drained; running jobs are killed
	// instead of waited for.
	launchCtx, cancelLaunches := context.WithCancel(context.Background())
	defer cancelLaunches()

	workers := pool.NewPool(cfg.Workers, cfg.Workers*queuedLaunchesPerWorker)
	workers.Start()

	svc := service.NewLaunchService(launchCtx, l, storage.NewInMemoryLaunchStore(), registry, workers, logger)
	server := rest.NewServer(cfg.REST, svc, logger)

	go func() {
		logger.Info("Starting launch API server",
			"addr", cfg.REST.Addr,
			"workers", cfg.Workers,
			"jobs", n,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	// Give server 30 seconds to finish serving ongoing requests
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	cancelLaunches()
	workers.Close()

	logger.Info("Server stopped")
}
