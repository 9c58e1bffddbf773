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

	"github.com/rickgao/stockboard/internal/config"
	"github.com/rickgao/stockboard/internal/dataset"
	"github.com/rickgao/stockboard/internal/partition"
	"github.com/rickgao/stockboard/internal/server"
	"github.com/rickgao/stockboard/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/server.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting server",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"data_path", cfg.Data.Path,
		"addr", cfg.Server.Addr,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Load the price file once. A missing or malformed file is fatal.
	tbl, err := dataset.Load(cfg.Data.Path,
		dataset.WithDateLayouts(cfg.Data.DateFormats...),
		dataset.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to load data file", "error", err)
		os.Exit(1)
	}

	// Partition once; the set is immutable shared state from here on.
	set := partition.Split(tbl)
	counts := set.Counts()
	logger.Info("dataset partitioned",
		"master", counts.Master,
		"early", counts.Early,
		"mid", counts.Mid,
		"recent", counts.Recent,
	)

	srv := server.New(cfg.Server, cfg.Heatmap, set, cfg.Data.Path, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", "error", err)
	}

	logger.Info("server stopped")
}
