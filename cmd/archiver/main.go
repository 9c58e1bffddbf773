package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rickgao/stockboard/internal/archive"
	"github.com/rickgao/stockboard/internal/config"
	"github.com/rickgao/stockboard/internal/database"
	"github.com/rickgao/stockboard/internal/dataset"
	"github.com/rickgao/stockboard/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/archiver.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting archiver",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidateArchiver(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

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

	// Load the price file.
	tbl, err := dataset.Load(cfg.Data.Path,
		dataset.WithDateLayouts(cfg.Data.DateFormats...),
		dataset.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to load data file", "error", err)
		os.Exit(1)
	}
	logger.Info("data file loaded", "path", cfg.Data.Path, "rows", tbl.NumRows())

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Postgres.Host,
		"port", cfg.Database.Postgres.Port,
		"database", cfg.Database.Postgres.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database.Postgres)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	w := archive.NewWriter(archive.Config{
		BatchSize: cfg.Archiver.BatchSize,
		Table:     cfg.Archiver.Table,
	}, pool, logger)

	metrics, err := w.WriteTable(ctx, tbl)
	if err != nil {
		logger.Error("archive failed", "error", err,
			"inserts", metrics.Inserts,
			"conflicts", metrics.Conflicts,
		)
		os.Exit(1)
	}

	logger.Info("archiver finished",
		"inserts", metrics.Inserts,
		"conflicts", metrics.Conflicts,
		"skipped", metrics.Skipped,
	)
}
