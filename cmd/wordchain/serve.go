package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CTAG07/wordchain/pkg/markov"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Train on the configured corpus and serve the chain over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "./config.json", "Path to the JSON config file, created with defaults if missing")
	return cmd
}

// run hosts the server until ctx is cancelled, then shuts it down gracefully.
func run(ctx context.Context, configPath string) error {
	config, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(config.Server.LogLevel, os.Stdout)
	logger.Info("Starting wordchain server...", "version", Version)

	if err = os.MkdirAll(config.Server.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := initDB(config.Server.StatsDatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		logger.Info("Closing database connection.")
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	opts, err := config.Generation.Options()
	if err != nil {
		return fmt.Errorf("invalid generation config: %w", err)
	}
	chain := markov.NewChain(append(opts, markov.WithLogger(logger))...)

	ingested, err := trainFiles(ctx, chain, config.Server.CorpusPaths, os.Stdin)
	tokensIngestedCounter.Add(float64(ingested))
	if err != nil {
		return fmt.Errorf("failed to train on corpus: %w", err)
	}

	server := NewServer(config, logger, db, chain)
	httpServer := &http.Server{
		Addr:              config.Server.ServerAddr,
		Handler:           server.apiMux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting api server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received, stopping server...")
	case err = <-serveErr:
		if err != nil {
			return fmt.Errorf("api server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Api server shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped.")
	return nil
}
