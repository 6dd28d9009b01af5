package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/wordchain/pkg/markov"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordchain",
		Short:         "Word-level Markov chain sentence generator",
		Long:          "Build a first-order word Markov chain from text files and generate sentences from it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level for the chain (debug, info, warn, error)")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a text logger writing to w. Unknown levels fall back to info.
func newLogger(level string, w io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// trainFiles feeds every file in paths to the chain in order. The path "-"
// reads from stdin instead.
func trainFiles(ctx context.Context, chain *markov.Chain, paths []string, stdin io.Reader) (int, error) {
	total := 0
	for _, path := range paths {
		n, err := trainFile(ctx, chain, path, stdin)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func trainFile(ctx context.Context, chain *markov.Chain, path string, stdin io.Reader) (int, error) {
	if path == "-" {
		n, err := chain.Train(ctx, stdin)
		if err != nil {
			return n, fmt.Errorf("failed to train on stdin: %w", err)
		}
		return n, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	n, err := chain.Train(ctx, file)
	if err != nil {
		return n, fmt.Errorf("failed to train on %s: %w", path, err)
	}
	return n, nil
}
