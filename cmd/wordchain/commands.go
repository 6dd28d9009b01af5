package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/CTAG07/wordchain/pkg/markov"
	"github.com/spf13/cobra"
)

type chainFlags struct {
	files          []string
	seed           uint64
	maxSteps       int
	legacyBoundary bool
}

func (f *chainFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.files, "file", "f", nil, "Text file(s) to learn from, \"-\" for stdin")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Seed for the random source (0 picks one at random)")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 0, "Maximum transitions per sentence (0 is unbounded)")
	cmd.Flags().BoolVar(&f.legacyBoundary, "legacy-boundary", false, "Use the legacy sentence boundary rule")
	_ = cmd.MarkFlagRequired("file")
}

// buildChain trains a new chain on the files named by the flags.
func (f *chainFlags) buildChain(cmd *cobra.Command) (*markov.Chain, error) {
	level, _ := cmd.Flags().GetString("log-level")
	opts := []markov.Option{
		markov.WithMaxSteps(f.maxSteps),
		markov.WithLogger(newLogger(level, cmd.ErrOrStderr())),
	}
	if f.seed != 0 {
		opts = append(opts, markov.WithSeed(f.seed))
	}
	if f.legacyBoundary {
		opts = append(opts, markov.WithBoundaryMode(markov.BoundaryLegacy))
	}

	chain := markov.NewChain(opts...)
	if _, err := trainFiles(cmd.Context(), chain, f.files, cmd.InOrStdin()); err != nil {
		return nil, err
	}
	return chain, nil
}

func newGenerateCmd() *cobra.Command {
	var (
		flags   chainFlags
		count   int
		retries int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate sentences from text files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("count must not be negative, got %d", count)
			}
			chain, err := flags.buildChain(cmd)
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				sentence, err := generateWithRetry(chain, retries)
				if err != nil {
					if errors.Is(err, markov.ErrEmptyModel) {
						return fmt.Errorf("no text was learned from %v: %w", flags.files, err)
					}
					return fmt.Errorf("sentence %d: %w", i+1, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), sentence)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of sentences to generate")
	cmd.Flags().IntVar(&retries, "retries", 3, "Restarts allowed when a walk reaches a word without successors")
	return cmd
}

func newTableCmd() *cobra.Command {
	var flags chainFlags
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the transition table learned from text files as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chain, err := flags.buildChain(cmd)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(chain.Table(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal table: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := currentVersion()
			fmt.Fprintf(cmd.OutOrStdout(), "wordchain %s (commit %s, built %s)\n", info.Version, info.Commit, info.BuildDate)
		},
	}
}
