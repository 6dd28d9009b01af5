package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/CTAG07/wordchain/pkg/markov"
	"github.com/natefinch/atomic"
)

// ServerConfig holds the configuration for the HTTP server.
type ServerConfig struct {
	ServerAddr        string   `json:"server_addr"`
	LogLevel          string   `json:"log_level"`
	DataDir           string   `json:"data_dir"`
	StatsDatabasePath string   `json:"stats_database_path"`
	CorpusPaths       []string `json:"corpus_paths"`
	MaxIngestBytes    int64    `json:"max_ingest_bytes"`
}

// GenerationConfig holds the settings applied to the chain and to every
// generation request.
type GenerationConfig struct {
	Seed         uint64 `json:"seed"` // 0 picks a random seed at startup
	MaxSteps     int    `json:"max_steps"`
	Retries      int    `json:"retries"`
	BoundaryMode string `json:"boundary_mode"`
	Marks        string `json:"marks"`
	MaxSentences int    `json:"max_sentences_per_request"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Server     *ServerConfig     `json:"server_config"`
	Generation *GenerationConfig `json:"generation_config"`
}

// DefaultServerConfig creates a server configuration with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerAddr:        ":7280",
		LogLevel:          "info",
		DataDir:           "./data",
		StatsDatabasePath: "./data/wordchain_stats.db",
		CorpusPaths:       []string{},
		MaxIngestBytes:    10 << 20,
	}
}

// DefaultGenerationConfig creates a generation configuration with default values.
// Walks are capped by default in server mode so one request cannot spin forever.
func DefaultGenerationConfig() *GenerationConfig {
	return &GenerationConfig{
		Seed:         0,
		MaxSteps:     1000,
		Retries:      3,
		BoundaryMode: markov.BoundaryStrict.String(),
		Marks:        markov.PunctuationMarks,
		MaxSentences: 50,
	}
}

// Options converts the configuration into chain options.
func (g *GenerationConfig) Options() ([]markov.Option, error) {
	mode, ok := markov.ParseBoundaryMode(g.BoundaryMode)
	if !ok {
		return nil, fmt.Errorf("unknown boundary mode %q", g.BoundaryMode)
	}
	opts := []markov.Option{
		markov.WithBoundaryMode(mode),
		markov.WithMaxSteps(g.MaxSteps),
		markov.WithMarks(g.Marks),
	}
	if g.Seed != 0 {
		opts = append(opts, markov.WithSeed(g.Seed))
	}
	return opts, nil
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	// Initialize with default configurations
	config := &Config{
		Server:     DefaultServerConfig(),
		Generation: DefaultGenerationConfig(),
	}

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The server can still run with defaults.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Sections missing from the file keep their defaults.
	if config.Server == nil {
		config.Server = DefaultServerConfig()
	}
	if config.Generation == nil {
		config.Generation = DefaultGenerationConfig()
	}
	if _, err = config.Generation.Options(); err != nil {
		return nil, fmt.Errorf("invalid generation config: %w", err)
	}

	return config, nil
}
