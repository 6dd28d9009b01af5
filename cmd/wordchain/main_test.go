package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CTAG07/wordchain/pkg/markov"
	"github.com/stretchr/testify/require"
)

const testSeed = 42

// testCorpus yields exactly two possible sentences.
const testCorpus = "The cat sat. The dog ran."

var testSentences = []string{"The cat sat.", "The dog ran."}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestDB opens a fresh statistics database in a temporary directory.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := initDB(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err, "setup: initDB() failed")
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// setupTestServer builds a Server around a seeded chain trained on corpus.
// configure, when non-nil, adjusts the default config before the chain is built.
func setupTestServer(t *testing.T, corpus string, configure func(*Config)) *Server {
	t.Helper()
	config := &Config{
		Server:     DefaultServerConfig(),
		Generation: DefaultGenerationConfig(),
	}
	config.Generation.Seed = testSeed
	if configure != nil {
		configure(config)
	}

	opts, err := config.Generation.Options()
	require.NoError(t, err, "setup: Options() failed")
	chain := markov.NewChain(opts...)
	if corpus != "" {
		_, err = chain.Train(context.Background(), strings.NewReader(corpus))
		require.NoError(t, err, "setup: Train() failed")
	}
	return NewServer(config, discardLogger(), setupTestDB(t), chain)
}

func doRequest(t *testing.T, handler http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "response body: %s", rec.Body.String())
	return v
}

// writeCorpus writes content to a file in a temporary directory and returns its path.
func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
