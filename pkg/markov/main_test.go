package markov

import (
	"context"
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSeed = 42

// twoSentenceCorpus is a small corpus with two sentences sharing their first word.
const twoSentenceCorpus = "The cat sat. The dog ran."

// setupTestChain creates a seeded Chain and trains it on corpus.
func setupTestChain(t *testing.T, corpus string, opts ...Option) *Chain {
	t.Helper()
	c := NewChain(append([]Option{WithSeed(testSeed)}, opts...)...)
	if corpus != "" {
		_, err := c.Train(context.Background(), strings.NewReader(corpus))
		require.NoError(t, err, "setup: Train() failed")
	}
	return c
}

// ingestAll feeds tokens to c one by one.
func ingestAll(c *Chain, tokens ...string) {
	for _, token := range tokens {
		c.Ingest(token)
	}
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
