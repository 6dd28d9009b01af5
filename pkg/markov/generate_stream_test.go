package markov

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStream(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful stream", func(t *testing.T) {
		c := setupTestChain(t, twoSentenceCorpus)
		stream, err := c.GenerateStream(ctx)
		require.NoError(t, err)

		var tokens []Token
		for token := range stream {
			tokens = append(tokens, token)
		}

		require.NotEmpty(t, tokens)
		for _, token := range tokens[:len(tokens)-1] {
			assert.False(t, token.EOS)
		}
		assert.True(t, tokens[len(tokens)-1].EOS)

		texts := make([]string, 0, len(tokens))
		for _, token := range tokens {
			texts = append(texts, token.Text)
		}
		assert.Contains(t, []string{"The cat sat.", "The dog ran."}, strings.Join(texts, " "))
	})

	t.Run("Empty model", func(t *testing.T) {
		_, err := NewChain().GenerateStream(ctx)
		assert.ErrorIs(t, err, ErrEmptyModel)
	})

	t.Run("Dead end closes without EOS", func(t *testing.T) {
		c := NewChain()
		c.Ingest("hello")
		stream, err := c.GenerateStream(ctx)
		require.NoError(t, err)

		var tokens []Token
		for token := range stream {
			tokens = append(tokens, token)
		}
		assert.Equal(t, []Token{{Text: "hello"}}, tokens)
	})

	t.Run("Step limit closes stream", func(t *testing.T) {
		c := NewChain(WithSeed(testSeed), WithMaxSteps(3))
		ingestAll(c, "round", "and", "round", "and")
		stream, err := c.GenerateStream(ctx)
		require.NoError(t, err)

		var count int
		for token := range stream {
			assert.False(t, token.EOS)
			count++
		}
		assert.Equal(t, 4, count)
	})

	t.Run("Stream cancellation", func(t *testing.T) {
		c := NewChain(WithSeed(testSeed))
		ingestAll(c, "round", "and", "round", "and")

		ctxCancel, cancel := context.WithCancel(ctx)
		defer cancel()

		streamCancel, err := c.GenerateStream(ctxCancel)
		require.NoError(t, err)

		// Read one token, then cancel
		<-streamCancel
		cancel()

		// The channel should now close quickly
		timeout := time.After(100 * time.Millisecond)
		for {
			select {
			case _, ok := <-streamCancel:
				if !ok {
					return
				}
			case <-timeout:
				t.Fatal("timed out waiting for stream channel to close after cancellation")
			}
		}
	})
}

func TestGenerateStreamEndsLogAtDebug(t *testing.T) {
	testCases := []struct {
		name    string
		opts    []Option
		tokens  []string
		message string
	}{
		{name: "Dead end", tokens: []string{"hello"}, message: "token without successors"},
		{name: "Step limit", opts: []Option{WithMaxSteps(2)}, tokens: []string{"round", "round"}, message: "step limit"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, level := range []slog.Level{slog.LevelInfo, slog.LevelDebug} {
				var buf bytes.Buffer
				logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level}))
				c := NewChain(append([]Option{WithSeed(testSeed), WithLogger(logger)}, tc.opts...)...)
				ingestAll(c, tc.tokens...)

				stream, err := c.GenerateStream(context.Background())
				require.NoError(t, err)
				for range stream {
				}

				if level == slog.LevelDebug {
					assert.Contains(t, buf.String(), tc.message)
					assert.Contains(t, buf.String(), "level=DEBUG")
				} else {
					assert.Empty(t, buf.String(), "expected no log output above debug level")
				}
			}
		})
	}
}

func BenchmarkGenerateStream(b *testing.B) {
	corpus := createBenchmarkCorpus()
	ctx := context.Background()
	c := NewChain(WithSeed(testSeed), WithMaxSteps(50))
	c.AddLine(corpus)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		stream, err := c.GenerateStream(ctx)
		if err != nil {
			b.Fatalf("GenerateStream() failed: %v", err)
		}
		// We must drain the channel to measure the full lifecycle
		var bytes int64
		for t := range stream {
			bytes = bytes + int64(len(t.Text))
		}
		b.SetBytes(bytes)
	}
}
