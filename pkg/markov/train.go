package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// AddLine splits line on white space and ingests every word in order.
// Blank lines are ignored.
func (c *Chain) AddLine(line string) {
	for _, word := range strings.Fields(line) {
		c.Ingest(word)
	}
}

// Train reads data through the chain's tokenizer and ingests every token.
// It returns the number of tokens ingested, which is also reported when the
// context is cancelled or the tokenizer fails part way through. Tokens
// ingested before a failure stay in the table.
func (c *Chain) Train(ctx context.Context, data io.Reader) (int, error) {
	stream := c.tokenizer.NewStream(data)

	var ingested int
	var sentenceCount int64

	for {
		if err := ctx.Err(); err != nil {
			return ingested, err
		}

		token, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return ingested, fmt.Errorf("tokenizer error: %w", err)
		}
		if token.Text == "" {
			continue
		}

		c.Ingest(token.Text)
		ingested++
		if token.EOS {
			sentenceCount++
		}
	}

	c.logger.InfoContext(ctx, "Training completed",
		slog.Int("tokens_ingested", ingested),
		slog.Int64("sentences_processed", sentenceCount),
		slog.Int("keys", len(c.table)),
	)

	return ingested, nil
}
