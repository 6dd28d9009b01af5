package markov

import (
	"fmt"
	"log/slog"
	"strings"
)

// GenerateSentence walks the chain from a random sentence starter, drawing a
// uniformly random successor at each step, until it draws a token that ends
// a sentence. The tokens are joined by single spaces. A starter that already
// ends a sentence is returned on its own.
//
// It fails with ErrEmptyModel when nothing has been ingested and with a
// *MissingKeyError when the walk reaches a token that was never followed by
// anything. Walks are unbounded unless WithMaxSteps was given.
func (c *Chain) GenerateSentence() (string, error) {
	starters := c.table[SentinelKey]
	if len(starters) == 0 {
		return "", ErrEmptyModel
	}

	var builder strings.Builder
	current := c.pick(starters)
	steps := 0

	for !c.EndsSentence(current) {
		if c.maxSteps > 0 && steps >= c.maxSteps {
			c.logger.Debug("Generation terminated by step limit",
				slog.Int("max_steps", c.maxSteps),
				slog.String("last_token", current),
			)
			return "", &StepLimitError{Limit: c.maxSteps}
		}

		builder.WriteString(current)
		builder.WriteByte(' ')

		successors := c.table[current]
		if len(successors) == 0 {
			c.logger.Debug("Generation terminated due to dead-end",
				slog.String("last_token", current),
				slog.Int("steps", steps),
			)
			return "", &MissingKeyError{Key: current}
		}
		current = c.pick(successors)
		steps++
	}
	builder.WriteString(current)

	c.logger.Debug("Generation terminated by sentence end",
		slog.Int("steps", steps),
	)

	return builder.String(), nil
}

// GenerateSentences runs n independent walks. It stops at the first failure
// and returns the sentences generated so far alongside the error.
func (c *Chain) GenerateSentences(n int) ([]string, error) {
	sentences := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		sentence, err := c.GenerateSentence()
		if err != nil {
			return sentences, fmt.Errorf("sentence %d: %w", i+1, err)
		}
		sentences = append(sentences, sentence)
	}
	return sentences, nil
}

// pick draws a uniformly random element of choices, which must be non-empty.
func (c *Chain) pick(choices []string) string {
	return choices[c.rng.IntN(len(choices))]
}
