package markov

import (
	"context"
	"log/slog"
)

// GenerateStream performs one walk like GenerateSentence and returns a
// read-only channel delivering its tokens one at a time. The final token has
// EOS set. The channel is closed once the sentence ends, the step limit is
// reached, the walk hits a token without successors, or ctx is cancelled.
// The last three cases end the stream without an EOS token and are logged.
//
// The chain must not be modified until the channel is drained.
func (c *Chain) GenerateStream(ctx context.Context) (<-chan Token, error) {
	starters := c.table[SentinelKey]
	if len(starters) == 0 {
		return nil, ErrEmptyModel
	}

	tokenChan := make(chan Token)

	go func() {
		defer close(tokenChan)

		current := c.pick(starters)
		steps := 0

		for {
			ends := c.EndsSentence(current)
			select {
			case <-ctx.Done():
				c.logger.DebugContext(ctx, "Generation stream cancelled by context")
				return
			case tokenChan <- Token{Text: current, EOS: ends}:
			}
			if ends {
				return
			}

			if c.maxSteps > 0 && steps >= c.maxSteps {
				c.logger.DebugContext(ctx, "Generation stream reached step limit",
					slog.Int("max_steps", c.maxSteps),
				)
				return
			}

			successors := c.table[current]
			if len(successors) == 0 {
				c.logger.DebugContext(ctx, "Generation stream reached a token without successors",
					slog.String("token", current),
				)
				return
			}
			current = c.pick(successors)
			steps++
		}
	}()

	return tokenChan, nil
}
