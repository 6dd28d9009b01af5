package markov

import (
	"log/slog"
	"math/rand/v2"
)

// Option configures a Chain at construction time.
type Option func(*Chain)

// WithSeed makes every walk of the chain reproducible by drawing from a PCG
// source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(c *Chain) { c.rng = rand.New(rand.NewPCG(seed, seed)) }
}

// WithRand sets the random source shared by every walk of the chain.
// A nil source is ignored.
func WithRand(r *rand.Rand) Option {
	return func(c *Chain) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithMaxSteps caps the number of transitions a single walk may take before
// failing with ErrStepLimitExceeded. A value of 0 or less leaves walks
// unbounded, which is the default.
func WithMaxSteps(n int) Option {
	return func(c *Chain) { c.maxSteps = max(n, 0) }
}

// WithBoundaryMode selects how sentence ends are detected.
// Default: BoundaryStrict
func WithBoundaryMode(mode BoundaryMode) Option {
	return func(c *Chain) { c.boundary = mode }
}

// WithMarks sets the punctuation marks string used for sentence detection.
// Default: PunctuationMarks
func WithMarks(marks string) Option {
	return func(c *Chain) { c.marks = marks }
}

// WithTokenizer sets the tokenizer used by Train.
// Default: a WhitespaceTokenizer classifying tokens with the chain's rules.
func WithTokenizer(t Tokenizer) Option {
	return func(c *Chain) { c.tokenizer = t }
}

// WithLogger is the construction-time form of SetLogger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chain) { c.SetLogger(logger) }
}
