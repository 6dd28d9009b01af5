package markov

import (
	"io"
	"log/slog"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
)

// SentinelKey is the synthetic key collecting every token that starts a
// sentence. It is also the predecessor of the very first ingested token.
const SentinelKey = "<SOC>"

// Chain is a first-order word transition table together with the state
// needed to keep learning from a token stream.
type Chain struct {
	table       map[string][]string
	previousKey string
	rng         *rand.Rand
	boundary    BoundaryMode
	marks       string
	maxSteps    int
	tokenizer   Tokenizer
	logger      *slog.Logger
}

// NewChain creates an empty Chain whose only key is SentinelKey.
func NewChain(opts ...Option) *Chain {
	c := &Chain{
		table:       map[string][]string{SentinelKey: {}},
		previousKey: SentinelKey,
		boundary:    BoundaryStrict,
		marks:       PunctuationMarks,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.tokenizer == nil {
		c.tokenizer = NewWhitespaceTokenizer(WithEOSFunc(c.EndsSentence))
	}

	return c
}

// SetLogger sets the logger for the Chain. By default, all logs are discarded.
func (c *Chain) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Ingest records token as the successor of the previously ingested token.
// When the previous token ended a sentence, token is recorded as a sentence
// starter instead. token must be non-empty; tokenizers drop empty input.
func (c *Chain) Ingest(token string) {
	if c.EndsSentence(c.previousKey) {
		c.table[SentinelKey] = append(c.table[SentinelKey], token)
	} else {
		c.table[c.previousKey] = append(c.table[c.previousKey], token)
	}
	c.previousKey = token
}

// ContainsKey reports whether key has an entry in the transition table.
// SentinelKey is always present.
func (c *Chain) ContainsKey(key string) bool {
	_, ok := c.table[key]
	return ok
}

// Successors returns a copy of the successors recorded for key, in
// ingestion order, or nil when key is unknown.
func (c *Chain) Successors(key string) []string {
	successors, ok := c.table[key]
	if !ok {
		return nil
	}
	return slices.Clone(successors)
}

// Table returns a deep copy of the transition table for inspection.
func (c *Chain) Table() map[string][]string {
	table := make(map[string][]string, len(c.table))
	for key, successors := range c.table {
		table[key] = slices.Clone(successors)
	}
	return table
}

// String renders the table as {key=[successors], ...} with keys sorted.
func (c *Chain) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, key := range slices.Sorted(maps.Keys(c.table)) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(key)
		sb.WriteString("=[")
		sb.WriteString(strings.Join(c.table[key], " "))
		sb.WriteByte(']')
	}
	sb.WriteByte('}')
	return sb.String()
}
