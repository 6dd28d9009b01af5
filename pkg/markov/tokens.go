package markov

import (
	"bufio"
	"io"
)

// maxTokenSize bounds a single whitespace-delimited word read by the
// default tokenizer.
const maxTokenSize = 1 << 20

// Token represents a single tokenized unit of text. It contains the text itself
// and a boolean flag indicating if it ends a sentence.
type Token struct {
	Text string
	EOS  bool
}

// Tokenizer is an interface that defines the contract for splitting input text
// into tokens. This allows the chain to be independent of the specific
// tokenization strategy.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	NewStream(io.Reader) StreamTokenizer
}

// StreamTokenizer is an interface for a stateful tokenizer that processes a
// stream of data, returning one token at a time.
type StreamTokenizer interface {
	// Next returns the next token from the stream. It returns io.EOF as the
	// error when the stream is fully consumed. Returned tokens are never empty.
	Next() (*Token, error)
}

// WhitespaceTokenizer splits text on Unicode white space and keeps any
// punctuation attached to the word it follows.
type WhitespaceTokenizer struct {
	eos func(string) bool
}

// TokenizerOption is a function that configures a WhitespaceTokenizer.
type TokenizerOption func(*WhitespaceTokenizer)

// WithEOSFunc sets the predicate deciding whether a token ends a sentence.
// Default: EndsSentence
func WithEOSFunc(f func(string) bool) TokenizerOption {
	return func(t *WhitespaceTokenizer) {
		if f != nil {
			t.eos = f
		}
	}
}

// NewWhitespaceTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more TokenizerOption functions.
func NewWhitespaceTokenizer(opts ...TokenizerOption) *WhitespaceTokenizer {
	t := &WhitespaceTokenizer{eos: EndsSentence}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewStream Returns the stream processor.
func (t *WhitespaceTokenizer) NewStream(r io.Reader) StreamTokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	scanner.Split(bufio.ScanWords)
	return &whitespaceStream{scanner: scanner, eos: t.eos}
}

type whitespaceStream struct {
	scanner *bufio.Scanner
	eos     func(string) bool
}

// Next returns the next word of the stream, or io.EOF once it is exhausted.
func (s *whitespaceStream) Next() (*Token, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	word := s.scanner.Text()
	return &Token{Text: word, EOS: s.eos(word)}, nil
}
