package markov

import (
	"strings"
	"unicode/utf8"
)

const (
	// PunctuationMarks is the default marks string. Its final character is
	// the sentinel marker and never terminates a sentence.
	PunctuationMarks = ".!?$"
	// SentinelMarker is the trailing character of PunctuationMarks.
	SentinelMarker = '$'
)

// BoundaryMode selects how the last character of a key is compared against
// the configured punctuation marks.
type BoundaryMode int

const (
	// BoundaryStrict treats a key as ending a sentence when its last
	// character is any configured mark other than SentinelMarker.
	BoundaryStrict BoundaryMode = iota
	// BoundaryLegacy compares against every mark except the last one in the
	// marks string and answers true when there is nothing to compare. It
	// exists for corpus compatibility with older chains.
	BoundaryLegacy
)

// String returns the configuration name of the mode.
func (m BoundaryMode) String() string {
	switch m {
	case BoundaryLegacy:
		return "legacy"
	default:
		return "strict"
	}
}

// ParseBoundaryMode maps "strict" or "legacy" (case-insensitive) to a mode.
// Unknown names report false and BoundaryStrict.
func ParseBoundaryMode(name string) (BoundaryMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "strict":
		return BoundaryStrict, true
	case "legacy":
		return BoundaryLegacy, true
	default:
		return BoundaryStrict, false
	}
}

// EndsSentence reports whether key ends a sentence under the default rules:
// its last character is '.', '!' or '?'. The empty string never does.
func EndsSentence(key string) bool {
	return endsSentence(key, PunctuationMarks, BoundaryStrict)
}

// EndsSentence reports whether key ends a sentence under the chain's
// boundary mode and marks.
func (c *Chain) EndsSentence(key string) bool {
	return endsSentence(key, c.marks, c.boundary)
}

func endsSentence(key, marks string, mode BoundaryMode) bool {
	if key == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(key)

	if mode == BoundaryLegacy {
		runes := []rune(marks)
		ends := true
		for i := 0; i < len(runes)-1; i++ {
			if runes[i] == last {
				return true
			}
			ends = false
		}
		return ends
	}

	return last != SentinelMarker && strings.ContainsRune(marks, last)
}
