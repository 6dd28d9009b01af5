package markov

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyModel is returned when generation is requested before any
	// sentence starter has been ingested.
	ErrEmptyModel = errors.New("markov: no sentence starters have been ingested")
	// ErrMissingKey is matched by a MissingKeyError.
	ErrMissingKey = errors.New("markov: token has no recorded successors")
	// ErrStepLimitExceeded is matched by a StepLimitError.
	ErrStepLimitExceeded = errors.New("markov: step limit exceeded")
)

// MissingKeyError reports that a walk reached a token which was never
// followed by anything during ingestion, typically the last word of a corpus.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("markov: token %q has no recorded successors", e.Key)
}

func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// StepLimitError reports that a walk took Limit transitions without reaching
// the end of a sentence.
type StepLimitError struct {
	Limit int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("markov: no sentence end reached within %d steps", e.Limit)
}

func (e *StepLimitError) Is(target error) bool {
	return target == ErrStepLimitExceeded
}
