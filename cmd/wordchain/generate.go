package main

import (
	"errors"

	"github.com/CTAG07/wordchain/pkg/markov"
)

// generateWithRetry restarts the walk up to retries times when it reaches a
// token without successors. Other errors are returned immediately.
func generateWithRetry(chain *markov.Chain, retries int) (string, error) {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		var sentence string
		sentence, err = chain.GenerateSentence()
		if !errors.Is(err, markov.ErrMissingKey) {
			return sentence, err
		}
		generationErrorsCounter.WithLabelValues(errorKind(err)).Inc()
	}
	return "", err
}

// generateSentences collects count sentences, retrying each one as
// generateWithRetry does. It returns the sentences gathered before a failure.
func generateSentences(chain *markov.Chain, count, retries int) ([]string, error) {
	sentences := make([]string, 0, count)
	for len(sentences) < count {
		sentence, err := generateWithRetry(chain, retries)
		if err != nil {
			if !errors.Is(err, markov.ErrMissingKey) {
				generationErrorsCounter.WithLabelValues(errorKind(err)).Inc()
			}
			return sentences, err
		}
		sentences = append(sentences, sentence)
		sentencesGeneratedCounter.Inc()
	}
	return sentences, nil
}
