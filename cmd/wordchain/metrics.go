package main

import (
	"errors"
	"sync"

	"github.com/CTAG07/wordchain/pkg/markov"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "wordchain"

var (
	tokensIngestedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tokens_ingested_total",
			Help:      "Count of tokens ingested into the chain.",
		},
	)
	sentencesGeneratedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sentences_generated_total",
			Help:      "Count of sentences generated successfully.",
		},
	)
	generationErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generation_errors_total",
			Help:      "Count of failed generation walks by error kind.",
		},
		[]string{"kind"},
	)
)

var registerMetrics sync.Once

// RegisterMetrics registers all metrics with the default registry.
func RegisterMetrics() {
	registerMetrics.Do(func() {
		prometheus.MustRegister(tokensIngestedCounter)
		prometheus.MustRegister(sentencesGeneratedCounter)
		prometheus.MustRegister(generationErrorsCounter)
	})
}

// errorKind is the metric label for a generation error.
func errorKind(err error) string {
	switch {
	case errors.Is(err, markov.ErrEmptyModel):
		return "empty_model"
	case errors.Is(err, markov.ErrMissingKey):
		return "missing_key"
	case errors.Is(err, markov.ErrStepLimitExceeded):
		return "step_limit"
	default:
		return "other"
	}
}
