package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/CTAG07/wordchain/pkg/markov"
)

// ChainAPI holds the chain served over HTTP. Every handler touching the
// chain holds mu for the whole operation.
type ChainAPI struct {
	mu             sync.Mutex
	chain          *markov.Chain
	stats          *StatsAPI
	config         *GenerationConfig
	maxIngestBytes int64
	logger         *slog.Logger
}

// NewChainAPI creates a new instance of the ChainAPI.
func NewChainAPI(chain *markov.Chain, stats *StatsAPI, config *GenerationConfig, maxIngestBytes int64, logger *slog.Logger) *ChainAPI {
	return &ChainAPI{
		chain:          chain,
		stats:          stats,
		config:         config,
		maxIngestBytes: maxIngestBytes,
		logger:         logger,
	}
}

// RegisterRoutes sets up the routing for all /api/chain endpoints.
func (a *ChainAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/chain/ingest", a.handleIngest)
	mux.HandleFunc("/api/chain/sentence", a.handleSentence)
	mux.HandleFunc("/api/chain/table", a.handleTable)
	mux.HandleFunc("/api/chain/keys", a.handleKey)
	mux.HandleFunc("/api/chain/stats", a.handleStats)
	mux.HandleFunc("/api/chain/prune", a.handlePrune)
}

type IngestResponse struct {
	Ingested int `json:"ingested"`
}

type SentenceResponse struct {
	Sentences []string `json:"sentences"`
}

type KeyResponse struct {
	Key        string   `json:"key"`
	Successors []string `json:"successors"`
}

type PruneRequest struct {
	MinFreq int `json:"minFreq"`
}

type PruneResponse struct {
	Removed int `json:"removed"`
}

type ChainStatsResponse struct {
	Keys           int `json:"keys"`
	Transitions    int `json:"transitions"`
	StartingTokens int `json:"starting_tokens"`
	UniqueTokens   int `json:"unique_tokens"`
}

// handleIngest trains the chain on the request body.
func (a *ChainAPI) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// The body is read and split before locking so a slow upload never holds the chain.
	body := r.Body
	if a.maxIngestBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, a.maxIngestBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Body exceeds %d bytes; nothing was ingested", maxBytesErr.Limit))
			return
		}
		a.logger.Error("Failed to read ingest body", "error", err)
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read request body: %v", err))
		return
	}
	tokens := strings.Fields(string(data))

	a.mu.Lock()
	for _, token := range tokens {
		a.chain.Ingest(token)
	}
	a.mu.Unlock()

	n := len(tokens)
	tokensIngestedCounter.Add(float64(n))
	a.logger.Info("Text ingested", "tokens", n, "bytes", len(data))

	respondWithJSON(w, http.StatusOK, IngestResponse{Ingested: n})
}

// handleSentence generates ?count= sentences (default 1).
func (a *ChainAPI) handleSentence(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		var err error
		count, err = strconv.Atoi(raw)
		if err != nil || count < 1 || (a.config.MaxSentences > 0 && count > a.config.MaxSentences) {
			msg := "count must be a positive integer"
			if a.config.MaxSentences > 0 {
				msg = fmt.Sprintf("count must be an integer between 1 and %d", a.config.MaxSentences)
			}
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}
	}

	a.mu.Lock()
	sentences, err := generateSentences(a.chain, count, a.config.Retries)
	a.mu.Unlock()

	if err != nil {
		a.logger.Warn("Generation failed", "error", err, "requested", count, "generated", len(sentences))
		switch {
		case errors.Is(err, markov.ErrEmptyModel):
			respondWithError(w, http.StatusConflict, "The chain is empty; ingest some text first")
		case errors.Is(err, markov.ErrMissingKey), errors.Is(err, markov.ErrStepLimitExceeded):
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Generation failed: %v", err))
		}
		return
	}

	if err = a.stats.RecordSentences(r.Context(), sentences); err != nil {
		a.logger.Error("Failed to record sentence stats", "error", err)
	}

	respondWithJSON(w, http.StatusOK, SentenceResponse{Sentences: sentences})
}

// handleTable returns the whole transition table.
func (a *ChainAPI) handleTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	a.mu.Lock()
	table := a.chain.Table()
	a.mu.Unlock()
	respondWithJSON(w, http.StatusOK, table)
}

// handleKey returns the successors of the ?key= query parameter. Keys may
// contain slashes, so they are not taken from the path.
func (a *ChainAPI) handleKey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		respondWithError(w, http.StatusBadRequest, "Key not specified")
		return
	}

	a.mu.Lock()
	found := a.chain.ContainsKey(key)
	successors := a.chain.Successors(key)
	a.mu.Unlock()

	if !found {
		respondWithError(w, http.StatusNotFound, "Key not found")
		return
	}
	respondWithJSON(w, http.StatusOK, KeyResponse{Key: key, Successors: successors})
}

// handleStats returns aggregate statistics about the chain.
func (a *ChainAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	a.mu.Lock()
	stats := a.chain.Stats()
	a.mu.Unlock()
	respondWithJSON(w, http.StatusOK, ChainStatsResponse{
		Keys:           stats.Keys,
		Transitions:    stats.Transitions,
		StartingTokens: stats.StartingTokens,
		UniqueTokens:   stats.UniqueTokens,
	})
}

// handlePrune drops rare transitions from the chain.
func (a *ChainAPI) handlePrune(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req PruneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON request body for minFreq")
		return
	}
	if req.MinFreq < 1 {
		respondWithError(w, http.StatusBadRequest, "minFreq must be at least 1")
		return
	}

	a.mu.Lock()
	removed := a.chain.Prune(req.MinFreq)
	a.mu.Unlock()

	respondWithJSON(w, http.StatusOK, PruneResponse{Removed: removed})
}
