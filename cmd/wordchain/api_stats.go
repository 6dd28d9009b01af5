package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const statsSchema = `
CREATE TABLE IF NOT EXISTS sentence_stats (
    sentence      TEXT PRIMARY KEY,
    total_hits    INTEGER NOT NULL DEFAULT 1,
    first_seen    DATETIME NOT NULL,
    last_seen     DATETIME NOT NULL
);
`

// GlobalStatsSummary provides a high-level overview of all generated sentences.
type GlobalStatsSummary struct {
	TotalGenerated  int64 `json:"total_generated"`
	UniqueSentences int64 `json:"unique_sentences"`
}

// SentenceStat is one row of the top sentences listing.
type SentenceStat struct {
	Sentence  string    `json:"sentence"`
	TotalHits int       `json:"total_hits"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// StatsAPI records generated sentences and serves aggregate statistics.
type StatsAPI struct {
	db     *sql.DB
	logger *slog.Logger
}

func setupStatsSchema(db *sql.DB) error {
	_, err := db.Exec(statsSchema)
	return err
}

func NewStatsAPI(db *sql.DB, logger *slog.Logger) *StatsAPI {
	return &StatsAPI{
		db:     db,
		logger: logger,
	}
}

func (s *StatsAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/stats/summary", s.handleSummary)
	mux.HandleFunc("/api/stats/top_sentences", s.handleTopSentences)
}

// RecordSentences counts each sentence once more in a single transaction.
func (s *StatsAPI) RecordSentences(ctx context.Context, sentences []string) error {
	if len(sentences) == 0 {
		return nil
	}
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	for _, sentence := range sentences {
		_, err = tx.ExecContext(ctx, `
        INSERT INTO sentence_stats (sentence, first_seen, last_seen) VALUES (?, ?, ?)
        ON CONFLICT(sentence) DO UPDATE SET total_hits = total_hits + 1, last_seen = ?
    `, sentence, now, now, now)
		if err != nil {
			return fmt.Errorf("failed to upsert sentence_stats: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stats transaction: %w", err)
	}
	return nil
}

// Summary returns the total number of recorded generations and distinct sentences.
func (s *StatsAPI) Summary(ctx context.Context) (GlobalStatsSummary, error) {
	var summary GlobalStatsSummary
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(total_hits), 0), COUNT(*) FROM sentence_stats").
		Scan(&summary.TotalGenerated, &summary.UniqueSentences)
	if err != nil {
		return GlobalStatsSummary{}, fmt.Errorf("failed to query stats summary: %w", err)
	}
	return summary, nil
}

// TopSentences returns up to limit sentences ordered by how often they were generated.
func (s *StatsAPI) TopSentences(ctx context.Context, limit int) ([]SentenceStat, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT sentence, total_hits, first_seen, last_seen FROM sentence_stats ORDER BY total_hits DESC, sentence ASC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top sentences: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	results := make([]SentenceStat, 0)
	for rows.Next() {
		var stat SentenceStat
		if err = rows.Scan(&stat.Sentence, &stat.TotalHits, &stat.FirstSeen, &stat.LastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan top sentences: %w", err)
		}
		results = append(results, stat)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *StatsAPI) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	summary, err := s.Summary(r.Context())
	if err != nil {
		s.logger.Error("Failed to get stats summary", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}

func (s *StatsAPI) handleTopSentences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	results, err := s.TopSentences(r.Context(), 100)
	if err != nil {
		s.logger.Error("Failed to query top sentences", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, results)
}
