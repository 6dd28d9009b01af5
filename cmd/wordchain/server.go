package main

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/CTAG07/wordchain/pkg/markov"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	config    *Config
	db        *sql.DB
	logger    *slog.Logger
	chain     *markov.Chain
	chainAPI  *ChainAPI
	statsAPI  *StatsAPI
	serverAPI *ServerAPI
	apiMux    *http.ServeMux
}

// NewServer wires the APIs around an already trained chain.
func NewServer(config *Config, logger *slog.Logger, db *sql.DB, chain *markov.Chain) *Server {
	statsAPI := NewStatsAPI(db, logger)
	chainAPI := NewChainAPI(chain, statsAPI, config.Generation, config.Server.MaxIngestBytes, logger)
	serverAPI := NewServerAPI(config, logger)

	server := &Server{
		config:    config,
		db:        db,
		logger:    logger,
		chain:     chain,
		chainAPI:  chainAPI,
		statsAPI:  statsAPI,
		serverAPI: serverAPI,
		apiMux:    http.NewServeMux(),
	}

	server.chainAPI.RegisterRoutes(server.apiMux)
	server.statsAPI.RegisterRoutes(server.apiMux)
	server.serverAPI.RegisterRoutes(server.apiMux)

	RegisterMetrics()
	server.apiMux.Handle("/metrics", promhttp.Handler())

	return server
}
