package api

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"wikiseek/search"
)

// Searcher is the search entry point the server exposes.
type Searcher interface {
	Search(ctx context.Context, rawQuery, lang string, params search.Params) (*search.Result, error)
}

// Server is the embedding HTTP surface over a searcher.
type Server struct {
	searcher Searcher
	port     int
	logger   *zap.Logger
}

// NewServer creates the API server.
func NewServer(searcher Searcher, port int, logger *zap.Logger) *Server {
	return &Server{searcher: searcher, port: port, logger: logger}
}

// Start starts the API server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/search", s.SearchHandler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	s.logger.Info("starting API server", zap.Int("port", s.port))
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), mux)
}
