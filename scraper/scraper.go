package scraper

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"wikiseek/parser"
	"wikiseek/search"
)

const (
	searchURLFormat = "https://api.wikimedia.org/core/v1/wikipedia/%s/search/%s"
	pageURLFormat   = "https://%s.wikipedia.org/wiki/%s"

	defaultTimeout = 30 * time.Second
)

// Stage outcome labels for the fast strategy, used in telemetry so a reader
// can tell a policy skip from an attempted-and-failed scrape.
const (
	fastSkippedByPolicy = "skipped by policy"
	fastFailed          = "failed"
)

// WebSearcher resolves a query against the live site. It tries the fast
// slug scrape first when the query qualifies, then falls back to the API
// search. Both strategies are terminal on success.
type WebSearcher struct {
	token  string
	logger *zap.Logger

	// URL templates, overridable in tests.
	searchURL string
	pageURL   string
	timeout   time.Duration
}

// NewWebSearcher creates a web searcher. The token is optional; without it
// API requests run at the unauthenticated rate limit (about 500/hour).
func NewWebSearcher(token string, logger *zap.Logger) *WebSearcher {
	return &WebSearcher{
		token:     token,
		logger:    logger,
		searchURL: searchURLFormat,
		pageURL:   pageURLFormat,
		timeout:   defaultTimeout,
	}
}

// SetToken replaces the API token.
func (s *WebSearcher) SetToken(token string) {
	s.token = token
}

// Search runs the two-stage retrieval. A nil result with a nil error means
// neither strategy found anything; that is a valid outcome, not an error.
// All HTTP calls within one Search share a client whose connections are
// released when the call returns.
func (s *WebSearcher) Search(ctx context.Context, query search.Query) (*search.Result, error) {
	s.logger.Info("scraping started", zap.String("key", query.Key), zap.String("lang", query.Lang))

	client := &http.Client{Timeout: s.timeout}
	defer client.CloseIdleConnections()

	if query.Params.Mode == search.ModeFast || query.IsLink {
		result, err := s.fastSearch(ctx, client, query)
		if err == nil {
			return result, nil
		}
		s.logger.Warn("fast scrape did not produce a result, falling back to API",
			zap.String("fast_stage", fastFailed), zap.Error(err))
	} else {
		s.logger.Info("fast scrape not attempted", zap.String("fast_stage", fastSkippedByPolicy))
	}

	result, err := s.apiSearch(ctx, client, query)
	if err != nil {
		if errors.Is(err, ErrNoResults) || errors.Is(err, ErrResponseNotReceived) || parser.IsExtractionFailure(err) {
			s.logger.Warn("api search found nothing", zap.Error(err))
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}
