// Package wikiseek answers a natural-language query with the best-matching
// Wikipedia article. Lookups run through an ordered fallback pipeline:
// persisted cache, fast slug scrape, authoritative API search. Web-sourced
// hits are written back to the cache for future queries.
package wikiseek

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"wikiseek/cache"
	"wikiseek/repository"
	"wikiseek/scraper"
	"wikiseek/search"
)

// ErrNoStore is returned by store operations when the searcher was built
// without a store.
var ErrNoStore = errors.New("wikiseek: no store configured")

type webSearcher interface {
	Search(ctx context.Context, query search.Query) (*search.Result, error)
}

type cacheSearcher interface {
	Setup(ctx context.Context) error
	Search(ctx context.Context, query search.Query) (*search.Result, error)
	SaveResult(ctx context.Context, query string, result *search.Result) error
}

// Searcher is the top-level entry point composing the cache and web
// strategies.
type Searcher struct {
	web    webSearcher
	cache  cacheSearcher
	logger *zap.Logger
}

// NewSearcher creates a searcher. The token is optional (it raises the API
// rate limit). A nil store disables caching entirely; construct a store from
// pkg/postgres or pkg/boltdb to enable it.
func NewSearcher(token string, store repository.Store, logger *zap.Logger) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Searcher{
		web:    scraper.NewWebSearcher(token, logger),
		logger: logger,
	}
	if store != nil {
		s.cache = cache.NewSearcher(store, logger)
	}
	return s
}

// SetupStore creates the store schema ahead of the first search. Searches
// do this lazily on their own; calling it up front surfaces configuration
// problems early.
func (s *Searcher) SetupStore(ctx context.Context) error {
	if s.cache == nil {
		s.logger.Error("store is not configured")
		return ErrNoStore
	}
	return s.cache.Setup(ctx)
}

// Search resolves a raw query. It returns (nil, nil) when nothing was found
// anywhere; an error is reserved for unrecovered failures outside the normal
// miss/fallback flow. A successful web result is written back to the cache
// as a best-effort side effect unless the query was a direct link or ran
// with passthrough treatment.
func (s *Searcher) Search(ctx context.Context, rawQuery, lang string, params search.Params) (*search.Result, error) {
	s.logger.Info("search started", zap.String("query", rawQuery), zap.String("lang", lang))

	query := search.NewQuery(rawQuery, lang, params)
	s.logger.Info("search query accepted", zap.String("key", query.Key), zap.Bool("is_link", query.IsLink))

	if s.cache != nil && query.Params.UseCache {
		result, err := s.cache.Search(ctx, query)
		if err != nil {
			s.logger.Warn("cache lookup failed, falling back to web", zap.Error(err))
		} else if result != nil {
			return result, nil
		}
	}

	result, err := s.web.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if result == nil {
		s.logger.Warn("searchers did not find anything", zap.String("key", query.Key))
		return nil, nil
	}

	switch {
	case s.cache == nil, query.IsLink, query.Params.Treatment == search.TreatmentPassthrough:
		s.logger.Info("result not written back to cache", zap.String("key", result.Key))
	default:
		// A failed write-back must not turn a successful search into
		// a failure.
		if err := s.cache.SaveResult(ctx, query.Key, result); err != nil {
			s.logger.Error("failed to cache result", zap.String("key", result.Key), zap.Error(err))
		}
	}

	return result, nil
}
