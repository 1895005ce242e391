package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"wikiseek/repository"
	"wikiseek/search"
)

// Searcher looks up normalized queries in the persisted store and writes
// web-sourced results back into it. The schema is set up once, on first use.
type Searcher struct {
	store  repository.Store
	logger *zap.Logger

	setupOnce sync.Once
	setupErr  error
}

// NewSearcher creates a cache searcher over a store. The store must not be
// nil; callers that have no store configured should not construct one.
func NewSearcher(store repository.Store, logger *zap.Logger) *Searcher {
	return &Searcher{store: store, logger: logger}
}

// Setup creates the store schema. Safe to call more than once; only the
// first call does work.
func (s *Searcher) Setup(ctx context.Context) error {
	s.setupOnce.Do(func() {
		s.setupErr = s.store.Setup(ctx)
		if s.setupErr == nil {
			s.logger.Info("store configured")
		}
	})
	return s.setupErr
}

// Search looks the query up in the store. A link query is resolved by its
// trailing path segment, anything else through the query-mapping table.
// A miss returns (nil, nil); the caller falls back to the web.
func (s *Searcher) Search(ctx context.Context, query search.Query) (*search.Result, error) {
	if err := s.Setup(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("cache lookup started", zap.String("key", query.Key))

	var (
		page *repository.Page
		err  error
	)
	if query.IsLink {
		segments := strings.Split(query.Key, "/")
		key := segments[len(segments)-1]
		page, err = s.store.FindPageByKey(ctx, key, query.Lang)
	} else {
		page, err = s.store.FindPageByQuery(ctx, query.Key, query.Lang)
	}

	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Info("page not found in cache", zap.String("key", query.Key))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}

	// Fast mode omits related results entirely, which is distinct from
	// "enriched but found none".
	var simple []search.SimpleResult
	if query.Params.Mode != search.ModeFast {
		simple = simpleResultsFrom(page)
	}

	s.logger.Info("page found in cache", zap.String("key", page.Key))
	return search.NewResult(page.Key, page.Title, page.Lang, page.Summary, simple), nil
}

// SaveResult persists a web-sourced result and its query mapping. Results
// without related entries are not cached: enrichment is the signal that the
// result is complete. Both inserts are idempotent via existence checks, so
// re-saving never duplicates rows. Storage failures propagate.
func (s *Searcher) SaveResult(ctx context.Context, query string, result *search.Result) error {
	if len(result.SimpleResults) == 0 {
		s.logger.Info("result has no related entries, not cached", zap.String("key", result.Key))
		return nil
	}

	if err := s.Setup(ctx); err != nil {
		return err
	}

	query = strings.ToLower(query)

	pageID, err := s.store.FindPageIDByKey(ctx, result.Key, result.Lang)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		pageID, err = s.store.InsertPage(ctx, pageFrom(result))
		if err != nil {
			s.logger.Error("failed to save page", zap.String("key", result.Key), zap.Error(err))
			return fmt.Errorf("save page: %w", err)
		}
		s.logger.Info("page saved", zap.String("key", result.Key), zap.String("page_id", pageID))
	case err != nil:
		return fmt.Errorf("page existence check: %w", err)
	default:
		s.logger.Warn("page already exists", zap.String("key", result.Key))
	}

	_, err = s.store.FindQueryID(ctx, query, result.Lang, pageID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if err := s.store.InsertQuery(ctx, query, result.Lang, pageID); err != nil {
			s.logger.Error("failed to save search query", zap.String("query", query), zap.Error(err))
			return fmt.Errorf("save query: %w", err)
		}
		s.logger.Info("search query saved", zap.String("query", query))
	case err != nil:
		return fmt.Errorf("query existence check: %w", err)
	default:
		s.logger.Warn("search query already exists", zap.String("query", query))
	}

	return nil
}

func pageFrom(result *search.Result) *repository.Page {
	stored := make([]string, 0, repository.MaxSimpleResults)
	for _, sr := range result.SimpleResults {
		if len(stored) == repository.MaxSimpleResults {
			break
		}
		stored = append(stored, sr.Title+"|"+sr.RawRef)
	}
	return &repository.Page{
		Key:           result.Key,
		Title:         result.Title,
		Lang:          result.Lang,
		Summary:       result.Summary,
		SimpleResults: stored,
	}
}

// simpleResultsFrom rebuilds related results from their stored
// "title|reference" form. The title is everything before the first
// separator, the reference everything after the last one.
func simpleResultsFrom(page *repository.Page) []search.SimpleResult {
	simple := make([]search.SimpleResult, 0, len(page.SimpleResults))
	for _, stored := range page.SimpleResults {
		parts := strings.Split(stored, "|")
		if len(parts) < 2 {
			continue
		}
		simple = append(simple, search.NewSimpleResult(parts[0], parts[len(parts)-1], page.Lang))
	}
	return simple
}
