package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wikiseek/parser"
	"wikiseek/search"
)

// ErrNoResults means both search facets came back empty. Terminal for the
// API strategy; not retried.
var ErrNoResults = errors.New("scraper: no search results")

// overFetchFactor widens the candidate request so that self-match removal
// and later filtering still leave enough entries.
const overFetchFactor = 6

const (
	facetTitle   = "title"
	facetContent = "page"
)

type apiPage struct {
	Title string `json:"title"`
	Key   string `json:"key"`
}

type apiSearchResponse struct {
	Pages []apiPage `json:"pages"`
}

// apiSearch runs the full API strategy: candidate search across both facets,
// then a concurrent top-page fetch and related-results assembly.
func (s *WebSearcher) apiSearch(ctx context.Context, client *http.Client, query search.Query) (*search.Result, error) {
	s.logger.Info("api search started", zap.String("key", query.Key))

	candidates, err := s.searchCandidates(ctx, client, query)
	if err != nil {
		return nil, err
	}
	top := candidates[0]

	var (
		summary string
		simple  []search.SimpleResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := getPage(gctx, client, fmt.Sprintf(s.pageURL, query.Lang, top.Key), nil)
		if err != nil {
			return err
		}
		summary, err = parser.Summary(page)
		return err
	})
	g.Go(func() error {
		// The top candidate is included here; result assembly removes
		// the self-match.
		simple = make([]search.SimpleResult, 0, len(candidates))
		for _, c := range candidates {
			simple = append(simple, search.NewSimpleResult(c.Title, c.Key, query.Lang))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return search.NewResult(top.Key, top.Title, query.Lang, summary, simple), nil
}

// searchCandidates issues the title-facet and content-facet searches
// concurrently and reconciles them: the configured priority facet wins, the
// other is a logged fallback, both empty is a miss.
func (s *WebSearcher) searchCandidates(ctx context.Context, client *http.Client, query search.Query) ([]apiPage, error) {
	limit := query.Params.ResultCount * overFetchFactor

	var byTitle, byContent []apiPage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byTitle, err = s.searchFacet(gctx, client, query.Lang, facetTitle, query.Key, limit)
		return err
	})
	g.Go(func() error {
		var err error
		byContent, err = s.searchFacet(gctx, client, query.Lang, facetContent, query.Key, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	preferred, fallback := byTitle, byContent
	downgrade := "content"
	if query.Params.Priority == search.PriorityContent {
		preferred, fallback = byContent, byTitle
		downgrade = "title"
	}

	pages := preferred
	if len(pages) == 0 {
		if len(fallback) == 0 {
			s.logger.Info("both search facets came back empty", zap.String("key", query.Key))
			return nil, ErrNoResults
		}
		s.logger.Warn("search priority changed", zap.String("facet", downgrade))
		pages = fallback
	}

	// Remote ranking order is preserved; no secondary sort.
	if len(pages) > query.Params.ResultCount {
		pages = pages[:query.Params.ResultCount]
	}
	return pages, nil
}

func (s *WebSearcher) searchFacet(ctx context.Context, client *http.Client, lang, facet, q string, limit int) ([]apiPage, error) {
	values := url.Values{}
	values.Set("q", q)
	values.Set("limit", strconv.Itoa(limit))
	facetURL := fmt.Sprintf(s.searchURL, lang, facet) + "?" + values.Encode()

	var header http.Header
	if s.token != "" {
		header = http.Header{}
		header.Set("Authorization", "Bearer "+s.token)
	}

	body, err := getPage(ctx, client, facetURL, header)
	if err != nil {
		return nil, err
	}

	var decoded apiSearchResponse
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return nil, fmt.Errorf("decode %s facet response: %w", facet, err)
	}
	return decoded.Pages, nil
}
