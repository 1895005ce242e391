package scraper

import (
	"context"
	"fmt"
	"net/http"

	"wikiseek/parser"
	"wikiseek/search"
)

// fastSearch guesses the page URL directly from the lookup key (or uses the
// raw link as-is) and extracts the article from a single fetch. It never
// gathers related results, which is what makes it fast.
func (s *WebSearcher) fastSearch(ctx context.Context, client *http.Client, query search.Query) (*search.Result, error) {
	pageURL := fmt.Sprintf(s.pageURL, query.Lang, query.Key)
	if query.IsLink {
		pageURL = query.Raw
	}

	page, err := getPage(ctx, client, pageURL, nil)
	if err != nil {
		return nil, err
	}

	content, err := parser.Parse(page)
	if err != nil {
		return nil, err
	}

	return search.NewResult(content.Key, content.Title, query.Lang, content.Summary, nil), nil
}
