package search

import (
	"fmt"
	"strings"
)

const (
	wikiFolder       = "/wiki/"
	maxSimpleResults = 5
)

// SimpleResult is a related article surfaced alongside the primary match.
// Its URL is always derived from the raw reference and the language.
type SimpleResult struct {
	Title string
	// RawRef is the site-relative reference, with any leading path up to
	// and including "/wiki/" stripped.
	RawRef string
	Lang   string
	URL    string
}

// NewSimpleResult builds a SimpleResult from a title and a raw reference,
// which may be a bare key, a site-relative path or a full article URL.
func NewSimpleResult(title, rawRef, lang string) SimpleResult {
	if i := strings.Index(rawRef, wikiFolder); i != -1 {
		rawRef = rawRef[i+len(wikiFolder):]
	}
	return SimpleResult{
		Title:  title,
		RawRef: rawRef,
		Lang:   lang,
		URL:    PageURL(lang, rawRef),
	}
}

// HTML renders the result as an anchor for template substitution.
func (r SimpleResult) HTML() string {
	return fmt.Sprintf("<i><a href='%s'>%s</a></i>", r.URL, r.Title)
}

// Result is the outcome of a successful search.
type Result struct {
	Key     string
	Title   string
	Lang    string
	Summary string
	URL     string
	// SimpleResults is nil when enrichment was not attempted (fast mode,
	// fast scrape) and an empty list when it ran but everything was
	// filtered out. The two states are distinct: only enriched results
	// are written back to the cache.
	SimpleResults []SimpleResult
}

// NewResult assembles a Result. Related entries whose title matches the
// result's own title are removed and the list is capped at five.
func NewResult(key, title, lang, summary string, simple []SimpleResult) *Result {
	result := &Result{
		Key:     key,
		Title:   title,
		Lang:    lang,
		Summary: summary,
		URL:     PageURL(lang, key),
	}

	if simple != nil {
		kept := make([]SimpleResult, 0, maxSimpleResults)
		for _, s := range simple {
			if strings.EqualFold(s.Title, title) {
				continue
			}
			if len(kept) == maxSimpleResults {
				break
			}
			kept = append(kept, s)
		}
		result.SimpleResults = kept
	}
	return result
}
