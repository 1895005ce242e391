package search

import (
	"fmt"
	"strings"
	"unicode"
)

const pageURLFormat = "https://%s.wikipedia.org/wiki/%s"

// PageURL builds the canonical article URL for a page key.
func PageURL(lang, key string) string {
	return fmt.Sprintf(pageURLFormat, lang, key)
}

// stopWords are dropped from queries before building a lookup key. The set
// covers English and Russian question words; matching is case-insensitive.
var stopWords = map[string]struct{}{
	"what": {}, "where": {}, "who": {}, "why": {}, "when": {},
	"that": {}, "this": {}, "how": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "a": {}, "an": {}, "the": {}, "of": {},

	"что": {}, "такое": {}, "где": {}, "кто": {}, "зачем": {}, "куда": {},
	"когда": {}, "такие": {}, "такой": {}, "такого": {}, "как": {},
	"какой": {}, "такая": {},
}

// Query is the normalized form of a raw search string. It is built once per
// search call and not modified afterwards.
type Query struct {
	Raw    string
	Lang   string
	Params Params
	// IsLink reports whether the raw query is itself a direct article link.
	IsLink bool
	// Key is the canonical lookup key: the raw link for link queries,
	// otherwise the cleaned, underscore-joined query.
	Key string
}

// NewQuery builds a Query from a raw string. Link detection may override the
// language with one embedded in the link host and may disable caching for
// this query when link caching is off; the caller's Params value is left
// untouched.
func NewQuery(raw, lang string, params Params) Query {
	if params.ResultCount <= 0 {
		params.ResultCount = defaultResultCount
	}

	q := Query{Raw: raw, Lang: lang, Params: params}
	q.IsLink, q.Lang = detectLink(raw, lang)
	if q.IsLink && !q.Params.UseCacheForLinks {
		q.Params.UseCache = false
	}
	q.Key = q.clean()
	return q
}

// detectLink checks whether raw is a direct Wikipedia link. A three-label
// host carries the article language in its first label.
func detectLink(raw, lang string) (bool, string) {
	rest, ok := strings.CutPrefix(raw, "https://")
	if !ok {
		return false, lang
	}

	host := strings.SplitN(rest, "/", 2)[0]
	labels := strings.Split(host, ".")

	switch {
	case len(labels) == 2 && labels[0] == "wikipedia":
		return true, lang
	case len(labels) == 3 && labels[1] == "wikipedia":
		return true, labels[0]
	}
	return false, lang
}

func (q *Query) clean() string {
	if q.IsLink {
		return q.Raw
	}
	if q.Params.Treatment == TreatmentPassthrough {
		return strings.ReplaceAll(q.Raw, " ", "_")
	}

	words := strings.FieldsFunc(q.Raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	kept := make([]string, 0, len(words))
	for _, word := range words {
		if _, ok := stopWords[strings.ToLower(word)]; ok {
			continue
		}
		kept = append(kept, word)
	}

	if len(kept) == 0 {
		// Nothing survived cleaning; an empty key would be useless.
		return strings.ReplaceAll(q.Raw, " ", "_")
	}
	return strings.Join(kept, "_")
}
