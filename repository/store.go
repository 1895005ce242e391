package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookup operations when no row matches.
// A miss is an expected outcome, not a storage failure.
var ErrNotFound = errors.New("repository: not found")

// MaxSimpleResults is the number of related-result slots stored per page.
const MaxSimpleResults = 5

// Page is a cached article: the primary match plus up to five stored
// related-result strings in "title|reference" form.
type Page struct {
	ID            string
	Key           string
	Title         string
	Lang          string
	Summary       string
	SimpleResults []string
}

// Store is the persistence boundary for cached pages and query mappings.
// Uniqueness of (key, lang) on pages and (query, lang, page) on mappings is
// enforced here, not by the callers.
type Store interface {
	// Setup creates the schema. Idempotent.
	Setup(ctx context.Context) error
	// Drop removes the schema and all cached data.
	Drop(ctx context.Context) error

	FindPageByKey(ctx context.Context, key, lang string) (*Page, error)
	FindPageByQuery(ctx context.Context, query, lang string) (*Page, error)
	FindPageIDByKey(ctx context.Context, key, lang string) (string, error)
	FindQueryID(ctx context.Context, query, lang, pageID string) (string, error)
	InsertPage(ctx context.Context, page *Page) (string, error)
	InsertQuery(ctx context.Context, query, lang, pageID string) error

	Close() error
}
