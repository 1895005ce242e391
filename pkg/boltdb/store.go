package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"wikiseek/repository"
)

var (
	pagesBucket   = []byte("pages")
	queriesBucket = []byte("queries")
)

// storedQuery maps a normalized query to the page it resolved to. One
// mapping per (lang, query); the page reference is enough to re-read the
// page row.
type storedQuery struct {
	ID     string `json:"id"`
	PageID string `json:"page_id"`
	Key    string `json:"key"`
}

// Store is an embedded cache store backed by bbolt, for deployments without
// a database server. Pages and query mappings live in per-language nested
// buckets, which keeps keys free of separator ambiguity.
type Store struct {
	path   string
	db     *bolt.DB
	logger *zap.Logger
}

// New opens (creating if needed) the database file.
func New(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("boltdb: database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create directory for store: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{path: path, db: db, logger: logger}, nil
}

func (s *Store) Setup(ctx context.Context) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(pagesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(queriesBucket)
		return err
	})
	if err != nil {
		return fmt.Errorf("create buckets: %w", err)
	}
	s.logger.Info("all buckets created")
	return nil
}

func (s *Store) Drop(ctx context.Context) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{pagesBucket, queriesBucket} {
			if err := tx.DeleteBucket(name); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("drop buckets: %w", err)
	}
	s.logger.Info("all buckets dropped")
	return nil
}

func (s *Store) FindPageByKey(ctx context.Context, key, lang string) (*repository.Page, error) {
	var page *repository.Page
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := nestedGet(tx, pagesBucket, lang, key)
		if raw == nil {
			return repository.ErrNotFound
		}
		return json.Unmarshal(raw, &page)
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (s *Store) FindPageByQuery(ctx context.Context, query, lang string) (*repository.Page, error) {
	var page *repository.Page
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := nestedGet(tx, queriesBucket, lang, query)
		if raw == nil {
			return repository.ErrNotFound
		}
		var mapping storedQuery
		if err := json.Unmarshal(raw, &mapping); err != nil {
			return err
		}

		rawPage := nestedGet(tx, pagesBucket, lang, mapping.Key)
		if rawPage == nil {
			return repository.ErrNotFound
		}
		return json.Unmarshal(rawPage, &page)
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (s *Store) FindPageIDByKey(ctx context.Context, key, lang string) (string, error) {
	page, err := s.FindPageByKey(ctx, key, lang)
	if err != nil {
		return "", err
	}
	return page.ID, nil
}

func (s *Store) FindQueryID(ctx context.Context, query, lang, pageID string) (string, error) {
	var id string
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := nestedGet(tx, queriesBucket, lang, query)
		if raw == nil {
			return repository.ErrNotFound
		}
		var mapping storedQuery
		if err := json.Unmarshal(raw, &mapping); err != nil {
			return err
		}
		if mapping.PageID != pageID {
			return repository.ErrNotFound
		}
		id = mapping.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) InsertPage(ctx context.Context, page *repository.Page) (string, error) {
	stored := *page
	stored.ID = uuid.NewString()

	raw, err := json.Marshal(&stored)
	if err != nil {
		return "", fmt.Errorf("encode page: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := nestedBucket(tx, pagesBucket, stored.Lang)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(stored.Key), raw)
	})
	if err != nil {
		return "", fmt.Errorf("insert page: %w", err)
	}
	return stored.ID, nil
}

func (s *Store) InsertQuery(ctx context.Context, query, lang, pageID string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		// Resolve the page key so lookups can follow the mapping.
		var key string
		pages := tx.Bucket(pagesBucket)
		if pages != nil {
			if langBucket := pages.Bucket([]byte(lang)); langBucket != nil {
				cursor := langBucket.Cursor()
				for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
					var page repository.Page
					if err := json.Unmarshal(v, &page); err != nil {
						return err
					}
					if page.ID == pageID {
						key = page.Key
						break
					}
				}
			}
		}
		if key == "" {
			return repository.ErrNotFound
		}

		raw, err := json.Marshal(&storedQuery{ID: uuid.NewString(), PageID: pageID, Key: key})
		if err != nil {
			return err
		}

		bucket, err := nestedBucket(tx, queriesBucket, lang)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(query), raw)
	})
	if err != nil {
		return fmt.Errorf("insert query: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func nestedGet(tx *bolt.Tx, name []byte, lang, key string) []byte {
	bucket := tx.Bucket(name)
	if bucket == nil {
		return nil
	}
	langBucket := bucket.Bucket([]byte(lang))
	if langBucket == nil {
		return nil
	}
	return langBucket.Get([]byte(key))
}

func nestedBucket(tx *bolt.Tx, name []byte, lang string) (*bolt.Bucket, error) {
	bucket := tx.Bucket(name)
	if bucket == nil {
		return nil, fmt.Errorf("bucket %s missing, store not set up", name)
	}
	return bucket.CreateBucketIfNotExists([]byte(lang))
}

var _ repository.Store = (*Store)(nil)
