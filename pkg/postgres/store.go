package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"wikiseek/repository"
)

const defaultMigrationsPath = "file://migrations"

// DB is the subset of pgxpool.Pool the store uses. pgxmock satisfies it in
// tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

// Store is the relational cache store backed by PostgreSQL. Schema changes
// go through golang-migrate; every operation runs in its own pool-scoped
// session.
type Store struct {
	db             DB
	dbURL          string
	migrationsPath string
	logger         *zap.Logger
}

// New connects to the database and pings it. The schema is not touched
// until Setup.
func New(ctx context.Context, dbURL, migrationsPath string, logger *zap.Logger) (*Store, error) {
	if dbURL == "" {
		return nil, errors.New("postgres: database URL is required")
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if migrationsPath == "" {
		migrationsPath = defaultMigrationsPath
	}

	return &Store{db: pool, dbURL: dbURL, migrationsPath: migrationsPath, logger: logger}, nil
}

// NewWithDB wraps an existing connection. Setup and Drop are no-ops in this
// mode; the schema is assumed to be managed by whoever owns the connection.
func NewWithDB(db DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) Setup(ctx context.Context) error {
	if s.dbURL == "" {
		s.logger.Warn("store has no database URL, skipping migrations")
		return nil
	}

	m, err := migrate.New(s.migrationsPath, s.dbURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}
	s.logger.Info("all tables created")
	return nil
}

func (s *Store) Drop(ctx context.Context) error {
	if s.dbURL == "" {
		s.logger.Warn("store has no database URL, skipping drop")
		return nil
	}

	m, err := migrate.New(s.migrationsPath, s.dbURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("revert migrations: %w", err)
	}
	s.logger.Info("all tables dropped")
	return nil
}

const pageColumns = `id, key, lang, title, summary,
		simple_result1, simple_result2, simple_result3, simple_result4, simple_result5`

func (s *Store) FindPageByKey(ctx context.Context, key, lang string) (*repository.Page, error) {
	query := `
		SELECT ` + pageColumns + `
		FROM wiki_pages
		WHERE key = $1 AND lang = $2
	`
	return scanPage(s.db.QueryRow(ctx, query, key, lang))
}

func (s *Store) FindPageByQuery(ctx context.Context, searchQuery, lang string) (*repository.Page, error) {
	query := `
		SELECT p.id, p.key, p.lang, p.title, p.summary,
			p.simple_result1, p.simple_result2, p.simple_result3, p.simple_result4, p.simple_result5
		FROM wiki_pages p
		JOIN wiki_queries q ON q.page_id = p.id
		WHERE q.query = $1 AND q.lang = $2
	`
	return scanPage(s.db.QueryRow(ctx, query, searchQuery, lang))
}

func (s *Store) FindPageIDByKey(ctx context.Context, key, lang string) (string, error) {
	query := `
		SELECT id FROM wiki_pages
		WHERE key = $1 AND lang = $2
	`

	var id string
	err := s.db.QueryRow(ctx, query, key, lang).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("unable to find page id: %w", err)
	}
	return id, nil
}

func (s *Store) FindQueryID(ctx context.Context, searchQuery, lang, pageID string) (string, error) {
	query := `
		SELECT id FROM wiki_queries
		WHERE query = $1 AND lang = $2 AND page_id = $3
	`

	var id string
	err := s.db.QueryRow(ctx, query, searchQuery, lang, pageID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("unable to find query id: %w", err)
	}
	return id, nil
}

func (s *Store) InsertPage(ctx context.Context, page *repository.Page) (string, error) {
	query := `
		INSERT INTO wiki_pages (` + pageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var simple [repository.MaxSimpleResults]*string
	for i := range page.SimpleResults {
		if i == repository.MaxSimpleResults {
			break
		}
		simple[i] = &page.SimpleResults[i]
	}

	id := uuid.NewString()
	err := s.db.QueryRow(ctx, query,
		id, page.Key, page.Lang, page.Title, page.Summary,
		simple[0], simple[1], simple[2], simple[3], simple[4],
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("unable to insert page: %w", err)
	}
	return id, nil
}

func (s *Store) InsertQuery(ctx context.Context, searchQuery, lang, pageID string) error {
	query := `
		INSERT INTO wiki_queries (id, query, lang, page_id)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := s.db.Exec(ctx, query, uuid.NewString(), searchQuery, lang, pageID); err != nil {
		return fmt.Errorf("unable to insert query: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	s.db.Close()
	return nil
}

func scanPage(row pgx.Row) (*repository.Page, error) {
	var (
		page   repository.Page
		simple [repository.MaxSimpleResults]*string
	)

	err := row.Scan(
		&page.ID, &page.Key, &page.Lang, &page.Title, &page.Summary,
		&simple[0], &simple[1], &simple[2], &simple[3], &simple[4],
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("unable to scan page: %w", err)
	}

	for _, s := range simple {
		if s != nil && *s != "" {
			page.SimpleResults = append(page.SimpleResults, *s)
		}
	}
	return &page, nil
}

// Store implements the repository boundary.
var _ repository.Store = (*Store)(nil)
