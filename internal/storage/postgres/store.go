package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/catalog-api/internal/storage"
)

// Ensure Store satisfies the storage.Backend interface at compile time.
var _ storage.Backend = (*Store)(nil)

// Store keeps the catalog document as one JSONB row in Postgres.
type Store struct {
	pool *pgxpool.Pool
	name string
}

// NewDocumentStore connects, runs migrations and stores the document under
// the given row name.
func NewDocumentStore(ctx context.Context, databaseURL, name string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool, name: name}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			body JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// Load fetches the document row, returning an empty document when absent.
func (s *Store) Load(ctx context.Context) (storage.Document, error) {
	const query = `SELECT body FROM documents WHERE name = $1;`

	var body []byte
	var doc storage.Document
	err := s.pool.QueryRow(ctx, query, s.name).Scan(&body)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return storage.Document{}, fmt.Errorf("load document: %w", err)
	default:
		if err := json.Unmarshal(body, &doc); err != nil {
			return storage.Document{}, fmt.Errorf("decode document: %w", err)
		}
	}
	doc.Normalize()
	return doc, nil
}

// Save upserts the document row.
func (s *Store) Save(ctx context.Context, doc storage.Document) error {
	doc.Normalize()
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	const query = `
		INSERT INTO documents (name, body, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW();
		`
	if _, err := s.pool.Exec(ctx, query, s.name, body); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}
