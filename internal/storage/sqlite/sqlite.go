// Package sqlite keeps the catalog document as a single row in a SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hongminglow/catalog-api/internal/storage"
)

// Ensure Backend satisfies the storage.Backend interface at compile time.
var _ storage.Backend = (*Backend)(nil)

type Backend struct {
	db   *sql.DB
	name string
}

// Open opens (or creates) the database at path and stores the document under
// the given row name.
func Open(ctx context.Context, path, name string) (*Backend, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: create data dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	b := &Backend{db: db, name: name}
	if err := b.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

func (b *Backend) migrate(ctx context.Context) error {
	const stmt = `CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`
	if _, err := b.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("sqlite: apply migrations: %w", err)
	}
	return nil
}

func (b *Backend) Load(ctx context.Context) (storage.Document, error) {
	var body string
	err := b.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, b.name).Scan(&body)
	var doc storage.Document
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return storage.Document{}, fmt.Errorf("sqlite: load document: %w", err)
	default:
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return storage.Document{}, fmt.Errorf("sqlite: decode document: %w", err)
		}
	}
	doc.Normalize()
	return doc, nil
}

func (b *Backend) Save(ctx context.Context, doc storage.Document) error {
	doc.Normalize()
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("sqlite: encode document: %w", err)
	}
	const query = `
		INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at;`
	if _, err := b.db.ExecContext(ctx, query, b.name, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("sqlite: save document: %w", err)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}
