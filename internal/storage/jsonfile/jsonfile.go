// Package jsonfile stores the catalog document as a single JSON file on disk.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hongminglow/catalog-api/internal/storage"
)

// Ensure Backend satisfies the storage.Backend interface at compile time.
var _ storage.Backend = (*Backend)(nil)

// Backend reads the file before every operation and rewrites it after every
// mutation, so external edits between requests are picked up.
type Backend struct {
	path string
}

// Open prepares the file at path, writing an empty document when it does not
// exist yet.
func Open(path string) (*Backend, error) {
	if path == "" {
		return nil, errors.New("jsonfile: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: create data dir: %w", err)
	}

	b := &Backend{path: path}
	doc, err := b.Load(context.Background())
	if err != nil {
		return nil, err
	}
	if err := b.Save(context.Background(), doc); err != nil {
		return nil, err
	}
	return b, nil
}

// Path returns the file backing the store.
func (b *Backend) Path() string { return b.path }

func (b *Backend) Load(ctx context.Context) (storage.Document, error) {
	if err := ctx.Err(); err != nil {
		return storage.Document{}, err
	}

	var doc storage.Document
	data, err := os.ReadFile(b.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return storage.Document{}, fmt.Errorf("jsonfile: read %s: %w", b.path, err)
	case len(bytes.TrimSpace(data)) > 0:
		if err := json.Unmarshal(data, &doc); err != nil {
			return storage.Document{}, fmt.Errorf("jsonfile: decode %s: %w", b.path, err)
		}
	}
	doc.Normalize()
	return doc, nil
}

// Save writes to a temporary sibling file and renames it over the target so
// readers never observe a half-written document.
func (b *Backend) Save(ctx context.Context, doc storage.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc.Normalize()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: replace %s: %w", b.path, err)
	}
	return nil
}

// Close is a no-op; the file is opened per operation.
func (b *Backend) Close() error { return nil }
