// Package docstore implements the user, category and item repositories on
// top of a whole-document storage.Backend.
//
// Every operation reloads the document from the backend, and every mutation
// writes it back. A single mutex spans the load-modify-save sequence of each
// logical operation, so two concurrent updates in one process cannot lose
// each other's writes.
package docstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/catalog-api/internal/storage"
)

type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	now     func() time.Time
	newID   func() string

	users      *UserRepository
	categories *CategoryRepository
	items      *ItemRepository
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New wraps backend. The Store does not take ownership of backend until
// Close is called.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.users = &UserRepository{store: s}
	s.categories = &CategoryRepository{store: s}
	s.items = &ItemRepository{store: s}
	return s
}

func (s *Store) Users() *UserRepository           { return s.users }
func (s *Store) Categories() *CategoryRepository { return s.categories }
func (s *Store) Items() *ItemRepository           { return s.items }

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Ping loads the document once to prove the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.view(ctx, func(*storage.Document) error { return nil })
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

// view loads the document and hands it to fn without saving.
func (s *Store) view(ctx context.Context, fn func(doc *storage.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	return fn(&doc)
}

// update loads the document, lets fn mutate it and saves it when fn
// succeeds. Nothing is written when fn returns an error.
func (s *Store) update(ctx context.Context, fn func(doc *storage.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if err := fn(&doc); err != nil {
		return err
	}
	if err := s.backend.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}
