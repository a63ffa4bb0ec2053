// Package cache mirrors the catalog's categories and items on the client so
// repeated reads within the staleness window skip the network.
package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hongminglow/catalog-api/internal/models"
	"github.com/hongminglow/catalog-api/internal/models/dto"
)

// TTL is how long a fetched collection stays valid.
const TTL = 5 * time.Minute

// API is the subset of the REST client the store calls.
type API interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Items(ctx context.Context, categoryID string) ([]models.Item, error)
	CreateCategory(ctx context.Context, req dto.CategoryRequest) (models.Category, error)
	UpdateCategory(ctx context.Context, id string, req dto.CategoryRequest) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) (int, error)
	CreateItem(ctx context.Context, req dto.ItemRequest) (models.Item, error)
	UpdateItem(ctx context.Context, id string, req dto.ItemRequest) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// State describes one mirrored collection.
type State struct {
	Loading   bool
	Err       error
	LastFetch time.Time
}

type Store struct {
	api API
	now func() time.Time

	mu         sync.RWMutex
	categories []models.Category
	items      []models.Item
	catState   State
	itemState  State

	// bumped by every local change so an in-flight fetch can tell its
	// snapshot is older than the mirror
	catGen  uint64
	itemGen uint64
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(api API, opts ...Option) *Store {
	s := &Store{api: api, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsCacheValid reports whether a collection fetched at lastFetch is still
// fresh. The zero time is never valid.
func (s *Store) IsCacheValid(lastFetch time.Time) bool {
	if lastFetch.IsZero() {
		return false
	}
	return s.now().Sub(lastFetch) < TTL
}

// FetchCategories returns the mirrored categories, reloading them from the
// server when the mirror is stale or force is set.
func (s *Store) FetchCategories(ctx context.Context, force bool) ([]models.Category, error) {
	s.mu.Lock()
	if !force && s.IsCacheValid(s.catState.LastFetch) {
		out := slices.Clone(s.categories)
		s.mu.Unlock()
		return out, nil
	}
	s.catState.Loading = true
	s.catState.Err = nil
	gen := s.catGen
	s.mu.Unlock()

	categories, err := s.api.Categories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catState.Loading = false
	if err != nil {
		s.catState.Err = err
		return nil, err
	}
	if s.catGen != gen {
		// A local change landed while the request was out. Keep it and
		// leave the collection stale so the next fetch reloads.
		return slices.Clone(s.categories), nil
	}
	s.categories = categories
	s.catState.LastFetch = s.now()
	return slices.Clone(categories), nil
}

// FetchItems is FetchCategories for items. The mirror always holds every
// item; use ItemsByCategory to narrow it.
func (s *Store) FetchItems(ctx context.Context, force bool) ([]models.Item, error) {
	s.mu.Lock()
	if !force && s.IsCacheValid(s.itemState.LastFetch) {
		out := slices.Clone(s.items)
		s.mu.Unlock()
		return out, nil
	}
	s.itemState.Loading = true
	s.itemState.Err = nil
	gen := s.itemGen
	s.mu.Unlock()

	items, err := s.api.Items(ctx, "")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemState.Loading = false
	if err != nil {
		s.itemState.Err = err
		return nil, err
	}
	if s.itemGen != gen {
		// A local change landed while the request was out. Keep it and
		// leave the collection stale so the next fetch reloads.
		return slices.Clone(s.items), nil
	}
	s.items = items
	s.itemState.LastFetch = s.now()
	return slices.Clone(items), nil
}

func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

func (s *Store) Items() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// ItemsByCategory filters the mirrored items without a network call.
func (s *Store) ItemsByCategory(categoryID string) []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Item
	for _, item := range s.items {
		if item.CategoryID == categoryID {
			out = append(out, item)
		}
	}
	return out
}

func (s *Store) CategoriesState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catState
}

func (s *Store) ItemsState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemState
}

// Clear drops both collections and their fetch state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = nil
	s.items = nil
	s.catState = State{}
	s.itemState = State{}
	s.catGen++
	s.itemGen++
}
