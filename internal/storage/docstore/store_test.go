package docstore

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/catalog-api/internal/models"
	"github.com/hongminglow/catalog-api/internal/storage"
	"github.com/hongminglow/catalog-api/internal/storage/jsonfile"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, *jsonfile.Backend) {
	t.Helper()
	backend, err := jsonfile.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	s := New(backend, opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s, backend
}

func ptr[T any](v T) *T { return &v }

func TestCategoryCreateThenFind(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	created, err := s.Categories().Create(ctx, models.NewCategory{Name: "Bread", Description: "Fresh every day"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.UpdatedAt)

	got, err := s.Categories().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bread", got.Name)
	assert.Equal(t, "Fresh every day", got.Description)
}

func TestCategoryFindMissing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Categories().FindByID(context.Background(), "nope")
	require.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, storage.KindNotFound, storage.KindOf(err))
}

func TestCategoryUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s, _ := newTestStore(t, WithClock(func() time.Time { return clock }))

	created, err := s.Categories().Create(ctx, models.NewCategory{Name: "Bread", Description: "old", ShortTitle: "br"})
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	updated, err := s.Categories().Update(ctx, created.ID, models.CategoryUpdate{Description: ptr("new")})
	require.NoError(t, err)
	assert.Equal(t, "Bread", updated.Name)
	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, "br", updated.ShortTitle)
	require.NotNil(t, updated.UpdatedAt)
	assert.True(t, updated.UpdatedAt.Equal(clock))
	assert.True(t, updated.CreatedAt.Equal(clock.Add(-time.Hour)))
}

func TestCategoryUpdateMissing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Categories().Update(context.Background(), "nope", models.CategoryUpdate{Name: ptr("x")})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCategoryDeleteCascadesItems(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	bread, err := s.Categories().Create(ctx, models.NewCategory{Name: "Bread"})
	require.NoError(t, err)
	cakes, err := s.Categories().Create(ctx, models.NewCategory{Name: "Cakes"})
	require.NoError(t, err)

	var breadItems []string
	for i := 0; i < 3; i++ {
		it, err := s.Items().Create(ctx, models.NewItem{
			Name: fmt.Sprintf("loaf %d", i), Description: "d", Price: 2, CategoryID: bread.ID,
		})
		require.NoError(t, err)
		breadItems = append(breadItems, it.ID)
	}
	cake, err := s.Items().Create(ctx, models.NewItem{Name: "tart", Description: "d", Price: 4, CategoryID: cakes.ID})
	require.NoError(t, err)

	res, err := s.Categories().Delete(ctx, bread.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.DeleteResult{Success: true, DeletedItemsCount: 3}, res)

	for _, id := range breadItems {
		_, err := s.Items().FindByID(ctx, id)
		require.ErrorIs(t, err, storage.ErrNotFound)
	}
	_, err = s.Categories().FindByID(ctx, bread.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	remaining, err := s.Items().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, cake.ID, remaining[0].ID)
}

func TestCategoryDeleteMissing(t *testing.T) {
	s, _ := newTestStore(t)

	res, err := s.Categories().Delete(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Zero(t, res.DeletedItemsCount)
}

func TestItemCreateRequiresCategory(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore(t)

	_, err := s.Items().Create(ctx, models.NewItem{Name: "x", Description: "d", Price: 1, CategoryID: "missing"})
	require.ErrorIs(t, err, storage.ErrCategoryNotFound)
	assert.Equal(t, storage.KindReference, storage.KindOf(err))

	doc, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Items)
}

func TestItemUpdate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	bread, err := s.Categories().Create(ctx, models.NewCategory{Name: "Bread"})
	require.NoError(t, err)
	cakes, err := s.Categories().Create(ctx, models.NewCategory{Name: "Cakes"})
	require.NoError(t, err)
	it, err := s.Items().Create(ctx, models.NewItem{Name: "loaf", Description: "d", Price: 2, CategoryID: bread.ID})
	require.NoError(t, err)

	t.Run("merges fields and moves category", func(t *testing.T) {
		updated, err := s.Items().Update(ctx, it.ID, models.ItemUpdate{Price: ptr(3.5), CategoryID: ptr(cakes.ID)})
		require.NoError(t, err)
		assert.Equal(t, "loaf", updated.Name)
		assert.Equal(t, 3.5, updated.Price)
		assert.Equal(t, cakes.ID, updated.CategoryID)
		assert.NotNil(t, updated.UpdatedAt)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := s.Items().Update(ctx, it.ID, models.ItemUpdate{CategoryID: ptr("missing")})
		require.ErrorIs(t, err, storage.ErrCategoryNotFound)

		got, err := s.Items().FindByID(ctx, it.ID)
		require.NoError(t, err)
		assert.Equal(t, cakes.ID, got.CategoryID)
	})

	t.Run("category check wins over missing item", func(t *testing.T) {
		_, err := s.Items().Update(ctx, "nope", models.ItemUpdate{CategoryID: ptr("missing")})
		require.ErrorIs(t, err, storage.ErrCategoryNotFound)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := s.Items().Update(ctx, "nope", models.ItemUpdate{Name: ptr("x")})
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestItemFindByCategoryAndDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	bread, err := s.Categories().Create(ctx, models.NewCategory{Name: "Bread"})
	require.NoError(t, err)
	it, err := s.Items().Create(ctx, models.NewItem{Name: "loaf", Description: "d", Price: 2, CategoryID: bread.ID})
	require.NoError(t, err)

	byCat, err := s.Items().FindByCategory(ctx, bread.ID)
	require.NoError(t, err)
	require.Len(t, byCat, 1)

	none, err := s.Items().FindByCategory(ctx, "other")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	removed, err := s.Items().Delete(ctx, it.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Items().Delete(ctx, it.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.Users().Create(ctx, models.NewUser{Email: "a@b.com", Name: "A", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = s.Users().Create(ctx, models.NewUser{Email: "a@b.com", Name: "B", PasswordHash: "h2"})
	require.ErrorIs(t, err, storage.ErrEmailExists)
	assert.Equal(t, storage.KindConflict, storage.KindOf(err))

	all, err := s.Users().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserEmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.Users().Create(ctx, models.NewUser{Email: "a@b.com", Name: "A", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = s.Users().Create(ctx, models.NewUser{Email: "A@b.com", Name: "A", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = s.Users().FindByEmail(ctx, "A@B.COM")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUserLookups(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, WithIDGenerator(func() string { return "fixed-id" }))

	created, err := s.Users().Create(ctx, models.NewUser{Email: "a@b.com", Name: "A", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", created.ID)

	byID, err := s.Users().FindByID(ctx, "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)
	assert.True(t, created.CreatedAt.Equal(byID.CreatedAt))

	rec, err := s.Users().FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", rec.Password)
	assert.Equal(t, "fixed-id", rec.ID)
}

func TestConcurrentCreatesDoNotLoseWrites(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Categories().Create(ctx, models.NewCategory{Name: fmt.Sprintf("c%d", i)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := s.Categories().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)
}
