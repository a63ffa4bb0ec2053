// Package storagetest holds a compliance suite shared by every
// storage.Backend implementation.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/catalog-api/internal/models"
	"github.com/hongminglow/catalog-api/internal/storage"
)

// Run exercises a backend returned by makeBackend. Each call must yield a
// clean, isolated backend.
func Run(t *testing.T, makeBackend func(t *testing.T) storage.Backend) {
	t.Helper()

	t.Run("empty document has all collections", func(t *testing.T) {
		b := makeBackend(t)
		doc, err := b.Load(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, doc.Users)
		assert.NotNil(t, doc.Categories)
		assert.NotNil(t, doc.Items)
		assert.Empty(t, doc.Users)
		assert.Empty(t, doc.Categories)
		assert.Empty(t, doc.Items)
	})

	t.Run("save then load returns the same document", func(t *testing.T) {
		b := makeBackend(t)
		ctx := context.Background()
		created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

		in := storage.Document{
			Users: []models.UserRecord{{
				User:     models.User{ID: "u1", Email: "a@b.com", Name: "A", CreatedAt: created},
				Password: "hash",
			}},
			Categories: []models.Category{{ID: "c1", Name: "Bread", ShortTitle: "br", CreatedAt: created}},
			Items: []models.Item{{
				ID: "i1", Name: "Baguette", Description: "crusty", Price: 1.2,
				CategoryID: "c1", CreatedAt: created,
			}},
		}
		require.NoError(t, b.Save(ctx, in))

		out, err := b.Load(ctx)
		require.NoError(t, err)
		require.Len(t, out.Users, 1)
		assert.Equal(t, "hash", out.Users[0].Password)
		assert.Equal(t, "a@b.com", out.Users[0].Email)
		assert.True(t, created.Equal(out.Users[0].CreatedAt))
		require.Len(t, out.Categories, 1)
		assert.Equal(t, "Bread", out.Categories[0].Name)
		assert.Equal(t, "br", out.Categories[0].ShortTitle)
		require.Len(t, out.Items, 1)
		assert.Equal(t, 1.2, out.Items[0].Price)
		assert.Equal(t, "c1", out.Items[0].CategoryID)
	})

	t.Run("save replaces the previous document", func(t *testing.T) {
		b := makeBackend(t)
		ctx := context.Background()

		require.NoError(t, b.Save(ctx, storage.Document{
			Categories: []models.Category{{ID: "c1", Name: "first"}, {ID: "c2", Name: "second"}},
		}))
		require.NoError(t, b.Save(ctx, storage.Document{
			Categories: []models.Category{{ID: "c2", Name: "second"}},
		}))

		out, err := b.Load(ctx)
		require.NoError(t, err)
		require.Len(t, out.Categories, 1)
		assert.Equal(t, "c2", out.Categories[0].ID)
		assert.NotNil(t, out.Items)
	})
}
