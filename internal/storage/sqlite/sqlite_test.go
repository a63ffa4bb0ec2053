package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/catalog-api/internal/models"
	"github.com/hongminglow/catalog-api/internal/storage"
	"github.com/hongminglow/catalog-api/internal/storage/storagetest"
)

func TestBackendCompliance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Backend {
		b, err := Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"), "catalog")
		require.NoError(t, err)
		t.Cleanup(func() { _ = b.Close() })
		return b
	})
}

func TestDocumentsAreIsolatedByName(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	first, err := Open(ctx, path, "first")
	require.NoError(t, err)
	defer first.Close()
	second, err := Open(ctx, path, "second")
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, first.Save(ctx, storage.Document{
		Categories: []models.Category{{ID: "c1", Name: "only in first"}},
	}))

	doc, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Categories)
}
