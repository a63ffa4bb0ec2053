package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/catalog-api/internal/storage"
	"github.com/hongminglow/catalog-api/internal/storage/storagetest"
)

func TestBackendCompliance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Backend {
		b, err := Open(filepath.Join(t.TempDir(), "db.json"))
		require.NoError(t, err)
		return b
	})
}

func TestOpenWritesDefaultDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.json")
	_, err := Open(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"users", "categories", "items"} {
		assert.JSONEq(t, "[]", string(raw[key]), key)
	}
}

func TestLoadPicksUpExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	b, err := Open(path)
	require.NoError(t, err)

	external := `{"categories":[{"id":"c1","name":"Edited by hand","createdAt":"2025-01-01T00:00:00Z"}]}`
	require.NoError(t, os.WriteFile(path, []byte(external), 0o644))

	doc, err := b.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, "Edited by hand", doc.Categories[0].Name)
	assert.NotNil(t, doc.Users)
	assert.NotNil(t, doc.Items)
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	b, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = b.Load(context.Background())
	require.Error(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(filepath.Join(dir, "db.json"))
	require.NoError(t, err)
	require.NoError(t, b.Save(context.Background(), storage.Document{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "db.json", entries[0].Name())
}
