package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/catalog-api/internal/config"
	"github.com/hongminglow/catalog-api/internal/models/dto"
	"github.com/hongminglow/catalog-api/internal/server"
	"github.com/hongminglow/catalog-api/internal/storage/docstore"
	"github.com/hongminglow/catalog-api/internal/storage/jsonfile"
)

func ptr[T any](v T) *T { return &v }

func newBackendServer(t *testing.T) *httptest.Server {
	t.Helper()
	backend, err := jsonfile.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	cfg := config.Config{
		JWTSecret: "secret",
		JWTIssuer: "catalog-test",
		JWTTTL:    time.Hour,
	}
	ts := httptest.NewServer(server.NewHandler(cfg, docstore.New(backend), zerolog.Nop()))
	t.Cleanup(ts.Close)
	return ts
}

func TestClientAgainstServer(t *testing.T) {
	ts := newBackendServer(t)
	ctx := context.Background()
	c := New(ts.URL)

	_, err := c.CreateCategory(ctx, dto.CategoryRequest{Name: ptr("Bread")})
	require.ErrorIs(t, err, ErrSessionExpired)

	auth, err := c.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "secret1", Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, auth.Token, c.Tokens().Token())

	profile, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, profile.ID)

	bread, err := c.CreateCategory(ctx, dto.CategoryRequest{Name: ptr("Bread")})
	require.NoError(t, err)
	cakes, err := c.CreateCategory(ctx, dto.CategoryRequest{Name: ptr("Cakes")})
	require.NoError(t, err)

	renamed, err := c.UpdateCategory(ctx, cakes.ID, dto.CategoryRequest{ShortTitle: ptr("ck")})
	require.NoError(t, err)
	assert.Equal(t, "Cakes", renamed.Name)
	assert.Equal(t, "ck", renamed.ShortTitle)

	price := dto.Price(2.5)
	loaf, err := c.CreateItem(ctx, dto.ItemRequest{
		Name: ptr("loaf"), Description: ptr("d"), Price: &price, CategoryID: ptr(bread.ID),
	})
	require.NoError(t, err)
	_, err = c.CreateItem(ctx, dto.ItemRequest{
		Name: ptr("tart"), Description: ptr("d"), Price: &price, CategoryID: ptr(cakes.ID),
	})
	require.NoError(t, err)

	items, err := c.Items(ctx, bread.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, loaf.ID, items[0].ID)

	newPrice := dto.Price(3)
	updated, err := c.UpdateItem(ctx, loaf.ID, dto.ItemRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 3.0, updated.Price)

	got, err := c.Item(ctx, loaf.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.Price)

	require.NoError(t, c.DeleteItem(ctx, loaf.ID))
	_, err = c.Item(ctx, loaf.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Item not found", apiErr.Message)

	deleted, err := c.DeleteCategory(ctx, cakes.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	categories, err := c.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, bread.ID, categories[0].ID)

	cat, err := c.Category(ctx, bread.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bread", cat.Name)

	require.NoError(t, c.Logout())
	assert.Empty(t, c.Tokens().Token())

	_, err = c.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, c.Tokens().Token())
}

func TestUnauthorizedClearsToken(t *testing.T) {
	ts := newBackendServer(t)
	ctx := context.Background()
	tokens := &MemoryTokenStore{}
	c := New(ts.URL, WithTokenStore(tokens))

	_, err := c.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "secret1", Name: "A"})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Token())

	_, err = c.Login(ctx, "a@b.com", "wrong")
	require.ErrorIs(t, err, ErrSessionExpired)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Empty(t, tokens.Token())
}

func TestForbiddenKeepsToken(t *testing.T) {
	ts := newBackendServer(t)
	tokens := &MemoryTokenStore{}
	require.NoError(t, tokens.SetToken("not-a-jwt"))
	c := New(ts.URL, WithTokenStore(tokens))

	_, err := c.Profile(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Invalid or expired token", apiErr.Message)
	assert.False(t, errors.Is(err, ErrSessionExpired))
	assert.Equal(t, "not-a-jwt", tokens.Token())
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	c := New(ts.URL, WithHTTPClient(ts.Client()), WithTimeout(50*time.Millisecond))
	_, err := c.Categories(context.Background())
	require.ErrorIs(t, err, ErrTimeout)
}

func TestInvalidJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer ts.Close()

	_, err := New(ts.URL).Categories(context.Background())
	require.ErrorIs(t, err, ErrInvalidJSON)
}

func TestErrorWithoutMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).Categories(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Something went wrong", apiErr.Message)
}
