package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/catalog-api/internal/models"
)

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "catalog-test", time.Hour)
	tok, err := tm.Generate(models.User{ID: "user-123", Email: "a@b.com"})
	require.NoError(t, err)

	claims, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.ID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "catalog-test", claims.Issuer)
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	tm := NewTokenManager("secret", "catalog-test", time.Hour, WithTokenClock(func() time.Time { return now }))

	tok, err := tm.Generate(models.User{ID: "u1", Email: "a@b.com"})
	require.NoError(t, err)

	now = issued.Add(59 * time.Minute)
	_, err = tm.Parse(tok)
	require.NoError(t, err, "token must be accepted before expiry")

	now = issued.Add(time.Hour + time.Second)
	_, err = tm.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignTokens(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", "catalog-test", time.Hour)
	user := models.User{ID: "u1", Email: "a@b.com"}

	cases := map[string]string{}

	other, err := NewTokenManager("other-secret", "catalog-test", time.Hour).Generate(user)
	require.NoError(t, err)
	cases["wrong secret"] = other

	wrongIssuer, err := NewTokenManager("secret", "someone-else", time.Hour).Generate(user)
	require.NoError(t, err)
	cases["wrong issuer"] = wrongIssuer

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		ID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "catalog-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	cases["alg none"] = unsigned

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:               "u1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "catalog-test"},
	})
	noExpTok, err := noExp.SignedString([]byte("secret"))
	require.NoError(t, err)
	cases["missing exp"] = noExpTok

	cases["garbage"] = "not-a-jwt"

	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tm.Parse(tok)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tok, err := BearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	tok, err = BearerToken("bearer   xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "abc"} {
		_, err := BearerToken(header)
		assert.ErrorIs(t, err, ErrMissingToken, header)
	}
}
