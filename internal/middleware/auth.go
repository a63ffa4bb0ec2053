package middleware

import (
	"net/http"

	"github.com/hongminglow/catalog-api/internal/auth"
	"github.com/hongminglow/catalog-api/internal/http/respond"
)

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a bearer token (401) or with one that
// fails verification (403). Verified claims are stored in the request
// context for auth.ClaimsFromContext.
func RequireAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "Access token required")
				return
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				respond.Error(w, http.StatusForbidden, "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
