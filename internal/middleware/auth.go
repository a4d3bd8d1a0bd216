package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/logirate/backend/internal/auth"
	"github.com/logirate/backend/internal/domain"
)

// claimsKey is the context key under which verified token claims are stored.
// Unexported struct type so no other package can collide with it.
type claimsKey struct{}

// TokenVerifier verifies a bearer token and returns its claims.
// Satisfied by *auth.TokenManager; an interface here lets middleware tests
// stub verification without minting real tokens.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// NewAuthenticator returns a middleware that requires a valid bearer token.
// On success the verified claims are stored in the request context for
// ClaimsFromContext. Missing, malformed, expired, or badly signed tokens
// get a 401 with a JSON message body.
func NewAuthenticator(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that rejects callers whose verified role
// claim differs from role. Wire it after NewAuthenticator; a request without
// claims in context is treated as unauthenticated, not as a server error.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			if claims.Role != role {
				writeAuthError(w, http.StatusForbidden, domain.ErrForbidden.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the verified claims stored by NewAuthenticator.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return claims, ok
}

// writeAuthError writes the API's standard JSON error body.
// Duplicated from the handler package to avoid an import cycle.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
