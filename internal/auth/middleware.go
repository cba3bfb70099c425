package auth

import (
	"context"
	"net/http"
	"strings"

	pkghttp "github.com/greenstrikas/platform/pkg/http"
)

type contextKey string

const sessionContextKey contextKey = "session_claims"

// RequireSession returns middleware that rejects requests without a valid
// Bearer session token and stores the claims in the request context.
func RequireSession(sm *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				pkghttp.WriteUnauthorized(w, "Missing or malformed authorization header")
				return
			}

			claims, err := sm.Validate(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				pkghttp.WriteUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session claims stored by RequireSession.
func SessionFromContext(ctx context.Context) (*SessionClaims, bool) {
	claims, ok := ctx.Value(sessionContextKey).(*SessionClaims)
	return claims, ok
}
