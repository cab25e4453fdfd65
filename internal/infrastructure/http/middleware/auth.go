package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskverse/taskverse/internal/auth"
	"github.com/taskverse/taskverse/internal/infrastructure/http/response"
)

// Auth is HTTP middleware for bearer token authentication.
type Auth struct {
	verifier *auth.Verifier
}

// NewAuth creates an auth middleware.
func NewAuth(verifier *auth.Verifier) *Auth {
	return &Auth{verifier: verifier}
}

// Validate checks the Authorization header and stores the caller identity in
// the request context. Expects format: "Authorization: Bearer <token>".
func (a *Auth) Validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			slog.WarnContext(r.Context(), "authentication failed: missing Authorization header",
				"path", r.URL.Path,
				"method", r.Method)
			response.Unauthorized(w, "missing Authorization header")
			return
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			slog.WarnContext(r.Context(), "authentication failed: invalid Authorization header format",
				"path", r.URL.Path,
				"method", r.Method)
			response.Unauthorized(w, "invalid Authorization header format, expected: Bearer <token>")
			return
		}

		identity, err := a.verifier.Verify(token)
		if err != nil {
			slog.WarnContext(r.Context(), "authentication failed: invalid or expired token",
				"path", r.URL.Path,
				"method", r.Method)
			response.Unauthorized(w, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	})
}
