package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bizsight/bizsight/internal/session"
)

type contextKey int

const sessionKey contextKey = iota

// RequireSession returns middleware that resolves the session cookie against
// the manager and rejects unauthenticated requests with 401. The resolved
// session is stored in the request context for handlers.
func RequireSession(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil {
				unauthorized(w, r, "missing session cookie")
				return
			}

			sess, ok := manager.Get(cookie.Value)
			if !ok {
				unauthorized(w, r, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom returns the session stored by RequireSession, or nil.
func SessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

func unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	slog.Warn("auth: rejected request",
		"path", r.URL.Path,
		"method", r.Method,
		"reason", reason,
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"authentication required"}`))
}
