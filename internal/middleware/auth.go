package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/micropost/micropost-go/internal/crypto"
	"github.com/micropost/micropost-go/internal/session"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the decoded credential attached to the request context after a
// guard admits the request.
type Identity struct {
	UserID   int64
	Username string
}

// RequireAuth returns the strict guard: it resolves the session cookie to a
// stored credential, verifies it, and attaches the identity to the request
// context. Any failure yields 401 with a JSON error body.
func RequireAuth(store session.Store, secret string) func(http.Handler) http.Handler {
	return guard(store, secret, func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
	})
}

// RequireAuthOrRedirect returns the page-route guard: same checks as
// RequireAuth, but failures redirect to the login page instead of erroring.
func RequireAuthOrRedirect(store session.Store, secret string) func(http.Handler) http.Handler {
	return guard(store, secret, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
}

func guard(store session.Store, secret string, reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				reject(w, r)
				return
			}

			sess, err := store.Get(r.Context(), cookie.Value)
			if err != nil {
				reject(w, r)
				return
			}

			claims, err := crypto.ValidateToken(sess.Token, secret)
			if err != nil {
				// The stored credential is stale; drop the session so the
				// client gets a clean miss next time.
				if err := store.Delete(r.Context(), sess.ID); err != nil && !errors.Is(err, session.ErrNotFound) {
					slog.Error("dropping stale session failed", "error", err)
				}
				reject(w, r)
				return
			}

			identity := Identity{UserID: claims.UserID, Username: claims.Username}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated identity from the request context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
