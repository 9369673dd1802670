package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/micropost/micropost-go/internal/crypto"
	"github.com/micropost/micropost-go/internal/session"
)

const testSecret = "test-secret"

func okHandler(t *testing.T, wantUserID int64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Error("expected identity in context")
		}
		if id.UserID != wantUserID {
			t.Errorf("identity UserID = %d, want %d", id.UserID, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func loginSession(t *testing.T, store session.Store, userID int64, username string, tokenTTL time.Duration) string {
	t.Helper()

	token, err := crypto.GenerateToken(userID, username, testSecret, tokenTTL)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	sess := session.Session{ID: "sid-test", Token: token, ExpiresAt: time.Now().Add(time.Hour)}
	if err := store.Create(context.Background(), sess); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return sess.ID
}

func TestRequireAuthValidSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)

	sid := loginSession(t, store, 42, "alice", time.Hour)

	handler := RequireAuth(store, testSecret)(okHandler(t, 42))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireAuthNoCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)

	handler := RequireAuth(store, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a session cookie")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRequireAuthUnknownSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)

	handler := RequireAuth(store, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for unknown session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "no-such-session"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)

	sid := loginSession(t, store, 42, "alice", -time.Minute)

	handler := RequireAuth(store, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run with an expired credential")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// The stale session should have been dropped from the store.
	if _, err := store.Get(context.Background(), sid); err != session.ErrNotFound {
		t.Errorf("Get() after stale credential error = %v, want ErrNotFound", err)
	}
}

func TestRequireAuthOrRedirect(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)

	handler := RequireAuthOrRedirect(store, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/index", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestRequireAuthOrRedirectValidSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)

	sid := loginSession(t, store, 7, "bob", time.Hour)

	handler := RequireAuthOrRedirect(store, testSecret)(okHandler(t, 7))

	req := httptest.NewRequest(http.MethodGet, "/index", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
