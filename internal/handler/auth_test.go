package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/micropost/micropost-go/internal/repository"
	"github.com/micropost/micropost-go/internal/service"
	"github.com/micropost/micropost-go/internal/session"
)

func newTestAuthHandler(t *testing.T) (*AuthHandler, *session.MemoryStore) {
	t.Helper()

	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)

	svc := service.NewAuthService(repository.NewUserRepository(nil), "test-secret", time.Hour)
	return NewAuthHandler(svc, store, time.Hour), store
}

func TestHandleRegisterInvalidBody(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.HandleRegister(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleRegisterMissingUsername(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	body := `{"username":"","email":"a@x.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleRegister(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleLoginInvalidBody(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.HandleLogin(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleLogout(t *testing.T) {
	h, store := newTestAuthHandler(t)
	ctx := context.Background()

	store.Create(ctx, session.Session{
		ID:        "sid-1",
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid-1"})
	rec := httptest.NewRecorder()

	h.HandleLogout(rec, req)

	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
	if _, err := store.Get(ctx, "sid-1"); err != session.ErrNotFound {
		t.Errorf("Get() after logout error = %v, want ErrNotFound", err)
	}

	// The cookie should be expired on the client too.
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected session cookie to be expired")
	}
}

func TestHandleLogoutNoCookie(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()

	h.HandleLogout(rec, req)

	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}
