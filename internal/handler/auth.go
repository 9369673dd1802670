package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/micropost/micropost-go/internal/model"
	"github.com/micropost/micropost-go/internal/service"
	"github.com/micropost/micropost-go/internal/session"
)

// AuthHandler handles registration, login, and logout. On success the issued
// credential is stored server-side and the client gets an opaque session
// cookie plus a redirect to the home page.
type AuthHandler struct {
	service    *service.AuthService
	sessions   session.Store
	sessionTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, sessions session.Store, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: svc, sessions: sessions, sessionTTL: sessionTTL}
}

// HandleRegister handles POST /register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	result, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameRequired),
			errors.Is(err, service.ErrEmailRequired),
			errors.Is(err, service.ErrPasswordRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUserTaken):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			slog.Error("registration failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	h.establishSession(w, r, result)
}

// HandleLogin handles POST /login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
			return
		}
		slog.Error("login failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	h.establishSession(w, r, result)
}

// HandleLogout handles GET /logout requests. Session destruction failures are
// logged but never block the redirect.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil && !errors.Is(err, session.ErrNotFound) {
			slog.Error("session destruction failed", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/login", http.StatusFound)
}

// establishSession stores the credential under the caller's session id,
// reusing the id behind an existing cookie so a second login overwrites the
// previous credential, then redirects to the home page.
func (h *AuthHandler) establishSession(w http.ResponseWriter, r *http.Request, result model.AuthResult) {
	sessionID := ""
	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		sessionID = cookie.Value
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	sess := session.Session{
		ID:        sessionID,
		Token:     result.Token,
		ExpiresAt: time.Now().Add(h.sessionTTL),
	}
	if err := h.sessions.Create(r.Context(), sess); err != nil {
		slog.Error("storing session failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
	})

	http.Redirect(w, r, "/index?username="+url.QueryEscape(result.User.Username), http.StatusFound)
}
