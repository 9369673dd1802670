// Package session maps opaque cookie-carried session ids to stored
// credentials. One entry exists per active login; login and registration
// overwrite the entry behind an existing cookie.
package session

import (
	"context"
	"errors"
	"time"
)

// CookieName is the cookie carrying the opaque session id.
const CookieName = "session_id"

var ErrNotFound = errors.New("session not found")

// Session associates an opaque id with a signed credential.
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
}

// Store defines how sessions are stored and retrieved.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
