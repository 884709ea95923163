package session

import (
	"context"
	"time"
)

// Session is one active login. The signed token itself doubles as the
// store key; multiple rows per user are expected (one per device).
type Session struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists sessions. Validity is store-authoritative: a session is
// valid iff a matching row exists with expires_at in the future.
type Store interface {
	Create(ctx context.Context, s Session) error

	// FindValid returns the row matching user and token with
	// expiresAt > now, in a single atomic read, or (nil, nil).
	FindValid(ctx context.Context, userID, token string, now time.Time) (*Session, error)

	// DeleteMatching removes the row matching both fields. Deleting a
	// row that does not exist is not an error (logout is idempotent).
	DeleteMatching(ctx context.Context, userID, token string) error

	// DeleteAllForUser revokes every session of one user ("log out
	// everywhere").
	DeleteAllForUser(ctx context.Context, userID string) error

	// DeleteExpired removes rows whose expiry has passed and reports how
	// many were removed. Run by the sweeper, never by request handlers.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
