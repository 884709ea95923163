package session

import (
	"context"
	"time"

	"github.com/kevish-is-building/Startup-co/internal/auth"
	"github.com/kevish-is-building/Startup-co/internal/token"
	"github.com/kevish-is-building/Startup-co/internal/user"
)

// Issued is the result of minting a session.
type Issued struct {
	Token     string
	ExpiresAt time.Time
}

// AuthSession is a validated login: the bound user profile plus the
// credential it rode in on.
type AuthSession struct {
	User      user.User
	Token     string
	ExpiresAt time.Time
}

// Service implements the session lifecycle over the token codec and the
// store. A token is live iff its signature verifies AND a matching,
// unexpired store row exists; either alone is not enough.
type Service struct {
	codec *token.Codec
	store Store
	users user.Store
	now   func() time.Time
}

// NewService constructs a Service. now may be nil (time.Now).
func NewService(codec *token.Codec, store Store, users user.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{codec: codec, store: store, users: users, now: now}
}

// Issue mints a token for userID and records the session row. Existing
// sessions for the user are untouched: multi-device login accumulates
// rows, one per login.
func (s *Service) Issue(ctx context.Context, userID string) (*Issued, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, auth.ErrUserNotFound
	}

	signed, expiresAt, err := s.codec.Sign(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, Session{
		UserID:    u.ID,
		Token:     signed,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	return &Issued{Token: signed, ExpiresAt: expiresAt}, nil
}

// Validate checks a candidate token. (nil, nil) means unauthenticated,
// whatever the reason; a non-nil error is an internal store fault and
// never a statement about the credential. On success callers should
// re-set the auth cookie with a fresh max-age — the store row's expiry
// is deliberately NOT extended here, so the token keeps its original
// 7-day absolute validity no matter how often it is checked.
func (s *Service) Validate(ctx context.Context, candidate string) (*AuthSession, error) {
	if candidate == "" {
		return nil, nil
	}

	claims, ok := s.codec.Verify(candidate)
	if !ok {
		return nil, nil
	}

	row, err := s.store.FindValid(ctx, claims.UserID, candidate, s.now())
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	return &AuthSession{
		User:      *u,
		Token:     row.Token,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

// Revoke deletes the matching session row. Revoking a session that does
// not exist succeeds: logout is idempotent.
func (s *Service) Revoke(ctx context.Context, userID, tok string) error {
	return s.store.DeleteMatching(ctx, userID, tok)
}

// RevokeByToken decodes the candidate and revokes the matching row.
// A token that fails verification returns auth.ErrInvalidToken; a valid
// token with no matching row still succeeds (idempotent logout).
func (s *Service) RevokeByToken(ctx context.Context, candidate string) error {
	claims, ok := s.codec.Verify(candidate)
	if !ok {
		return auth.ErrInvalidToken
	}
	return s.store.DeleteMatching(ctx, claims.UserID, candidate)
}

// RevokeAll logs the user out everywhere.
func (s *Service) RevokeAll(ctx context.Context, userID string) error {
	return s.store.DeleteAllForUser(ctx, userID)
}
