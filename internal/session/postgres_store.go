package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/kevish-is-building/Startup-co/internal/db"
)

// PostgresStore is the default session store.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, sess Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`, sess.UserID, sess.Token, sess.ExpiresAt)
	return err
}

// FindValid matches user, token, and expiry in one statement so a
// concurrent revoke cannot land between an existence check and a
// validity check.
func (s *PostgresStore) FindValid(
	ctx context.Context,
	userID, token string,
	now time.Time,
) (*Session, error) {

	var sess Session
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, token, expires_at
		FROM sessions
		WHERE user_id = $1
		  AND token = $2
		  AND expires_at > $3
	`, userID, token, now).Scan(&sess.UserID, &sess.Token, &sess.ExpiresAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *PostgresStore) DeleteMatching(ctx context.Context, userID, token string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions
		WHERE user_id = $1
		  AND token = $2
	`, userID, token)
	return err
}

func (s *PostgresStore) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions
		WHERE user_id = $1
	`, userID)
	return err
}

func (s *PostgresStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions
		WHERE expires_at <= $1
	`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
