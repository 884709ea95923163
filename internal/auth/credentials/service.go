package credentials

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/kevish-is-building/Startup-co/internal/auth"
	"github.com/kevish-is-building/Startup-co/internal/db"
)

// Service handles the password path: register a credential for an email
// and authenticate against it. Session semantics stay out of here.
type Service struct {
	db *db.DB
}

func NewService(db *db.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Register(
	ctx context.Context,
	email string,
	password string,
	name string,
) (string, error) {

	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	var userID uuid.UUID

	// 1. Find or create user by email
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&userID)

	if err == sql.ErrNoRows {
		err = s.db.QueryRowContext(ctx, `
			INSERT INTO users (email, name, email_verified)
			VALUES ($1, $2, false)
			RETURNING id
		`, email, name).Scan(&userID)
	}

	if err != nil {
		return "", err
	}

	// 2. Refuse a second credential for the same user
	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM credentials WHERE user_id = $1
		)
	`, userID).Scan(&exists)

	if err != nil {
		return "", err
	}

	if exists {
		return "", auth.ErrAlreadyRegistered
	}

	// 3. Hash and store
	hash, version, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO credentials (user_id, password_hash, hash_version)
		VALUES ($1, $2, $3)
	`, userID, hash, version)

	if err != nil {
		return "", err
	}

	return userID.String(), nil
}

func (s *Service) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (string, error) {

	var (
		userID       uuid.UUID
		passwordHash string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, c.password_hash
		FROM users u
		JOIN credentials c ON c.user_id = u.id
		WHERE LOWER(u.email) = LOWER($1)
	`, email).Scan(&userID, &passwordHash)

	// Unknown email and wrong password must look the same to the caller.
	if err == sql.ErrNoRows {
		return "", auth.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := VerifyPassword(passwordHash, password); err != nil {
		return "", auth.ErrInvalidCredentials
	}

	return userID.String(), nil
}
