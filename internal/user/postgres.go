package user

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kevish-is-building/Startup-co/internal/db"
)

// PostgresStore is the canonical user store.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, email, name, COALESCE(image, ''), email_verified
		FROM users
		WHERE id = $1
	`, id))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, email, name, COALESCE(image, ''), email_verified
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email))
}

func (s *PostgresStore) Create(
	ctx context.Context,
	email, name, image string,
	emailVerified bool,
) (*User, error) {

	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, name, image, email_verified)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING id
	`, email, name, image, emailVerified).Scan(&id)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:            id.String(),
		Email:         email,
		Name:          name,
		Image:         image,
		EmailVerified: emailVerified,
	}, nil
}

func (s *PostgresStore) scanOne(row *sql.Row) (*User, error) {
	var (
		id uuid.UUID
		u  User
	)
	err := row.Scan(&id, &u.Email, &u.Name, &u.Image, &u.EmailVerified)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.ID = id.String()
	return &u, nil
}
