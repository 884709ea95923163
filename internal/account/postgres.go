package account

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kevish-is-building/Startup-co/internal/db"
)

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByUserAndProvider(
	ctx context.Context,
	userID, provider string,
) (*Account, error) {

	var (
		id  uuid.UUID
		uid uuid.UUID
		a   Account
		exp sql.NullTime
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, provider, provider_account_id,
		       COALESCE(access_token, ''),
		       COALESCE(refresh_token, ''),
		       COALESCE(id_token, ''),
		       access_token_expires_at
		FROM accounts
		WHERE user_id = $1
		  AND provider = $2
	`, userID, provider).Scan(
		&id, &uid, &a.Provider, &a.ProviderAccountID,
		&a.AccessToken, &a.RefreshToken, &a.IDToken, &exp,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.ID = id.String()
	a.UserID = uid.String()
	if exp.Valid {
		a.AccessTokenExpiresAt = exp.Time
	}
	return &a, nil
}

// Upsert relies on the (provider, user_id) unique constraint so that a
// concurrent first login cannot create two rows for the same pair.
func (s *PostgresStore) Upsert(
	ctx context.Context,
	userID, provider, providerAccountID string,
	tokens ProviderTokens,
) error {

	var exp sql.NullTime
	if !tokens.Expiry.IsZero() {
		exp = sql.NullTime{Time: tokens.Expiry, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (
			user_id, provider, provider_account_id,
			access_token, refresh_token, id_token, access_token_expires_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)
		ON CONFLICT ON CONSTRAINT accounts_provider_user_unique DO UPDATE SET
			provider_account_id = EXCLUDED.provider_account_id,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			id_token = EXCLUDED.id_token,
			access_token_expires_at = EXCLUDED.access_token_expires_at,
			updated_at = NOW()
	`, userID, provider, providerAccountID,
		tokens.AccessToken, tokens.RefreshToken, tokens.IDToken, exp)

	return err
}
