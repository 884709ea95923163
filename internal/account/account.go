package account

import (
	"context"
	"time"
)

// Account links a local user to one external provider identity and caches
// the provider-issued tokens from the most recent login.
type Account struct {
	ID                string
	UserID            string
	Provider          string
	ProviderAccountID string

	AccessToken          string
	RefreshToken         string
	IDToken              string
	AccessTokenExpiresAt time.Time
}

// ProviderTokens is the cached credential material from one exchange.
type ProviderTokens struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       time.Time
}

// Store persists provider accounts. At most one account exists per
// (provider, user) pair; Upsert updates the cached tokens in place when
// the pair already exists and creates the row otherwise.
type Store interface {
	FindByUserAndProvider(ctx context.Context, userID, provider string) (*Account, error)
	Upsert(ctx context.Context, userID, provider, providerAccountID string, tokens ProviderTokens) error
}
