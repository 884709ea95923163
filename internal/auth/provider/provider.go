package provider

import (
	"context"

	"github.com/kevish-is-building/Startup-co/internal/auth"
)

// OAuthProvider defines the contract every external auth provider
// must implement. Implementations return identity facts only and
// must not perform user creation, linking, or session management.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL. State is
	// provided by the caller.
	AuthCodeURL(state string) string

	// ExchangeCode exchanges the authorization code for provider
	// credentials and returns a normalized identity. No auth decisions
	// are made here.
	ExchangeCode(ctx context.Context, code string) (*auth.Identity, error)
}
