package auth

import "github.com/kevish-is-building/Startup-co/internal/account"

// Identity represents a normalized external authentication identity
// returned by an OAuth provider. It contains facts only, no decisions.
type Identity struct {
	Provider       string // e.g. "google"
	ProviderUserID string // provider-scoped unique user identifier (sub)
	Email          string // email returned by provider
	EmailVerified  bool   // whether provider asserts email ownership
	Name           string // display name, may be empty
	Picture        string // avatar URL, may be empty

	// Tokens carries the raw provider credential material so the linker
	// can cache it on the provider account row.
	Tokens account.ProviderTokens
}
