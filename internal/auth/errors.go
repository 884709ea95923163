package auth

import "errors"

var (
	// ErrUserNotFound means a token was requested for a user id that no
	// longer exists. Callers treat it as unauthenticated, never as a 5xx.
	ErrUserNotFound = errors.New("auth: user not found")

	// ErrNoEmailFromProvider means the provider identity carried no email,
	// so there is nothing to key the local account on.
	ErrNoEmailFromProvider = errors.New("auth: provider returned no email")

	// ErrProviderNotConfigured means the OAuth client credentials are
	// missing. Operator-facing; raised before any network call.
	ErrProviderNotConfigured = errors.New("auth: oauth provider not configured")

	// ErrInvalidToken means a credential failed signature or expiry
	// checks where the caller needs a hard 401 rather than a nil session.
	ErrInvalidToken = errors.New("auth: invalid token")

	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrAlreadyRegistered  = errors.New("auth: credentials already exist")
)
