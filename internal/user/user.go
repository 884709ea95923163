package user

import "context"

// User is a local account. Users are created on first registration or
// first OAuth login and never deleted by this service.
type User struct {
	ID            string
	Email         string
	Name          string
	Image         string
	EmailVerified bool
}

// Store persists users. Lookups by email are case-insensitive.
// Find methods return (nil, nil) when no row matches.
type Store interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, email, name, image string, emailVerified bool) (*User, error)
}
