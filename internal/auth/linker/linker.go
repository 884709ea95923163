package linker

import (
	"context"
	"strings"

	"github.com/kevish-is-building/Startup-co/internal/account"
	"github.com/kevish-is-building/Startup-co/internal/auth"
	"github.com/kevish-is-building/Startup-co/internal/logger"
	"github.com/kevish-is-building/Startup-co/internal/session"
	"github.com/kevish-is-building/Startup-co/internal/user"
)

// SessionIssuer mints a session for a resolved user.
type SessionIssuer interface {
	Issue(ctx context.Context, userID string) (*session.Issued, error)
}

// Linker maps an external identity onto a local user without ever
// creating a duplicate: the email is the join key. It is the ONLY place
// where identity-to-user mapping logic lives.
type Linker struct {
	users    user.Store
	accounts account.Store
	sessions SessionIssuer
}

func New(users user.Store, accounts account.Store, sessions SessionIssuer) *Linker {
	return &Linker{users: users, accounts: accounts, sessions: sessions}
}

// Login resolves the identity to a user, refreshes or creates the
// provider account row, and issues a session for the user.
func (l *Linker) Login(
	ctx context.Context,
	identity *auth.Identity,
) (*session.Issued, *user.User, error) {

	if identity == nil || identity.Email == "" {
		return nil, nil, auth.ErrNoEmailFromProvider
	}

	u, err := l.users.FindByEmail(ctx, identity.Email)
	if err != nil {
		return nil, nil, err
	}

	firstLogin := u == nil
	if firstLogin {
		// The provider is trusted to have verified the email.
		name := identity.Name
		if name == "" {
			name, _, _ = strings.Cut(identity.Email, "@")
		}

		u, err = l.users.Create(ctx, identity.Email, name, identity.Picture, true)
		if err != nil {
			return nil, nil, err
		}
	}

	existing, err := l.accounts.FindByUserAndProvider(ctx, u.ID, identity.Provider)
	if err != nil {
		return nil, nil, err
	}

	if err := l.accounts.Upsert(
		ctx,
		u.ID,
		identity.Provider,
		identity.ProviderUserID,
		identity.Tokens,
	); err != nil {
		return nil, nil, err
	}

	logger.Info("identity linked", map[string]any{
		"provider": identity.Provider,
		"user_id":  u.ID,
		"new_user": firstLogin,
		"new_link": existing == nil,
	})

	issued, err := l.sessions.Issue(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}

	return issued, u, nil
}
