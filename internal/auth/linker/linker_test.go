package linker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevish-is-building/Startup-co/internal/account"
	"github.com/kevish-is-building/Startup-co/internal/auth"
	"github.com/kevish-is-building/Startup-co/internal/session"
	"github.com/kevish-is-building/Startup-co/internal/user"
)

type fakeUsers struct {
	byID    map[string]*user.User
	created int
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*user.User, error) {
	return f.byID[id], nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Create(_ context.Context, email, name, image string, verified bool) (*user.User, error) {
	f.created++
	u := &user.User{ID: "u-" + email, Email: email, Name: name, Image: image, EmailVerified: verified}
	f.byID[u.ID] = u
	return u, nil
}

type accountKey struct {
	userID   string
	provider string
}

type fakeAccounts struct {
	rows    map[accountKey]*account.Account
	upserts int
}

func (f *fakeAccounts) FindByUserAndProvider(_ context.Context, userID, provider string) (*account.Account, error) {
	return f.rows[accountKey{userID, provider}], nil
}

func (f *fakeAccounts) Upsert(_ context.Context, userID, provider, providerAccountID string, tokens account.ProviderTokens) error {
	f.upserts++
	f.rows[accountKey{userID, provider}] = &account.Account{
		UserID:            userID,
		Provider:          provider,
		ProviderAccountID: providerAccountID,
		AccessToken:       tokens.AccessToken,
		RefreshToken:      tokens.RefreshToken,
		IDToken:           tokens.IDToken,
	}
	return nil
}

type fakeIssuer struct {
	issued []string
}

func (f *fakeIssuer) Issue(_ context.Context, userID string) (*session.Issued, error) {
	f.issued = append(f.issued, userID)
	return &session.Issued{
		Token:     "tok-" + userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func googleIdentity(email string) *auth.Identity {
	return &auth.Identity{
		Provider:       "google",
		ProviderUserID: "sub-123",
		Email:          email,
		EmailVerified:  true,
		Name:           "Ada Lovelace",
		Tokens:         account.ProviderTokens{AccessToken: "at-1"},
	}
}

func TestLogin_FirstOAuthLoginCreatesEverything(t *testing.T) {
	users := &fakeUsers{byID: map[string]*user.User{}}
	accounts := &fakeAccounts{rows: map[accountKey]*account.Account{}}
	issuer := &fakeIssuer{}
	l := New(users, accounts, issuer)

	issued, u, err := l.Login(context.Background(), googleIdentity("a@x.com"))
	require.NoError(t, err)

	assert.Equal(t, 1, users.created)
	assert.True(t, u.EmailVerified)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Len(t, accounts.rows, 1)
	assert.Equal(t, []string{u.ID}, issuer.issued)
	assert.NotEmpty(t, issued.Token)
}

func TestLogin_RepeatLoginUpdatesTokensNotRows(t *testing.T) {
	users := &fakeUsers{byID: map[string]*user.User{}}
	accounts := &fakeAccounts{rows: map[accountKey]*account.Account{}}
	issuer := &fakeIssuer{}
	l := New(users, accounts, issuer)

	_, u, err := l.Login(context.Background(), googleIdentity("a@x.com"))
	require.NoError(t, err)

	second := googleIdentity("a@x.com")
	second.Tokens.AccessToken = "at-2"
	_, u2, err := l.Login(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, u.ID, u2.ID)
	assert.Equal(t, 1, users.created, "no duplicate user")
	assert.Len(t, accounts.rows, 1, "no duplicate account")
	assert.Equal(t, "at-2", accounts.rows[accountKey{u.ID, "google"}].AccessToken)
	assert.Len(t, issuer.issued, 2, "every login mints a fresh session")
}

func TestLogin_LinksProviderToExistingPasswordUser(t *testing.T) {
	users := &fakeUsers{byID: map[string]*user.User{
		"u1": {ID: "u1", Email: "a@x.com", Name: "Ada", EmailVerified: false},
	}}
	accounts := &fakeAccounts{rows: map[accountKey]*account.Account{}}
	issuer := &fakeIssuer{}
	l := New(users, accounts, issuer)

	_, u, err := l.Login(context.Background(), googleIdentity("a@x.com"))
	require.NoError(t, err)

	assert.Equal(t, "u1", u.ID)
	assert.Zero(t, users.created)
	assert.Len(t, accounts.rows, 1)
}

func TestLogin_NoEmail(t *testing.T) {
	l := New(
		&fakeUsers{byID: map[string]*user.User{}},
		&fakeAccounts{rows: map[accountKey]*account.Account{}},
		&fakeIssuer{},
	)

	identity := googleIdentity("")
	_, _, err := l.Login(context.Background(), identity)
	assert.ErrorIs(t, err, auth.ErrNoEmailFromProvider)
}

func TestLogin_DefaultsNameFromEmail(t *testing.T) {
	users := &fakeUsers{byID: map[string]*user.User{}}
	l := New(users, &fakeAccounts{rows: map[accountKey]*account.Account{}}, &fakeIssuer{})

	identity := googleIdentity("ada@x.com")
	identity.Name = ""
	_, u, err := l.Login(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Name)
}
