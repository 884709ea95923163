package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevish-is-building/Startup-co/internal/auth"
	"github.com/kevish-is-building/Startup-co/internal/token"
	"github.com/kevish-is-building/Startup-co/internal/user"
)

type memStore struct {
	mu       sync.Mutex
	rows     []Session
	findErr  error
	sweepErr error
}

func (m *memStore) Create(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, s)
	return nil
}

func (m *memStore) FindValid(_ context.Context, userID, tok string, now time.Time) (*Session, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.rows {
		if s.UserID == userID && s.Token == tok && s.ExpiresAt.After(now) {
			row := s
			return &row, nil
		}
	}
	return nil, nil
}

func (m *memStore) DeleteMatching(_ context.Context, userID, tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rows[:0]
	for _, s := range m.rows {
		if s.UserID == userID && s.Token == tok {
			continue
		}
		kept = append(kept, s)
	}
	m.rows = kept
	return nil
}

func (m *memStore) DeleteAllForUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rows[:0]
	for _, s := range m.rows {
		if s.UserID != userID {
			kept = append(kept, s)
		}
	}
	m.rows = kept
	return nil
}

func (m *memStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	if m.sweepErr != nil {
		return 0, m.sweepErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	kept := m.rows[:0]
	for _, s := range m.rows {
		if s.ExpiresAt.After(now) {
			kept = append(kept, s)
		} else {
			n++
		}
	}
	m.rows = kept
	return n, nil
}

type memUsers struct {
	byID map[string]*user.User
}

func (m *memUsers) FindByID(_ context.Context, id string) (*user.User, error) {
	return m.byID[id], nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Create(_ context.Context, email, name, image string, verified bool) (*user.User, error) {
	u := &user.User{ID: "u-" + email, Email: email, Name: name, Image: image, EmailVerified: verified}
	m.byID[u.ID] = u
	return u, nil
}

func testService(now *time.Time) (*Service, *memStore, *memUsers) {
	clock := func() time.Time { return *now }
	store := &memStore{}
	users := &memUsers{byID: map[string]*user.User{
		"u1": {ID: "u1", Email: "a@x.com", Name: "Ada", EmailVerified: true},
	}}
	codec := token.New("test-secret", clock)
	return NewService(codec, store, users, clock), store, users
}

func TestIssue_CreatesRow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, store, _ := testService(&now)

	issued, err := svc.Issue(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(token.Lifetime), issued.ExpiresAt)
	assert.Len(t, store.rows, 1)
	assert.Equal(t, "u1", store.rows[0].UserID)
	assert.Equal(t, issued.Token, store.rows[0].Token)
}

func TestIssue_UnknownUser(t *testing.T) {
	now := time.Now()
	svc, store, _ := testService(&now)

	_, err := svc.Issue(context.Background(), "nope")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
	assert.Empty(t, store.rows)
}

func TestIssue_DoesNotInvalidatePriorSessions(t *testing.T) {
	now := time.Now()
	svc, store, _ := testService(&now)

	first, err := svc.Issue(context.Background(), "u1")
	require.NoError(t, err)
	_, err = svc.Issue(context.Background(), "u1")
	require.NoError(t, err)

	assert.Len(t, store.rows, 2)

	sess, err := svc.Validate(context.Background(), first.Token)
	require.NoError(t, err)
	require.NotNil(t, sess)
}

func TestValidate_ReturnsBoundUser(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := testService(&now)

	issued, err := svc.Issue(context.Background(), "u1")
	require.NoError(t, err)

	sess, err := svc.Validate(context.Background(), issued.Token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "a@x.com", sess.User.Email)
	assert.Equal(t, issued.Token, sess.Token)
	assert.Equal(t, issued.ExpiresAt, sess.ExpiresAt)
}

func TestValidate_StoreAuthoritative(t *testing.T) {
	// A perfectly signed, unexpired token is dead once its row is gone.
	now := time.Now()
	svc, store, _ := testService(&now)

	issued, err := svc.Issue(context.Background(), "u1")
	require.NoError(t, err)

	store.rows = nil

	sess, err := svc.Validate(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestValidate_NoStoreAccessOnBadSignature(t *testing.T) {
	now := time.Now()
	svc, store, _ := testService(&now)
	store.findErr = errors.New("store must not be touched")

	sess, err := svc.Validate(context.Background(), "garbage")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestValidate_SurfacesStoreFault(t *testing.T) {
	now := time.Now()
	svc, store, _ := testService(&now)

	issued, err := svc.Issue(context.Background(), "u1")
	require.NoError(t, err)

	store.findErr = errors.New("connection refused")

	_, err = svc.Validate(context.Background(), issued.Token)
	assert.Error(t, err)
}

func TestRevoke_Idempotent(t *testing.T) {
	now := time.Now()
	svc, _, _ := testService(&now)

	issued, err := svc.Issue(context.Background(), "u1")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), "u1", issued.Token))

	sess, err := svc.Validate(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Nil(t, sess)

	// Second revoke converges to "no matching row".
	require.NoError(t, svc.Revoke(context.Background(), "u1", issued.Token))
}

func TestRevokeAll(t *testing.T) {
	now := time.Now()
	svc, store, _ := testService(&now)

	a, err := svc.Issue(context.Background(), "u1")
	require.NoError(t, err)
	b, err := svc.Issue(context.Background(), "u1")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAll(context.Background(), "u1"))
	assert.Empty(t, store.rows)

	for _, tok := range []string{a.Token, b.Token} {
		sess, err := svc.Validate(context.Background(), tok)
		require.NoError(t, err)
		assert.Nil(t, sess)
	}
}

func TestValidate_ExpiredRow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := testService(&now)

	issued, err := svc.Issue(context.Background(), "u1")
	require.NoError(t, err)

	now = now.Add(token.Lifetime + time.Minute)

	sess, err := svc.Validate(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Nil(t, sess)
}
