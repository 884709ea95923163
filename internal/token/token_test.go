package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := New("test-secret", func() time.Time { return now })

	signed, expiresAt, err := codec.Sign("user-1", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, now.Add(Lifetime), expiresAt)

	claims, ok := codec.Verify(signed)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestVerify_RejectsAfterLifetime(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	codec := New("test-secret", func() time.Time { return *clock })

	signed, _, err := codec.Sign("user-1", "a@x.com")
	require.NoError(t, err)

	// Still valid one minute before expiry.
	later := now.Add(Lifetime - time.Minute)
	clock = &later
	_, ok := codec.Verify(signed)
	assert.True(t, ok)

	expired := now.Add(Lifetime + time.Second)
	clock = &expired
	_, ok = codec.Verify(signed)
	assert.False(t, ok)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	now := time.Now()
	signer := New("secret-one", func() time.Time { return now })
	verifier := New("secret-two", func() time.Time { return now })

	signed, _, err := signer.Sign("user-1", "a@x.com")
	require.NoError(t, err)

	_, ok := verifier.Verify(signed)
	assert.False(t, ok)
}

func TestVerify_ConstantFailureShape(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	codec := New("test-secret", func() time.Time { return *clock })

	expiredToken, _, err := codec.Sign("user-1", "a@x.com")
	require.NoError(t, err)
	forged, _, err := New("other", func() time.Time { return now }).Sign("user-1", "a@x.com")
	require.NoError(t, err)

	later := now.Add(Lifetime + time.Hour)
	clock = &later

	for name, candidate := range map[string]string{
		"garbage":       "not-a-token",
		"empty":         "",
		"bad signature": forged,
		"expired":       expiredToken,
	} {
		claims, ok := codec.Verify(candidate)
		assert.False(t, ok, name)
		assert.Equal(t, Claims{}, claims, name)
	}
}
