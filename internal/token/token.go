package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Lifetime is the absolute validity of every issued token. Client-side
// cookie refresh never extends it.
const Lifetime = 7 * 24 * time.Hour

// Claims is the identity a verified token asserts.
type Claims struct {
	UserID string
	Email  string
}

type signedClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Codec signs and verifies auth tokens with a process-wide HMAC secret.
// It is stateless: validity here is signature + embedded expiry only,
// revocation lives in the session store.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// New creates a Codec. now may be nil, in which case time.Now is used;
// tests inject their own clock.
func New(secret string, now func() time.Time) *Codec {
	if now == nil {
		now = time.Now
	}
	return &Codec{secret: []byte(secret), now: now}
}

// Sign produces a token binding userID and email for Lifetime from now.
func (c *Codec) Sign(userID, email string) (string, time.Time, error) {
	issuedAt := c.now()
	expiresAt := issuedAt.Add(Lifetime)

	claims := signedClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
		Email:  email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify validates signature and embedded expiry. The failure shape is
// identical for malformed input, a bad signature, and an expired token,
// so callers cannot build an oracle out of the distinction.
func (c *Codec) Verify(candidate string) (Claims, bool) {
	var claims signedClaims

	_, err := jwt.ParseWithClaims(
		candidate,
		&claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return Claims{}, false
	}

	if claims.UserID == "" {
		return Claims{}, false
	}

	return Claims{UserID: claims.UserID, Email: claims.Email}, true
}
