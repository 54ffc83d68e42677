// Package session mints and verifies signed session tokens.
//
// Tokens are stateless HS256 JWTs: all session data lives in the token and
// nothing is stored server-side. There is no revocation; expiry is the only
// invalidation path. If revocation is ever required it needs a new stateful
// component (revocation list, or short-lived access plus refresh tokens).
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/NicolasLepore/DiasDeChuvaDiasDeSol/identity"
)

// DefaultValidity is the token lifetime used when none is configured.
const DefaultValidity = time.Hour

// ErrInvalidToken is returned by Verify for any token that fails signature,
// structure, or expiry checks.
var ErrInvalidToken = errors.New("invalid session token")

// Issuer mints signed, time-bounded session tokens from identity claims.
// Construction fails on a missing signing key; minting itself cannot fail
// under a valid configuration.
type Issuer struct {
	key      []byte
	validity time.Duration
	now      func() time.Time
}

// tokenClaims is the JWT payload. Subject carries the identity ID.
type tokenClaims struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthdate"`
	jwt.RegisteredClaims
}

// NewIssuer creates an Issuer signing with key for the given validity
// window. An empty key is a configuration fault and aborts construction;
// validity <= 0 falls back to DefaultValidity.
func NewIssuer(key []byte, validity time.Duration) (*Issuer, error) {
	if len(key) == 0 {
		return nil, errors.New("session: signing key is not configured")
	}
	if validity <= 0 {
		validity = DefaultValidity
	}
	return &Issuer{key: key, validity: validity, now: time.Now}, nil
}

// SetClock overrides the issuer's time source. Intended for tests.
func (i *Issuer) SetClock(now func() time.Time) {
	i.now = now
}

// Mint produces a signed token asserting the given claims, expiring at
// now + validity.
func (i *Issuer) Mint(claims identity.Claims) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Name:      claims.Username,
		BirthDate: claims.BirthDate,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
	})
	return token.SignedString(i.key)
}

// Verify parses and validates a token string and returns the claims it
// asserts.
func (i *Issuer) Verify(tokenString string) (identity.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.key, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return identity.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return identity.Claims{}, ErrInvalidToken
	}

	return identity.Claims{
		ID:        claims.Subject,
		Username:  claims.Name,
		BirthDate: claims.BirthDate,
	}, nil
}

// ExpiresAt reports the expiry the token asserts, for callers that surface
// it to clients.
func (i *Issuer) ExpiresAt(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &tokenClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims := token.Claims.(*tokenClaims)
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrInvalidToken
	}
	return claims.ExpiresAt.Time, nil
}
