// Package auth issues and validates signed, time-limited session tokens
// (HS256 JWTs) whose subject is a username.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL applies when Issue is called without a positive ttl.
// The login flow always passes the configured validity instead.
const DefaultTokenTTL = 15 * time.Minute

// TokenService signs and validates session tokens with a process-wide
// secret. It is safe for concurrent use; the secret is never mutated.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService returns a TokenService using the system clock.
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret, now: time.Now}
}

// NewTokenServiceWithClock is NewTokenService with an injected clock.
func NewTokenServiceWithClock(secret []byte, now func() time.Time) *TokenService {
	return &TokenService{secret: secret, now: now}
}

// Issue returns a token for username that expires after ttl.
func (s *TokenService) Issue(username string, ttl time.Duration) (string, error) {
	if username == "" {
		return "", errors.New("empty subject")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(s.secret)
}

// Validate returns the username embedded in tokenString. Any failure
// (bad signature, foreign algorithm, malformed input, missing or past
// expiry, empty subject) yields common.ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
