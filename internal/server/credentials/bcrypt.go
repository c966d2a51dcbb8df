// Package credentials hashes and verifies user passwords with bcrypt.
// It owns no state besides the configured cost and never performs I/O.
package credentials

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is used when a Hasher is built with a cost outside bcrypt's
// accepted range.
const DefaultCost = 10

// Hasher hashes passwords with a random per-call salt.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of plaintext. Passwords longer than 72
// bytes are rejected by bcrypt.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Malformed digests
// verify as false.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
