package bcrypt

// Package bcrypt adapts golang.org/x/crypto/bcrypt to the ports.PasswordHasher
// interface used by the auth gateway.

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost factor used in production. Tests should
// construct a hasher with bcrypt.MinCost instead to keep suites fast.
const DefaultCost = 10

// Hasher hashes and verifies passwords with bcrypt at a fixed cost factor.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given cost factor. Costs outside
// bcrypt's supported range are clamped to DefaultCost, matching what
// bcrypt itself would do with an invalid cost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext. bcrypt embeds a random salt in
// the output, so hashing the same password twice yields different hashes.
func (h *Hasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(out), nil
}

// Verify reports whether plaintext matches hash. bcrypt's comparison is
// constant-time with respect to the derived key.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
