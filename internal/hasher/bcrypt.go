// Package hasher implements salted one-way hashing for passwords and API-key secrets.
package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/authkeeper/internal/model"
)

var _ model.Hasher = (*Bcrypt)(nil)

// Bcrypt hashes secrets with bcrypt at a fixed cost.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher. Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns a salted digest of secret. Two calls with the same input differ.
func (b *Bcrypt) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether secret matches digest. Malformed digests yield false.
func (b *Bcrypt) Verify(secret, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
