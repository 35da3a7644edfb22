package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptSaltLen is the length of the "$2a$cost$salt" prefix of a bcrypt
// hash: version, cost and the 22-character base64 salt.
const bcryptSaltLen = 29

// Hasher produces and verifies salted password hashes.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to the default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted hash from plaintext using a fresh random salt.
// The returned salt is the bcrypt prefix of the hash and is stored in
// the clear next to it; it is not a secret.
func (h *Hasher) Hash(plaintext string) (hash string, salt string, err error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", "", err
	}
	hash = string(b)
	return hash, hash[:bcryptSaltLen], nil
}

// Verify reports whether plaintext produces expectedHash. It never
// returns an error: any mismatch, including a malformed hash, is false.
// bcrypt's own comparison is constant-structure, so no early-exit byte
// compare leaks timing.
func (h *Hasher) Verify(plaintext, expectedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(expectedHash), []byte(plaintext)) == nil
}
