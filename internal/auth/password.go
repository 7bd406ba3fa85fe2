// Package auth holds the credential primitives: one bcrypt hasher used
// for both account passwords and room secrets, and the JWT token
// manager backing the REST surface.
package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches the cost the rest of the deployment uses.
const DefaultBcryptCost = 10

// PasswordHasher hashes and verifies secrets. Every path that stores or
// compares a secret goes through the same instance.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: DefaultBcryptCost}
}

func (h *PasswordHasher) Hash(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *PasswordHasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
