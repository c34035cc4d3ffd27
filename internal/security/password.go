// Package security provides password hashing and cookie sessions.
package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/roamly/roamly/internal/errors"
)

// bcryptCost stays at the library default; raising it slows every
// login on small deployments for little gain.
const bcryptCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", errors.New(err).
			Component("security").
			Category(errors.CategoryGeneric).
			Context("operation", "hash-password").
			Build()
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
