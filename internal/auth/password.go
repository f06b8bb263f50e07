// Package auth hashes and checks account passwords.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt cost used for new hashes. Tests lower it.
var Cost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// IsHashed reports whether stored looks like a bcrypt hash rather than a
// plaintext password left by an older store.
func IsHashed(stored string) bool {
	if len(stored) != 60 {
		return false
	}
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// CheckPassword compares a candidate against the stored value. The second
// return is true when the stored value is legacy plaintext and should be
// rehashed. An account with no stored password never matches.
func CheckPassword(stored, candidate string) (ok bool, needsRehash bool, err error) {
	if stored == "" {
		return false, false, nil
	}
	if !IsHashed(stored) {
		return stored == candidate, stored == candidate, nil
	}
	err = bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return true, false, nil
}
