package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password mismatch")

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned by Hash for passwords over MaxPasswordBytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// PasswordHasher hashes with bcrypt. Stored values without a bcrypt
// prefix are legacy plaintext rows; they only verify when AllowLegacy is
// set, and Verify then reports that the row needs rehashing.
type PasswordHasher struct {
	Cost        int
	AllowLegacy bool
}

func NewPasswordHasher(cost int, allowLegacy bool) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{Cost: cost, AllowLegacy: allowLegacy}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify returns ErrPasswordMismatch for any failed comparison, including
// malformed stored hashes.
func (h *PasswordHasher) Verify(stored, password string) (needsRehash bool, err error) {
	if IsBcryptHash(stored) {
		if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) != nil {
			return false, ErrPasswordMismatch
		}
		return false, nil
	}

	if !h.AllowLegacy || stored == "" {
		return false, ErrPasswordMismatch
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return false, ErrPasswordMismatch
	}
	return true, nil
}

func IsBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2")
}
