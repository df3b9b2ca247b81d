// Package password implements credential hashing and the minimum strength
// policy applied at signup and password reset.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/knowhowcafe/auth/internal/common"
)

const bcryptCost = 10

// MinLength is the only strength requirement enforced.
const MinLength = 6

// Hash returns a bcrypt digest of the plain password.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(h), nil
}

// Compare reports whether plain matches the stored digest.
func Compare(plain string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidateStrength returns common.ErrorWeakPassword when the password is
// shorter than MinLength. No other policy is enforced.
func ValidateStrength(plain string) error {
	if len(plain) < MinLength {
		return common.ErrorWeakPassword
	}
	return nil
}
