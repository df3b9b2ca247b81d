// Package otp implements one-time code primitives: generation, hashing,
// and verification. Codes are hashed before persistence; the plaintext
// only exists long enough to be emailed.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost used for password hashes.
const bcryptCost = 10

// codeSpace is the size of the six-digit code range [100000, 999999].
const codeSpace = 900000

// Generate returns a six-digit numeric code, uniformly sampled from
// [100000, 999999] using crypto/rand.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("error generating otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Hash returns an irreversible bcrypt digest of the code.
func Hash(code string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(code), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing otp: %w", err)
	}
	return string(h), nil
}

// Verify reports whether code matches the stored digest. bcrypt's own
// comparison is constant-time over the digest.
func Verify(code string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
