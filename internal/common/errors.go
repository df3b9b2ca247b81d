// Package common defines shared constants and sentinel errors used across
// the auth backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrorDuplicate = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// OTP lifecycle errors.
	ErrorOtpExpired  = errors.New("otp expired")
	ErrorOtpMismatch = errors.New("otp mismatch")

	// Credential errors.
	ErrorWeakPassword = errors.New("weak password")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")
)
