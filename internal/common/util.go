package common

import "strings"

// NormalizeEmail lowercases and trims an email address. Every store access
// is keyed by the normalized form, so the function must be idempotent:
// NormalizeEmail(NormalizeEmail(e)) == NormalizeEmail(e).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
