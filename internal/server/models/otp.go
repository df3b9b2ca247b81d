package models

import "time"

// OtpPurpose distinguishes the two OTP flows sharing the otps table.
type OtpPurpose string

const (
	OtpPurposeSignup         OtpPurpose = "signup"
	OtpPurposeForgotPassword OtpPurpose = "forgot_password"
)

// Otp is a pending one-time code, keyed by (email, purpose). CodeHash is a
// bcrypt digest of the six-digit code; the plaintext is only ever handed to
// the mail dispatcher. At most one row exists per key — issuing again
// replaces the previous row.
type Otp struct {
	Email     string
	Purpose   OtpPurpose
	CodeHash  string
	ExpiresAt time.Time
}
