// Package mail renders OTP notification emails and delivers them through an
// outbound SMTP relay.
package mail

import (
	"context"

	"github.com/knowhowcafe/auth/internal/server/models"
)

// Mailer delivers a one-time code to a recipient. Implementations must not
// log or persist the plaintext code.
type Mailer interface {
	SendOtpEmail(ctx context.Context, to string, name string, code string, purpose models.OtpPurpose) error
}
