package otps

import (
	"context"

	"github.com/knowhowcafe/auth/internal/server/models"
)

type Repository interface {
	// Upsert stores the record, replacing any existing row for the same
	// (email, purpose) pair. The previous code becomes unusable.
	Upsert(ctx context.Context, record *models.Otp) error
	Get(ctx context.Context, email string, purpose models.OtpPurpose) (*models.Otp, error)
	Delete(ctx context.Context, email string, purpose models.OtpPurpose) error
}
