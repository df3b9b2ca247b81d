// Package services contains server-side business logic: the OTP lifecycle
// and the request-level authentication workflows.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/knowhowcafe/auth/internal/common"
	"github.com/knowhowcafe/auth/internal/dbx"
	"github.com/knowhowcafe/auth/internal/server/config"
	"github.com/knowhowcafe/auth/internal/server/models"
	"github.com/knowhowcafe/auth/internal/server/otp"
	"github.com/knowhowcafe/auth/internal/server/repositories/repomanager"
)

// OtpService owns the one-time-code lifecycle: issue (generate, hash,
// upsert-replace) and consume (fetch, expiry check, verify, delete).
type OtpService struct {
	db               *sql.DB
	repomanager      repomanager.RepositoryManager
	validityDuration time.Duration
}

func NewOtpService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *OtpService {
	return &OtpService{
		db:               db,
		repomanager:      m,
		validityDuration: cfg.OtpValidityDuration,
	}
}

// Issue creates a fresh code for (email, purpose) and stores its hash,
// replacing any previous record for the same pair. The plaintext code is
// returned to the caller for immediate dispatch and exists nowhere else.
func (s *OtpService) Issue(ctx context.Context, email string, purpose models.OtpPurpose) (string, error) {

	code, err := otp.Generate()
	if err != nil {
		return "", fmt.Errorf("error generating otp: %w", err)
	}

	hash, err := otp.Hash(code)
	if err != nil {
		return "", fmt.Errorf("error hashing otp: %w", err)
	}

	record := &models.Otp{
		Email:     email,
		Purpose:   purpose,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(s.validityDuration),
	}

	repo := s.repomanager.Otps(s.db)
	if err := repo.Upsert(ctx, record); err != nil {
		return "", fmt.Errorf("error storing otp: %w", err)
	}

	return code, nil
}

// Consume validates and deletes the code for (email, purpose) in a single
// transaction, making consumption one-shot: a second call after success
// fails with ErrorNotFound. Expiry is checked before the code comparison,
// so an expired-but-correct code reports ErrorOtpExpired.
func (s *OtpService) Consume(ctx context.Context, email string, purpose models.OtpPurpose, suppliedCode string) error {

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Otps(tx)

		record, err := repo.Get(ctx, email, purpose)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("error fetching otp: %w", err)
		}

		if time.Now().After(record.ExpiresAt) {
			return common.ErrorOtpExpired
		}

		if !otp.Verify(suppliedCode, record.CodeHash) {
			return common.ErrorOtpMismatch
		}

		if err := repo.Delete(ctx, email, purpose); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				// consumed concurrently between Get and Delete
				return common.ErrorNotFound
			}
			return fmt.Errorf("error deleting otp: %w", err)
		}

		return nil
	})
}
