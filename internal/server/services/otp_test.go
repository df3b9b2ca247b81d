package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/knowhowcafe/auth/internal/common"
	"github.com/knowhowcafe/auth/internal/server/config"
	"github.com/knowhowcafe/auth/internal/server/models"
	"github.com/knowhowcafe/auth/internal/server/otp"
)

func newTestOtpService(t *testing.T, db *sql.DB, m *fakeRepoManager) *OtpService {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return NewOtpService(db, m, cfg)
}

func TestOtpServiceIssue(t *testing.T) {
	m := newFakeRepoManager()
	s := newTestOtpService(t, nil, m)

	code, err := s.Issue(context.Background(), "user@example.com", models.OtpPurposeSignup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(code) {
		t.Fatalf("expected a six-digit code, got %q", code)
	}

	record, ok := m.otps.records[otpKey("user@example.com", models.OtpPurposeSignup)]
	if !ok {
		t.Fatal("expected a stored otp record")
	}
	if record.CodeHash == code {
		t.Fatal("plaintext code must not be stored")
	}
	if !otp.Verify(code, record.CodeHash) {
		t.Fatal("stored hash does not match issued code")
	}
	if remaining := time.Until(record.ExpiresAt); remaining <= 9*time.Minute || remaining > 10*time.Minute {
		t.Fatalf("unexpected expiry, %v remaining", remaining)
	}
}

func TestOtpServiceIssueReplacesPrevious(t *testing.T) {
	m := newFakeRepoManager()
	s := newTestOtpService(t, nil, m)

	first, err := s.Issue(context.Background(), "user@example.com", models.OtpPurposeSignup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Issue(context.Background(), "user@example.com", models.OtpPurposeSignup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record := m.otps.records[otpKey("user@example.com", models.OtpPurposeSignup)]
	if first != second && otp.Verify(first, record.CodeHash) {
		t.Fatal("previous code still accepted after reissue")
	}
	if !otp.Verify(second, record.CodeHash) {
		t.Fatal("latest code not accepted")
	}
}

func TestOtpServiceIssueUpsertError(t *testing.T) {
	m := newFakeRepoManager()
	m.otps.upsertErr = errBoom
	s := newTestOtpService(t, nil, m)

	if _, err := s.Issue(context.Background(), "user@example.com", models.OtpPurposeSignup); !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped upsert error, got %v", err)
	}
}

func seedOtp(t *testing.T, m *fakeRepoManager, email string, purpose models.OtpPurpose, code string, expiresAt time.Time) {
	t.Helper()
	hash, err := otp.Hash(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.otps.records[otpKey(email, purpose)] = &models.Otp{
		Email: email, Purpose: purpose, CodeHash: hash, ExpiresAt: expiresAt,
	}
}

func TestOtpServiceConsume(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	m := newFakeRepoManager()
	s := newTestOtpService(t, db, m)
	seedOtp(t, m, "user@example.com", models.OtpPurposeSignup, "123456", time.Now().Add(5*time.Minute))

	mock.ExpectBegin()
	mock.ExpectCommit()

	if err := s.Consume(context.Background(), "user@example.com", models.OtpPurposeSignup, "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.otps.records[otpKey("user@example.com", models.OtpPurposeSignup)]; ok {
		t.Fatal("record should be deleted after successful consume")
	}

	// one-shot: the same code cannot be used twice
	mock.ExpectBegin()
	mock.ExpectRollback()
	if err := s.Consume(context.Background(), "user@example.com", models.OtpPurposeSignup, "123456"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestOtpServiceConsumeExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	m := newFakeRepoManager()
	s := newTestOtpService(t, db, m)
	seedOtp(t, m, "user@example.com", models.OtpPurposeForgotPassword, "123456", time.Now().Add(-time.Second))

	mock.ExpectBegin()
	mock.ExpectRollback()

	// expiry wins even when the code itself is correct
	if err := s.Consume(context.Background(), "user@example.com", models.OtpPurposeForgotPassword, "123456"); !errors.Is(err, common.ErrorOtpExpired) {
		t.Fatalf("expected ErrorOtpExpired, got %v", err)
	}
	if _, ok := m.otps.records[otpKey("user@example.com", models.OtpPurposeForgotPassword)]; !ok {
		t.Fatal("record should survive a failed consume")
	}
}

func TestOtpServiceConsumeMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	m := newFakeRepoManager()
	s := newTestOtpService(t, db, m)
	seedOtp(t, m, "user@example.com", models.OtpPurposeSignup, "123456", time.Now().Add(5*time.Minute))

	mock.ExpectBegin()
	mock.ExpectRollback()

	if err := s.Consume(context.Background(), "user@example.com", models.OtpPurposeSignup, "654321"); !errors.Is(err, common.ErrorOtpMismatch) {
		t.Fatalf("expected ErrorOtpMismatch, got %v", err)
	}
}

func TestOtpServiceConsumeWrongPurpose(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	m := newFakeRepoManager()
	s := newTestOtpService(t, db, m)
	seedOtp(t, m, "user@example.com", models.OtpPurposeSignup, "123456", time.Now().Add(5*time.Minute))

	mock.ExpectBegin()
	mock.ExpectRollback()

	// a signup code is not valid for the recovery flow
	if err := s.Consume(context.Background(), "user@example.com", models.OtpPurposeForgotPassword, "123456"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestOtpServiceConsumeMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	m := newFakeRepoManager()
	s := newTestOtpService(t, db, m)

	mock.ExpectBegin()
	mock.ExpectRollback()

	if err := s.Consume(context.Background(), "nobody@example.com", models.OtpPurposeSignup, "123456"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
