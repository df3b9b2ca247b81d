package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/knowhowcafe/auth/internal/common"
	"github.com/knowhowcafe/auth/internal/logging"
	"github.com/knowhowcafe/auth/internal/server/auth"
	"github.com/knowhowcafe/auth/internal/server/config"
	"github.com/knowhowcafe/auth/internal/server/mail"
	"github.com/knowhowcafe/auth/internal/server/models"
	"github.com/knowhowcafe/auth/internal/server/password"
	"github.com/knowhowcafe/auth/internal/server/repositories/repomanager"
)

// Session carries a freshly minted token together with the lifetime the
// cookie should mirror.
type Session struct {
	Token    string
	Validity time.Duration
}

// AuthService implements the signup, login and password-recovery workflows.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	otps        *OtpService
	mailer      mail.Mailer
	logger      logging.Logger
	config      *config.Config
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, otps *OtpService,
	mailer mail.Mailer, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		otps:        otps,
		mailer:      mailer,
		logger:      logger.With("module", "auth"),
		config:      cfg,
	}
}

// SendSignupOtp issues a signup code for a not-yet-registered email and
// dispatches it. An already registered email fails with ErrorDuplicate.
func (s *AuthService) SendSignupOtp(ctx context.Context, email string, name string) error {

	email = common.NormalizeEmail(email)

	users := s.repomanager.Users(s.db)
	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		return common.ErrorDuplicate
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error checking existing user: %w", err)
	}

	code, err := s.otps.Issue(ctx, email, models.OtpPurposeSignup)
	if err != nil {
		return err
	}

	return s.dispatchOtp(ctx, email, name, code, models.OtpPurposeSignup)
}

// VerifySignupOtp consumes the signup code for the given email.
func (s *AuthService) VerifySignupOtp(ctx context.Context, email string, code string) error {
	return s.otps.Consume(ctx, common.NormalizeEmail(email), models.OtpPurposeSignup, code)
}

// CompleteSignup creates the account and opens an extended session. The
// caller is expected to have passed VerifySignupOtp first; creation itself
// only re-checks uniqueness.
func (s *AuthService) CompleteSignup(ctx context.Context, email string, name string, plainPassword string) (*models.User, *Session, error) {

	email = common.NormalizeEmail(email)

	if err := password.ValidateStrength(plainPassword); err != nil {
		return nil, nil, err
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	users := s.repomanager.Users(s.db)
	created, err := users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicate) {
			return nil, nil, common.ErrorDuplicate
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	session, err := s.openSession(created, s.config.ExtendedSessionValidityDuration)
	if err != nil {
		return nil, nil, err
	}

	return created, session, nil
}

// Login authenticates by email and password. Both an unknown email and a
// wrong password surface as ErrorUnauthorized so the two cases cannot be
// told apart. rememberMe selects the extended session lifetime.
func (s *AuthService) Login(ctx context.Context, email string, plainPassword string, rememberMe bool) (*models.User, *Session, error) {

	email = common.NormalizeEmail(email)

	users := s.repomanager.Users(s.db)
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, fmt.Errorf("error fetching user: %w", err)
	}

	if !password.Compare(plainPassword, user.PasswordHash) {
		return nil, nil, common.ErrorUnauthorized
	}

	// audit only, a failed insert must not block the login
	if err := s.repomanager.LoginLogs(s.db).Create(ctx, email, common.LoginMethodEmail); err != nil {
		s.logger.Warn(ctx, "failed to record login", "email", email, "error", err.Error())
	}

	validity := s.config.SessionValidityDuration
	if rememberMe {
		validity = s.config.ExtendedSessionValidityDuration
	}

	session, err := s.openSession(user, validity)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// SendForgotPasswordOtp issues a recovery code for a registered email.
// Unknown emails succeed without doing anything, so the endpoint does not
// reveal which addresses have accounts.
func (s *AuthService) SendForgotPasswordOtp(ctx context.Context, email string) error {

	email = common.NormalizeEmail(email)

	users := s.repomanager.Users(s.db)
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("error fetching user: %w", err)
	}

	code, err := s.otps.Issue(ctx, email, models.OtpPurposeForgotPassword)
	if err != nil {
		return err
	}

	return s.dispatchOtp(ctx, email, user.Name, code, models.OtpPurposeForgotPassword)
}

// VerifyForgotPasswordOtp consumes the recovery code for the given email.
func (s *AuthService) VerifyForgotPasswordOtp(ctx context.Context, email string, code string) error {
	return s.otps.Consume(ctx, common.NormalizeEmail(email), models.OtpPurposeForgotPassword, code)
}

// ResetPassword replaces the stored password hash for an existing account.
func (s *AuthService) ResetPassword(ctx context.Context, email string, newPassword string) error {

	email = common.NormalizeEmail(email)

	if err := password.ValidateStrength(newPassword); err != nil {
		return err
	}

	users := s.repomanager.Users(s.db)
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error fetching user: %w", err)
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	return nil
}

// GetUser returns the account for a session's subject.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return user, nil
}

func (s *AuthService) openSession(user *models.User, validity time.Duration) (*Session, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, user.Name, []byte(s.config.SecretKey), validity)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &Session{Token: token, Validity: validity}, nil
}

// dispatchOtp sends the code by email. Outside production a delivery
// failure is downgraded to a warning that discloses the code in the log,
// keeping local setups usable without a mail relay.
func (s *AuthService) dispatchOtp(ctx context.Context, email string, name string, code string, purpose models.OtpPurpose) error {
	err := s.mailer.SendOtpEmail(ctx, email, name, code, purpose)
	if err == nil {
		return nil
	}
	if s.config.IsProduction() {
		return fmt.Errorf("error sending email: %w", err)
	}
	s.logger.Warn(ctx, "email dispatch failed, code available locally",
		"email", email, "purpose", string(purpose), "otp", code, "error", err.Error())
	return nil
}
