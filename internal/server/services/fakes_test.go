package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/knowhowcafe/auth/internal/common"
	"github.com/knowhowcafe/auth/internal/dbx"
	"github.com/knowhowcafe/auth/internal/logging"
	"github.com/knowhowcafe/auth/internal/server/models"
	"github.com/knowhowcafe/auth/internal/server/repositories/loginlogs"
	"github.com/knowhowcafe/auth/internal/server/repositories/otps"
	"github.com/knowhowcafe/auth/internal/server/repositories/repomanager"
	"github.com/knowhowcafe/auth/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

type fakeUserRepo struct {
	byEmail   map[string]*models.User
	createErr error
	updateErr error
	created   []*models.User
	updated   map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User), updated: make(map[string]string)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorDuplicate
	}
	r.byEmail[user.Email] = user
	r.created = append(r.created, user)
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := r.byEmail[email]; ok {
		return user, nil
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id string, passwordHash string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated[id] = passwordHash
	return nil
}

type fakeOtpRepo struct {
	records   map[string]*models.Otp
	upsertErr error
	getErr    error
	deleteErr error
}

func newFakeOtpRepo() *fakeOtpRepo {
	return &fakeOtpRepo{records: make(map[string]*models.Otp)}
}

func otpKey(email string, purpose models.OtpPurpose) string {
	return email + "/" + string(purpose)
}

func (r *fakeOtpRepo) Upsert(_ context.Context, record *models.Otp) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.records[otpKey(record.Email, record.Purpose)] = record
	return nil
}

func (r *fakeOtpRepo) Get(_ context.Context, email string, purpose models.OtpPurpose) (*models.Otp, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if record, ok := r.records[otpKey(email, purpose)]; ok {
		return record, nil
	}
	return nil, common.ErrorNotFound
}

func (r *fakeOtpRepo) Delete(_ context.Context, email string, purpose models.OtpPurpose) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.records[otpKey(email, purpose)]; !ok {
		return common.ErrorNotFound
	}
	delete(r.records, otpKey(email, purpose))
	return nil
}

type fakeLoginLogRepo struct {
	entries []string
	err     error
}

func (r *fakeLoginLogRepo) Create(_ context.Context, email string, method string) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, email+"/"+method)
	return nil
}

type fakeRepoManager struct {
	users     *fakeUserRepo
	otps      *fakeOtpRepo
	loginLogs *fakeLoginLogRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:     newFakeUserRepo(),
		otps:      newFakeOtpRepo(),
		loginLogs: &fakeLoginLogRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Otps(dbx.DBTX) otps.Repository                { return m.otps }
func (m *fakeRepoManager) LoginLogs(dbx.DBTX) loginlogs.Repository      { return m.loginLogs }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendOtpEmail(_ context.Context, to string, _ string, code string, purpose models.OtpPurpose) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+"/"+string(purpose)+"/"+code)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }
