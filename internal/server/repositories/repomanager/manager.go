package repomanager

import (
	"context"
	"database/sql"

	"github.com/knowhowcafe/auth/internal/dbx"
	"github.com/knowhowcafe/auth/internal/server/repositories/loginlogs"
	"github.com/knowhowcafe/auth/internal/server/repositories/otps"
	"github.com/knowhowcafe/auth/internal/server/repositories/users"
)

// RepositoryManager builds repositories over a plain connection or an open
// transaction, so services can run multi-step operations atomically.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Otps(db dbx.DBTX) otps.Repository
	LoginLogs(db dbx.DBTX) loginlogs.Repository
}
