package loginlogs

import (
	"context"
	"fmt"

	"github.com/knowhowcafe/auth/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, email string, method string) error {

	query :=
		`INSERT INTO login_logs (email, method)
         VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, email, method)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
