package otps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/knowhowcafe/auth/internal/common"
	"github.com/knowhowcafe/auth/internal/dbx"
	"github.com/knowhowcafe/auth/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert relies on the (email, purpose) primary key for last-write-wins
// semantics: if two issue requests race, exactly one row survives.
func (r *PostgresRepository) Upsert(ctx context.Context, record *models.Otp) error {

	query :=
		`INSERT INTO otps (email, purpose, code_hash, expires_at)
         VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email, purpose)
		 DO UPDATE SET code_hash = EXCLUDED.code_hash, expires_at = EXCLUDED.expires_at
		 `

	_, err := r.db.ExecContext(ctx, query,
		record.Email, record.Purpose, record.CodeHash, record.ExpiresAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, email string, purpose models.OtpPurpose) (*models.Otp, error) {
	query :=
		`SELECT email, purpose, code_hash, expires_at FROM otps
		 WHERE email = $1 AND purpose = $2
		 `

	record := &models.Otp{}
	err := r.db.QueryRowContext(ctx, query, email, purpose).Scan(&record.Email, &record.Purpose, &record.CodeHash, &record.ExpiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, email string, purpose models.OtpPurpose) error {
	query :=
		`DELETE FROM otps
		 WHERE email = $1 AND purpose = $2
		 `

	res, err := r.db.ExecContext(ctx, query, email, purpose)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
