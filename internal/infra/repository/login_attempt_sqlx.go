package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/storefront/backend/internal/domain/model"
	repo "github.com/storefront/backend/internal/repository"
)

// loginAttemptSQLRepository keeps login counters in the login_attempts table.
// Each attempt is a single upsert so concurrent requests cannot lose increments.
type loginAttemptSQLRepository struct {
	db *sqlx.DB
}

func NewLoginAttemptSQLRepository(db *sqlx.DB) repo.LoginAttemptStore {
	return &loginAttemptSQLRepository{db: db}
}

const (
	loginAttemptsSelect = `
SELECT email, attempts, window_started_at, updated_at FROM login_attempts
WHERE email = $1 AND window_started_at > $2`

	// a row whose window has elapsed restarts at 1
	loginAttemptsUpsert = `
INSERT INTO login_attempts (email, attempts, window_started_at, updated_at)
VALUES ($1, 1, $2, $2)
ON CONFLICT (email) DO UPDATE SET
	attempts = CASE WHEN login_attempts.window_started_at <= $3
		THEN 1 ELSE login_attempts.attempts + 1 END,
	window_started_at = CASE WHEN login_attempts.window_started_at <= $3
		THEN EXCLUDED.window_started_at ELSE login_attempts.window_started_at END,
	updated_at = EXCLUDED.updated_at
RETURNING email, attempts, window_started_at, updated_at`

	loginAttemptsDelete = `DELETE FROM login_attempts WHERE email = $1`

	loginAttemptsPurge = `DELETE FROM login_attempts WHERE window_started_at <= $1`
)

func (r *loginAttemptSQLRepository) Attempts(ctx context.Context, email string, now time.Time, window time.Duration) (model.LoginAttempt, error) {
	var a model.LoginAttempt
	err := r.db.GetContext(ctx, &a, loginAttemptsSelect, email, now.Add(-window))
	if errors.Is(err, sql.ErrNoRows) {
		return model.LoginAttempt{Email: email}, nil
	}
	if err != nil {
		return model.LoginAttempt{}, err
	}
	return a, nil
}

func (r *loginAttemptSQLRepository) RegisterAttempt(ctx context.Context, email string, now time.Time, window time.Duration) (model.LoginAttempt, error) {
	var a model.LoginAttempt
	if err := r.db.GetContext(ctx, &a, loginAttemptsUpsert, email, now, now.Add(-window)); err != nil {
		return model.LoginAttempt{}, err
	}
	return a, nil
}

func (r *loginAttemptSQLRepository) Reset(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, loginAttemptsDelete, email)
	return err
}

func (r *loginAttemptSQLRepository) PurgeExpired(ctx context.Context, now time.Time, window time.Duration) (int64, error) {
	res, err := r.db.ExecContext(ctx, loginAttemptsPurge, now.Add(-window))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
