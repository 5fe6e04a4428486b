package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// execer is satisfied by both the pool and a transaction
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// mapConstraint turns a foreign key violation into domain.ErrPunishmentNotFound and a
// second pardon into domain.ErrAlreadyPardoned
func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == PgErrorCodeForeignKeyViolation:
		return domain.ErrPunishmentNotFound
	case pgErr.Code == PgErrorCodeUniqueViolation && pgErr.ConstraintName == constraintOnePardon:
		return domain.ErrAlreadyPardoned
	}
	return err
}

// utc normalizes a nullable timestamp read from a timestamptz column
func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

// nonNil keeps NOT NULL text[] columns from receiving NULL
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
