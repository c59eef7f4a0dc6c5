package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories.
// When lock is set, row reads append FOR UPDATE so the rows stay locked until the transaction ends.
type BaseRepository struct {
	DB   DBTX
	lock bool
}

func (r *BaseRepository) forUpdate(query string) string {
	if r.lock {
		return query + " FOR UPDATE"
	}
	return query
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// convertErr maps driver errors onto the application's sentinel errors.
func convertErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, what)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s references a missing row", apperrors.ErrNotFound, what)
		}
	}
	return apperrors.NewAppError(http.StatusInternalServerError, "storage failure on "+what, err)
}

// expectOne turns a zero-row update or delete into ErrNotFound.
func expectOne(tag pgconn.CommandTag, what string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return nil
}
