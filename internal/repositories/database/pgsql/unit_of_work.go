package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// memberLockQuery serialises every allocation of one member for the lifetime of the transaction.
const memberLockQuery = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

// UnitOfWork runs allocation steps in one transaction holding the member's advisory lock.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

var _ portsrepo.UnitOfWork = (*UnitOfWork)(nil)

// Do commits when fn returns nil and rolls back otherwise.
func (u *UnitOfWork) Do(ctx context.Context, memberID string, fn func(ctx context.Context, repos portsrepo.Repositories) error) (err error) {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", rbErr))
		}
	}()

	if _, err := tx.Exec(ctx, memberLockQuery, memberID); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to acquire member lock", err)
	}

	if err := fn(ctx, newRepositories(tx, true)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

// Reader returns pool-backed repositories that never lock.
func (u *UnitOfWork) Reader() portsrepo.Repositories {
	return newRepositories(u.pool, false)
}

type repositories struct {
	base BaseRepository
}

func newRepositories(db DBTX, lock bool) *repositories {
	return &repositories{base: BaseRepository{DB: db, lock: lock}}
}

func (r *repositories) Obligations() portsrepo.ObligationRepository {
	return &PgxObligationRepository{BaseRepository: r.base}
}

func (r *repositories) Credits() portsrepo.CreditRepository {
	return &PgxCreditRepository{BaseRepository: r.base}
}

func (r *repositories) Payments() portsrepo.PaymentRepository {
	return &PgxPaymentRepository{BaseRepository: r.base}
}
