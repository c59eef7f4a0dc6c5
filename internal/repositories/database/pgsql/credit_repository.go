package pgsql

import (
	"context"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/association_backoffice/internal/models"
	"github.com/SscSPs/association_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxCreditRepository struct {
	BaseRepository
}

var _ portsrepo.CreditRepository = (*PgxCreditRepository)(nil)

const creditColumns = `
	credit_id, member_id, amount, amount_used, amount_remaining, status, payment_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCredit(row pgx.Row) (models.Credit, error) {
	var m models.Credit
	err := row.Scan(
		&m.CreditID, &m.MemberID, &m.Amount, &m.AmountUsed, &m.AmountRemaining, &m.Status, &m.PaymentID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCreditRepository) queryCredits(ctx context.Context, what, query string, args ...any) ([]domain.Credit, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, what)
	}
	defer rows.Close()

	var res []domain.Credit
	for rows.Next() {
		m, err := scanCredit(rows)
		if err != nil {
			return nil, convertErr(err, what)
		}
		res = append(res, mapping.ToDomainCredit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, convertErr(err, what)
	}
	return res, nil
}

func (r *PgxCreditRepository) ListAvailableCredits(ctx context.Context, memberID string) ([]domain.Credit, error) {
	query := r.forUpdate(`SELECT ` + creditColumns + `
		FROM credits
		WHERE member_id = $1 AND status = 'AVAILABLE' AND amount_remaining > 0
		ORDER BY created_at, credit_id`)
	return r.queryCredits(ctx, "available credits", query, memberID)
}

func (r *PgxCreditRepository) ListCreditsByMember(ctx context.Context, memberID string) ([]domain.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE member_id = $1 ORDER BY created_at, credit_id`
	return r.queryCredits(ctx, "member credits", query, memberID)
}

func (r *PgxCreditRepository) FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	query := r.forUpdate(`SELECT ` + creditColumns + ` FROM credits WHERE credit_id = $1`)
	m, err := scanCredit(r.DB.QueryRow(ctx, query, creditID))
	if err != nil {
		return nil, convertErr(err, "credit "+creditID)
	}
	c := mapping.ToDomainCredit(m)
	return &c, nil
}

func (r *PgxCreditRepository) FindCreditByPaymentID(ctx context.Context, paymentID string) (*domain.Credit, error) {
	query := r.forUpdate(`SELECT ` + creditColumns + ` FROM credits WHERE payment_id = $1`)
	m, err := scanCredit(r.DB.QueryRow(ctx, query, paymentID))
	if err != nil {
		return nil, convertErr(err, "credit for payment "+paymentID)
	}
	c := mapping.ToDomainCredit(m)
	return &c, nil
}

func (r *PgxCreditRepository) ListUsagesByCredit(ctx context.Context, creditID string) ([]domain.CreditUsage, error) {
	query := `
		SELECT usage_id, credit_id, amount_consumed, obligation_kind, obligation_id, description, created_at
		FROM credit_usages
		WHERE credit_id = $1
		ORDER BY created_at, usage_id`
	rows, err := r.DB.Query(ctx, query, creditID)
	if err != nil {
		return nil, convertErr(err, "usages of credit "+creditID)
	}
	defer rows.Close()

	var res []domain.CreditUsage
	for rows.Next() {
		var m models.CreditUsage
		if err := rows.Scan(&m.UsageID, &m.CreditID, &m.AmountConsumed, &m.ObligationKind, &m.ObligationID, &m.Description, &m.CreatedAt); err != nil {
			return nil, convertErr(err, "usages of credit "+creditID)
		}
		res = append(res, mapping.ToDomainCreditUsage(m))
	}
	if err := rows.Err(); err != nil {
		return nil, convertErr(err, "usages of credit "+creditID)
	}
	return res, nil
}

func (r *PgxCreditRepository) SumUsagesByObligation(ctx context.Context, ref domain.ObligationRef) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount_consumed), 0)
		FROM credit_usages
		WHERE obligation_kind = $1 AND obligation_id = $2`
	var total decimal.Decimal
	if err := r.DB.QueryRow(ctx, query, string(ref.Kind), ref.ID).Scan(&total); err != nil {
		return decimal.Zero, convertErr(err, "credit usages of "+ref.String())
	}
	return total, nil
}

func (r *PgxCreditRepository) SaveCredit(ctx context.Context, credit domain.Credit) error {
	m := mapping.ToModelCredit(credit)
	query := `
		INSERT INTO credits (` + creditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.Exec(ctx, query,
		m.CreditID, m.MemberID, m.Amount, m.AmountUsed, m.AmountRemaining, m.Status, m.PaymentID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return convertErr(err, "credit "+credit.CreditID)
}

func (r *PgxCreditRepository) UpdateCredit(ctx context.Context, credit domain.Credit) error {
	query := `
		UPDATE credits
		SET amount = $2, amount_used = $3, amount_remaining = $4, status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE credit_id = $1`
	tag, err := r.DB.Exec(ctx, query,
		credit.CreditID, credit.Amount, credit.AmountUsed, credit.AmountRemaining, string(credit.Status),
		credit.LastUpdatedAt, credit.LastUpdatedBy,
	)
	if err != nil {
		return convertErr(err, "credit "+credit.CreditID)
	}
	return expectOne(tag, "credit "+credit.CreditID)
}

// DeleteCredit refuses to remove a credit that has usages.
func (r *PgxCreditRepository) DeleteCredit(ctx context.Context, creditID string) error {
	query := `
		DELETE FROM credits
		WHERE credit_id = $1 AND amount_used = 0
		  AND NOT EXISTS (SELECT 1 FROM credit_usages WHERE credit_id = $1)`
	tag, err := r.DB.Exec(ctx, query, creditID)
	if err != nil {
		return convertErr(err, "credit "+creditID)
	}
	return expectOne(tag, "unused credit "+creditID)
}

func (r *PgxCreditRepository) SaveCreditUsage(ctx context.Context, usage domain.CreditUsage) error {
	m := mapping.ToModelCreditUsage(usage)
	query := `
		INSERT INTO credit_usages (usage_id, credit_id, amount_consumed, obligation_kind, obligation_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.Exec(ctx, query, m.UsageID, m.CreditID, m.AmountConsumed, m.ObligationKind, m.ObligationID, m.Description, m.CreatedAt)
	return convertErr(err, "usage of credit "+usage.CreditID)
}
