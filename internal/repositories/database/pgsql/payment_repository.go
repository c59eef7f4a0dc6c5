package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/association_backoffice/internal/models"
	"github.com/SscSPs/association_backoffice/internal/utils/mapping"
	"github.com/SscSPs/association_backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type PgxPaymentRepository struct {
	BaseRepository
}

var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

const paymentColumns = `
	payment_id, member_id, amount, payment_date, method, reference, proof_reference,
	obligation_kind, obligation_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID, &m.MemberID, &m.Amount, &m.PaymentDate, &m.Method, &m.Reference, &m.ProofReference,
		&m.ObligationKind, &m.ObligationID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPaymentRepository) queryPayments(ctx context.Context, what, query string, args ...any) ([]models.Payment, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, what)
	}
	defer rows.Close()

	var res []models.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, convertErr(err, what)
		}
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, convertErr(err, what)
	}
	return res, nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := r.forUpdate(`SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1`)
	m, err := scanPayment(r.DB.QueryRow(ctx, query, paymentID))
	if err != nil {
		return nil, convertErr(err, "payment "+paymentID)
	}
	p := mapping.ToDomainPayment(m)
	return &p, nil
}

func (r *PgxPaymentRepository) ListPaymentsByObligation(ctx context.Context, ref domain.ObligationRef) ([]domain.Payment, error) {
	query := r.forUpdate(`SELECT ` + paymentColumns + `
		FROM payments
		WHERE obligation_kind = $1 AND obligation_id = $2
		ORDER BY payment_date, created_at, payment_id`)
	ms, err := r.queryPayments(ctx, "payments of "+ref.String(), query, string(ref.Kind), ref.ID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainPaymentSlice(ms), nil
}

// ListPaymentsByMember pages newest first on (payment_date, created_at, payment_id).
// One extra row is fetched to tell whether another page exists.
func (r *PgxPaymentRepository) ListPaymentsByMember(ctx context.Context, memberID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := []any{memberID}
	where := "member_id = $1"
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		where += " AND (payment_date, created_at, payment_id) < ($2, $3, $4)"
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
	}

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE ` + where +
		` ORDER BY payment_date DESC, created_at DESC, payment_id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit+1)
	}

	ms, err := r.queryPayments(ctx, "member payments", query, args...)
	if err != nil {
		return nil, nil, err
	}
	if limit <= 0 || len(ms) <= limit {
		return mapping.ToDomainPaymentSlice(ms), nil, nil
	}

	page := mapping.ToDomainPaymentSlice(ms[:limit])
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.PaymentDate, last.CreatedAt, last.PaymentID)
	return page, &token, nil
}

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.DB.Exec(ctx, query,
		m.PaymentID, m.MemberID, m.Amount, m.PaymentDate, m.Method, m.Reference, m.ProofReference,
		m.ObligationKind, m.ObligationID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return convertErr(err, "payment "+payment.PaymentID)
}

func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		UPDATE payments
		SET amount = $2, payment_date = $3, method = $4, reference = $5, proof_reference = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE payment_id = $1`
	tag, err := r.DB.Exec(ctx, query,
		m.PaymentID, m.Amount, m.PaymentDate, m.Method, m.Reference, m.ProofReference,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return convertErr(err, "payment "+payment.PaymentID)
	}
	return expectOne(tag, "payment "+payment.PaymentID)
}
