package pgsql

import (
	"context"
	"sort"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/association_backoffice/internal/models"
	"github.com/SscSPs/association_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxObligationRepository struct {
	BaseRepository
}

var _ portsrepo.ObligationRepository = (*PgxObligationRepository)(nil)

const obligationColumns = `
	obligation_id, kind, member_id, label, year, due_date, assistance_type, category,
	amount_due, amount_paid, amount_remaining, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanObligation(row pgx.Row) (models.Obligation, error) {
	var m models.Obligation
	err := row.Scan(
		&m.ObligationID, &m.Kind, &m.MemberID, &m.Label, &m.Year, &m.DueDate, &m.AssistanceType, &m.Category,
		&m.AmountDue, &m.AmountPaid, &m.AmountRemaining, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxObligationRepository) queryObligations(ctx context.Context, what, query string, args ...any) ([]domain.Obligation, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, what)
	}
	defer rows.Close()

	var res []domain.Obligation
	for rows.Next() {
		m, err := scanObligation(rows)
		if err != nil {
			return nil, convertErr(err, what)
		}
		res = append(res, mapping.ToDomainObligation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, convertErr(err, what)
	}
	return res, nil
}

func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, ref domain.ObligationRef) (*domain.Obligation, error) {
	query := r.forUpdate(`SELECT ` + obligationColumns + ` FROM obligations WHERE kind = $1 AND obligation_id = $2`)
	m, err := scanObligation(r.DB.QueryRow(ctx, query, string(ref.Kind), ref.ID))
	if err != nil {
		return nil, convertErr(err, "obligation "+ref.String())
	}
	ob := mapping.ToDomainObligation(m)
	return &ob, nil
}

// ListOutstandingObligations narrows in SQL on the remaining amount and leaves the
// per-kind status rules to domain.Obligation.IsOutstanding.
func (r *PgxObligationRepository) ListOutstandingObligations(ctx context.Context, memberID string, kind domain.ObligationKind) ([]domain.Obligation, error) {
	order := "due_date, created_at, obligation_id"
	if kind == domain.InitialDebt {
		order = "year, created_at, obligation_id"
	}
	query := r.forUpdate(`SELECT ` + obligationColumns + `
		FROM obligations
		WHERE member_id = $1 AND kind = $2 AND amount_remaining > 0
		ORDER BY ` + order)

	candidates, err := r.queryObligations(ctx, "outstanding obligations", query, memberID, string(kind))
	if err != nil {
		return nil, err
	}
	res := candidates[:0]
	for i := range candidates {
		if candidates[i].IsOutstanding() {
			res = append(res, candidates[i])
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].ComesBefore(&res[j]) })
	return res, nil
}

func (r *PgxObligationRepository) ListObligationsByMember(ctx context.Context, memberID string) ([]domain.Obligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM obligations WHERE member_id = $1`
	res, err := r.queryObligations(ctx, "member obligations", query, memberID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Kind != res[j].Kind {
			return kindRank(res[i].Kind) < kindRank(res[j].Kind)
		}
		return res[i].ComesBefore(&res[j])
	})
	return res, nil
}

func (r *PgxObligationRepository) SaveObligation(ctx context.Context, ob domain.Obligation) error {
	m := mapping.ToModelObligation(ob)
	query := `
		INSERT INTO obligations (` + obligationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.DB.Exec(ctx, query,
		m.ObligationID, m.Kind, m.MemberID, m.Label, m.Year, m.DueDate, m.AssistanceType, m.Category,
		m.AmountDue, m.AmountPaid, m.AmountRemaining, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return convertErr(err, "obligation "+ob.Ref().String())
}

func (r *PgxObligationRepository) UpdateObligationAmounts(ctx context.Context, ob domain.Obligation) error {
	query := `
		UPDATE obligations
		SET amount_paid = $3, amount_remaining = $4, status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE kind = $1 AND obligation_id = $2`
	tag, err := r.DB.Exec(ctx, query,
		string(ob.Kind), ob.ObligationID,
		ob.AmountPaid, ob.AmountRemaining, string(ob.Status), ob.LastUpdatedAt, ob.LastUpdatedBy,
	)
	if err != nil {
		return convertErr(err, "obligation "+ob.Ref().String())
	}
	return expectOne(tag, "obligation "+ob.Ref().String())
}

func kindRank(kind domain.ObligationKind) int {
	for i, k := range domain.AllocationPriority {
		if k == kind {
			return i
		}
	}
	return len(domain.AllocationPriority)
}
