package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/SscSPs/association_backoffice/internal/utils/pagination"
)

type paymentRepository struct {
	*repos
}

func (r *paymentRepository) FindPaymentByID(_ context.Context, paymentID string) (*domain.Payment, error) {
	var found domain.Payment
	err := r.with(func(st *state) error {
		p, ok := st.payments[paymentID]
		if !ok {
			return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
		}
		found = clonePayment(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *paymentRepository) ListPaymentsByObligation(_ context.Context, ref domain.ObligationRef) ([]domain.Payment, error) {
	var res []domain.Payment
	_ = r.with(func(st *state) error {
		for _, p := range st.payments {
			if p.Obligation != nil && *p.Obligation == ref {
				res = append(res, clonePayment(p))
			}
		}
		return nil
	})
	sort.Slice(res, func(i, j int) bool { return res[i].SettlesBefore(&res[j]) })
	return res, nil
}

func (r *paymentRepository) ListPaymentsByMember(_ context.Context, memberID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	var all []domain.Payment
	_ = r.with(func(st *state) error {
		for _, p := range st.payments {
			if p.MemberID != memberID {
				continue
			}
			if cursor != nil && !cursor.After(p.PaymentDate, p.CreatedAt, p.PaymentID) {
				continue
			}
			all = append(all, clonePayment(p))
		}
		return nil
	})
	// newest first
	sort.Slice(all, func(i, j int) bool { return all[j].SettlesBefore(&all[i]) })

	if limit <= 0 || len(all) <= limit {
		return all, nil, nil
	}
	page := all[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.PaymentDate, last.CreatedAt, last.PaymentID)
	return page, &token, nil
}

func (r *paymentRepository) SavePayment(_ context.Context, payment domain.Payment) error {
	return r.with(func(st *state) error {
		if _, exists := st.payments[payment.PaymentID]; exists {
			return fmt.Errorf("%w: payment %s", apperrors.ErrDuplicate, payment.PaymentID)
		}
		if payment.Obligation != nil {
			if _, ok := st.obligations[*payment.Obligation]; !ok {
				return fmt.Errorf("%w: obligation %s", apperrors.ErrNotFound, payment.Obligation)
			}
		}
		st.payments[payment.PaymentID] = clonePayment(payment)
		return nil
	})
}

func (r *paymentRepository) UpdatePayment(_ context.Context, payment domain.Payment) error {
	return r.with(func(st *state) error {
		stored, ok := st.payments[payment.PaymentID]
		if !ok {
			return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, payment.PaymentID)
		}
		stored.Amount = payment.Amount
		stored.PaymentDate = payment.PaymentDate
		stored.Method = payment.Method
		stored.Reference = payment.Reference
		stored.ProofReference = payment.ProofReference
		stored.LastUpdatedAt = payment.LastUpdatedAt
		stored.LastUpdatedBy = payment.LastUpdatedBy
		st.payments[payment.PaymentID] = stored
		return nil
	})
}
