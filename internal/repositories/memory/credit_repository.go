package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

type creditRepository struct {
	*repos
}

func (r *creditRepository) ListAvailableCredits(_ context.Context, memberID string) ([]domain.Credit, error) {
	var res []domain.Credit
	_ = r.with(func(st *state) error {
		for _, c := range st.credits {
			if c.MemberID == memberID && c.Status == domain.CreditAvailable && c.AmountRemaining.IsPositive() {
				res = append(res, cloneCredit(c))
			}
		}
		return nil
	})
	sortCredits(res)
	return res, nil
}

func (r *creditRepository) ListCreditsByMember(_ context.Context, memberID string) ([]domain.Credit, error) {
	var res []domain.Credit
	_ = r.with(func(st *state) error {
		for _, c := range st.credits {
			if c.MemberID == memberID {
				res = append(res, cloneCredit(c))
			}
		}
		return nil
	})
	sortCredits(res)
	return res, nil
}

func (r *creditRepository) FindCreditByID(_ context.Context, creditID string) (*domain.Credit, error) {
	var found domain.Credit
	err := r.with(func(st *state) error {
		c, ok := st.credits[creditID]
		if !ok {
			return fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, creditID)
		}
		found = cloneCredit(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *creditRepository) FindCreditByPaymentID(_ context.Context, paymentID string) (*domain.Credit, error) {
	var found *domain.Credit
	_ = r.with(func(st *state) error {
		for _, c := range st.credits {
			if c.PaymentID != nil && *c.PaymentID == paymentID {
				cc := cloneCredit(c)
				found = &cc
				return nil
			}
		}
		return nil
	})
	if found == nil {
		return nil, fmt.Errorf("%w: credit for payment %s", apperrors.ErrNotFound, paymentID)
	}
	return found, nil
}

func (r *creditRepository) ListUsagesByCredit(_ context.Context, creditID string) ([]domain.CreditUsage, error) {
	var res []domain.CreditUsage
	_ = r.with(func(st *state) error {
		for _, u := range st.usages {
			if u.CreditID == creditID {
				res = append(res, u)
			}
		}
		return nil
	})
	return res, nil
}

func (r *creditRepository) SumUsagesByObligation(_ context.Context, ref domain.ObligationRef) (decimal.Decimal, error) {
	total := decimal.Zero
	_ = r.with(func(st *state) error {
		for _, u := range st.usages {
			if u.Obligation == ref {
				total = total.Add(u.AmountConsumed)
			}
		}
		return nil
	})
	return total, nil
}

func (r *creditRepository) SaveCredit(_ context.Context, credit domain.Credit) error {
	return r.with(func(st *state) error {
		if _, exists := st.credits[credit.CreditID]; exists {
			return fmt.Errorf("%w: credit %s", apperrors.ErrDuplicate, credit.CreditID)
		}
		if credit.PaymentID != nil {
			for _, c := range st.credits {
				if c.PaymentID != nil && *c.PaymentID == *credit.PaymentID {
					return fmt.Errorf("%w: credit for payment %s", apperrors.ErrDuplicate, *credit.PaymentID)
				}
			}
		}
		st.credits[credit.CreditID] = cloneCredit(credit)
		return nil
	})
}

func (r *creditRepository) UpdateCredit(_ context.Context, credit domain.Credit) error {
	return r.with(func(st *state) error {
		if _, ok := st.credits[credit.CreditID]; !ok {
			return fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, credit.CreditID)
		}
		st.credits[credit.CreditID] = cloneCredit(credit)
		return nil
	})
}

func (r *creditRepository) DeleteCredit(_ context.Context, creditID string) error {
	return r.with(func(st *state) error {
		if _, ok := st.credits[creditID]; !ok {
			return fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, creditID)
		}
		delete(st.credits, creditID)
		return nil
	})
}

func (r *creditRepository) SaveCreditUsage(_ context.Context, usage domain.CreditUsage) error {
	return r.with(func(st *state) error {
		if _, ok := st.credits[usage.CreditID]; !ok {
			return fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, usage.CreditID)
		}
		st.usages = append(st.usages, usage)
		return nil
	})
}

// sortCredits orders credits oldest created first.
func sortCredits(credits []domain.Credit) {
	sort.Slice(credits, func(i, j int) bool {
		if !credits[i].CreatedAt.Equal(credits[j].CreatedAt) {
			return credits[i].CreatedAt.Before(credits[j].CreatedAt)
		}
		return credits[i].CreditID < credits[j].CreditID
	})
}
