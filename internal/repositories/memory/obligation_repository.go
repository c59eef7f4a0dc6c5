package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/SscSPs/association_backoffice/internal/core/domain"
)

type obligationRepository struct {
	*repos
}

func (r *obligationRepository) FindObligationByID(_ context.Context, ref domain.ObligationRef) (*domain.Obligation, error) {
	var found domain.Obligation
	err := r.with(func(st *state) error {
		ob, ok := st.obligations[ref]
		if !ok {
			return fmt.Errorf("%w: obligation %s", apperrors.ErrNotFound, ref)
		}
		found = ob
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *obligationRepository) ListOutstandingObligations(_ context.Context, memberID string, kind domain.ObligationKind) ([]domain.Obligation, error) {
	var res []domain.Obligation
	_ = r.with(func(st *state) error {
		for _, ob := range st.obligations {
			if ob.MemberID == memberID && ob.Kind == kind && ob.IsOutstanding() {
				res = append(res, ob)
			}
		}
		return nil
	})
	sort.Slice(res, func(i, j int) bool { return res[i].ComesBefore(&res[j]) })
	return res, nil
}

func (r *obligationRepository) ListObligationsByMember(_ context.Context, memberID string) ([]domain.Obligation, error) {
	var res []domain.Obligation
	_ = r.with(func(st *state) error {
		for _, ob := range st.obligations {
			if ob.MemberID == memberID {
				res = append(res, ob)
			}
		}
		return nil
	})
	sort.Slice(res, func(i, j int) bool {
		if res[i].Kind != res[j].Kind {
			return priority(res[i].Kind) < priority(res[j].Kind)
		}
		return res[i].ComesBefore(&res[j])
	})
	return res, nil
}

func (r *obligationRepository) SaveObligation(_ context.Context, ob domain.Obligation) error {
	return r.with(func(st *state) error {
		if _, exists := st.obligations[ob.Ref()]; exists {
			return fmt.Errorf("%w: obligation %s", apperrors.ErrDuplicate, ob.Ref())
		}
		st.obligations[ob.Ref()] = ob
		return nil
	})
}

func (r *obligationRepository) UpdateObligationAmounts(_ context.Context, ob domain.Obligation) error {
	return r.with(func(st *state) error {
		stored, ok := st.obligations[ob.Ref()]
		if !ok {
			return fmt.Errorf("%w: obligation %s", apperrors.ErrNotFound, ob.Ref())
		}
		stored.AmountPaid = ob.AmountPaid
		stored.AmountRemaining = ob.AmountRemaining
		stored.Status = ob.Status
		stored.LastUpdatedAt = ob.LastUpdatedAt
		stored.LastUpdatedBy = ob.LastUpdatedBy
		st.obligations[ob.Ref()] = stored
		return nil
	})
}

func priority(kind domain.ObligationKind) int {
	for i, k := range domain.AllocationPriority {
		if k == kind {
			return i
		}
	}
	return len(domain.AllocationPriority)
}
