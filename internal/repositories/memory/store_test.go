package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/association_backoffice/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebt(id, memberID string, year int, due string) domain.Obligation {
	amount := decimal.RequireFromString(due)
	return domain.Obligation{
		ObligationID:    id,
		Kind:            domain.InitialDebt,
		MemberID:        memberID,
		Year:            year,
		AmountDue:       amount,
		AmountPaid:      decimal.Zero,
		AmountRemaining: amount,
		Status:          domain.StatusPending,
	}
}

func TestStore_DoCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.Do(ctx, "m1", func(ctx context.Context, repos portsrepo.Repositories) error {
		return repos.Obligations().SaveObligation(ctx, newDebt("d1", "m1", 2024, "100"))
	})
	require.NoError(t, err)

	ob, err := store.Reader().Obligations().FindObligationByID(ctx, domain.ObligationRef{Kind: domain.InitialDebt, ID: "d1"})
	require.NoError(t, err)
	assert.True(t, ob.AmountDue.Equal(decimal.NewFromInt(100)))
}

func TestStore_DoRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("boom")

	err := store.Do(ctx, "m1", func(ctx context.Context, repos portsrepo.Repositories) error {
		if err := repos.Obligations().SaveObligation(ctx, newDebt("d1", "m1", 2024, "100")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = store.Reader().Obligations().FindObligationByID(ctx, domain.ObligationRef{Kind: domain.InitialDebt, ID: "d1"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_ListOutstandingOrdersOldestFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	paid := newDebt("d3", "m1", 2021, "10")
	paid.ResetPaid(decimal.NewFromInt(10))

	err := store.Do(ctx, "m1", func(ctx context.Context, repos portsrepo.Repositories) error {
		for _, ob := range []domain.Obligation{
			newDebt("d1", "m1", 2024, "10"),
			newDebt("d2", "m1", 2022, "10"),
			paid,
			newDebt("d4", "m2", 2020, "10"),
		} {
			if err := repos.Obligations().SaveObligation(ctx, ob); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	obs, err := store.Reader().Obligations().ListOutstandingObligations(ctx, "m1", domain.InitialDebt)
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Equal(t, "d2", obs[0].ObligationID)
	assert.Equal(t, "d1", obs[1].ObligationID)
}

func TestStore_CreditsOldestFirstAndUniquePerPayment(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p1, p2 := "p1", "p2"

	err := store.Do(ctx, "m1", func(ctx context.Context, repos portsrepo.Repositories) error {
		newer := domain.NewCredit("c-newer", "m1", decimal.NewFromInt(5), &p1, domain.NewAuditFields("u", t0.Add(time.Hour)))
		older := domain.NewCredit("c-older", "m1", decimal.NewFromInt(5), &p2, domain.NewAuditFields("u", t0))
		if err := repos.Credits().SaveCredit(ctx, newer); err != nil {
			return err
		}
		return repos.Credits().SaveCredit(ctx, older)
	})
	require.NoError(t, err)

	credits, err := store.Reader().Credits().ListAvailableCredits(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, credits, 2)
	assert.Equal(t, "c-older", credits[0].CreditID)

	err = store.Do(ctx, "m1", func(ctx context.Context, repos portsrepo.Repositories) error {
		dup := domain.NewCredit("c-dup", "m1", decimal.NewFromInt(1), &p1, domain.NewAuditFields("u", t0))
		return repos.Credits().SaveCredit(ctx, dup)
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestStore_ListPaymentsByMemberPaginates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	err := store.Do(ctx, "m1", func(ctx context.Context, repos portsrepo.Repositories) error {
		for i, id := range []string{"a", "b", "c", "d", "e"} {
			p := domain.Payment{
				PaymentID:   id,
				MemberID:    "m1",
				Amount:      decimal.NewFromInt(10),
				PaymentDate: t0.AddDate(0, 0, i),
				Method:      domain.MethodCash,
				AuditFields: domain.NewAuditFields("u", t0),
			}
			if err := repos.Payments().SavePayment(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	reader := store.Reader().Payments()
	page, next, err := reader.ListPaymentsByMember(ctx, "m1", 2, nil)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []string{"e", "d"}, ids(page))

	page, next, err = reader.ListPaymentsByMember(ctx, "m1", 2, next)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []string{"c", "b"}, ids(page))

	page, next, err = reader.ListPaymentsByMember(ctx, "m1", 2, next)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, []string{"a"}, ids(page))

	bad := "%%%"
	_, _, err = reader.ListPaymentsByMember(ctx, "m1", 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func ids(payments []domain.Payment) []string {
	res := make([]string, len(payments))
	for i, p := range payments {
		res[i] = p.PaymentID
	}
	return res
}
