package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/SscSPs/association_backoffice/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelObligation_NullableColumns(t *testing.T) {
	debt := domain.Obligation{ObligationID: "d1", Kind: domain.InitialDebt, Year: 2023, AmountDue: decimal.NewFromInt(10)}
	m := mapping.ToModelObligation(debt)
	require.NotNil(t, m.Year)
	assert.EqualValues(t, 2023, *m.Year)
	assert.Nil(t, m.DueDate)
	assert.Nil(t, m.AssistanceType)
	assert.Nil(t, m.Category)

	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	charge := domain.Obligation{
		ObligationID:   "a1",
		Kind:           domain.AssistanceCharge,
		DueDate:        due,
		AssistanceType: domain.AssistanceBirth,
		Category:       "BIRTH_ASSISTANCE",
	}
	m = mapping.ToModelObligation(charge)
	assert.Nil(t, m.Year)
	require.NotNil(t, m.DueDate)
	assert.True(t, due.Equal(*m.DueDate))

	back := mapping.ToDomainObligation(m)
	assert.Equal(t, charge.Ref(), back.Ref())
	assert.Equal(t, domain.AssistanceBirth, back.AssistanceType)
	assert.Equal(t, "BIRTH_ASSISTANCE", back.Category)
	assert.Zero(t, back.Year)
}

func TestToModelPayment_UnlinkedPaymentHasNoObligationColumns(t *testing.T) {
	m := mapping.ToModelPayment(domain.Payment{PaymentID: "p1", Method: domain.MethodCash})
	assert.Nil(t, m.ObligationKind)
	assert.Nil(t, m.ObligationID)
	assert.Nil(t, m.Reference)
	assert.Nil(t, mapping.ToDomainPayment(m).Obligation)

	ref := domain.ObligationRef{Kind: domain.MonthlyDue, ID: "m1"}
	linked := mapping.ToDomainPayment(mapping.ToModelPayment(domain.Payment{PaymentID: "p2", Obligation: &ref, Reference: "CHK-9"}))
	require.NotNil(t, linked.Obligation)
	assert.Equal(t, ref, *linked.Obligation)
	assert.Equal(t, "CHK-9", linked.Reference)
}
