package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestObligation_ApplyAmount(t *testing.T) {
	tests := []struct {
		name          string
		kind          domain.ObligationKind
		status        domain.ObligationStatus
		due, paid     string
		apply         string
		wantPaid      string
		wantRemaining string
		wantStatus    domain.ObligationStatus
	}{
		{
			name: "partial payment on pending debt",
			kind: domain.InitialDebt, status: domain.StatusPending,
			due: "100", paid: "0", apply: "60",
			wantPaid: "60", wantRemaining: "40", wantStatus: domain.StatusPartiallyPaid,
		},
		{
			name: "overpayment clamps at due",
			kind: domain.InitialDebt, status: domain.StatusPartiallyPaid,
			due: "100", paid: "60", apply: "70",
			wantPaid: "100", wantRemaining: "0", wantStatus: domain.StatusPaid,
		},
		{
			name: "overdue due becomes partially paid",
			kind: domain.MonthlyDue, status: domain.StatusOverdue,
			due: "15", paid: "0", apply: "5",
			wantPaid: "5", wantRemaining: "10", wantStatus: domain.StatusPartiallyPaid,
		},
		{
			name: "assistance charge stays pending until settled",
			kind: domain.AssistanceCharge, status: domain.StatusPending,
			due: "30", paid: "0", apply: "10",
			wantPaid: "10", wantRemaining: "20", wantStatus: domain.StatusPending,
		},
		{
			name: "allocated assistance charge keeps its state while owing",
			kind: domain.AssistanceCharge, status: domain.StatusAllocated,
			due: "30", paid: "0", apply: "10",
			wantPaid: "10", wantRemaining: "20", wantStatus: domain.StatusAllocated,
		},
		{
			name: "zero amount is a no-op",
			kind: domain.StandingObligation, status: domain.StatusPending,
			due: "50", paid: "0", apply: "0",
			wantPaid: "0", wantRemaining: "50", wantStatus: domain.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := domain.Obligation{
				ObligationID:    "obl_1",
				Kind:            tt.kind,
				Status:          tt.status,
				AmountDue:       dec(tt.due),
				AmountPaid:      dec(tt.paid),
				AmountRemaining: dec(tt.due).Sub(dec(tt.paid)),
			}
			o.ApplyAmount(dec(tt.apply))
			assert.True(t, dec(tt.wantPaid).Equal(o.AmountPaid), "paid: %s", o.AmountPaid)
			assert.True(t, dec(tt.wantRemaining).Equal(o.AmountRemaining), "remaining: %s", o.AmountRemaining)
			assert.Equal(t, tt.wantStatus, o.Status)
			assert.NoError(t, o.CheckInvariant())
		})
	}
}

func TestObligation_ResetPaid(t *testing.T) {
	o := domain.Obligation{
		ObligationID: "obl_1",
		Kind:         domain.MonthlyDue,
		AmountDue:    dec("100"),
		AmountPaid:   dec("100"),
		Status:       domain.StatusPaid,
	}

	o.ResetPaid(dec("130"))
	assert.True(t, dec("100").Equal(o.AmountPaid))
	assert.True(t, o.AmountRemaining.IsZero())
	assert.Equal(t, domain.StatusPaid, o.Status)

	o.ResetPaid(dec("35"))
	assert.True(t, dec("65").Equal(o.AmountRemaining))
	assert.Equal(t, domain.StatusPartiallyPaid, o.Status)

	o.ResetPaid(decimal.Zero)
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.NoError(t, o.CheckInvariant())
}

func TestObligation_IsOutstanding(t *testing.T) {
	tests := []struct {
		name   string
		kind   domain.ObligationKind
		status domain.ObligationStatus
		remain string
		want   bool
	}{
		{"initial debt with any status", domain.InitialDebt, domain.StatusPaid, "10", true},
		{"initial debt settled", domain.InitialDebt, domain.StatusPaid, "0", false},
		{"monthly due overdue", domain.MonthlyDue, domain.StatusOverdue, "10", true},
		{"assistance allocated", domain.AssistanceCharge, domain.StatusAllocated, "10", false},
		{"assistance pending", domain.AssistanceCharge, domain.StatusPending, "10", true},
		{"standing paid", domain.StandingObligation, domain.StatusPaid, "10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := domain.Obligation{Kind: tt.kind, Status: tt.status, AmountRemaining: dec(tt.remain)}
			assert.Equal(t, tt.want, o.IsOutstanding())
		})
	}
}

func TestObligation_ComesBefore(t *testing.T) {
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := jan.AddDate(0, 1, 0)

	d2023 := domain.Obligation{ObligationID: "b", Kind: domain.InitialDebt, Year: 2023}
	d2024 := domain.Obligation{ObligationID: "a", Kind: domain.InitialDebt, Year: 2024}
	assert.True(t, d2023.ComesBefore(&d2024))
	assert.False(t, d2024.ComesBefore(&d2023))

	m1 := domain.Obligation{ObligationID: "z", Kind: domain.MonthlyDue, DueDate: jan}
	m2 := domain.Obligation{ObligationID: "a", Kind: domain.MonthlyDue, DueDate: feb}
	assert.True(t, m1.ComesBefore(&m2))

	tie1 := domain.Obligation{ObligationID: "a", Kind: domain.MonthlyDue, DueDate: jan}
	tie2 := domain.Obligation{ObligationID: "b", Kind: domain.MonthlyDue, DueDate: jan}
	assert.True(t, tie1.ComesBefore(&tie2))
}
