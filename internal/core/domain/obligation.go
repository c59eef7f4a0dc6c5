package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ObligationKind identifies which of the four debt-like entities an obligation is.
type ObligationKind string

const (
	InitialDebt        ObligationKind = "INITIAL_DEBT"
	MonthlyDue         ObligationKind = "MONTHLY_DUE"
	AssistanceCharge   ObligationKind = "ASSISTANCE_CHARGE"
	StandingObligation ObligationKind = "STANDING_OBLIGATION"
)

// AllocationPriority is the fixed order in which a general payment walks obligation kinds.
var AllocationPriority = []ObligationKind{
	InitialDebt,
	MonthlyDue,
	AssistanceCharge,
	StandingObligation,
}

// IsValid reports whether k is one of the four known kinds.
func (k ObligationKind) IsValid() bool {
	switch k {
	case InitialDebt, MonthlyDue, AssistanceCharge, StandingObligation:
		return true
	}
	return false
}

// Label is the human readable name used in messages and credit-usage descriptions.
func (k ObligationKind) Label() string {
	switch k {
	case InitialDebt:
		return "initial debt"
	case MonthlyDue:
		return "monthly due"
	case AssistanceCharge:
		return "assistance charge"
	case StandingObligation:
		return "standing obligation"
	default:
		return string(k)
	}
}

// ObligationStatus is the settlement state of an obligation.
type ObligationStatus string

const (
	StatusPending       ObligationStatus = "PENDING"
	StatusPartiallyPaid ObligationStatus = "PARTIALLY_PAID"
	StatusPaid          ObligationStatus = "PAID"
	StatusOverdue       ObligationStatus = "OVERDUE"
	// StatusAllocated is only used by assistance charges and is set by the allocation workflow.
	StatusAllocated ObligationStatus = "ALLOCATED"
)

// ObligationRef points at exactly one obligation.
type ObligationRef struct {
	Kind ObligationKind `json:"kind"`
	ID   string         `json:"id"`
}

func (r ObligationRef) String() string {
	return fmt.Sprintf("%s/%s", r.Kind, r.ID)
}

// Obligation is any amount a member owes: an initial debt, a monthly due,
// an assistance charge or a standing obligation.
type Obligation struct {
	ObligationID    string           `json:"obligationID"` // Primary Key (e.g., UUID)
	Kind            ObligationKind   `json:"kind"`
	MemberID        string           `json:"memberID"`
	Label           string           `json:"label"`
	Year            int              `json:"year,omitempty"`    // Ordering key for initial debts
	DueDate         time.Time        `json:"dueDate,omitempty"` // Ordering key for the other kinds (event date for assistance)
	AssistanceType  AssistanceType   `json:"assistanceType,omitempty"`
	Category        string           `json:"category,omitempty"`
	AmountDue       decimal.Decimal  `json:"amountDue"`
	AmountPaid      decimal.Decimal  `json:"amountPaid"`
	AmountRemaining decimal.Decimal  `json:"amountRemaining"`
	Status          ObligationStatus `json:"status"`
	AuditFields
}

// Ref returns the obligation's reference.
func (o *Obligation) Ref() ObligationRef {
	return ObligationRef{Kind: o.Kind, ID: o.ObligationID}
}

// Remaining is the amount still owed, never negative.
func (o *Obligation) Remaining() decimal.Decimal {
	return ClampZero(o.AmountRemaining)
}

// ApplyAmount settles x against the obligation: paid grows by x, remaining shrinks
// by x and is clamped at zero, then the status is re-derived.
func (o *Obligation) ApplyAmount(x decimal.Decimal) {
	if !x.IsPositive() {
		return
	}
	o.AmountPaid = o.AmountPaid.Add(x)
	o.AmountRemaining = ClampZero(o.AmountRemaining.Sub(x))
	if o.AmountPaid.GreaterThan(o.AmountDue) {
		o.AmountPaid = o.AmountDue
	}
	o.RecomputeStatus()
}

// ResetPaid replaces the paid total with a value derived from the full set of
// payments and credit usages, then re-derives remaining and status.
func (o *Obligation) ResetPaid(totalPaid decimal.Decimal) {
	o.AmountPaid = MinAmount(ClampZero(totalPaid), o.AmountDue)
	o.AmountRemaining = ClampZero(o.AmountDue.Sub(o.AmountPaid))
	o.RecomputeStatus()
}

// RecomputeStatus derives the status from the current amounts.
// An externally set OVERDUE is never downgraded to PENDING, and an ALLOCATED
// assistance charge keeps its state until it is fully paid.
func (o *Obligation) RecomputeStatus() {
	if o.Kind == AssistanceCharge {
		switch {
		case !o.AmountRemaining.IsPositive():
			o.Status = StatusPaid
		case o.Status == StatusPaid || o.Status == "":
			o.Status = StatusPending
		}
		return
	}

	switch {
	case !o.AmountRemaining.IsPositive():
		o.Status = StatusPaid
	case o.AmountPaid.IsPositive():
		o.Status = StatusPartiallyPaid
	case o.Status == StatusOverdue:
		// still owing, flag set by the scheduler
	default:
		o.Status = StatusPending
	}
}

// IsOutstanding reports whether a general payment may be allocated to o.
func (o *Obligation) IsOutstanding() bool {
	if !o.Remaining().IsPositive() {
		return false
	}
	switch o.Kind {
	case InitialDebt:
		return true
	case AssistanceCharge:
		return o.Status == StatusPending
	default:
		return o.Status == StatusPending || o.Status == StatusPartiallyPaid || o.Status == StatusOverdue
	}
}

// ComesBefore orders obligations of the same kind oldest first; creation time and
// id break ties so the order is fully deterministic.
func (o *Obligation) ComesBefore(other *Obligation) bool {
	if o.Kind == InitialDebt && o.Year != other.Year {
		return o.Year < other.Year
	}
	if o.Kind != InitialDebt && !o.DueDate.Equal(other.DueDate) {
		return o.DueDate.Before(other.DueDate)
	}
	if !o.CreatedAt.Equal(other.CreatedAt) {
		return o.CreatedAt.Before(other.CreatedAt)
	}
	return o.ObligationID < other.ObligationID
}

// CheckInvariant verifies paid + remaining == due with both non-negative.
func (o *Obligation) CheckInvariant() error {
	if o.AmountPaid.IsNegative() || o.AmountRemaining.IsNegative() {
		return fmt.Errorf("obligation %s has a negative amount (paid %s, remaining %s)", o.ObligationID, o.AmountPaid, o.AmountRemaining)
	}
	if !o.AmountPaid.Add(o.AmountRemaining).Equal(o.AmountDue) {
		return fmt.Errorf("obligation %s: paid %s + remaining %s != due %s", o.ObligationID, o.AmountPaid, o.AmountRemaining, o.AmountDue)
	}
	return nil
}
