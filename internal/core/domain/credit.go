package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CreditStatus indicates whether a credit can still be consumed.
type CreditStatus string

const (
	CreditAvailable CreditStatus = "AVAILABLE"
	CreditUsed      CreditStatus = "USED"
)

// Credit is a reusable balance created when a payment exceeds what was owed.
type Credit struct {
	CreditID        string          `json:"creditID"` // Primary Key (e.g., UUID)
	MemberID        string          `json:"memberID"`
	Amount          decimal.Decimal `json:"amount"` // Face value
	AmountUsed      decimal.Decimal `json:"amountUsed"`
	AmountRemaining decimal.Decimal `json:"amountRemaining"`
	Status          CreditStatus    `json:"status"`
	PaymentID       *string         `json:"paymentID,omitempty"` // Payment whose excess produced the credit
	AuditFields
}

// NewCredit builds an unused credit of the given amount.
func NewCredit(id, memberID string, amount decimal.Decimal, paymentID *string, audit AuditFields) Credit {
	c := Credit{
		CreditID:        id,
		MemberID:        memberID,
		Amount:          amount,
		AmountUsed:      decimal.Zero,
		AmountRemaining: amount,
		PaymentID:       paymentID,
		AuditFields:     audit,
	}
	c.RecomputeStatus()
	return c
}

// Consume takes up to want from the credit and returns the amount actually taken.
func (c *Credit) Consume(want decimal.Decimal) decimal.Decimal {
	if !want.IsPositive() || !c.AmountRemaining.IsPositive() {
		return decimal.Zero
	}
	taken := MinAmount(c.AmountRemaining, want)
	c.AmountUsed = c.AmountUsed.Add(taken)
	c.AmountRemaining = c.AmountRemaining.Sub(taken)
	c.RecomputeStatus()
	return taken
}

// Resize sets the face value, never below what was already consumed.
func (c *Credit) Resize(amount decimal.Decimal) {
	c.Amount = MaxAmount(amount, c.AmountUsed)
	c.AmountRemaining = c.Amount.Sub(c.AmountUsed)
	c.RecomputeStatus()
}

// RecomputeStatus keeps status = USED iff nothing remains.
func (c *Credit) RecomputeStatus() {
	if c.AmountRemaining.IsPositive() {
		c.Status = CreditAvailable
		return
	}
	c.Status = CreditUsed
}

// CheckInvariant verifies used + remaining == amount and the status rule.
func (c *Credit) CheckInvariant() error {
	if c.AmountUsed.IsNegative() || c.AmountRemaining.IsNegative() {
		return fmt.Errorf("credit %s has a negative amount", c.CreditID)
	}
	if !c.AmountUsed.Add(c.AmountRemaining).Equal(c.Amount) {
		return fmt.Errorf("credit %s: used %s + remaining %s != amount %s", c.CreditID, c.AmountUsed, c.AmountRemaining, c.Amount)
	}
	if (c.Status == CreditUsed) != c.AmountRemaining.IsZero() {
		return fmt.Errorf("credit %s: status %s inconsistent with remaining %s", c.CreditID, c.Status, c.AmountRemaining)
	}
	return nil
}

// CreditUsage is the append-only record of a credit being consumed against an obligation.
type CreditUsage struct {
	UsageID        string          `json:"usageID"`
	CreditID       string          `json:"creditID"`
	AmountConsumed decimal.Decimal `json:"amountConsumed"`
	Obligation     ObligationRef   `json:"obligation"`
	Description    string          `json:"description"`
	CreatedAt      time.Time       `json:"createdAt"`
}
