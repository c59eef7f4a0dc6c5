package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the external channel through which money was received.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodCheck        PaymentMethod = "CHECK"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCard         PaymentMethod = "CARD"
)

// IsValid reports whether m is a known method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCheck, MethodBankTransfer, MethodCard:
		return true
	}
	return false
}

// RequiresProof reports whether a payment made with m must carry a proof attachment.
func (m PaymentMethod) RequiresProof() bool {
	return m == MethodBankTransfer
}

// Payment records money tendered by a member, optionally earmarked for one obligation.
type Payment struct {
	PaymentID      string          `json:"paymentID"` // Primary Key (e.g., UUID)
	MemberID       string          `json:"memberID"`
	Amount         decimal.Decimal `json:"amount"` // Full tendered amount, including any part that became credit
	PaymentDate    time.Time       `json:"paymentDate"`
	Method         PaymentMethod   `json:"method"`
	Reference      string          `json:"reference"`      // Nullable (check number, transfer reference...)
	ProofReference string          `json:"proofReference"` // Attachment reference, required for bank transfers
	Obligation     *ObligationRef  `json:"obligation,omitempty"`
	AuditFields
}

// IsValid reports whether the payment counts toward its obligation.
func (p *Payment) IsValid() bool {
	if p.Method.RequiresProof() && strings.TrimSpace(p.ProofReference) == "" {
		return false
	}
	return p.Amount.IsPositive()
}

// SettlesBefore orders payments chronologically; used to attribute amounts when
// recomputing an obligation from its full payment set.
func (p *Payment) SettlesBefore(other *Payment) bool {
	if !p.PaymentDate.Equal(other.PaymentDate) {
		return p.PaymentDate.Before(other.PaymentDate)
	}
	if !p.CreatedAt.Equal(other.CreatedAt) {
		return p.CreatedAt.Before(other.CreatedAt)
	}
	return p.PaymentID < other.PaymentID
}
