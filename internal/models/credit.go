package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Credit struct {
	CreditID        string          `json:"creditID"`
	MemberID        string          `json:"memberID"`
	Amount          decimal.Decimal `json:"amount"`
	AmountUsed      decimal.Decimal `json:"amountUsed"`
	AmountRemaining decimal.Decimal `json:"amountRemaining"`
	Status          string          `json:"status"`
	PaymentID       *string         `json:"paymentID"`
	AuditFields
}

// CreditUsage rows are append-only.
type CreditUsage struct {
	UsageID        string          `json:"usageID"`
	CreditID       string          `json:"creditID"`
	AmountConsumed decimal.Decimal `json:"amountConsumed"`
	ObligationKind string          `json:"obligationKind"`
	ObligationID   string          `json:"obligationID"`
	Description    string          `json:"description"`
	CreatedAt      time.Time       `json:"createdAt"`
}
