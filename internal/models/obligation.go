package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Obligation is one row of the obligations table. Every kind shares the table;
// year is only set for initial debts and due_date for the other kinds.
type Obligation struct {
	ObligationID    string          `json:"obligationID"`
	Kind            string          `json:"kind"`
	MemberID        string          `json:"memberID"`
	Label           string          `json:"label"`
	Year            *int32          `json:"year"`
	DueDate         *time.Time      `json:"dueDate"`
	AssistanceType  *string         `json:"assistanceType"`
	Category        *string         `json:"category"`
	AmountDue       decimal.Decimal `json:"amountDue"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	AmountRemaining decimal.Decimal `json:"amountRemaining"`
	Status          string          `json:"status"`
	AuditFields
}
