package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	PaymentID      string          `json:"paymentID"`
	MemberID       string          `json:"memberID"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    time.Time       `json:"paymentDate"`
	Method         string          `json:"method"`
	Reference      *string         `json:"reference"`
	ProofReference *string         `json:"proofReference"`
	ObligationKind *string         `json:"obligationKind"`
	ObligationID   *string         `json:"obligationID"`
	AuditFields
}
