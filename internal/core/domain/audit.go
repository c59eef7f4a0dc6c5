package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditAction names what happened in an audit entry.
type AuditAction string

const (
	AuditPaymentRecorded   AuditAction = "PAYMENT_RECORDED"
	AuditPaymentEdited     AuditAction = "PAYMENT_EDITED"
	AuditCreditCreated     AuditAction = "CREDIT_CREATED"
	AuditObligationCreated AuditAction = "OBLIGATION_CREATED"
)

// AuditEntry is the best-effort "who did what" record sent to the audit log.
type AuditEntry struct {
	EntryID    string          `json:"entryID"`
	ActorID    string          `json:"actorID"`
	Action     AuditAction     `json:"action"`
	MemberID   string          `json:"memberID"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityID"`
	Amount     decimal.Decimal `json:"amount"`
	Details    string          `json:"details"`
	CreatedAt  time.Time       `json:"createdAt"`
}
