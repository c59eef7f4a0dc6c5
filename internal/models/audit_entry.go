package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditEntry is one row of audit_log.
type AuditEntry struct {
	EntryID    string          `json:"entryID"`
	ActorID    string          `json:"actorID"`
	Action     string          `json:"action"`
	MemberID   string          `json:"memberID"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityID"`
	Amount     decimal.Decimal `json:"amount"`
	Details    string          `json:"details"`
	CreatedAt  time.Time       `json:"createdAt"`
}
