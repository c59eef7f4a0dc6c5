package services

import (
	"context"
	"io"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Operation names an action checked by the Authorizer.
type Operation string

const (
	OpRecordPayment        Operation = "payment.record"
	OpRecordGeneralPayment Operation = "payment.record_general"
	OpEditPayment          Operation = "payment.edit"
	OpViewPayments         Operation = "payment.view"
	OpViewCredits          Operation = "credit.view"
	OpManageObligations    Operation = "obligation.manage"
	OpViewObligations      Operation = "obligation.view"
	OpUploadAttachment     Operation = "attachment.upload"
)

// IsReadOnly reports whether op never mutates data.
func (op Operation) IsReadOnly() bool {
	switch op {
	case OpViewPayments, OpViewCredits, OpViewObligations:
		return true
	}
	return false
}

// Authorizer decides whether a caller may perform an operation.
// It returns apperrors.ErrForbidden (or ErrUnauthorized) when denied.
type Authorizer interface {
	Authorize(ctx context.Context, callerID string, op Operation) error
}

// AuditLogger receives best-effort notifications of successful mutations.
type AuditLogger interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// AttachmentStore persists an uploaded proof of transfer and returns a stable reference.
type AttachmentStore interface {
	Store(ctx context.Context, filename string, content io.Reader) (string, error)
}

// Notifier is informed of payment outcomes. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, memberID string, event string, properties map[string]any)
}

// AllocationMetrics records engine activity.
type AllocationMetrics interface {
	PaymentRecorded(mode string, amount decimal.Decimal)
	CreditCreated(amount decimal.Decimal)
	CreditApplied(amount decimal.Decimal)
	AllocationFailed(operation string)
}
