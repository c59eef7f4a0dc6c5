package repositories

import (
	"context"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
)

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	// FindPaymentByID retrieves one payment. Returns apperrors.ErrNotFound when missing.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByObligation returns every payment linked to the obligation, in settlement order.
	ListPaymentsByObligation(ctx context.Context, ref domain.ObligationRef) ([]domain.Payment, error)

	// ListPaymentsByMember retrieves a page of the member's payments, newest first,
	// using token-based pagination. It returns the payments and a token for the next page.
	ListPaymentsByMember(ctx context.Context, memberID string, limit int, nextToken *string) ([]domain.Payment, *string, error)
}

// PaymentWriter defines write operations for payments.
type PaymentWriter interface {
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdatePayment persists amount, date, method, reference and proof.
	UpdatePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepository combines payment reads and writes.
type PaymentRepository interface {
	PaymentReader
	PaymentWriter
}
