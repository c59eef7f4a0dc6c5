package services

import (
	"context"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/SscSPs/association_backoffice/internal/dto"
)

// PaymentRecorderSvc records new payments and allocates them.
type PaymentRecorderSvc interface {
	// RecordPayment records a payment against one obligation (or none), applying the
	// member's credits first and turning any excess into a new credit.
	RecordPayment(ctx context.Context, memberID string, req dto.RecordPaymentRequest, callerID string) (*dto.PaymentResult, error)

	// RecordGeneralPayment distributes one payment across every outstanding obligation
	// of the member in priority order.
	RecordGeneralPayment(ctx context.Context, memberID string, req dto.GeneralPaymentRequest, callerID string) (*dto.GeneralPaymentResult, error)
}

// PaymentEditorSvc edits recorded payments.
type PaymentEditorSvc interface {
	// EditPayment updates a payment and recomputes its obligation and credits from scratch.
	EditPayment(ctx context.Context, paymentID string, req dto.EditPaymentRequest, callerID string) (*dto.EditPaymentResult, error)
}

// PaymentReaderSvc defines read operations for payments.
type PaymentReaderSvc interface {
	GetPayment(ctx context.Context, paymentID string, callerID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, memberID string, callerID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResult, error)
}

// PaymentSvcFacade combines all payment-related service interfaces.
type PaymentSvcFacade interface {
	PaymentRecorderSvc
	PaymentEditorSvc
	PaymentReaderSvc
}
