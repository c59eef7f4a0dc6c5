package repositories

import (
	"context"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditReader defines read operations for the credit ledger.
type CreditReader interface {
	// ListAvailableCredits returns the member's AVAILABLE credits with a positive
	// remaining amount, oldest created first.
	ListAvailableCredits(ctx context.Context, memberID string) ([]domain.Credit, error)

	// ListCreditsByMember returns every credit of the member, oldest first.
	ListCreditsByMember(ctx context.Context, memberID string) ([]domain.Credit, error)

	// FindCreditByID retrieves one credit. Returns apperrors.ErrNotFound when missing.
	FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error)

	// FindCreditByPaymentID returns the credit produced by a payment, or apperrors.ErrNotFound.
	FindCreditByPaymentID(ctx context.Context, paymentID string) (*domain.Credit, error)

	// ListUsagesByCredit returns the consumption records of a credit, oldest first.
	ListUsagesByCredit(ctx context.Context, creditID string) ([]domain.CreditUsage, error)

	// SumUsagesByObligation returns the total credit consumed against one obligation.
	SumUsagesByObligation(ctx context.Context, ref domain.ObligationRef) (decimal.Decimal, error)
}

// CreditWriter defines write operations for the credit ledger.
type CreditWriter interface {
	SaveCredit(ctx context.Context, credit domain.Credit) error
	UpdateCredit(ctx context.Context, credit domain.Credit) error

	// DeleteCredit removes a credit that was never consumed.
	DeleteCredit(ctx context.Context, creditID string) error

	// SaveCreditUsage appends a consumption record. Usages are never updated or deleted.
	SaveCreditUsage(ctx context.Context, usage domain.CreditUsage) error
}

// CreditRepository combines credit ledger reads and writes.
type CreditRepository interface {
	CreditReader
	CreditWriter
}
