package repositories

import (
	"context"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
)

// ObligationReader defines read operations for obligations.
type ObligationReader interface {
	// FindObligationByID retrieves one obligation. Returns apperrors.ErrNotFound when missing.
	FindObligationByID(ctx context.Context, ref domain.ObligationRef) (*domain.Obligation, error)

	// ListOutstandingObligations returns the member's obligations of the given kind that a
	// general payment may settle, ordered oldest first (see domain.Obligation.ComesBefore).
	ListOutstandingObligations(ctx context.Context, memberID string, kind domain.ObligationKind) ([]domain.Obligation, error)

	// ListObligationsByMember returns every obligation of the member, grouped by kind then oldest first.
	ListObligationsByMember(ctx context.Context, memberID string) ([]domain.Obligation, error)
}

// ObligationWriter defines write operations for obligations.
type ObligationWriter interface {
	// SaveObligation inserts a new obligation.
	SaveObligation(ctx context.Context, obligation domain.Obligation) error

	// UpdateObligationAmounts persists paid, remaining and status.
	UpdateObligationAmounts(ctx context.Context, obligation domain.Obligation) error
}

// ObligationRepository combines obligation reads and writes.
type ObligationRepository interface {
	ObligationReader
	ObligationWriter
}
