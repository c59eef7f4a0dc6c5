package services

import (
	"context"

	"github.com/SscSPs/association_backoffice/internal/dto"
)

// CreditSvcFacade exposes the read side of the credit ledger.
type CreditSvcFacade interface {
	// ListCredits returns every credit of the member with its usage trail.
	ListCredits(ctx context.Context, memberID string, callerID string) ([]dto.CreditWithUsages, error)

	// GetMemberBalance summarises what the member owes and the credit available.
	GetMemberBalance(ctx context.Context, memberID string, callerID string) (*dto.MemberBalance, error)
}
