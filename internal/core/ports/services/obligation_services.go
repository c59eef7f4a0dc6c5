package services

import (
	"context"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/SscSPs/association_backoffice/internal/dto"
)

// ObligationSvcFacade manages the obligations a member owes against.
type ObligationSvcFacade interface {
	CreateObligation(ctx context.Context, memberID string, req dto.CreateObligationRequest, callerID string) (*domain.Obligation, error)
	GetObligation(ctx context.Context, ref domain.ObligationRef, callerID string) (*domain.Obligation, error)
	ListObligations(ctx context.Context, memberID string, callerID string) ([]domain.Obligation, error)
}
