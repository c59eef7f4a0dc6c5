package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/SscSPs/association_backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

type creditService struct {
	BaseService
	uow portsrepo.UnitOfWork
}

// NewCreditService creates the read side of the credit ledger.
func NewCreditService(uow portsrepo.UnitOfWork, opts ...Option) portssvc.CreditSvcFacade {
	o := buildOptions(opts)
	return &creditService{BaseService: o.base(), uow: uow}
}

var _ portssvc.CreditSvcFacade = (*creditService)(nil)

func (s *creditService) ListCredits(ctx context.Context, memberID string, callerID string) ([]dto.CreditWithUsages, error) {
	if err := s.Authorize(ctx, callerID, portssvc.OpViewCredits); err != nil {
		return nil, err
	}
	repo := s.uow.Reader().Credits()
	credits, err := repo.ListCreditsByMember(ctx, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list credits", slog.String("member_id", memberID))
		return nil, err
	}
	res := make([]dto.CreditWithUsages, 0, len(credits))
	for _, c := range credits {
		usages, err := repo.ListUsagesByCredit(ctx, c.CreditID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list credit usages", slog.String("credit_id", c.CreditID))
			return nil, err
		}
		if usages == nil {
			usages = []domain.CreditUsage{}
		}
		res = append(res, dto.CreditWithUsages{Credit: c, Usages: usages})
	}
	return res, nil
}

func (s *creditService) GetMemberBalance(ctx context.Context, memberID string, callerID string) (*dto.MemberBalance, error) {
	if err := s.Authorize(ctx, callerID, portssvc.OpViewCredits); err != nil {
		return nil, err
	}
	reader := s.uow.Reader()
	obligations, err := reader.Obligations().ListObligationsByMember(ctx, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list obligations", slog.String("member_id", memberID))
		return nil, err
	}
	credits, err := reader.Credits().ListAvailableCredits(ctx, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list available credits", slog.String("member_id", memberID))
		return nil, err
	}

	balance := &dto.MemberBalance{
		MemberID:          memberID,
		OutstandingByKind: make(map[domain.ObligationKind]decimal.Decimal, len(domain.AllocationPriority)),
		TotalOutstanding:  decimal.Zero,
		AvailableCredit:   decimal.Zero,
	}
	for _, kind := range domain.AllocationPriority {
		balance.OutstandingByKind[kind] = decimal.Zero
	}
	for i := range obligations {
		remaining := obligations[i].Remaining()
		balance.OutstandingByKind[obligations[i].Kind] = balance.OutstandingByKind[obligations[i].Kind].Add(remaining)
		balance.TotalOutstanding = balance.TotalOutstanding.Add(remaining)
	}
	for _, c := range credits {
		balance.AvailableCredit = balance.AvailableCredit.Add(c.AmountRemaining)
	}
	balance.NetPosition = balance.AvailableCredit.Sub(balance.TotalOutstanding)
	return balance, nil
}
