package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/SscSPs/association_backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type obligationService struct {
	BaseService
	uow        portsrepo.UnitOfWork
	effects    sideEffects
	categories domain.AssistanceCategories
}

// NewObligationService creates the obligation administration service.
func NewObligationService(uow portsrepo.UnitOfWork, opts ...Option) portssvc.ObligationSvcFacade {
	o := buildOptions(opts)
	return &obligationService{
		BaseService: o.base(),
		uow:         uow,
		effects:     o.effects,
		categories:  o.categories,
	}
}

var _ portssvc.ObligationSvcFacade = (*obligationService)(nil)

func (s *obligationService) CreateObligation(ctx context.Context, memberID string, req dto.CreateObligationRequest, callerID string) (*domain.Obligation, error) {
	if err := s.Authorize(ctx, callerID, portssvc.OpManageObligations); err != nil {
		return nil, err
	}
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(memberID) == "" {
		return nil, fmt.Errorf("%w: memberID is required", apperrors.ErrValidation)
	}
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown obligation kind %q", apperrors.ErrValidation, req.Kind)
	}
	if err := validateAmount("amountDue", req.AmountDue); err != nil {
		return nil, err
	}

	now := s.clock()
	ob := domain.Obligation{
		ObligationID:    uuid.NewString(),
		Kind:            req.Kind,
		MemberID:        memberID,
		Label:           strings.TrimSpace(req.Label),
		AmountDue:       req.AmountDue,
		AmountPaid:      decimal.Zero,
		AmountRemaining: req.AmountDue,
		Status:          domain.StatusPending,
		AuditFields:     domain.NewAuditFields(callerID, now),
	}

	switch req.Kind {
	case domain.InitialDebt:
		if req.Year <= 0 {
			return nil, fmt.Errorf("%w: year is required for an initial debt", apperrors.ErrValidation)
		}
		ob.Year = req.Year
		if ob.Label == "" {
			ob.Label = fmt.Sprintf("Initial debt %d", req.Year)
		}
	default:
		if req.DueDate == nil || req.DueDate.IsZero() {
			return nil, fmt.Errorf("%w: dueDate is required for a %s", apperrors.ErrValidation, req.Kind.Label())
		}
		ob.DueDate = req.DueDate.UTC()
		ob.Year = ob.DueDate.Year()
	}

	if req.Kind == domain.AssistanceCharge {
		if !req.AssistanceType.IsValid() {
			return nil, fmt.Errorf("%w: unknown assistance type %q", apperrors.ErrValidation, req.AssistanceType)
		}
		ob.AssistanceType = req.AssistanceType
		ob.Category = s.categories.CategoryFor(req.AssistanceType)
	} else if req.AssistanceType != "" {
		return nil, fmt.Errorf("%w: assistanceType only applies to assistance charges", apperrors.ErrValidation)
	}
	if ob.Label == "" {
		ob.Label = fmt.Sprintf("%s %s", capitalize(req.Kind.Label()), ob.DueDate.Format("2006-01"))
	}

	err := s.uow.Do(ctx, memberID, func(ctx context.Context, repos portsrepo.Repositories) error {
		return repos.Obligations().SaveObligation(ctx, ob)
	})
	if err != nil {
		return nil, s.operationError(ctx, err, "Failed to create obligation", slog.String("member_id", memberID))
	}

	s.recordAudit(ctx, s.effects.audit, domain.AuditEntry{
		ActorID:    callerID,
		Action:     domain.AuditObligationCreated,
		MemberID:   memberID,
		EntityType: "obligation",
		EntityID:   ob.ObligationID,
		Amount:     ob.AmountDue,
		Details:    fmt.Sprintf("created %s of %s", ob.Kind.Label(), domain.FormatAmount(ob.AmountDue)),
		CreatedAt:  now,
	})
	s.LogInfo(ctx, "Obligation created",
		slog.String("obligation_id", ob.ObligationID),
		slog.String("kind", string(ob.Kind)),
		slog.String("member_id", memberID))
	return &ob, nil
}

func (s *obligationService) GetObligation(ctx context.Context, ref domain.ObligationRef, callerID string) (*domain.Obligation, error) {
	if err := s.Authorize(ctx, callerID, portssvc.OpViewObligations); err != nil {
		return nil, err
	}
	if !ref.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown obligation kind %q", apperrors.ErrValidation, ref.Kind)
	}
	ob, err := s.uow.Reader().Obligations().FindObligationByID(ctx, ref)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find obligation", slog.String("obligation", ref.String()))
		}
		return nil, err
	}
	return ob, nil
}

func (s *obligationService) ListObligations(ctx context.Context, memberID string, callerID string) ([]domain.Obligation, error) {
	if err := s.Authorize(ctx, callerID, portssvc.OpViewObligations); err != nil {
		return nil, err
	}
	obs, err := s.uow.Reader().Obligations().ListObligationsByMember(ctx, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list obligations", slog.String("member_id", memberID))
		return nil, err
	}
	if obs == nil {
		return []domain.Obligation{}, nil
	}
	return obs, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
