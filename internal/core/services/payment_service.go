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

// Modes reported to the metrics sink.
const (
	modeTargeted = "targeted"
	modeUnlinked = "unlinked"
	modeGeneral  = "general"
	modeEdit     = "edit"
)

// Events sent to the notifier.
const (
	EventPaymentRecorded = "payment_recorded"
	EventPaymentEdited   = "payment_edited"
	EventCreditCreated   = "credit_created"
)

const defaultPageSize = 20

// paymentService records, distributes, edits and reads payments.
type paymentService struct {
	BaseService
	uow     portsrepo.UnitOfWork
	effects sideEffects
}

// NewPaymentService creates the payment engine on top of a unit of work.
func NewPaymentService(uow portsrepo.UnitOfWork, opts ...Option) portssvc.PaymentSvcFacade {
	o := buildOptions(opts)
	return &paymentService{
		BaseService: o.base(),
		uow:         uow,
		effects:     o.effects,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment implements portssvc.PaymentRecorderSvc.
func (s *paymentService) RecordPayment(ctx context.Context, memberID string, req dto.RecordPaymentRequest, callerID string) (*dto.PaymentResult, error) {
	if err := s.Authorize(ctx, callerID, portssvc.OpRecordPayment); err != nil {
		return nil, err
	}
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if err := validateTender(memberID, req.Amount, req.Method, req.ProofReference); err != nil {
		return nil, err
	}
	target := req.Target()
	if target != nil && !target.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown obligation kind %q", apperrors.ErrValidation, target.Kind)
	}

	now := s.clock()
	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = now
	}
	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		MemberID:       memberID,
		Amount:         req.Amount,
		PaymentDate:    paymentDate,
		Method:         req.Method,
		Reference:      strings.TrimSpace(req.Reference),
		ProofReference: strings.TrimSpace(req.ProofReference),
		Obligation:     target,
		AuditFields:    domain.NewAuditFields(callerID, now),
	}

	result := &dto.PaymentResult{
		CreditsApplied:         decimal.Zero,
		AmountApplied:          decimal.Zero,
		Excess:                 decimal.Zero,
		AbsorbedByInitialDebts: decimal.Zero,
	}
	var alloc *allocator

	err := s.uow.Do(ctx, memberID, func(ctx context.Context, repos portsrepo.Repositories) error {
		alloc = newAllocator(repos, memberID, callerID, now)
		excess := payment.Amount

		if target != nil {
			ob, err := repos.Obligations().FindObligationByID(ctx, *target)
			if err != nil {
				return err
			}
			if ob.MemberID != memberID {
				return fmt.Errorf("%w: obligation does not belong to this member", apperrors.ErrValidation)
			}
			fromCredits, fromFunds, err := alloc.settle(ctx, ob, payment.Amount)
			if err != nil {
				return err
			}
			result.CreditsApplied = fromCredits
			result.AmountApplied = fromFunds
			excess = payment.Amount.Sub(fromFunds)
			result.Obligation = ob
		}

		if err := repos.Payments().SavePayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}

		if excess.IsPositive() {
			result.Excess = excess
			credit, err := alloc.createCredit(ctx, excess, payment.PaymentID)
			if err != nil {
				return err
			}
			absorbed, err := alloc.sweepInitialDebts(ctx)
			if err != nil {
				return err
			}
			result.AbsorbedByInitialDebts = absorbed
			if result.Credit, err = alloc.reloadCredit(ctx, credit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.effects.metrics.AllocationFailed("record_payment")
		return nil, s.operationError(ctx, err, "Failed to record payment", slog.String("member_id", memberID))
	}

	result.Payment = payment
	result.Message = recordedMessage(payment.Amount, result.Excess, result.AbsorbedByInitialDebts)

	mode := modeUnlinked
	if target != nil {
		mode = modeTargeted
	}
	s.afterAllocation(ctx, alloc, mode, []domain.Payment{payment})
	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("member_id", memberID),
		slog.String("amount", domain.FormatAmount(payment.Amount)))
	return result, nil
}

// GetPayment implements portssvc.PaymentReaderSvc.
func (s *paymentService) GetPayment(ctx context.Context, paymentID string, callerID string) (*domain.Payment, error) {
	if err := s.Authorize(ctx, callerID, portssvc.OpViewPayments); err != nil {
		return nil, err
	}
	payment, err := s.uow.Reader().Payments().FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

// ListPayments implements portssvc.PaymentReaderSvc.
func (s *paymentService) ListPayments(ctx context.Context, memberID string, callerID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResult, error) {
	if err := s.Authorize(ctx, callerID, portssvc.OpViewPayments); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	payments, next, err := s.uow.Reader().Payments().ListPaymentsByMember(ctx, memberID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("member_id", memberID))
		return nil, err
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return &dto.ListPaymentsResult{Payments: payments, NextToken: next}, nil
}

// operationError logs unexpected failures and passes caller-facing ones through untouched.
func (s *BaseService) operationError(ctx context.Context, err error, msg string, keyvals ...any) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrForbidden),
		errors.Is(err, apperrors.ErrUnauthorized):
		s.LogDebug(ctx, msg, append([]any{slog.String("reason", err.Error())}, keyvals...)...)
		return err
	}
	s.LogError(ctx, err, msg, keyvals...)
	return fmt.Errorf("%s: %w", strings.ToLower(msg), err)
}

// afterAllocation reports a committed allocation to metrics, the audit log and the notifier.
func (s *paymentService) afterAllocation(ctx context.Context, alloc *allocator, mode string, payments []domain.Payment) {
	action, verb, event := domain.AuditPaymentRecorded, "created", EventPaymentRecorded
	if mode == modeEdit {
		action, verb, event = domain.AuditPaymentEdited, "edited", EventPaymentEdited
	}
	total := decimal.Zero
	entries := make([]domain.AuditEntry, 0, len(payments)+len(alloc.createdCredits))
	for _, p := range payments {
		total = total.Add(p.Amount)
		details := "unlinked"
		if p.Obligation != nil {
			details = p.Obligation.String()
		}
		entries = append(entries, domain.AuditEntry{
			ActorID:    alloc.actorID,
			Action:     action,
			MemberID:   alloc.memberID,
			EntityType: "payment",
			EntityID:   p.PaymentID,
			Amount:     p.Amount,
			Details:    fmt.Sprintf("%s payment of %s (%s, %s)", verb, domain.FormatAmount(p.Amount), p.Method, details),
			CreatedAt:  alloc.now,
		})
	}
	for _, c := range alloc.createdCredits {
		entries = append(entries, domain.AuditEntry{
			ActorID:    alloc.actorID,
			Action:     domain.AuditCreditCreated,
			MemberID:   alloc.memberID,
			EntityType: "credit",
			EntityID:   c.CreditID,
			Amount:     c.Amount,
			Details:    fmt.Sprintf("created credit of %s", domain.FormatAmount(c.Amount)),
			CreatedAt:  alloc.now,
		})
		s.effects.metrics.CreditCreated(c.Amount)
	}
	if mode != modeEdit {
		s.effects.metrics.PaymentRecorded(mode, total)
	}
	if alloc.creditsApplied.IsPositive() {
		s.effects.metrics.CreditApplied(alloc.creditsApplied)
	}
	s.recordAudit(ctx, s.effects.audit, entries...)

	s.notify(ctx, s.effects.notifier, alloc.memberID, event, map[string]any{
		"mode":            mode,
		"amount":          total.InexactFloat64(),
		"payments":        len(payments),
		"credits_created": len(alloc.createdCredits),
		"credits_applied": alloc.creditsApplied.InexactFloat64(),
	})
	for _, c := range alloc.createdCredits {
		s.notify(ctx, s.effects.notifier, alloc.memberID, EventCreditCreated, map[string]any{
			"credit_id": c.CreditID,
			"amount":    c.Amount.InexactFloat64(),
		})
	}
}

func recordedMessage(amount, excess, absorbed decimal.Decimal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Payment of %s recorded.", domain.FormatAmount(amount))
	if excess.IsPositive() {
		fmt.Fprintf(&b, " A credit of %s was created from the excess.", domain.FormatAmount(excess))
		if absorbed.IsPositive() {
			fmt.Fprintf(&b, " %s of it was applied to outstanding initial debts.", domain.FormatAmount(absorbed))
		}
	}
	return b.String()
}
