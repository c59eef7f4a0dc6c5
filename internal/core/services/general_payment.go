package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/SscSPs/association_backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordGeneralPayment implements portssvc.PaymentRecorderSvc.
//
// Outstanding obligations are walked in domain.AllocationPriority order, oldest first
// within a kind. Each one is first offered the member's credits, then the remaining
// funds; every obligation that receives funds gets its own payment row. Funds left
// after the walk are recorded as an unlinked payment whose amount becomes a credit.
func (s *paymentService) RecordGeneralPayment(ctx context.Context, memberID string, req dto.GeneralPaymentRequest, callerID string) (*dto.GeneralPaymentResult, error) {
	if err := s.Authorize(ctx, callerID, portssvc.OpRecordGeneralPayment); err != nil {
		return nil, err
	}
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if err := validateTender(memberID, req.Amount, req.Method, req.ProofReference); err != nil {
		return nil, err
	}

	now := s.clock()
	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = now
	}
	newPayment := func(amount decimal.Decimal, ref *domain.ObligationRef) domain.Payment {
		return domain.Payment{
			PaymentID:      uuid.NewString(),
			MemberID:       memberID,
			Amount:         amount,
			PaymentDate:    paymentDate,
			Method:         req.Method,
			Reference:      strings.TrimSpace(req.Reference),
			ProofReference: strings.TrimSpace(req.ProofReference),
			Obligation:     ref,
			AuditFields:    domain.NewAuditFields(callerID, now),
		}
	}

	result := &dto.GeneralPaymentResult{
		Payments:               []domain.Payment{},
		CreditsApplied:         decimal.Zero,
		Excess:                 decimal.Zero,
		AbsorbedByInitialDebts: decimal.Zero,
	}
	var alloc *allocator
	covered := 0

	err := s.uow.Do(ctx, memberID, func(ctx context.Context, repos portsrepo.Repositories) error {
		alloc = newAllocator(repos, memberID, callerID, now)
		result.Payments = result.Payments[:0]
		covered = 0

		outstanding, err := collectOutstanding(ctx, repos, memberID)
		if err != nil {
			return err
		}

		funds := req.Amount
		for i := range outstanding {
			if !funds.IsPositive() {
				break
			}
			ob := &outstanding[i]
			fromCredits, fromFunds, err := alloc.settle(ctx, ob, funds)
			if err != nil {
				return err
			}
			if fromCredits.IsPositive() || fromFunds.IsPositive() {
				covered++
			}
			if !fromFunds.IsPositive() {
				// fully covered by credit
				continue
			}
			ref := ob.Ref()
			p := newPayment(fromFunds, &ref)
			if err := repos.Payments().SavePayment(ctx, p); err != nil {
				return fmt.Errorf("failed to save payment: %w", err)
			}
			result.Payments = append(result.Payments, p)
			funds = funds.Sub(fromFunds)
		}

		if funds.IsPositive() {
			result.Excess = funds
			p := newPayment(funds, nil)
			if err := repos.Payments().SavePayment(ctx, p); err != nil {
				return fmt.Errorf("failed to save payment: %w", err)
			}
			result.Payments = append(result.Payments, p)

			credit, err := alloc.createCredit(ctx, funds, p.PaymentID)
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
		s.effects.metrics.AllocationFailed("record_general_payment")
		return nil, s.operationError(ctx, err, "Failed to record general payment", slog.String("member_id", memberID))
	}

	result.Obligations = alloc.touchedObligations()
	result.CreditsApplied = alloc.creditsApplied
	result.Message = generalMessage(req.Amount, covered, result.Excess, result.AbsorbedByInitialDebts)

	s.afterAllocation(ctx, alloc, modeGeneral, result.Payments)
	s.LogInfo(ctx, "General payment distributed",
		slog.String("member_id", memberID),
		slog.String("amount", domain.FormatAmount(req.Amount)),
		slog.Int("obligations_covered", covered))
	return result, nil
}

// collectOutstanding returns the member's outstanding obligations in allocation order.
func collectOutstanding(ctx context.Context, repos portsrepo.Repositories, memberID string) ([]domain.Obligation, error) {
	var all []domain.Obligation
	for _, kind := range domain.AllocationPriority {
		obs, err := repos.Obligations().ListOutstandingObligations(ctx, memberID, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to list outstanding %s: %w", kind.Label(), err)
		}
		all = append(all, obs...)
	}
	return all, nil
}

func generalMessage(amount decimal.Decimal, covered int, excess, absorbed decimal.Decimal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Payment of %s recorded across %d obligation(s).", domain.FormatAmount(amount), covered)
	if excess.IsPositive() {
		fmt.Fprintf(&b, " The excess of %s became a credit.", domain.FormatAmount(excess))
		if absorbed.IsPositive() {
			fmt.Fprintf(&b, " %s of it was applied to outstanding initial debts.", domain.FormatAmount(absorbed))
		}
	}
	return b.String()
}
