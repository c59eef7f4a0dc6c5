package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/SscSPs/association_backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

// Attribution is how much of one payment settled its obligation and how much is excess.
type Attribution struct {
	Applied decimal.Decimal
	Excess  decimal.Decimal
}

// AttributePayments derives an obligation's paid total from scratch.
//
// Credit already consumed against the obligation is counted first. Valid payments
// then fill what is left of amountDue in settlement order; whatever a payment could
// not place is its excess. Invalid payments (a bank transfer without proof) neither
// settle nor produce excess. The result depends only on its inputs, so recomputing
// after any sequence of edits gives the same answer as recording the final amounts.
func AttributePayments(amountDue, creditUsed decimal.Decimal, payments []domain.Payment) (decimal.Decimal, map[string]Attribution) {
	ordered := make([]domain.Payment, len(payments))
	copy(ordered, payments)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].SettlesBefore(&ordered[j]) })

	paid := domain.MinAmount(domain.ClampZero(creditUsed), amountDue)
	budget := amountDue.Sub(paid)
	attributions := make(map[string]Attribution, len(ordered))
	for i := range ordered {
		p := &ordered[i]
		if !p.IsValid() {
			attributions[p.PaymentID] = Attribution{Applied: decimal.Zero, Excess: decimal.Zero}
			continue
		}
		applied := domain.MinAmount(p.Amount, budget)
		budget = budget.Sub(applied)
		paid = paid.Add(applied)
		attributions[p.PaymentID] = Attribution{Applied: applied, Excess: p.Amount.Sub(applied)}
	}
	return paid, attributions
}

// EditPayment implements portssvc.PaymentEditorSvc.
func (s *paymentService) EditPayment(ctx context.Context, paymentID string, req dto.EditPaymentRequest, callerID string) (*dto.EditPaymentResult, error) {
	if err := s.Authorize(ctx, callerID, portssvc.OpEditPayment); err != nil {
		return nil, err
	}
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if err := validateAmount("amount", req.Amount); err != nil {
		return nil, err
	}
	if !req.Method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.Method)
	}

	// The member is needed to take the allocation lock; the row is re-read under it.
	current, err := s.uow.Reader().Payments().FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, s.operationError(ctx, err, "Failed to load payment", slog.String("payment_id", paymentID))
	}
	memberID := current.MemberID

	now := s.clock()
	result := &dto.EditPaymentResult{}
	var alloc *allocator

	err = s.uow.Do(ctx, memberID, func(ctx context.Context, repos portsrepo.Repositories) error {
		alloc = newAllocator(repos, memberID, callerID, now)

		payment, err := repos.Payments().FindPaymentByID(ctx, paymentID)
		if err != nil {
			return err
		}
		payment.Amount = req.Amount
		payment.Method = req.Method
		if !req.PaymentDate.IsZero() {
			payment.PaymentDate = req.PaymentDate
		}
		if req.Reference != nil {
			payment.Reference = strings.TrimSpace(*req.Reference)
		}
		if req.ProofReference != nil {
			payment.ProofReference = strings.TrimSpace(*req.ProofReference)
		}
		if payment.Method.RequiresProof() && payment.ProofReference == "" {
			return fmt.Errorf("%w: a proof of transfer is required for bank transfers", apperrors.ErrValidation)
		}
		payment.Touch(callerID, now)
		if err := repos.Payments().UpdatePayment(ctx, *payment); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		result.Payment = *payment

		grew := false
		if payment.Obligation == nil {
			excess := decimal.Zero
			if payment.IsValid() {
				excess = payment.Amount
			}
			credit, more, err := alloc.reconcileCredit(ctx, payment.PaymentID, excess)
			if err != nil {
				return err
			}
			result.Credit, grew = credit, more
		} else {
			ob, credit, more, err := s.recomputeObligation(ctx, alloc, *payment.Obligation, payment.PaymentID)
			if err != nil {
				return err
			}
			result.Obligation, result.Credit, grew = ob, credit, more
		}

		if grew {
			if _, err := alloc.sweepInitialDebts(ctx); err != nil {
				return err
			}
			if result.Credit, err = alloc.reloadCredit(ctx, result.Credit); err != nil {
				return err
			}
			if result.Obligation != nil {
				if fresh, ok := alloc.touched[result.Obligation.Ref()]; ok {
					result.Obligation = &fresh
				}
			}
		}
		return nil
	})
	if err != nil {
		s.effects.metrics.AllocationFailed("edit_payment")
		return nil, s.operationError(ctx, err, "Failed to edit payment", slog.String("payment_id", paymentID))
	}

	result.Message = fmt.Sprintf("Payment updated to %s.", domain.FormatAmount(result.Payment.Amount))
	s.afterAllocation(ctx, alloc, modeEdit, []domain.Payment{result.Payment})
	s.LogInfo(ctx, "Payment edited",
		slog.String("payment_id", paymentID),
		slog.String("member_id", memberID),
		slog.String("amount", domain.FormatAmount(result.Payment.Amount)))
	return result, nil
}

// recomputeObligation rebuilds the obligation's paid total from every payment linked to
// it and brings each of those payments' credits in line with its new excess. It returns
// the obligation, the credit of editedID, and whether any credit grew.
func (s *paymentService) recomputeObligation(ctx context.Context, alloc *allocator, ref domain.ObligationRef, editedID string) (*domain.Obligation, *domain.Credit, bool, error) {
	repos := alloc.repos
	ob, err := repos.Obligations().FindObligationByID(ctx, ref)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to load obligation %s: %w", ref, err)
	}
	payments, err := repos.Payments().ListPaymentsByObligation(ctx, ref)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to list payments of obligation %s: %w", ref, err)
	}
	creditUsed, err := repos.Credits().SumUsagesByObligation(ctx, ref)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to sum credit usage of obligation %s: %w", ref, err)
	}

	paid, attributions := AttributePayments(ob.AmountDue, creditUsed, payments)
	if !paid.Equal(ob.AmountPaid) {
		ob.ResetPaid(paid)
		if err := alloc.saveObligation(ctx, ob); err != nil {
			return nil, nil, false, err
		}
	}

	var edited *domain.Credit
	grew := false
	for _, p := range payments {
		credit, more, err := alloc.reconcileCredit(ctx, p.PaymentID, attributions[p.PaymentID].Excess)
		if err != nil {
			return nil, nil, false, err
		}
		grew = grew || more
		if p.PaymentID == editedID {
			edited = credit
		}
	}
	return ob, edited, grew, nil
}
