package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// allocator performs the numeric steps of one allocation inside a unit of work.
// It keeps running totals so the caller can report them once the work commits.
type allocator struct {
	repos    portsrepo.Repositories
	memberID string
	actorID  string
	now      time.Time

	creditsApplied decimal.Decimal
	createdCredits []domain.Credit
	touched        map[domain.ObligationRef]domain.Obligation
	touchOrder     []domain.ObligationRef
}

func newAllocator(repos portsrepo.Repositories, memberID, actorID string, now time.Time) *allocator {
	return &allocator{
		repos:          repos,
		memberID:       memberID,
		actorID:        actorID,
		now:            now,
		creditsApplied: decimal.Zero,
		touched:        make(map[domain.ObligationRef]domain.Obligation),
	}
}

// applyCredits consumes the member's available credits, oldest first, against
// owed on ob. It records one usage per credit touched and returns what is still owed.
// The obligation itself is not modified.
func (a *allocator) applyCredits(ctx context.Context, ob *domain.Obligation, owed decimal.Decimal) (decimal.Decimal, error) {
	if !owed.IsPositive() {
		return decimal.Zero, nil
	}
	credits, err := a.repos.Credits().ListAvailableCredits(ctx, a.memberID)
	if err != nil {
		return owed, fmt.Errorf("failed to list available credits: %w", err)
	}

	stillOwed := owed
	for i := range credits {
		if !stillOwed.IsPositive() {
			break
		}
		credit := &credits[i]
		taken := credit.Consume(stillOwed)
		if !taken.IsPositive() {
			continue
		}
		credit.Touch(a.actorID, a.now)
		if err := a.repos.Credits().UpdateCredit(ctx, *credit); err != nil {
			return owed, fmt.Errorf("failed to update credit %s: %w", credit.CreditID, err)
		}
		usage := domain.CreditUsage{
			UsageID:        uuid.NewString(),
			CreditID:       credit.CreditID,
			AmountConsumed: taken,
			Obligation:     ob.Ref(),
			Description:    fmt.Sprintf("Applied %s to %s %s", domain.FormatAmount(taken), ob.Kind.Label(), describeObligation(ob)),
			CreatedAt:      a.now,
		}
		if err := a.repos.Credits().SaveCreditUsage(ctx, usage); err != nil {
			return owed, fmt.Errorf("failed to save credit usage: %w", err)
		}
		stillOwed = stillOwed.Sub(taken)
		a.creditsApplied = a.creditsApplied.Add(taken)
	}
	return stillOwed, nil
}

// settle applies credits then up to funds to ob and persists the new amounts.
// It returns the amount taken from credits and the amount taken from funds.
func (a *allocator) settle(ctx context.Context, ob *domain.Obligation, funds decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	before := ob.Remaining()
	stillOwed, err := a.applyCredits(ctx, ob, before)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	fromCredits := before.Sub(stillOwed)
	ob.ApplyAmount(fromCredits)

	fromFunds := domain.MinAmount(domain.ClampZero(funds), stillOwed)
	ob.ApplyAmount(fromFunds)

	if fromCredits.IsPositive() || fromFunds.IsPositive() {
		if err := a.saveObligation(ctx, ob); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}
	return fromCredits, fromFunds, nil
}

func (a *allocator) saveObligation(ctx context.Context, ob *domain.Obligation) error {
	ob.Touch(a.actorID, a.now)
	if err := a.repos.Obligations().UpdateObligationAmounts(ctx, *ob); err != nil {
		return fmt.Errorf("failed to update %s %s: %w", ob.Kind.Label(), ob.ObligationID, err)
	}
	ref := ob.Ref()
	if _, seen := a.touched[ref]; !seen {
		a.touchOrder = append(a.touchOrder, ref)
	}
	a.touched[ref] = *ob
	return nil
}

// touchedObligations returns every obligation whose balance changed, in the order first touched.
func (a *allocator) touchedObligations() []domain.Obligation {
	res := make([]domain.Obligation, 0, len(a.touchOrder))
	for _, ref := range a.touchOrder {
		res = append(res, a.touched[ref])
	}
	return res
}

// sweepInitialDebts applies available credits to the member's outstanding initial
// debts, oldest year first, and returns the total absorbed.
func (a *allocator) sweepInitialDebts(ctx context.Context) (decimal.Decimal, error) {
	debts, err := a.repos.Obligations().ListOutstandingObligations(ctx, a.memberID, domain.InitialDebt)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list initial debts: %w", err)
	}
	absorbed := decimal.Zero
	for i := range debts {
		debt := &debts[i]
		before := debt.Remaining()
		after, err := a.applyCredits(ctx, debt, before)
		if err != nil {
			return decimal.Zero, err
		}
		taken := before.Sub(after)
		if !taken.IsPositive() {
			// credits exhausted
			break
		}
		debt.ApplyAmount(taken)
		if err := a.saveObligation(ctx, debt); err != nil {
			return decimal.Zero, err
		}
		absorbed = absorbed.Add(taken)
	}
	return absorbed, nil
}

// createCredit stores a new credit produced by a payment's excess.
func (a *allocator) createCredit(ctx context.Context, amount decimal.Decimal, paymentID string) (*domain.Credit, error) {
	pid := paymentID
	credit := domain.NewCredit(uuid.NewString(), a.memberID, amount, &pid, domain.NewAuditFields(a.actorID, a.now))
	if err := a.repos.Credits().SaveCredit(ctx, credit); err != nil {
		return nil, fmt.Errorf("failed to save credit: %w", err)
	}
	a.createdCredits = append(a.createdCredits, credit)
	return &credit, nil
}

// reconcileCredit brings the credit produced by paymentID in line with the payment's
// current excess. It returns the resulting credit (nil when none remains) and whether
// more credit became available.
func (a *allocator) reconcileCredit(ctx context.Context, paymentID string, excess decimal.Decimal) (*domain.Credit, bool, error) {
	existing, err := a.repos.Credits().FindCreditByPaymentID(ctx, paymentID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to find credit for payment %s: %w", paymentID, err)
	}
	if existing == nil {
		if !excess.IsPositive() {
			return nil, false, nil
		}
		created, err := a.createCredit(ctx, excess, paymentID)
		return created, err == nil, err
	}

	if !excess.IsPositive() && !existing.AmountUsed.IsPositive() {
		if err := a.repos.Credits().DeleteCredit(ctx, existing.CreditID); err != nil {
			return nil, false, fmt.Errorf("failed to delete credit %s: %w", existing.CreditID, err)
		}
		return nil, false, nil
	}

	oldRemaining := existing.AmountRemaining
	oldAmount := existing.Amount
	// Resize never drops below what was consumed, which collapses a retracted credit to USED.
	existing.Resize(domain.ClampZero(excess))
	if existing.Amount.Equal(oldAmount) {
		return existing, false, nil
	}
	existing.Touch(a.actorID, a.now)
	if err := a.repos.Credits().UpdateCredit(ctx, *existing); err != nil {
		return nil, false, fmt.Errorf("failed to update credit %s: %w", existing.CreditID, err)
	}
	return existing, existing.AmountRemaining.GreaterThan(oldRemaining), nil
}

// reloadCredit returns the stored state of a credit, or nil if it no longer exists.
func (a *allocator) reloadCredit(ctx context.Context, credit *domain.Credit) (*domain.Credit, error) {
	if credit == nil {
		return nil, nil
	}
	fresh, err := a.repos.Credits().FindCreditByID(ctx, credit.CreditID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reload credit %s: %w", credit.CreditID, err)
	}
	return fresh, nil
}

func describeObligation(ob *domain.Obligation) string {
	if ob.Label != "" {
		return fmt.Sprintf("%q", ob.Label)
	}
	if ob.Kind == domain.InitialDebt {
		return fmt.Sprintf("%d", ob.Year)
	}
	return ob.DueDate.Format("2006-01-02")
}
