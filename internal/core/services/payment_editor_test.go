package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/SscSPs/association_backoffice/internal/core/services"
	"github.com/SscSPs/association_backoffice/internal/dto"
	"github.com/stretchr/testify/assert"
)

func (suite *PaymentServiceTestSuite) edit(paymentID, amount string, method domain.PaymentMethod) *dto.EditPaymentResult {
	res, err := suite.service.EditPayment(suite.ctx, paymentID, dto.EditPaymentRequest{
		Amount: dec(amount),
		Method: method,
	}, treasurerID)
	suite.Require().NoError(err)
	return res
}

func (suite *PaymentServiceTestSuite) TestEditPayment_RoundTripRestoresState() {
	due := seedObligation(suite.store, suite.clock, domain.MonthlyDue, "30")
	recorded := suite.payFor(due, "50")
	paymentID := recorded.Payment.PaymentID

	down := suite.edit(paymentID, "10", domain.MethodCash)
	suite.True(down.Obligation.AmountPaid.Equal(dec("10")))
	suite.True(down.Obligation.AmountRemaining.Equal(dec("20")))
	suite.Equal(domain.StatusPartiallyPaid, down.Obligation.Status)
	suite.Nil(down.Credit, "an unused credit is removed once the excess disappears")
	suite.Empty(suite.credits())

	up := suite.edit(paymentID, "80", domain.MethodCard)
	suite.Equal(domain.StatusPaid, up.Obligation.Status)
	suite.Require().NotNil(up.Credit)
	suite.True(up.Credit.Amount.Equal(dec("50")))

	back := suite.edit(paymentID, "50", domain.MethodCash)
	suite.True(back.Obligation.AmountPaid.Equal(dec("30")))
	suite.True(back.Obligation.AmountRemaining.IsZero())
	suite.Equal(domain.StatusPaid, back.Obligation.Status)
	suite.Require().NotNil(back.Credit)
	suite.True(back.Credit.Amount.Equal(dec("20")))
	suite.True(back.Credit.AmountRemaining.Equal(dec("20")))
	suite.Equal(domain.CreditAvailable, back.Credit.Status)
	suite.Len(suite.credits(), 1)
	suite.Contains(back.Message, "50.00")
	suite.assertInvariants()
}

func (suite *PaymentServiceTestSuite) TestEditPayment_UsedCreditCollapsesInsteadOfDisappearing() {
	due := seedObligation(suite.store, suite.clock, domain.MonthlyDue, "30")
	recorded := suite.payFor(due, "50")
	suite.Require().NotNil(recorded.Credit)

	standing := seedObligation(suite.store, suite.clock, domain.StandingObligation, "15")
	suite.payFor(standing, "1") // consumes 15 of the 20 credit

	res := suite.edit(recorded.Payment.PaymentID, "30", domain.MethodCash)

	suite.Require().NotNil(res.Credit)
	suite.Equal(recorded.Credit.CreditID, res.Credit.CreditID)
	suite.True(res.Credit.Amount.Equal(dec("15")))
	suite.True(res.Credit.AmountUsed.Equal(dec("15")))
	suite.True(res.Credit.AmountRemaining.IsZero())
	suite.Equal(domain.CreditUsed, res.Credit.Status)
	suite.True(suite.reload(standing).AmountRemaining.IsZero(), "consumed credit is honoured")
	suite.assertInvariants()
}

func (suite *PaymentServiceTestSuite) TestEditPayment_RecomputesFromAllPayments() {
	due := seedObligation(suite.store, suite.clock, domain.MonthlyDue, "100")
	first := suite.payFor(due, "40")
	second := suite.payFor(due, "40")

	res := suite.edit(first.Payment.PaymentID, "70", domain.MethodCash)

	suite.True(res.Obligation.AmountPaid.Equal(dec("100")))
	suite.Equal(domain.StatusPaid, res.Obligation.Status)
	suite.Nil(res.Credit, "the earlier payment settles first")

	credit, err := suite.store.Reader().Credits().FindCreditByPaymentID(suite.ctx, second.Payment.PaymentID)
	suite.Require().NoError(err)
	suite.True(credit.Amount.Equal(dec("10")))
	suite.assertInvariants()
}

func (suite *PaymentServiceTestSuite) TestEditPayment_BankTransferNeedsProof() {
	due := seedObligation(suite.store, suite.clock, domain.MonthlyDue, "30")
	recorded := suite.payFor(due, "30")

	_, err := suite.service.EditPayment(suite.ctx, recorded.Payment.PaymentID, dto.EditPaymentRequest{
		Amount: dec("30"),
		Method: domain.MethodBankTransfer,
	}, treasurerID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	stored, err := suite.service.GetPayment(suite.ctx, recorded.Payment.PaymentID, treasurerID)
	suite.Require().NoError(err)
	suite.Equal(domain.MethodCash, stored.Method)

	res, err := suite.service.EditPayment(suite.ctx, recorded.Payment.PaymentID, dto.EditPaymentRequest{
		Amount:         dec("30"),
		Method:         domain.MethodBankTransfer,
		ProofReference: strPtr("attachments/abc.pdf"),
		Reference:      strPtr("TRX-1"),
	}, treasurerID)
	suite.Require().NoError(err)
	suite.Equal("attachments/abc.pdf", res.Payment.ProofReference)
	suite.Equal("TRX-1", res.Payment.Reference)
}

func (suite *PaymentServiceTestSuite) TestEditPayment_UnlinkedPaymentResizesItsCredit() {
	recorded, err := suite.service.RecordPayment(suite.ctx, memberID, dto.RecordPaymentRequest{
		Amount: dec("20"),
		Method: domain.MethodCash,
	}, treasurerID)
	suite.Require().NoError(err)

	res := suite.edit(recorded.Payment.PaymentID, "35", domain.MethodCash)

	suite.Nil(res.Obligation)
	suite.Require().NotNil(res.Credit)
	suite.True(res.Credit.Amount.Equal(dec("35")))
}

func (suite *PaymentServiceTestSuite) TestEditPayment_GrownCreditIsSwept() {
	due := seedObligation(suite.store, suite.clock, domain.MonthlyDue, "30")
	recorded := suite.payFor(due, "30")
	debt := seedObligation(suite.store, suite.clock, domain.InitialDebt, "25", withYear(2024))

	res := suite.edit(recorded.Payment.PaymentID, "40", domain.MethodCash)

	suite.Require().NotNil(res.Credit)
	suite.True(res.Credit.Amount.Equal(dec("10")))
	suite.True(res.Credit.AmountRemaining.IsZero())
	suite.True(suite.reload(debt).AmountRemaining.Equal(dec("15")))
	suite.assertInvariants()
}

func (suite *PaymentServiceTestSuite) TestEditPayment_NotFound() {
	_, err := suite.service.EditPayment(suite.ctx, "missing", dto.EditPaymentRequest{
		Amount: dec("10"),
		Method: domain.MethodCash,
	}, treasurerID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAttributePayments(t *testing.T) {
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pay := func(id, amount string, offset int, method domain.PaymentMethod) domain.Payment {
		return domain.Payment{
			PaymentID:   id,
			Amount:      dec(amount),
			PaymentDate: day.AddDate(0, 0, offset),
			Method:      method,
		}
	}

	tests := []struct {
		name       string
		due        string
		creditUsed string
		payments   []domain.Payment
		wantPaid   string
		wantExcess map[string]string
	}{
		{
			name:       "single overpayment",
			due:        "30",
			creditUsed: "0",
			payments:   []domain.Payment{pay("a", "50", 0, domain.MethodCash)},
			wantPaid:   "30",
			wantExcess: map[string]string{"a": "20"},
		},
		{
			name:       "credit usage counts first",
			due:        "30",
			creditUsed: "25",
			payments:   []domain.Payment{pay("a", "10", 0, domain.MethodCash)},
			wantPaid:   "30",
			wantExcess: map[string]string{"a": "5"},
		},
		{
			name:       "settlement order is by payment date",
			due:        "50",
			creditUsed: "0",
			payments:   []domain.Payment{pay("late", "40", 5, domain.MethodCash), pay("early", "40", 1, domain.MethodCash)},
			wantPaid:   "50",
			wantExcess: map[string]string{"early": "0", "late": "30"},
		},
		{
			name:       "transfer without proof is ignored",
			due:        "50",
			creditUsed: "0",
			payments:   []domain.Payment{pay("a", "20", 0, domain.MethodBankTransfer), pay("b", "10", 1, domain.MethodCash)},
			wantPaid:   "10",
			wantExcess: map[string]string{"a": "0", "b": "0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paid, attributions := services.AttributePayments(dec(tt.due), dec(tt.creditUsed), tt.payments)
			assert.True(t, paid.Equal(dec(tt.wantPaid)), "paid %s", paid)
			for id, want := range tt.wantExcess {
				assert.True(t, attributions[id].Excess.Equal(dec(want)), "excess of %s: %s", id, attributions[id].Excess)
			}
		})
	}
}
