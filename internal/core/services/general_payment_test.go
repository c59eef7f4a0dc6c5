package services_test

import (
	"time"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/SscSPs/association_backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

func (suite *PaymentServiceTestSuite) general(amount string) *dto.GeneralPaymentResult {
	res, err := suite.service.RecordGeneralPayment(suite.ctx, memberID, dto.GeneralPaymentRequest{
		Amount:      dec(amount),
		PaymentDate: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Method:      domain.MethodCash,
		Reference:   "receipt-42",
	}, treasurerID)
	suite.Require().NoError(err)
	return res
}

func (suite *PaymentServiceTestSuite) TestGeneralPayment_FundsRunOutBeforeLastObligation() {
	debt := seedObligation(suite.store, suite.clock, domain.InitialDebt, "40", withYear(2024))
	due := seedObligation(suite.store, suite.clock, domain.MonthlyDue, "15", withDueDate(2025, 1, 1))

	res := suite.general("50")

	suite.True(suite.reload(debt).AmountRemaining.IsZero())
	suite.True(suite.reload(due).AmountRemaining.Equal(dec("5")))
	suite.Nil(res.Credit)
	suite.True(res.Excess.IsZero())
	suite.Len(res.Payments, 2)
	suite.assertInvariants()
}

func (suite *PaymentServiceTestSuite) TestGeneralPayment_FortyPlusFifteen() {
	debt := seedObligation(suite.store, suite.clock, domain.InitialDebt, "40", withYear(2024))
	due := seedObligation(suite.store, suite.clock, domain.MonthlyDue, "15", withDueDate(2025, 1, 1))

	res := suite.general("55")

	suite.Equal(domain.StatusPaid, suite.reload(debt).Status)
	suite.Equal(domain.StatusPaid, suite.reload(due).Status)
	suite.Nil(res.Credit)
	suite.True(res.Excess.IsZero())
	suite.Require().Len(res.Payments, 2)
	suite.Equal(debt.Ref(), *res.Payments[0].Obligation)
	suite.True(res.Payments[0].Amount.Equal(dec("40")))
	suite.Equal(due.Ref(), *res.Payments[1].Obligation)
	suite.True(res.Payments[1].Amount.Equal(dec("15")))
	for _, p := range res.Payments {
		suite.Equal("receipt-42", p.Reference)
		suite.Equal(domain.MethodCash, p.Method)
	}
	suite.Len(res.Obligations, 2)
	suite.Contains(res.Message, "2 obligation(s)")
	suite.Empty(suite.credits())
}

func (suite *PaymentServiceTestSuite) TestGeneralPayment_PriorityOrderAcrossKinds() {
	standing := seedObligation(suite.store, suite.clock, domain.StandingObligation, "10", withDueDate(2020, 1, 1))
	assistance := seedObligation(suite.store, suite.clock, domain.AssistanceCharge, "10", withDueDate(2021, 1, 1))
	lateDue := seedObligation(suite.store, suite.clock, domain.MonthlyDue, "10", withDueDate(2025, 2, 1))
	earlyDue := seedObligation(suite.store, suite.clock, domain.MonthlyDue, "10", withDueDate(2025, 1, 1))
	debt := seedObligation(suite.store, suite.clock, domain.InitialDebt, "10", withYear(2024))

	res := suite.general("35")

	suite.Require().Len(res.Payments, 4)
	suite.Equal(debt.Ref(), *res.Payments[0].Obligation)
	suite.Equal(earlyDue.Ref(), *res.Payments[1].Obligation)
	suite.Equal(lateDue.Ref(), *res.Payments[2].Obligation)
	suite.Equal(assistance.Ref(), *res.Payments[3].Obligation)
	suite.True(res.Payments[3].Amount.Equal(dec("5")))

	suite.Equal(domain.StatusPending, suite.reload(assistance).Status, "assistance charges go from pending straight to paid")
	suite.True(suite.reload(assistance).AmountRemaining.Equal(dec("5")))
	suite.True(suite.reload(standing).AmountPaid.IsZero())
	suite.assertInvariants()
}

func (suite *PaymentServiceTestSuite) TestGeneralPayment_SkipsAllocatedAssistanceAndSettledItems() {
	allocated := seedObligation(suite.store, suite.clock, domain.AssistanceCharge, "10", withStatus(domain.StatusAllocated))
	paid := seedObligation(suite.store, suite.clock, domain.MonthlyDue, "10", func(o *domain.Obligation) { o.ResetPaid(o.AmountDue) })

	res := suite.general("25")

	suite.Require().Len(res.Payments, 1)
	suite.Nil(res.Payments[0].Obligation, "the whole amount is recorded as an unlinked payment")
	suite.Require().NotNil(res.Credit)
	suite.True(res.Credit.Amount.Equal(dec("25")))
	suite.Equal(domain.StatusAllocated, suite.reload(allocated).Status)
	suite.True(suite.reload(paid).AmountRemaining.IsZero())
}

func (suite *PaymentServiceTestSuite) TestGeneralPayment_CreditCoveredObligationGetsNoPaymentRow() {
	seedCredit(suite.store, suite.clock, "40")
	debt := seedObligation(suite.store, suite.clock, domain.InitialDebt, "40", withYear(2024))
	due := seedObligation(suite.store, suite.clock, domain.MonthlyDue, "15")

	res := suite.general("15")

	suite.True(suite.reload(debt).AmountRemaining.IsZero())
	suite.True(suite.reload(due).AmountRemaining.IsZero())
	suite.Require().Len(res.Payments, 1)
	suite.Equal(due.Ref(), *res.Payments[0].Obligation)
	suite.True(res.CreditsApplied.Equal(dec("40")))
	suite.Contains(res.Message, "2 obligation(s)")
	suite.Nil(res.Credit)
	suite.assertInvariants()
}

func (suite *PaymentServiceTestSuite) TestGeneralPayment_LeftoverBecomesCredit() {
	debt := seedObligation(suite.store, suite.clock, domain.InitialDebt, "25", withYear(2024))

	res := suite.general("100")

	suite.True(suite.reload(debt).AmountRemaining.IsZero())
	suite.True(res.Excess.Equal(dec("75")))
	suite.Require().NotNil(res.Credit)
	suite.True(res.Credit.AmountRemaining.Equal(dec("75")))
	suite.True(res.AbsorbedByInitialDebts.IsZero())

	total := decimal.Zero
	for _, p := range res.Payments {
		total = total.Add(p.Amount)
	}
	suite.True(total.Equal(dec("100")), "payment rows add up to the tendered amount")
	suite.assertInvariants()
}

func (suite *PaymentServiceTestSuite) TestGeneralPayment_RejectsMissingProof() {
	seedObligation(suite.store, suite.clock, domain.InitialDebt, "25")

	_, err := suite.service.RecordGeneralPayment(suite.ctx, memberID, dto.GeneralPaymentRequest{
		Amount: dec("10"),
		Method: domain.MethodBankTransfer,
	}, treasurerID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.credits())
}
