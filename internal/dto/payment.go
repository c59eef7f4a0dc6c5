package dto

import (
	"time"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest defines the data needed to record a payment.
// ObligationKind and ObligationID are either both set or both omitted.
type RecordPaymentRequest struct {
	Amount         decimal.Decimal        `json:"amount" validate:"gt=0"`
	PaymentDate    time.Time              `json:"paymentDate"` // Defaults to now
	Method         domain.PaymentMethod   `json:"method" binding:"required,oneof=CASH CHECK BANK_TRANSFER CARD" validate:"required"`
	Reference      string                 `json:"reference" validate:"max=255"`
	ProofReference string                 `json:"proofReference" validate:"max=1024"`
	ObligationKind *domain.ObligationKind `json:"obligationKind,omitempty" validate:"required_with=ObligationID"`
	ObligationID   *string                `json:"obligationID,omitempty" validate:"required_with=ObligationKind"`
}

// Target returns the obligation the payment is earmarked for, if any.
func (r RecordPaymentRequest) Target() *domain.ObligationRef {
	if r.ObligationKind == nil || r.ObligationID == nil {
		return nil
	}
	return &domain.ObligationRef{Kind: *r.ObligationKind, ID: *r.ObligationID}
}

// GeneralPaymentRequest defines a payment not earmarked for a specific obligation.
type GeneralPaymentRequest struct {
	Amount         decimal.Decimal      `json:"amount" validate:"gt=0"`
	PaymentDate    time.Time            `json:"paymentDate"`
	Method         domain.PaymentMethod `json:"method" binding:"required,oneof=CASH CHECK BANK_TRANSFER CARD" validate:"required"`
	Reference      string               `json:"reference" validate:"max=255"`
	ProofReference string               `json:"proofReference" validate:"max=1024"`
}

// EditPaymentRequest defines the editable fields of a payment.
// Nil Reference/ProofReference keep the stored values.
type EditPaymentRequest struct {
	Amount         decimal.Decimal      `json:"amount" validate:"gt=0"`
	PaymentDate    time.Time            `json:"paymentDate" binding:"required"`
	Method         domain.PaymentMethod `json:"method" binding:"required,oneof=CASH CHECK BANK_TRANSFER CARD" validate:"required"`
	Reference      *string              `json:"reference,omitempty"`
	ProofReference *string              `json:"proofReference,omitempty"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// PaymentResult is what the recorder reports back.
type PaymentResult struct {
	Payment                domain.Payment
	Obligation             *domain.Obligation
	Credit                 *domain.Credit
	CreditsApplied         decimal.Decimal // taken from existing credits for the target
	AmountApplied          decimal.Decimal // taken from the tendered amount for the target
	Excess                 decimal.Decimal
	AbsorbedByInitialDebts decimal.Decimal // part of the new credit swept into initial debts
	Message                string
}

// GeneralPaymentResult is what the distributor reports back.
type GeneralPaymentResult struct {
	Payments               []domain.Payment
	Obligations            []domain.Obligation // every obligation whose balance changed
	Credit                 *domain.Credit
	CreditsApplied         decimal.Decimal
	Excess                 decimal.Decimal
	AbsorbedByInitialDebts decimal.Decimal
	Message                string
}

// EditPaymentResult is what the editor reports back.
type EditPaymentResult struct {
	Payment    domain.Payment
	Obligation *domain.Obligation
	Credit     *domain.Credit
	Message    string
}

// ListPaymentsResult wraps a page of payments.
type ListPaymentsResult struct {
	Payments  []domain.Payment
	NextToken *string
}

// ObligationRefResponse identifies an obligation in responses.
type ObligationRefResponse struct {
	Kind domain.ObligationKind `json:"kind"`
	ID   string                `json:"id"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID      string                 `json:"paymentID"`
	MemberID       string                 `json:"memberID"`
	Amount         float64                `json:"amount"`
	PaymentDate    time.Time              `json:"paymentDate"`
	Method         domain.PaymentMethod   `json:"method"`
	Reference      string                 `json:"reference,omitempty"`
	ProofReference string                 `json:"proofReference,omitempty"`
	Obligation     *ObligationRefResponse `json:"obligation,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	CreatedBy      string                 `json:"createdBy"`
}

// PaymentResultResponse is the data block of a record-payment response.
type PaymentResultResponse struct {
	Payment                PaymentResponse     `json:"payment"`
	Obligation             *ObligationResponse `json:"obligation,omitempty"`
	Credit                 *CreditResponse     `json:"credit,omitempty"`
	CreditsApplied         float64             `json:"creditsApplied"`
	AmountApplied          float64             `json:"amountApplied"`
	Excess                 float64             `json:"excess"`
	AbsorbedByInitialDebts float64             `json:"absorbedByInitialDebts"`
}

// GeneralPaymentResultResponse is the data block of a general-payment response.
type GeneralPaymentResultResponse struct {
	Payments               []PaymentResponse    `json:"payments"`
	Obligations            []ObligationResponse `json:"obligations"`
	Credit                 *CreditResponse      `json:"credit,omitempty"`
	CreditsApplied         float64              `json:"creditsApplied"`
	Excess                 float64              `json:"excess"`
	AbsorbedByInitialDebts float64              `json:"absorbedByInitialDebts"`
}

// EditPaymentResultResponse is the data block of an edit-payment response.
type EditPaymentResultResponse struct {
	Payment    PaymentResponse     `json:"payment"`
	Obligation *ObligationResponse `json:"obligation,omitempty"`
	Credit     *CreditResponse     `json:"credit,omitempty"`
}

// ListPaymentsResponse wraps a page of payments.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	resp := PaymentResponse{
		PaymentID:      p.PaymentID,
		MemberID:       p.MemberID,
		Amount:         p.Amount.InexactFloat64(),
		PaymentDate:    p.PaymentDate,
		Method:         p.Method,
		Reference:      p.Reference,
		ProofReference: p.ProofReference,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
	}
	if p.Obligation != nil {
		resp.Obligation = &ObligationRefResponse{Kind: p.Obligation.Kind, ID: p.Obligation.ID}
	}
	return resp
}

// ToPaymentResponses converts a slice of domain.Payment to []PaymentResponse.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return res
}

// ToPaymentResultResponse converts a PaymentResult to its response DTO.
func ToPaymentResultResponse(r *PaymentResult) PaymentResultResponse {
	return PaymentResultResponse{
		Payment:                ToPaymentResponse(&r.Payment),
		Obligation:             toObligationResponsePtr(r.Obligation),
		Credit:                 toCreditResponsePtr(r.Credit),
		CreditsApplied:         r.CreditsApplied.InexactFloat64(),
		AmountApplied:          r.AmountApplied.InexactFloat64(),
		Excess:                 r.Excess.InexactFloat64(),
		AbsorbedByInitialDebts: r.AbsorbedByInitialDebts.InexactFloat64(),
	}
}

// ToGeneralPaymentResultResponse converts a GeneralPaymentResult to its response DTO.
func ToGeneralPaymentResultResponse(r *GeneralPaymentResult) GeneralPaymentResultResponse {
	return GeneralPaymentResultResponse{
		Payments:               ToPaymentResponses(r.Payments),
		Obligations:            ToObligationResponses(r.Obligations),
		Credit:                 toCreditResponsePtr(r.Credit),
		CreditsApplied:         r.CreditsApplied.InexactFloat64(),
		Excess:                 r.Excess.InexactFloat64(),
		AbsorbedByInitialDebts: r.AbsorbedByInitialDebts.InexactFloat64(),
	}
}

// ToEditPaymentResultResponse converts an EditPaymentResult to its response DTO.
func ToEditPaymentResultResponse(r *EditPaymentResult) EditPaymentResultResponse {
	return EditPaymentResultResponse{
		Payment:    ToPaymentResponse(&r.Payment),
		Obligation: toObligationResponsePtr(r.Obligation),
		Credit:     toCreditResponsePtr(r.Credit),
	}
}
