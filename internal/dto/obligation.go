package dto

import (
	"time"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateObligationRequest defines the data needed to create an obligation.
type CreateObligationRequest struct {
	Kind           domain.ObligationKind `json:"kind" binding:"required,oneof=INITIAL_DEBT MONTHLY_DUE ASSISTANCE_CHARGE STANDING_OBLIGATION" validate:"required"`
	Label          string                `json:"label" validate:"max=255"`
	Year           int                   `json:"year" validate:"omitempty,min=1900,max=2200"`
	DueDate        *time.Time            `json:"dueDate,omitempty"`
	AmountDue      decimal.Decimal       `json:"amountDue" validate:"gt=0"`
	AssistanceType domain.AssistanceType `json:"assistanceType,omitempty"`
}

// ObligationResponse defines the data returned for an obligation.
type ObligationResponse struct {
	ObligationID    string                  `json:"obligationID"`
	Kind            domain.ObligationKind   `json:"kind"`
	MemberID        string                  `json:"memberID"`
	Label           string                  `json:"label"`
	Year            int                     `json:"year,omitempty"`
	DueDate         *time.Time              `json:"dueDate,omitempty"`
	AssistanceType  domain.AssistanceType   `json:"assistanceType,omitempty"`
	Category        string                  `json:"category,omitempty"`
	AmountDue       float64                 `json:"amountDue"`
	AmountPaid      float64                 `json:"amountPaid"`
	AmountRemaining float64                 `json:"amountRemaining"`
	Status          domain.ObligationStatus `json:"status"`
}

// ToObligationResponse converts a domain.Obligation to ObligationResponse DTO.
func ToObligationResponse(o *domain.Obligation) ObligationResponse {
	resp := ObligationResponse{
		ObligationID:    o.ObligationID,
		Kind:            o.Kind,
		MemberID:        o.MemberID,
		Label:           o.Label,
		Year:            o.Year,
		AssistanceType:  o.AssistanceType,
		Category:        o.Category,
		AmountDue:       o.AmountDue.InexactFloat64(),
		AmountPaid:      o.AmountPaid.InexactFloat64(),
		AmountRemaining: o.AmountRemaining.InexactFloat64(),
		Status:          o.Status,
	}
	if !o.DueDate.IsZero() {
		due := o.DueDate
		resp.DueDate = &due
	}
	return resp
}

// ToObligationResponses converts a slice of domain.Obligation to []ObligationResponse.
func ToObligationResponses(obligations []domain.Obligation) []ObligationResponse {
	res := make([]ObligationResponse, len(obligations))
	for i := range obligations {
		res[i] = ToObligationResponse(&obligations[i])
	}
	return res
}

func toObligationResponsePtr(o *domain.Obligation) *ObligationResponse {
	if o == nil {
		return nil
	}
	resp := ToObligationResponse(o)
	return &resp
}
