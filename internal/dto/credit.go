package dto

import (
	"time"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditWithUsages pairs a credit with its consumption trail.
type CreditWithUsages struct {
	Credit domain.Credit
	Usages []domain.CreditUsage
}

// MemberBalance summarises a member's position.
type MemberBalance struct {
	MemberID          string
	OutstandingByKind map[domain.ObligationKind]decimal.Decimal
	TotalOutstanding  decimal.Decimal
	AvailableCredit   decimal.Decimal
	NetPosition       decimal.Decimal // available credit minus outstanding
}

// CreditResponse defines the data returned for a credit.
type CreditResponse struct {
	CreditID        string                `json:"creditID"`
	MemberID        string                `json:"memberID"`
	Amount          float64               `json:"amount"`
	AmountUsed      float64               `json:"amountUsed"`
	AmountRemaining float64               `json:"amountRemaining"`
	Status          domain.CreditStatus   `json:"status"`
	PaymentID       *string               `json:"paymentID,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	Usages          []CreditUsageResponse `json:"usages,omitempty"`
}

// CreditUsageResponse defines the data returned for a credit usage.
type CreditUsageResponse struct {
	UsageID        string                `json:"usageID"`
	AmountConsumed float64               `json:"amountConsumed"`
	Obligation     ObligationRefResponse `json:"obligation"`
	Description    string                `json:"description"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// MemberBalanceResponse defines the data returned for a member balance query.
type MemberBalanceResponse struct {
	MemberID          string             `json:"memberID"`
	OutstandingByKind map[string]float64 `json:"outstandingByKind"`
	TotalOutstanding  float64            `json:"totalOutstanding"`
	AvailableCredit   float64            `json:"availableCredit"`
	NetPosition       float64            `json:"netPosition"`
}

// ToCreditResponse converts a domain.Credit to CreditResponse DTO.
func ToCreditResponse(c *domain.Credit) CreditResponse {
	return CreditResponse{
		CreditID:        c.CreditID,
		MemberID:        c.MemberID,
		Amount:          c.Amount.InexactFloat64(),
		AmountUsed:      c.AmountUsed.InexactFloat64(),
		AmountRemaining: c.AmountRemaining.InexactFloat64(),
		Status:          c.Status,
		PaymentID:       c.PaymentID,
		CreatedAt:       c.CreatedAt,
	}
}

// ToCreditWithUsagesResponses converts credits and their usages to response DTOs.
func ToCreditWithUsagesResponses(credits []CreditWithUsages) []CreditResponse {
	res := make([]CreditResponse, len(credits))
	for i := range credits {
		resp := ToCreditResponse(&credits[i].Credit)
		resp.Usages = make([]CreditUsageResponse, len(credits[i].Usages))
		for j, u := range credits[i].Usages {
			resp.Usages[j] = CreditUsageResponse{
				UsageID:        u.UsageID,
				AmountConsumed: u.AmountConsumed.InexactFloat64(),
				Obligation:     ObligationRefResponse{Kind: u.Obligation.Kind, ID: u.Obligation.ID},
				Description:    u.Description,
				CreatedAt:      u.CreatedAt,
			}
		}
		res[i] = resp
	}
	return res
}

// ToMemberBalanceResponse converts a MemberBalance to its response DTO.
func ToMemberBalanceResponse(b *MemberBalance) MemberBalanceResponse {
	byKind := make(map[string]float64, len(b.OutstandingByKind))
	for kind, amount := range b.OutstandingByKind {
		byKind[string(kind)] = amount.InexactFloat64()
	}
	return MemberBalanceResponse{
		MemberID:          b.MemberID,
		OutstandingByKind: byKind,
		TotalOutstanding:  b.TotalOutstanding.InexactFloat64(),
		AvailableCredit:   b.AvailableCredit.InexactFloat64(),
		NetPosition:       b.NetPosition.InexactFloat64(),
	}
}

func toCreditResponsePtr(c *domain.Credit) *CreditResponse {
	if c == nil {
		return nil
	}
	resp := ToCreditResponse(c)
	return &resp
}
