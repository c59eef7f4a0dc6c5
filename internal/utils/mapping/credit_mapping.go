package mapping

import (
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/SscSPs/association_backoffice/internal/models"
)

func ToModelCredit(d domain.Credit) models.Credit {
	return models.Credit{
		CreditID:        d.CreditID,
		MemberID:        d.MemberID,
		Amount:          d.Amount,
		AmountUsed:      d.AmountUsed,
		AmountRemaining: d.AmountRemaining,
		Status:          string(d.Status),
		PaymentID:       d.PaymentID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCredit(m models.Credit) domain.Credit {
	return domain.Credit{
		CreditID:        m.CreditID,
		MemberID:        m.MemberID,
		Amount:          m.Amount,
		AmountUsed:      m.AmountUsed,
		AmountRemaining: m.AmountRemaining,
		Status:          domain.CreditStatus(m.Status),
		PaymentID:       m.PaymentID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelCreditUsage(d domain.CreditUsage) models.CreditUsage {
	return models.CreditUsage{
		UsageID:        d.UsageID,
		CreditID:       d.CreditID,
		AmountConsumed: d.AmountConsumed,
		ObligationKind: string(d.Obligation.Kind),
		ObligationID:   d.Obligation.ID,
		Description:    d.Description,
		CreatedAt:      d.CreatedAt,
	}
}

func ToDomainCreditUsage(m models.CreditUsage) domain.CreditUsage {
	return domain.CreditUsage{
		UsageID:        m.UsageID,
		CreditID:       m.CreditID,
		AmountConsumed: m.AmountConsumed,
		Obligation:     domain.ObligationRef{Kind: domain.ObligationKind(m.ObligationKind), ID: m.ObligationID},
		Description:    m.Description,
		CreatedAt:      m.CreatedAt,
	}
}
