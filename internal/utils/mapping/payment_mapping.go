package mapping

import (
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/SscSPs/association_backoffice/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	m := models.Payment{
		PaymentID:      d.PaymentID,
		MemberID:       d.MemberID,
		Amount:         d.Amount,
		PaymentDate:    d.PaymentDate,
		Method:         string(d.Method),
		Reference:      optionalString(d.Reference),
		ProofReference: optionalString(d.ProofReference),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.Obligation != nil {
		kind := string(d.Obligation.Kind)
		id := d.Obligation.ID
		m.ObligationKind = &kind
		m.ObligationID = &id
	}
	return m
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	d := domain.Payment{
		PaymentID:      m.PaymentID,
		MemberID:       m.MemberID,
		Amount:         m.Amount,
		PaymentDate:    m.PaymentDate.UTC(),
		Method:         domain.PaymentMethod(m.Method),
		Reference:      derefString(m.Reference),
		ProofReference: derefString(m.ProofReference),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.ObligationKind != nil && m.ObligationID != nil {
		d.Obligation = &domain.ObligationRef{Kind: domain.ObligationKind(*m.ObligationKind), ID: *m.ObligationID}
	}
	return d
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
