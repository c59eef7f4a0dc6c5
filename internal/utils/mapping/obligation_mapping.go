package mapping

import (
	"github.com/SscSPs/association_backoffice/internal/core/domain"
	"github.com/SscSPs/association_backoffice/internal/models"
)

// ToModelObligation converts a domain Obligation to a model Obligation.
// Initial debts keep only their year; the other kinds keep only their due date.
func ToModelObligation(d domain.Obligation) models.Obligation {
	m := models.Obligation{
		ObligationID:    d.ObligationID,
		Kind:            string(d.Kind),
		MemberID:        d.MemberID,
		Label:           d.Label,
		AssistanceType:  optionalString(string(d.AssistanceType)),
		Category:        optionalString(d.Category),
		AmountDue:       d.AmountDue,
		AmountPaid:      d.AmountPaid,
		AmountRemaining: d.AmountRemaining,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.Year != 0 {
		year := int32(d.Year)
		m.Year = &year
	}
	if !d.DueDate.IsZero() {
		due := d.DueDate
		m.DueDate = &due
	}
	return m
}

// ToDomainObligation converts a model Obligation to a domain Obligation
func ToDomainObligation(m models.Obligation) domain.Obligation {
	d := domain.Obligation{
		ObligationID:    m.ObligationID,
		Kind:            domain.ObligationKind(m.Kind),
		MemberID:        m.MemberID,
		Label:           m.Label,
		AssistanceType:  domain.AssistanceType(derefString(m.AssistanceType)),
		Category:        derefString(m.Category),
		AmountDue:       m.AmountDue,
		AmountPaid:      m.AmountPaid,
		AmountRemaining: m.AmountRemaining,
		Status:          domain.ObligationStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.Year != nil {
		d.Year = int(*m.Year)
	}
	if m.DueDate != nil {
		d.DueDate = m.DueDate.UTC()
	}
	return d
}
