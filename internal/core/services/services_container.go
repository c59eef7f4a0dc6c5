package services

import (
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The audit repository, when present, is used as the audit-log collaborator.
func NewServiceContainer(repos portsrepo.RepositoryProvider, attachments portssvc.AttachmentStore, opts ...Option) *portssvc.ServiceContainer {
	if repos.AuditRepo != nil {
		opts = append([]Option{WithAuditLogger(NewRepositoryAuditLogger(repos.AuditRepo))}, opts...)
	}
	return &portssvc.ServiceContainer{
		Payment:     NewPaymentService(repos.UnitOfWork, opts...),
		Credit:      NewCreditService(repos.UnitOfWork, opts...),
		Obligation:  NewObligationService(repos.UnitOfWork, opts...),
		Attachments: NewAttachmentService(attachments, opts...),
	}
}
