package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// sideEffects groups the collaborators informed after a unit of work commits.
// None of them may fail the operation.
type sideEffects struct {
	audit    portssvc.AuditLogger
	notifier portssvc.Notifier
	metrics  portssvc.AllocationMetrics
}

func (e *sideEffects) withDefaults() {
	if e.audit == nil {
		e.audit = noopAuditLogger{}
	}
	if e.notifier == nil {
		e.notifier = noopNotifier{}
	}
	if e.metrics == nil {
		e.metrics = noopMetrics{}
	}
}

// recordAudit hands entries to the audit log. Failures are logged and dropped.
func (s *BaseService) recordAudit(ctx context.Context, audit portssvc.AuditLogger, entries ...domain.AuditEntry) {
	for _, entry := range entries {
		if entry.EntryID == "" {
			entry.EntryID = uuid.NewString()
		}
		if err := audit.Record(ctx, entry); err != nil {
			s.LogWarn(ctx, err, "Failed to write audit entry",
				slog.String("action", string(entry.Action)),
				slog.String("entity_id", entry.EntityID))
		}
	}
}

// notify forwards an event to the notifier, recovering from a misbehaving implementation.
func (s *BaseService) notify(ctx context.Context, notifier portssvc.Notifier, memberID, event string, props map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			s.GetLogger(ctx).Warn("Notifier panicked", slog.Any("panic", r), slog.String("event", event))
		}
	}()
	notifier.Notify(ctx, memberID, event, props)
}

type noopAuditLogger struct{}

func (noopAuditLogger) Record(context.Context, domain.AuditEntry) error { return nil }

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, string, map[string]any) {}

type noopMetrics struct{}

func (noopMetrics) PaymentRecorded(string, decimal.Decimal) {}
func (noopMetrics) CreditCreated(decimal.Decimal)           {}
func (noopMetrics) CreditApplied(decimal.Decimal)           {}
func (noopMetrics) AllocationFailed(string)                 {}

// repoAuditLogger adapts the audit repository to the AuditLogger collaborator.
type repoAuditLogger struct {
	repo portsrepo.AuditRepository
}

// NewRepositoryAuditLogger writes audit entries through repo.
func NewRepositoryAuditLogger(repo portsrepo.AuditRepository) portssvc.AuditLogger {
	return &repoAuditLogger{repo: repo}
}

func (l *repoAuditLogger) Record(ctx context.Context, entry domain.AuditEntry) error {
	return l.repo.SaveAuditEntry(ctx, entry)
}
