package repositories

import (
	"context"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
)

// AuditRepository persists audit entries outside of any allocation transaction.
type AuditRepository interface {
	SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error
}
