package pgsql

import (
	"context"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/association_backoffice/internal/utils/mapping"
)

// PgxAuditRepository writes audit_log rows on its own connection, never inside an allocation transaction.
type PgxAuditRepository struct {
	BaseRepository
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	query := `
		INSERT INTO audit_log (entry_id, actor_id, action, member_id, entity_type, entity_id, amount, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.Exec(ctx, query,
		m.EntryID, m.ActorID, m.Action, m.MemberID, m.EntityType, m.EntityID, m.Amount, m.Details, m.CreatedAt,
	)
	return convertErr(err, "audit entry "+entry.EntryID)
}
