package pgsql

import (
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork: NewUnitOfWork(dbPool),
		AuditRepo:  &PgxAuditRepository{BaseRepository: BaseRepository{DB: dbPool}},
	}
}
