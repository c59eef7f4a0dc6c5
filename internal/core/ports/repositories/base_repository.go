package repositories

import (
	"context"
)

// Repositories is the set of repositories bound to one unit of work.
// Every read made through it that precedes a write locks the rows it returns.
type Repositories interface {
	Obligations() ObligationRepository
	Credits() CreditRepository
	Payments() PaymentRepository
}

// UnitOfWork runs allocation steps atomically.
type UnitOfWork interface {
	// Do executes fn inside a single transaction that holds the member's
	// allocation lock. If fn returns an error every write is rolled back.
	Do(ctx context.Context, memberID string, fn func(ctx context.Context, repos Repositories) error) error

	// Reader returns repositories for read-only use outside of a transaction.
	Reader() Repositories
}
