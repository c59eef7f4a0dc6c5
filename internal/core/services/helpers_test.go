package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/association_backoffice/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	memberID    = "member-1"
	treasurerID = "treasurer-1"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// tickingClock advances one second on every call so creation order is unambiguous.
type tickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTickingClock() *tickingClock {
	return &tickingClock{now: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func seedObligation(store *memory.Store, clock *tickingClock, kind domain.ObligationKind, due string, mutate ...func(*domain.Obligation)) domain.Obligation {
	amount := dec(due)
	ob := domain.Obligation{
		ObligationID:    uuid.NewString(),
		Kind:            kind,
		MemberID:        memberID,
		AmountDue:       amount,
		AmountPaid:      decimal.Zero,
		AmountRemaining: amount,
		Status:          domain.StatusPending,
		AuditFields:     domain.NewAuditFields(treasurerID, clock.Now()),
	}
	switch kind {
	case domain.InitialDebt:
		ob.Year = 2024
	default:
		ob.DueDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	for _, m := range mutate {
		m(&ob)
	}
	err := store.Do(context.Background(), memberID, func(ctx context.Context, repos portsrepo.Repositories) error {
		return repos.Obligations().SaveObligation(ctx, ob)
	})
	if err != nil {
		panic(err)
	}
	return ob
}

func seedCredit(store *memory.Store, clock *tickingClock, amount string) domain.Credit {
	credit := domain.NewCredit(uuid.NewString(), memberID, dec(amount), nil, domain.NewAuditFields(treasurerID, clock.Now()))
	err := store.Do(context.Background(), memberID, func(ctx context.Context, repos portsrepo.Repositories) error {
		return repos.Credits().SaveCredit(ctx, credit)
	})
	if err != nil {
		panic(err)
	}
	return credit
}

func withYear(year int) func(*domain.Obligation) {
	return func(o *domain.Obligation) { o.Year = year }
}

func withDueDate(y int, m time.Month, d int) func(*domain.Obligation) {
	return func(o *domain.Obligation) { o.DueDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
}

func withStatus(s domain.ObligationStatus) func(*domain.Obligation) {
	return func(o *domain.Obligation) { o.Status = s }
}

func kindPtr(k domain.ObligationKind) *domain.ObligationKind { return &k }
func strPtr(s string) *string                                { return &s }

func portsRepoProvider(store *memory.Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{UnitOfWork: store, AuditRepo: store}
}
