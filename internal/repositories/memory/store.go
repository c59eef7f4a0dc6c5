// Package memory provides an in-memory implementation of the repository ports,
// used for local runs (STORE_BACKEND=memory) and by the engine tests.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/association_backoffice/internal/core/ports/repositories"
)

type state struct {
	obligations map[domain.ObligationRef]domain.Obligation
	credits     map[string]domain.Credit
	usages      []domain.CreditUsage
	payments    map[string]domain.Payment
}

func newState() *state {
	return &state{
		obligations: make(map[domain.ObligationRef]domain.Obligation),
		credits:     make(map[string]domain.Credit),
		payments:    make(map[string]domain.Payment),
	}
}

func (s *state) clone() *state {
	c := &state{
		obligations: make(map[domain.ObligationRef]domain.Obligation, len(s.obligations)),
		credits:     make(map[string]domain.Credit, len(s.credits)),
		usages:      make([]domain.CreditUsage, len(s.usages)),
		payments:    make(map[string]domain.Payment, len(s.payments)),
	}
	for k, v := range s.obligations {
		c.obligations[k] = v
	}
	for k, v := range s.credits {
		c.credits[k] = cloneCredit(v)
	}
	copy(c.usages, s.usages)
	for k, v := range s.payments {
		c.payments[k] = clonePayment(v)
	}
	return c
}

func cloneCredit(c domain.Credit) domain.Credit {
	if c.PaymentID != nil {
		id := *c.PaymentID
		c.PaymentID = &id
	}
	return c
}

func clonePayment(p domain.Payment) domain.Payment {
	if p.Obligation != nil {
		ref := *p.Obligation
		p.Obligation = &ref
	}
	return p
}

// Store keeps every member's data in memory. Units of work run one at a time on
// a private copy that replaces the live state only when they succeed.
type Store struct {
	mu    sync.Mutex
	live  *state
	audit []domain.AuditEntry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{live: newState()}
}

var (
	_ portsrepo.UnitOfWork      = (*Store)(nil)
	_ portsrepo.AuditRepository = (*Store)(nil)
)

// Do implements portsrepo.UnitOfWork.
func (s *Store) Do(ctx context.Context, _ string, fn func(ctx context.Context, repos portsrepo.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.live.clone()
	if err := fn(ctx, &repos{store: s, tx: snapshot}); err != nil {
		return err
	}
	s.live = snapshot
	return nil
}

// Reader implements portsrepo.UnitOfWork. It must not be used inside Do.
func (s *Store) Reader() portsrepo.Repositories {
	return &repos{store: s}
}

// SaveAuditEntry implements portsrepo.AuditRepository.
func (s *Store) SaveAuditEntry(_ context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

// AuditEntries returns a copy of the audit log.
func (s *Store) AuditEntries() []domain.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]domain.AuditEntry, len(s.audit))
	copy(res, s.audit)
	return res
}

// repos binds the repository implementations to either a transaction snapshot or
// the live state.
type repos struct {
	store *Store
	tx    *state
}

func (r *repos) Obligations() portsrepo.ObligationRepository { return &obligationRepository{r} }
func (r *repos) Credits() portsrepo.CreditRepository         { return &creditRepository{r} }
func (r *repos) Payments() portsrepo.PaymentRepository       { return &paymentRepository{r} }

func (r *repos) with(fn func(st *state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.live)
}
