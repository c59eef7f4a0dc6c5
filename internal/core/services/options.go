package services

import (
	"time"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
)

// Options carries the optional collaborators shared by the engine services.
type Options struct {
	authorizer portssvc.Authorizer
	effects    sideEffects
	now        func() time.Time
	categories domain.AssistanceCategories
}

// Option configures the engine services.
type Option func(*Options)

// WithAuthorizer sets the authorization collaborator.
func WithAuthorizer(a portssvc.Authorizer) Option {
	return func(o *Options) { o.authorizer = a }
}

// WithAuditLogger sets the audit-log collaborator.
func WithAuditLogger(a portssvc.AuditLogger) Option {
	return func(o *Options) { o.effects.audit = a }
}

// WithNotifier sets the notification collaborator.
func WithNotifier(n portssvc.Notifier) Option {
	return func(o *Options) { o.effects.notifier = n }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m portssvc.AllocationMetrics) Option {
	return func(o *Options) { o.effects.metrics = m }
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.now = now }
}

// WithAssistanceCategories sets the assistance type to category table.
func WithAssistanceCategories(c domain.AssistanceCategories) Option {
	return func(o *Options) { o.categories = c }
}

func buildOptions(opts []Option) Options {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	o.effects.withDefaults()
	if o.categories == nil {
		o.categories = domain.AssistanceCategories(domain.DefaultAssistanceCategories())
	}
	return o
}

func (o Options) base() BaseService {
	return BaseService{Authorizer: o.authorizer, Now: o.now}
}
