// Package notify forwards payment outcomes to product analytics.
package notify

import (
	"context"

	"github.com/SscSPs/association_backoffice/internal/utils"
)

// EventQueue is the part of the posthog wrapper the notifier needs.
type EventQueue interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

var _ EventQueue = (*utils.PosthogClientWrapper)(nil)

// Posthog is a services.Notifier that enqueues one event per outcome, keyed by member.
type Posthog struct {
	queue EventQueue
}

func NewPosthog(queue EventQueue) *Posthog {
	return &Posthog{queue: queue}
}

// Notify copies properties so the caller may keep mutating its map.
func (p *Posthog) Notify(_ context.Context, memberID string, event string, properties map[string]any) {
	if p == nil || p.queue == nil {
		return
	}
	props := make(map[string]any, len(properties)+1)
	for k, v := range properties {
		props[k] = v
	}
	props["member_id"] = memberID
	p.queue.Enqueue(memberID, event, props)
}
