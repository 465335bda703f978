package event

import (
	"context"

	"github.com/pedezap/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityLogHandler writes every domain event to the structured log,
// giving operators a per-tenant activity trail without a separate store.
type ActivityLogHandler struct {
	logger *zap.Logger
}

// NewActivityLogHandler creates the activity log subscriber.
func NewActivityLogHandler(logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{logger: logger}
}

// Handle logs the event with its aggregate and tenant context.
func (h *ActivityLogHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", ev.EventType()),
		zap.String("aggregate_type", ev.AggregateType()),
		zap.String("aggregate_id", ev.AggregateID().String()),
		zap.String("tenant_id", ev.TenantID().String()),
		zap.Time("occurred_at", ev.OccurredAt()),
	)
	return nil
}

// EventTypes returns nil so the handler receives every event.
func (h *ActivityLogHandler) EventTypes() []string {
	return nil
}
