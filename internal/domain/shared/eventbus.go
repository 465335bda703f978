package shared

import "context"

// EventHandler reacts to domain events dispatched through the bus.
// EventTypes narrows the subscription; an empty list subscribes the
// handler to everything.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher is the side services depend on: after a successful
// write they hand the aggregate's pending events over.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers handlers. Passing explicit event types
// overrides whatever the handler's EventTypes reports.
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
}

// EventBus is the full publish/subscribe surface, implemented by the
// in-process bus in infrastructure/event.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
