package shared

import "context"

// EventHandler consumes published events. Handlers returning a nil or empty
// EventTypes receive every event.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher hands events to every interested handler
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}
