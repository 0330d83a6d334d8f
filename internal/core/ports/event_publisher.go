package ports

import (
	"context"

	"bookstore/internal/core/domain/model/order"
)

// EventHandler processes a single domain event delivered by the publisher.
type EventHandler func(ctx context.Context, event order.Event) error

// EventPublisher delivers order lifecycle events to interested subscribers.
// Publishing happens after the transaction that produced the event has
// committed; a publish failure must not roll the command back.
type EventPublisher interface {
	// Publish delivers the event to all subscribers registered for its name.
	Publish(ctx context.Context, event order.Event) error

	// Subscribe registers a handler for every event with the given name.
	Subscribe(eventName string, handler EventHandler)
}
