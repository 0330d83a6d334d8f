// Package eventbus provides an in-process implementation of the event
// publisher port. Events are delivered synchronously to subscribers
// registered by name; there is no external broker and no persistence.
package eventbus

import (
	"context"
	"errors"
	"sync"

	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
)

// InMemoryEventBus routes order events to subscribers within the process.
// Safe for concurrent publish and subscribe calls.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]ports.EventHandler
}

// NewInMemoryEventBus creates an event bus with no subscribers.
func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{
		handlers: make(map[string][]ports.EventHandler),
	}
}

// Subscribe registers a handler for all events published under the given name.
// Handlers registered for the same name run in registration order.
func (b *InMemoryEventBus) Subscribe(eventName string, handler ports.EventHandler) {
	if handler == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish delivers the event to every subscriber registered for its name.
// All handlers run even if one fails; their errors are joined into the result.
// Publishing with no subscribers is not an error.
func (b *InMemoryEventBus) Publish(ctx context.Context, event order.Event) error {
	if event == nil {
		return nil
	}

	b.mu.RLock()
	handlers := make([]ports.EventHandler, len(b.handlers[event.Name()]))
	copy(handlers, b.handlers[event.Name()])
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
