// Package ports defines the contracts between the application core and
// infrastructure adapters, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations persist the full aggregate, items included, as one
// consistency boundary.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with all its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByCustomerID retrieves all orders that belong to the given customer,
	// most recently created first.
	GetAllByCustomerID(ctx context.Context, customerID string) ([]*order.Order, error)

	// GetAllDraftsCreatedBefore retrieves draft orders created before the cutoff.
	// Used by the draft expiry job to find abandoned carts.
	GetAllDraftsCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// Delete removes an order aggregate and its items from storage.
	Delete(ctx context.Context, id kernel.UUID) error
}
