package order

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
)

// Event is a fact about an order lifecycle transition.
// The aggregate itself does not publish events; use cases build them from the
// aggregate's state after the transition has been persisted successfully.
type Event interface {
	// Name returns the canonical event name used for routing subscribers.
	Name() string

	// OccurredOn returns when the transition happened.
	OccurredOn() time.Time
}

// Event names used for routing.
const (
	PlacedEventName    = "order.placed"
	CancelledEventName = "order.cancelled"
)

var (
	// ErrOrderIsNotPlaced is returned when building a PlacedEvent from an order
	// that is not in Placed status.
	ErrOrderIsNotPlaced = errors.New("placed event requires an order in Placed status")

	// ErrOrderIsNotCancelled is returned when building a CancelledEvent from an
	// order that is not in Cancelled status.
	ErrOrderIsNotCancelled = errors.New("cancelled event requires an order in Cancelled status")
)

// PlacedEvent records that a customer placed an order.
// It carries the full order content at placement time so subscribers do not
// have to load the aggregate again.
type PlacedEvent struct {
	OrderID    kernel.UUID
	CustomerID string
	Status     Status
	Items      []Item
	Total      kernel.Money
	PlacedAt   time.Time
}

// NewPlacedEvent builds a PlacedEvent from a freshly placed order.
// The order must be valid and in Placed status.
func NewPlacedEvent(o *Order) (PlacedEvent, error) {
	if err := o.Validate(); err != nil {
		return PlacedEvent{}, err
	}
	if !o.Status().IsPlaced() || o.PlacedAt() == nil {
		return PlacedEvent{}, ErrOrderIsNotPlaced
	}

	return PlacedEvent{
		OrderID:    o.ID(),
		CustomerID: o.CustomerID(),
		Status:     o.Status(),
		Items:      o.Items(),
		Total:      o.Total(),
		PlacedAt:   *o.PlacedAt(),
	}, nil
}

// Name implements Event.
func (e PlacedEvent) Name() string {
	return PlacedEventName
}

// OccurredOn implements Event.
func (e PlacedEvent) OccurredOn() time.Time {
	return e.PlacedAt
}

// CancelledEvent records that an order was cancelled, either by the customer
// or by the draft expiry job. PriorStatus tells subscribers what the order
// was before cancellation (a draft or an already placed order).
type CancelledEvent struct {
	OrderID     kernel.UUID
	CustomerID  string
	Status      Status
	PriorStatus Status
	CancelledAt time.Time
}

// NewCancelledEvent builds a CancelledEvent from a freshly cancelled order.
// The order must be valid and in Cancelled status; priorStatus is the status
// the order had before the cancel command.
func NewCancelledEvent(o *Order, priorStatus Status) (CancelledEvent, error) {
	if err := o.Validate(); err != nil {
		return CancelledEvent{}, err
	}
	if !o.Status().IsCancelled() || o.CancelledAt() == nil {
		return CancelledEvent{}, ErrOrderIsNotCancelled
	}
	if err := priorStatus.Validate(); err != nil {
		return CancelledEvent{}, err
	}

	return CancelledEvent{
		OrderID:     o.ID(),
		CustomerID:  o.CustomerID(),
		Status:      o.Status(),
		PriorStatus: priorStatus,
		CancelledAt: *o.CancelledAt(),
	}, nil
}

// Name implements Event.
func (e CancelledEvent) Name() string {
	return CancelledEventName
}

// OccurredOn implements Event.
func (e CancelledEvent) OccurredOn() time.Time {
	return e.CancelledAt
}
