// Package queries contains read-side operations of the CQRS architecture.
// Query handlers bypass the domain model and read projections straight from
// the database, returning lightweight response structs.
package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with all its book lines.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	response, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s: %d %s\n", response.ID, response.TotalAmount, response.Currency)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order by its identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetOrderQueryResponse represents the full read model of one order.
// Amounts are minor units of the order currency; Status is the canonical
// status name.
type GetOrderQueryResponse struct {
	ID          kernel.UUID
	CustomerID  string
	Currency    string
	TotalAmount int64
	Status      string
	CreatedAt   time.Time
	PlacedAt    *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	Items       []GetOrderItemResponse
}

// GetOrderItemResponse represents one book line of the order read model.
type GetOrderItemResponse struct {
	BookID          string
	Quantity        int
	UnitPriceAmount int64
	SubtotalAmount  int64
}
