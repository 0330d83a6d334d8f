package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var (
	ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
		"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
	)
	ErrCustomerIDIsRequired = errors.New("customer id is required")
)

// GetCustomerOrdersQuery retrieves the order history of one customer.
// Returns order summaries without line detail, newest first.
type GetCustomerOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID string

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a query for a customer's order history.
func NewGetCustomerOrdersQuery(customerID string) (GetCustomerOrdersQuery, error) {
	query := GetCustomerOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setCustomerID(customerID); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the identifier of the customer whose orders are requested.
func (q GetCustomerOrdersQuery) CustomerID() string {
	return q.customerID
}

func (q *GetCustomerOrdersQuery) setCustomerID(customerID string) error {
	if customerID == "" {
		return ErrCustomerIDIsRequired
	}

	q.customerID = customerID
	return nil
}

// GetCustomerOrdersQueryResponse represents one order summary in a customer's
// history. ItemCount is the total number of copies across all lines.
type GetCustomerOrdersQueryResponse struct {
	ID          kernel.UUID
	Currency    string
	TotalAmount int64
	Status      string
	ItemCount   int
	CreatedAt   time.Time
}
