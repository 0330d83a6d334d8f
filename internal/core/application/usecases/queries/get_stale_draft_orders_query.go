package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var (
	ErrGetStaleDraftOrdersQueryIsNotConstructed = errors.New(
		"GetStaleDraftOrdersQuery must be created via NewGetStaleDraftOrdersQuery constructor",
	)
	ErrCutoffIsRequired = errors.New("cutoff time is required")
)

// GetStaleDraftOrdersQuery retrieves draft orders abandoned before the cutoff.
// Used by the draft expiry job to find carts to cancel.
type GetStaleDraftOrdersQuery struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetStaleDraftOrdersQuery creates a query for drafts created before cutoff.
func NewGetStaleDraftOrdersQuery(cutoff time.Time) (GetStaleDraftOrdersQuery, error) {
	query := GetStaleDraftOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setCutoff(cutoff); err != nil {
		return GetStaleDraftOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStaleDraftOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleDraftOrdersQueryIsNotConstructed)
}

// Cutoff returns the creation time threshold.
func (q GetStaleDraftOrdersQuery) Cutoff() time.Time {
	return q.cutoff
}

func (q *GetStaleDraftOrdersQuery) setCutoff(cutoff time.Time) error {
	if cutoff.IsZero() {
		return ErrCutoffIsRequired
	}

	q.cutoff = cutoff
	return nil
}

// GetStaleDraftOrdersQueryResponse identifies one abandoned draft order.
type GetStaleDraftOrdersQueryResponse struct {
	ID         kernel.UUID
	CustomerID string
	CreatedAt  time.Time
}
