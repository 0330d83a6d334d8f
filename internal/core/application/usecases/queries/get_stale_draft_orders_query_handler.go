package queries

import (
	"context"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleDraftOrdersQueryHandler reads identifiers of abandoned draft orders.
// Results are sorted oldest first so the expiry job processes the longest
// abandoned carts before fresher ones.
type GetStaleDraftOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleDraftOrdersQueryHandler creates a handler for stale draft queries.
func NewGetStaleDraftOrdersQueryHandler(db *gorm.DB) GetStaleDraftOrdersQueryHandler {
	return GetStaleDraftOrdersQueryHandler{db: db}
}

// Handle executes the query and returns drafts created before the cutoff.
func (h GetStaleDraftOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStaleDraftOrdersQuery,
) ([]GetStaleDraftOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drafts := make([]GetStaleDraftOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			created_at
		FROM orders
		WHERE status = ? AND created_at < ?
		ORDER BY created_at ASC
	`, int(order.Draft), query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var draft GetStaleDraftOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&draft.CustomerID,
			&draft.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		draft.ID = orderID

		drafts = append(drafts, draft)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drafts, nil
}
