// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"sort"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The aggregate is stored across two tables: the order header here and its
// book lines in order_items. Both are written together so the row set always
// matches a valid aggregate state.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID  string    `gorm:"index"`
	Currency    string
	TotalAmount int64
	Status      int `gorm:"index"`
	CreatedAt   time.Time
	PlacedAt    *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	Items       []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents a single book line of an order.
// Position preserves the insertion order of lines so a reloaded aggregate
// lists its items the way the customer added them.
type ItemDTO struct {
	OrderID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookID          string    `gorm:"primaryKey"`
	Position        int
	Quantity        int
	UnitPriceAmount int64
	SubtotalAmount  int64
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Amounts are stored as minor units; the currency lives on the header because
// the aggregate guarantees all its money values share one currency.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for position, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			OrderID:         aggregate.ID().Bytes(),
			BookID:          item.BookID(),
			Position:        position,
			Quantity:        item.Quantity(),
			UnitPriceAmount: item.UnitPrice().Amount(),
			SubtotalAmount:  item.Subtotal().Amount(),
		})
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		CustomerID:  aggregate.CustomerID(),
		Currency:    aggregate.Total().Currency(),
		TotalAmount: aggregate.Total().Amount(),
		Status:      int(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
		PlacedAt:    aggregate.PlacedAt(),
		CompletedAt: aggregate.CompletedAt(),
		CancelledAt: aggregate.CancelledAt(),
		Items:       itemDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate through RestoreOrder so every stored row
// passes the same invariant checks as a freshly built order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sort.Slice(dto.Items, func(i, j int) bool {
		return dto.Items[i].Position < dto.Items[j].Position
	})

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		unitPrice, priceErr := kernel.NewMoney(itemDTO.UnitPriceAmount, dto.Currency)
		if priceErr != nil {
			return nil, priceErr
		}

		subtotal, subtotalErr := kernel.NewMoney(itemDTO.SubtotalAmount, dto.Currency)
		if subtotalErr != nil {
			return nil, subtotalErr
		}

		item, itemErr := order.RestoreItem(itemDTO.BookID, itemDTO.Quantity, unitPrice, subtotal)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.TotalAmount, dto.Currency)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.CustomerID,
		items,
		total,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.PlacedAt,
		dto.CompletedAt,
		dto.CancelledAt,
	)
}
