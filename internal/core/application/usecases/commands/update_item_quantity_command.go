package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrUpdateItemQuantityCommandIsNotConstructed = errors.New(
	"UpdateItemQuantityCommand must be created via NewUpdateItemQuantityCommand constructor",
)

// UpdateItemQuantityCommand represents a request to replace the quantity of an
// existing book line on a draft order. The line keeps its current unit price.
type UpdateItemQuantityCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	bookID   string
	quantity int

	guard guard.ConstructorGuard
}

// NewUpdateItemQuantityCommand creates a command to change a book line quantity.
func NewUpdateItemQuantityCommand(
	orderID kernel.UUID, bookID string, quantity int,
) (UpdateItemQuantityCommand, error) {
	itemCommand := UpdateItemQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		itemCommand.setOrderID(orderID),
		itemCommand.setBookID(bookID),
		itemCommand.setQuantity(quantity),
	); err != nil {
		return UpdateItemQuantityCommand{}, err
	}

	return itemCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemQuantityCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being changed.
func (c UpdateItemQuantityCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BookID returns the identifier of the book line being changed.
func (c UpdateItemQuantityCommand) BookID() string {
	return c.bookID
}

// Quantity returns the new number of copies for the line.
func (c UpdateItemQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateItemQuantityCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateItemQuantityCommand) setBookID(bookID string) error {
	if bookID == "" {
		return ErrBookIDIsRequired
	}

	c.bookID = bookID
	return nil
}

func (c *UpdateItemQuantityCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
