package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrRemoveItemCommandIsNotConstructed = errors.New(
	"RemoveItemCommand must be created via NewRemoveItemCommand constructor",
)

// RemoveItemCommand represents a request to drop a book line from a draft order.
type RemoveItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	bookID  string

	guard guard.ConstructorGuard
}

// NewRemoveItemCommand creates a command to remove a book from an order.
func NewRemoveItemCommand(orderID kernel.UUID, bookID string) (RemoveItemCommand, error) {
	itemCommand := RemoveItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		itemCommand.setOrderID(orderID),
		itemCommand.setBookID(bookID),
	); err != nil {
		return RemoveItemCommand{}, err
	}

	return itemCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to remove the book from.
func (c RemoveItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BookID returns the identifier of the book being removed.
func (c RemoveItemCommand) BookID() string {
	return c.bookID
}

func (c *RemoveItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RemoveItemCommand) setBookID(bookID string) error {
	if bookID == "" {
		return ErrBookIDIsRequired
	}

	c.bookID = bookID
	return nil
}
