package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var (
	ErrAddItemCommandIsNotConstructed = errors.New(
		"AddItemCommand must be created via NewAddItemCommand constructor",
	)
	ErrBookIDIsRequired  = errors.New("book id is required")
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// AddItemCommand represents a request to add copies of a book to a draft order.
// If the order already has a line for the book, the aggregate merges the
// quantities and keeps this command's unit price.
type AddItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	bookID    string
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewAddItemCommand creates a command to add a book to an order.
// Validates that the order id and unit price are constructed values,
// the book id is not empty and the quantity is positive.
func NewAddItemCommand(
	orderID kernel.UUID, bookID string, quantity int, unitPrice kernel.Money,
) (AddItemCommand, error) {
	itemCommand := AddItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		itemCommand.setOrderID(orderID),
		itemCommand.setBookID(bookID),
		itemCommand.setQuantity(quantity),
		itemCommand.setUnitPrice(unitPrice),
	); err != nil {
		return AddItemCommand{}, err
	}

	return itemCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AddItemCommand) Validate() error {
	return c.guard.Validate(ErrAddItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to add the book to.
func (c AddItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BookID returns the identifier of the book being added.
func (c AddItemCommand) BookID() string {
	return c.bookID
}

// Quantity returns the number of copies to add.
func (c AddItemCommand) Quantity() int {
	return c.quantity
}

// UnitPrice returns the price per copy.
func (c AddItemCommand) UnitPrice() kernel.Money {
	return c.unitPrice
}

func (c *AddItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddItemCommand) setBookID(bookID string) error {
	if bookID == "" {
		return ErrBookIDIsRequired
	}

	c.bookID = bookID
	return nil
}

func (c *AddItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}

func (c *AddItemCommand) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}

	c.unitPrice = unitPrice
	return nil
}
