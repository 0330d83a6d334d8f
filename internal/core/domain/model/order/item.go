package order

import (
	"errors"
	"fmt"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created through
	// the NewItem or RestoreItem factory functions.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructors")

	// ErrSubtotalMismatch is returned by RestoreItem when the persisted subtotal
	// does not equal unit price times quantity. It indicates corrupted stored state.
	ErrSubtotalMismatch = errors.New("item subtotal does not equal unit price times quantity")
)

// Item is a line of an Order: one book, a quantity and the price at which it
// was added. An Item is a child entity of the Order aggregate - its identity
// (the book ID) is only meaningful within its owning order, it is never
// persisted or referenced on its own.
//
// Item follows these invariants:
//   - bookID is non-empty
//   - quantity is greater than 0
//   - subtotal always equals unitPrice multiplied by quantity
//
// Item is immutable: WithQuantity returns a new value and the receiver is
// never changed.
type Item struct { //nolint:recvcheck //using for validation
	bookID    string
	quantity  int
	unitPrice kernel.Money
	subtotal  kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates a new order line for the given book.
// The subtotal is computed as unitPrice multiplied by quantity.
//
// Parameters:
//   - bookID: Identifier of the book within the catalog (must be non-empty)
//   - quantity: Number of copies (must be greater than 0)
//   - unitPrice: Price per copy (must be a constructed Money value)
//
// Example:
//
//	price, _ := kernel.NewMoney(1500, "JPY")
//	item, err := order.NewItem("book-1", 2, price)
//	if err != nil {
//	    // Handle validation error
//	}
//	// item.Subtotal() is 3000 JPY
func NewItem(bookID string, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setBookID(bookID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	subtotal, err := unitPrice.Multiply(int64(quantity))
	if err != nil {
		return Item{}, err
	}
	item.subtotal = subtotal

	return item, nil
}

// RestoreItem rebuilds an order line from persisted state.
// It runs the same validation as NewItem and additionally verifies that the
// supplied subtotal equals unitPrice multiplied by quantity, returning
// ErrSubtotalMismatch otherwise. Corrupted rows are rejected at load time,
// never silently accepted.
func RestoreItem(bookID string, quantity int, unitPrice kernel.Money, subtotal kernel.Money) (Item, error) {
	item, err := NewItem(bookID, quantity, unitPrice)
	if err != nil {
		return Item{}, err
	}

	if err = subtotal.Validate(); err != nil {
		return Item{}, err
	}
	if !item.subtotal.IsEqual(subtotal) {
		return Item{}, fmt.Errorf("%w: have %s, want %s", ErrSubtotalMismatch, subtotal, item.subtotal)
	}

	return item, nil
}

// Validate ensures the Item was created through one of its constructors.
// Returns ErrItemIsNotConstructed for zero-value instances.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// BookID returns the identifier of the book this line refers to.
func (i Item) BookID() string {
	return i.bookID
}

// Quantity returns the number of copies on this line.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per copy.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns the line total: unit price multiplied by quantity.
func (i Item) Subtotal() kernel.Money {
	return i.subtotal
}

// IsForBook reports whether this line refers to the given book.
func (i Item) IsForBook(bookID string) bool {
	return i.bookID == bookID
}

// WithQuantity returns a new Item with the quantity replaced and the subtotal
// recomputed. The book and unit price are unchanged; the receiver is untouched.
// Fails if newQuantity is not greater than 0.
func (i Item) WithQuantity(newQuantity int) (Item, error) {
	if err := i.Validate(); err != nil {
		return Item{}, err
	}

	return NewItem(i.bookID, newQuantity, i.unitPrice)
}

// setBookID sets the book identifier with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// The private setters enable self-encapsulated validation of business
// requirements during object construction.
func (i *Item) setBookID(bookID string) error {
	if bookID == "" {
		return errs.NewValueIsRequiredError("bookId")
	}

	i.bookID = bookID
	return nil
}

// setQuantity sets the quantity with validation.
func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	i.quantity = quantity
	return nil
}

// setUnitPrice sets the unit price with validation.
func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}

	i.unitPrice = unitPrice
	return nil
}
