package order

import (
	"errors"
	"fmt"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")

	// ErrOrderNotModifiable is returned when items are added, removed or changed
	// on an order that is no longer a draft.
	ErrOrderNotModifiable = errors.New("order items can only be changed while the order is a draft")

	// ErrCannotPlaceEmptyOrder is returned by Place when the order has no items
	// or is not a draft.
	ErrCannotPlaceEmptyOrder = errors.New("order must contain at least one item in draft status to be placed")

	// ErrInvalidStatusTransition is returned when a lifecycle command is not
	// allowed from the current status by the state machine.
	ErrInvalidStatusTransition = errors.New("status transition is not allowed")

	// ErrTotalMismatch is returned by RestoreOrder when the persisted total does
	// not equal the sum of the item subtotals. It indicates corrupted stored state.
	ErrTotalMismatch = errors.New("order total does not equal the sum of item subtotals")
)

// Order represents a customer's book order. It is the aggregate root that owns
// the order lines and manages the lifecycle from draft through placement to
// completion or cancellation.
//
// Order follows these invariants:
//   - The total always equals the sum of all item subtotals
//   - Items are unique by book ID within the order
//   - A Placed order has a placement timestamp, a Completed order a completion
//     timestamp, a Cancelled order a cancellation timestamp
//   - Status transitions follow the state machine defined by Status
//   - Can only be created through NewOrder or RestoreOrder
//
// Order is immutable: every command method returns a new *Order satisfying
// all invariants and leaves the receiver untouched. Callers are responsible
// for persisting the returned instance. Because instances are never mutated,
// they are safe to share across goroutines for reading; serializing
// concurrent writers per order id is the persistence layer's job.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the customer the order belongs to
	customerID string

	// items are the order lines, unique by book ID, in insertion order
	items []Item

	// total is the sum of all item subtotals; zero money for an empty order
	total kernel.Money

	// status represents the current state in the order lifecycle
	status Status

	// createdAt is set once when the draft is created
	createdAt time.Time

	// placedAt, completedAt and cancelledAt record when the respective
	// transition happened; each is nil until then
	placedAt    *time.Time
	completedAt *time.Time
	cancelledAt *time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new draft order for the given customer.
// The order starts with no items, a zero total in the given currency and
// status Draft; createdAt is set to the current time.
//
// Parameters:
//   - customerID: Identifier of the customer (must be non-empty)
//   - currency: Three-letter uppercase currency code for the order's total
//
// Example:
//
//	o, err := order.NewOrder("customer-1", kernel.DefaultCurrency)
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(customerID string, currency string) (*Order, error) {
	if customerID == "" {
		return nil, errs.NewValueIsRequiredError("customerId")
	}

	total, err := kernel.NewZeroMoney(currency)
	if err != nil {
		return nil, err
	}

	return &Order{
		id:            kernel.NewUUID(),
		customerID:    customerID,
		total:         total,
		status:        Draft,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreOrder rebuilds an order from persisted state.
// It runs the full set of invariant checks - the same ones fresh construction
// and every command enforce - so corrupted persisted state is rejected at
// load time instead of being silently accepted:
//
//   - id, items and total must be properly constructed values
//   - items must be unique by book ID
//   - total must equal the sum of item subtotals
//   - the timestamp matching the status must be present
func RestoreOrder(
	id kernel.UUID,
	customerID string,
	items []Item,
	total kernel.Money,
	status Status,
	createdAt time.Time,
	placedAt *time.Time,
	completedAt *time.Time,
	cancelledAt *time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if customerID == "" {
		return nil, errs.NewValueIsRequiredError("customerId")
	}
	if err := total.Validate(); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[item.BookID()]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("book %q appears on more than one line", item.BookID()))
		}
		seen[item.BookID()] = struct{}{}
	}

	o := &Order{
		id:            id,
		customerID:    customerID,
		items:         cloneItems(items),
		total:         total,
		status:        status,
		createdAt:     createdAt,
		placedAt:      cloneTime(placedAt),
		completedAt:   cloneTime(completedAt),
		cancelledAt:   cloneTime(cancelledAt),
		isConstructed: true,
	}

	if err := o.checkInvariants(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a constructor.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer the order belongs to.
func (o *Order) CustomerID() string {
	return o.customerID
}

// Items returns a copy of the order lines.
// Mutating the returned slice does not affect the order.
func (o *Order) Items() []Item {
	return cloneItems(o.items)
}

// Total returns the sum of all item subtotals.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the draft was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// PlacedAt returns when the order was placed, or nil for an unplaced order.
func (o *Order) PlacedAt() *time.Time {
	return cloneTime(o.placedAt)
}

// CompletedAt returns when the order was completed, or nil.
func (o *Order) CompletedAt() *time.Time {
	return cloneTime(o.completedAt)
}

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time {
	return cloneTime(o.cancelledAt)
}

// CanModify reports whether items may currently be added, removed or changed.
// Only draft orders are modifiable.
func (o *Order) CanModify() bool {
	return o.status.IsDraft()
}

// CanPlace reports whether the order may currently be placed:
// it must be a draft and contain at least one item.
func (o *Order) CanPlace() bool {
	return len(o.items) > 0 && o.status.IsDraft()
}

// TotalItemCount returns the sum of the quantities of all lines.
func (o *Order) TotalItemCount() int {
	count := 0
	for _, item := range o.items {
		count += item.Quantity()
	}
	return count
}

// AddItem returns a new Order with a line for the given book added.
//
// This method enforces the following business rules:
//   - The order must be a draft (ErrOrderNotModifiable otherwise)
//   - If a line for the same book already exists, the lines are merged:
//     the quantities are summed and the unit price of this call wins
//   - The total is recalculated from all line subtotals
//
// The receiver is never modified.
//
// Example:
//
//	price, _ := kernel.NewMoney(1500, "JPY")
//	updated, err := o.AddItem("book-1", 2, price)
//	if err != nil {
//	    // Handle rejected command; o is unchanged either way
//	}
func (o *Order) AddItem(bookID string, quantity int, unitPrice kernel.Money) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.CanModify() {
		return nil, fmt.Errorf("%w: status is %s", ErrOrderNotModifiable, o.status)
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	newItems := make([]Item, 0, len(o.items)+1)
	merged := false
	for _, existing := range o.items {
		if existing.IsForBook(bookID) {
			mergedItem, err := NewItem(bookID, existing.Quantity()+quantity, unitPrice)
			if err != nil {
				return nil, err
			}
			newItems = append(newItems, mergedItem)
			merged = true
			continue
		}
		newItems = append(newItems, existing)
	}

	if !merged {
		item, err := NewItem(bookID, quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		newItems = append(newItems, item)
	}

	return o.withItems(newItems)
}

// RemoveItem returns a new Order with the line for the given book removed
// and the total recalculated.
//
// Fails with ErrOrderNotModifiable when the order is not a draft and with an
// object-not-found error when no line for the book exists.
func (o *Order) RemoveItem(bookID string) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.CanModify() {
		return nil, fmt.Errorf("%w: status is %s", ErrOrderNotModifiable, o.status)
	}

	newItems := make([]Item, 0, len(o.items))
	found := false
	for _, existing := range o.items {
		if existing.IsForBook(bookID) {
			found = true
			continue
		}
		newItems = append(newItems, existing)
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("bookId", bookID)
	}

	return o.withItems(newItems)
}

// UpdateItemQuantity returns a new Order with the quantity of the line for
// the given book replaced. The unit price of the line is unchanged and the
// total is recalculated.
//
// Fails with ErrOrderNotModifiable when the order is not a draft and with an
// object-not-found error when no line for the book exists.
func (o *Order) UpdateItemQuantity(bookID string, newQuantity int) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.CanModify() {
		return nil, fmt.Errorf("%w: status is %s", ErrOrderNotModifiable, o.status)
	}

	newItems := make([]Item, 0, len(o.items))
	found := false
	for _, existing := range o.items {
		if existing.IsForBook(bookID) {
			updated, err := existing.WithQuantity(newQuantity)
			if err != nil {
				return nil, err
			}
			newItems = append(newItems, updated)
			found = true
			continue
		}
		newItems = append(newItems, existing)
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("bookId", bookID)
	}

	return o.withItems(newItems)
}

// Place returns a new Order in Placed status with placedAt set to now.
//
// This method enforces the following business rules:
//   - The order must be placeable: a draft with at least one item
//     (ErrCannotPlaceEmptyOrder otherwise)
//   - The Draft to Placed transition must be allowed by the state machine,
//     which is the authoritative check (ErrInvalidStatusTransition otherwise)
//
// The receiver is never modified.
func (o *Order) Place() (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.CanPlace() {
		return nil, ErrCannotPlaceEmptyOrder
	}
	if !o.status.CanTransitionTo(Placed) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.status, Placed)
	}

	placed := o.clone()
	now := time.Now().UTC()
	placed.status = Placed
	placed.placedAt = &now

	if err := placed.checkInvariants(); err != nil {
		return nil, err
	}
	return placed, nil
}

// Complete returns a new Order in Completed status with completedAt set to now.
// Only a placed order can be completed; ErrInvalidStatusTransition is
// returned from any other status. Completed is terminal.
func (o *Order) Complete() (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.status.CanTransitionTo(Completed) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.status, Completed)
	}

	completed := o.clone()
	now := time.Now().UTC()
	completed.status = Completed
	completed.completedAt = &now

	if err := completed.checkInvariants(); err != nil {
		return nil, err
	}
	return completed, nil
}

// Cancel returns a new Order in Cancelled status with cancelledAt set to now.
// Cancellation is allowed from Draft and Placed only;
// ErrInvalidStatusTransition is returned from a terminal status.
// Cancelled is terminal.
func (o *Order) Cancel() (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.status.CanTransitionTo(Cancelled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.status, Cancelled)
	}

	cancelled := o.clone()
	now := time.Now().UTC()
	cancelled.status = Cancelled
	cancelled.cancelledAt = &now

	if err := cancelled.checkInvariants(); err != nil {
		return nil, err
	}
	return cancelled, nil
}

// withItems returns a clone carrying the given items and a total recalculated
// from them. The total is always re-derived from scratch after an items
// change, never patched incrementally.
func (o *Order) withItems(items []Item) (*Order, error) {
	total, err := calculateTotal(items, o.total.Currency())
	if err != nil {
		return nil, err
	}

	updated := o.clone()
	updated.items = items
	updated.total = total

	if err = updated.checkInvariants(); err != nil {
		return nil, err
	}
	return updated, nil
}

// calculateTotal folds the item subtotals into a single Money value.
// An empty list yields zero in the fallback currency; otherwise the fold is
// seeded with zero in the currency of the first item, so a line in a
// different currency surfaces as a currency mismatch from Money.Add.
func calculateTotal(items []Item, fallbackCurrency string) (kernel.Money, error) {
	if len(items) == 0 {
		return kernel.NewZeroMoney(fallbackCurrency)
	}

	total, err := kernel.NewZeroMoney(items[0].Subtotal().Currency())
	if err != nil {
		return kernel.Money{}, err
	}
	for _, item := range items {
		total, err = total.Add(item.Subtotal())
		if err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

// checkInvariants verifies the aggregate-wide consistency rules.
// Violations here indicate corrupted persisted state or a bug in this
// package, not caller mistakes.
func (o *Order) checkInvariants() error {
	if err := o.status.Validate(); err != nil {
		return err
	}

	expected, err := calculateTotal(o.items, o.total.Currency())
	if err != nil {
		return err
	}
	if !o.total.IsEqual(expected) {
		return fmt.Errorf("%w: have %s, want %s", ErrTotalMismatch, o.total, expected)
	}

	if o.status.IsPlaced() && o.placedAt == nil {
		return errs.NewValueIsRequiredError("placedAt")
	}
	if o.status.IsCompleted() && o.completedAt == nil {
		return errs.NewValueIsRequiredError("completedAt")
	}
	if o.status.IsCancelled() && o.cancelledAt == nil {
		return errs.NewValueIsRequiredError("cancelledAt")
	}

	return nil
}

// clone returns a deep copy of the order. Items are value types and copied by
// slice clone; timestamp pointers are re-allocated so the copy shares no
// mutable state with the original.
func (o *Order) clone() *Order {
	c := *o
	c.items = cloneItems(o.items)
	c.placedAt = cloneTime(o.placedAt)
	c.completedAt = cloneTime(o.completedAt)
	c.cancelledAt = cloneTime(o.cancelledAt)
	return &c
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	c := make([]Item, len(items))
	copy(c, items)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
