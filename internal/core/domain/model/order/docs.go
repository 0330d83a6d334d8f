// Package order implements the order aggregate of the bookstore domain.
//
// The aggregate root Order owns its order lines (Item), a Money total and a
// lifecycle Status. All access to the lines goes through the root, which
// keeps the consistency boundary intact: after every construction and every
// command the total equals the sum of the line subtotals and the timestamp
// matching the status is present.
//
// Orders are immutable. Command methods (AddItem, RemoveItem,
// UpdateItemQuantity, Place, Complete, Cancel) return a new instance and
// leave the receiver untouched; persisting the returned instance is the
// caller's responsibility.
//
// The package also defines the domain events (PlacedEvent, CancelledEvent)
// that use cases publish after a lifecycle transition has been persisted.
package order
