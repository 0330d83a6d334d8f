package order

import (
	"fmt"

	"bookstore/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Draft ──────> Placed ──────> Completed
//	  │             │
//	  └──> Cancelled <──┘
//
// Completed and Cancelled are terminal states with no outgoing transitions.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status when an order is first created.
	// Items can only be added, removed or changed while the order is a draft.
	Draft

	// Placed indicates the customer has placed the order.
	// A placed order can no longer be modified, only completed or cancelled.
	Placed

	// Completed indicates the order has been fulfilled.
	// This is a terminal state with no further transitions allowed.
	Completed

	// Cancelled indicates the order was aborted before completion.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Draft:     "Draft",
		Placed:    "Placed",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:     "Draft",
		Placed:    "Placed",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// getStatusTransitions returns the fixed adjacency table of the state machine.
// A status maps to the set of statuses it may legally transition to;
// terminal statuses map to an empty set.
func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Draft:     {Placed, Cancelled},
		Placed:    {Completed, Cancelled},
		Completed: {},
		Cancelled: {},
	}
}

// StatusFromString parses a status from its canonical name.
// Accepted values are exactly "Draft", "Placed", "Completed" and "Cancelled";
// anything else is an error.
//
// Example:
//
//	status, err := order.StatusFromString("Placed")
//	if err != nil {
//	    // Handle unknown status name
//	}
func StatusFromString(value string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == value {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status name", value))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Draft, Placed, Completed, Cancelled.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// Returns:
//   - "Draft", "Placed", "Completed" or "Cancelled" for valid statuses
//   - "Unknown" for invalid status values
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanTransitionTo reports whether the state machine allows moving from the
// current status to target. It is a pure lookup in the transition table and
// never returns an error: unknown statuses simply have no legal transitions.
//
// Example:
//
//	order.Draft.CanTransitionTo(order.Placed)     // true
//	order.Completed.CanTransitionTo(order.Placed) // false
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getStatusTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsDraft reports whether the status is Draft.
func (s Status) IsDraft() bool {
	return s == Draft
}

// IsPlaced reports whether the status is Placed.
func (s Status) IsPlaced() bool {
	return s == Placed
}

// IsCompleted reports whether the status is Completed.
func (s Status) IsCompleted() bool {
	return s == Completed
}

// IsCancelled reports whether the status is Cancelled.
func (s Status) IsCancelled() bool {
	return s == Cancelled
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(getStatusTransitions()[s]) == 0 && s.Validate() == nil
}
