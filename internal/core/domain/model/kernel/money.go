package kernel

import (
	"errors"
	"fmt"
	"regexp"

	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

// DefaultCurrency is the currency used when callers do not specify one.
const DefaultCurrency = "JPY"

// currencyPattern matches ISO-4217 style codes: exactly three uppercase letters.
var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

var (
	// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
	// Money values must be created using NewMoney or NewZeroMoney constructors to ensure validity.
	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
		"money must be created via NewMoney or NewZeroMoney constructors")

	// ErrCurrencyMismatch is returned by arithmetic and ordering operations
	// when the operand currencies differ.
	ErrCurrencyMismatch = errors.New("money currencies do not match")

	// ErrNegativeMoneyResult is returned when a subtraction would drop the amount below zero.
	// Money amounts are never negative.
	ErrNegativeMoneyResult = errors.New("money amount cannot become negative")

	// ErrInvalidMultiplier is returned by Multiply for negative factors.
	ErrInvalidMultiplier = errors.New("money multiplier cannot be negative")
)

// Money represents a monetary amount in a single currency.
// The amount is held in the currency's minor units (e.g. yen, cents) and is
// never negative. Money is an immutable value object: every arithmetic
// operation returns a new Money value and never modifies its receiver.
//
// The zero value of Money is invalid and will fail validation - use constructors to create instances.
//
// Example:
//
//	price, err := kernel.NewMoney(1500, "JPY")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Price: %s", price) // Output: 1500 JPY
type Money struct { //nolint:recvcheck //using for validation
	amount   int64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates a new Money value with the specified amount and currency.
// The amount must not be negative and the currency must be exactly three
// uppercase letters. Returns an error if either rule is violated.
//
// Parameters:
//   - amount: The amount in minor currency units (must be >= 0)
//   - currency: Three-letter uppercase currency code, e.g. "JPY" or "USD"
//
// Example:
//
//	m, err := NewMoney(1500, kernel.DefaultCurrency)
//	if err != nil {
//	    log.Fatal("Invalid money:", err)
//	}
func NewMoney(amount int64, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// NewZeroMoney creates a Money value of zero in the given currency.
// It is the seed value for summing line subtotals.
func NewZeroMoney(currency string) (Money, error) {
	return NewMoney(0, currency)
}

// Validate checks if the Money was properly constructed using a constructor.
// The zero value of Money is invalid and will fail this validation.
//
// Returns:
//   - error: ErrMoneyIsNotConstructed if the money was not properly initialized, nil otherwise
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the amount in minor currency units.
// The returned amount is guaranteed to be non-negative for properly
// constructed Money values.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the three-letter currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns a new Money holding the sum of both amounts.
// Both operands must be properly constructed and share the same currency;
// ErrCurrencyMismatch is returned otherwise.
//
// Example:
//
//	a, _ := NewMoney(3000, "JPY")
//	b, _ := NewMoney(2000, "JPY")
//	sum, err := a.Add(b)
//	// sum is 5000 JPY, err = nil
func (m Money) Add(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}

	return NewMoney(m.amount+other.amount, m.currency)
}

// Subtract returns a new Money holding the difference of both amounts.
// Both operands must share the same currency, and the result must not be
// negative; ErrNegativeMoneyResult is returned when it would be.
func (m Money) Subtract(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	if other.amount > m.amount {
		return Money{}, fmt.Errorf("%w: %d - %d", ErrNegativeMoneyResult, m.amount, other.amount)
	}

	return NewMoney(m.amount-other.amount, m.currency)
}

// Multiply returns a new Money holding the amount multiplied by factor.
// The factor must not be negative; ErrInvalidMultiplier is returned otherwise.
// Multiplying by zero yields a zero amount in the same currency.
//
// Example:
//
//	unitPrice, _ := NewMoney(1500, "JPY")
//	subtotal, err := unitPrice.Multiply(2)
//	// subtotal is 3000 JPY, err = nil
func (m Money) Multiply(factor int64) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if factor < 0 {
		return Money{}, fmt.Errorf("%w: %d", ErrInvalidMultiplier, factor)
	}

	return NewMoney(m.amount*factor, m.currency)
}

// IsGreaterThan reports whether m holds a strictly larger amount than other.
// Returns ErrCurrencyMismatch when the currencies differ: amounts in
// different currencies have no defined ordering.
func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return false, err
	}
	if m.currency != other.currency {
		return false, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}

	return m.amount > other.amount, nil
}

// IsLessThan reports whether m holds a strictly smaller amount than other.
// Returns ErrCurrencyMismatch when the currencies differ.
func (m Money) IsLessThan(other Money) (bool, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return false, err
	}
	if m.currency != other.currency {
		return false, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}

	return m.amount < other.amount, nil
}

// IsEqual compares two Money values for equality.
// Two Money values are equal when both amount and currency match.
// Unlike the ordering comparisons, differing currencies are not an error
// here: the values are simply not equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// String returns a human-readable representation such as "1500 JPY".
// This method implements the fmt.Stringer interface.
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}

// setAmount sets the amount with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// The private setters enable self-encapsulated validation of business
// requirements during object construction.
func (m *Money) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", amount))
	}

	m.amount = amount
	return nil
}

// setCurrency sets the currency with validation.
func (m *Money) setCurrency(currency string) error {
	if !currencyPattern.MatchString(currency) {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a three-letter uppercase code", currency))
	}

	m.currency = currency
	return nil
}
