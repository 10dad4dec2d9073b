package kernel

import (
	"errors"
	"fmt"
	"strings"

	"dropship/internal/pkg/errs"
	"dropship/internal/pkg/guard"
)

// currencyCodeLength is the length of an ISO 4217 alphabetic currency code.
const currencyCodeLength = 3

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money must be created using the NewMoney constructor to ensure validity.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// Money represents a monetary amount in minor units (e.g. cents) together
// with its ISO 4217 currency code. Money is an immutable value object; the
// zero value is invalid and will fail validation.
//
// Amounts are kept in minor units to avoid floating-point rounding in price
// arithmetic.
//
// Example:
//
//	price, err := kernel.NewMoney(1999, "USD")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(price) // Output: 1999 USD
type Money struct { //nolint:recvcheck //using for validation
	amount   int64
	currency string

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount in minor units and an
// ISO 4217 currency code. The amount must not be negative and the currency
// must be a three-letter code; lowercase input is normalized to uppercase.
func NewMoney(amount int64, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// Validate checks that the Money value was created through NewMoney.
// The zero value fails with ErrMoneyIsNotConstructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the monetary amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// Multiply returns the total for the given quantity with the same currency.
// The quantity must be positive.
func (m Money) Multiply(qty int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if qty <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	return NewMoney(m.amount*int64(qty), m.currency)
}

// IsEqual reports whether two Money values have the same amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// String returns the amount in minor units followed by the currency code,
// e.g. "1999 USD". Implements fmt.Stringer.
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}

func (m *Money) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != currencyCodeLength {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a three-letter ISO 4217 code", currency))
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return errs.NewValueIsInvalidErrorWithCause("currency",
				fmt.Errorf("%q is not a three-letter ISO 4217 code", currency))
		}
	}

	m.currency = currency
	return nil
}
