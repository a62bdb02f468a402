// Package money provides a fixed-point monetary amount stored as integer cents.
//
// Amounts are signed: positive means money owed to the current user, negative
// means the current user owes it. Calculations stay in cents; Float64 exists for
// display and for percentage back-computation only.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrInvalidAmount is returned when a string cannot be parsed as an amount.
var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a monetary value in cents.
type Amount int64

// Tolerance is the largest difference for which two amounts still reconcile.
// Reconciliation is |a-b| < 0.01, which in cents means the amounts are equal.
const Tolerance Amount = 1

// Zero is the zero amount.
const Zero Amount = 0

var hundred = decimal.NewFromInt(100)

// Cents builds an amount from a count of cents.
func Cents(c int64) Amount {
	return Amount(c)
}

// FromFloat converts a float value (e.g. 12.345) to cents with half-up rounding.
func FromFloat(f float64) Amount {
	return fromDecimal(decimal.NewFromFloat(f))
}

// Parse converts a decimal string to an amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an optional
// leading sign, and rounds half away from zero on the third decimal place.
// Commas are digit grouping when a dot is present or when there is more than
// one of them, so Format output such as "1,23,456.50" parses back.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.Contains(s, ".") || strings.Count(s, ",") > 1 {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return fromDecimal(d), nil
}

func fromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Mul(hundred).Round(0).IntPart())
}

// Decimal returns the amount as a decimal in currency units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// Float64 returns the amount in currency units.
func (a Amount) Float64() float64 {
	return a.Decimal().InexactFloat64()
}

// Abs returns the absolute value of the amount.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// Sign returns -1, 0 or +1.
func (a Amount) Sign() int {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}

// String renders the signed amount with two decimals, e.g. "-280.50".
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// Reconciles reports whether a and b are equal within Tolerance.
func Reconciles(a, b Amount) bool {
	return (a - b).Abs() < Tolerance
}

// Sum adds up the given amounts.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}

var displayTag = language.MustParse("en-IN")

// Format renders |a| with two fraction digits and en-IN digit grouping, the way
// balances are shown next to their "you owe" / "owes you" label.
func Format(a Amount) string {
	return message.NewPrinter(displayTag).Sprint(number.Decimal(a.Abs().Float64(), number.Scale(2)))
}

// MarshalJSON encodes the amount as a decimal number in currency units.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		return nil
	}
	return a.UnmarshalText([]byte(s))
}

// MarshalText encodes the amount as a decimal string.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a decimal string.
func (a *Amount) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
