// Package models defines the core domain models for PaisaSplit.
//
// # Models
//
//   - Participant: a person who can take part in an expense split
//   - Expense: a shared cost with its per-member allocation
//   - Group: a named set of participants sharing recurring expenses
//   - Friend: a person the current user splits with directly
//   - Activity: a timestamped feed entry (expense added, payment made, ...)
//   - Settlement: a payment recorded to reduce an outstanding balance
//
// # Conventions
//
//  1. Amounts are money.Amount (integer cents). Positive means the current user
//     is owed, negative means the current user owes.
//  2. Relationships use ID strings instead of pointers.
//  3. Categorical fields are closed enums. Each enum has an exhaustive Label
//     switch and a Parse function that rejects unknown text with an error
//     wrapping ErrUnknownValue.
package models

import (
	"errors"
	"fmt"
)

// ErrUnknownValue is wrapped by every enum Parse function.
var ErrUnknownValue = errors.New("unknown value")

func unknown(kind, s string) error {
	return fmt.Errorf("%w for %s: %q", ErrUnknownValue, kind, s)
}
