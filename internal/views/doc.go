// Package views holds the typed queries behind each list screen: expenses,
// activity, groups and friends. Each query validates its keys with a Parse
// function and builds a query.Pipeline over the matching model type.
package views

import (
	"fmt"
	"strings"

	"github.com/mmynk/paisasplit/internal/query"
)

// all is the key that disables a categorical filter.
const all = "all"

func unknownKey(kind, s string) error {
	return fmt.Errorf("%w: %s %q", query.ErrUnknownKey, kind, s)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
