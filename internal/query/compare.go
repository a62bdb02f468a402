package query

import (
	"cmp"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mmynk/paisasplit/internal/money"
)

// ByTimeDesc orders records newest first.
func ByTimeDesc[T any](key func(T) time.Time) func(a, b T) int {
	return func(a, b T) int {
		return key(b).Compare(key(a))
	}
}

// ByAmountDesc orders records by amount, largest first.
func ByAmountDesc[T any](key func(T) money.Amount) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(b), key(a))
	}
}

// ByFloatDesc orders records by a float key, largest first.
func ByFloatDesc[T any](key func(T) float64) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(b), key(a))
	}
}

// ByIntDesc orders records by an integer key, largest first.
func ByIntDesc[T any](key func(T) int) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(b), key(a))
	}
}

// ByText orders records alphabetically using English collation rules.
func ByText[T any](key func(T) string) func(a, b T) int {
	var mu sync.Mutex
	c := collate.New(language.English)
	return func(a, b T) int {
		mu.Lock()
		defer mu.Unlock()
		return c.CompareString(key(a), key(b))
	}
}
