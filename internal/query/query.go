// Package query implements the filter, sort and group pipeline shared by the
// expense, activity, group and friend list views.
//
// A Pipeline never mutates the slice it is given, and two runs over the same
// input with the same "now" produce the same output.
package query

import (
	"errors"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// ErrUnknownKey is returned when a filter, sort or range key is not recognised.
var ErrUnknownKey = errors.New("unknown key")

// Predicate reports whether a record is retained.
type Predicate[T any] func(T) bool

// Group is one bucket of a grouped result.
type Group[T any] struct {
	Key   string
	Items []T
}

// Pipeline describes a search, filter, sort and group transformation over
// records of type T. The zero value passes records through unchanged.
type Pipeline[T any] struct {
	// Search is matched case-insensitively as a substring of any of the
	// fields returned by SearchFields. Blank means no search.
	Search       string
	SearchFields func(T) []string

	// Filters are combined with logical AND. Nil entries are skipped.
	Filters []Predicate[T]

	// Range restricts records by the value returned by Timestamp.
	Range     DateRange
	Timestamp func(T) (time.Time, bool)

	// Compare orders the result. Equal records keep their input order.
	Compare func(a, b T) int

	// GroupKey labels each record for RunGrouped.
	GroupKey func(T) string
}

// Run applies the search, the filters, the date range and the sort to items
// and returns a new slice.
func (p Pipeline[T]) Run(items []T, now time.Time) []T {
	var matchSearch func(T) bool
	if needle := strings.TrimSpace(p.Search); needle != "" && p.SearchFields != nil {
		matchSearch = searcher(needle, p.SearchFields)
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchSearch != nil && !matchSearch(item) {
			continue
		}
		if !p.matchFilters(item) {
			continue
		}
		if !p.matchRange(item, now) {
			continue
		}
		out = append(out, item)
	}

	if p.Compare != nil {
		slices.SortStableFunc(out, p.Compare)
	}
	return out
}

// RunGrouped runs the pipeline and partitions the result by GroupKey. Without
// a GroupKey the whole result is returned as a single group with an empty key,
// or no groups when nothing matched.
func (p Pipeline[T]) RunGrouped(items []T, now time.Time) []Group[T] {
	out := p.Run(items, now)
	if p.GroupKey == nil {
		if len(out) == 0 {
			return []Group[T]{}
		}
		return []Group[T]{{Items: out}}
	}
	return GroupBy(out, p.GroupKey)
}

func (p Pipeline[T]) matchFilters(item T) bool {
	for _, f := range p.Filters {
		if f != nil && !f(item) {
			return false
		}
	}
	return true
}

func (p Pipeline[T]) matchRange(item T, now time.Time) bool {
	if p.Range == RangeAll {
		return true
	}
	if p.Timestamp == nil {
		return false
	}
	ts, ok := p.Timestamp(item)
	return p.Range.Contains(ts, ok, now)
}

// GroupBy partitions items by key. Buckets appear in the order their key
// first occurs in items; items keep their relative order within a bucket.
func GroupBy[T any](items []T, key func(T) string) []Group[T] {
	groups := []Group[T]{}
	index := make(map[string]int)
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

func searcher[T any](needle string, fields func(T) []string) func(T) bool {
	fold := cases.Fold()
	needle = fold.String(needle)
	return func(item T) bool {
		for _, f := range fields(item) {
			if strings.Contains(fold.String(f), needle) {
				return true
			}
		}
		return false
	}
}
