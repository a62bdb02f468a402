package views

import (
	"fmt"
	"time"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/money"
	"github.com/mmynk/paisasplit/internal/query"
	"github.com/mmynk/paisasplit/internal/timefmt"
)

// ExpenseSort is the ordering of the expense list.
type ExpenseSort string

const (
	SortExpenseDate   ExpenseSort = "date"
	SortExpenseAmount ExpenseSort = "amount"
	SortExpenseName   ExpenseSort = "name"
	SortExpenseGroup  ExpenseSort = "group"
)

// ParseExpenseSort converts a sort key. Empty means SortExpenseDate.
func ParseExpenseSort(s string) (ExpenseSort, error) {
	switch key := ExpenseSort(normalize(s)); key {
	case "":
		return SortExpenseDate, nil
	case SortExpenseDate, SortExpenseAmount, SortExpenseName, SortExpenseGroup:
		return key, nil
	}
	return "", unknownKey("expense sort", s)
}

// Label returns the sort menu text.
func (s ExpenseSort) Label() string {
	switch s {
	case SortExpenseDate:
		return "Recent First"
	case SortExpenseAmount:
		return "Highest Amount"
	case SortExpenseName:
		return "Expense Name"
	case SortExpenseGroup:
		return "Group Name"
	}
	panic(fmt.Sprintf("views: invalid expense sort %q", string(s)))
}

func (s ExpenseSort) compare() func(a, b models.Expense) int {
	switch s {
	case "", SortExpenseDate:
		return query.ByTimeDesc(func(e models.Expense) time.Time { return e.Date })
	case SortExpenseAmount:
		return query.ByAmountDesc(func(e models.Expense) money.Amount { return e.Amount })
	case SortExpenseName:
		return query.ByText(func(e models.Expense) string { return e.Description })
	case SortExpenseGroup:
		return query.ByText(func(e models.Expense) string { return e.GroupName })
	}
	panic(fmt.Sprintf("views: invalid expense sort %q", string(s)))
}

// ParseCategoryFilter converts a category filter key. "all" and the empty
// string disable the filter and return "".
func ParseCategoryFilter(s string) (models.Category, error) {
	key := normalize(s)
	if key == "" || key == all {
		return "", nil
	}
	c, err := models.ParseCategory(key)
	if err != nil {
		return "", unknownKey("category", s)
	}
	return c, nil
}

// ExpenseQuery selects and orders expenses for the expense list.
type ExpenseQuery struct {
	// Search matches description, group name and payer name.
	Search string
	Range  query.DateRange

	// Category and GroupID restrict the list when non-empty.
	Category models.Category
	GroupID  string

	Sort ExpenseSort
}

// IsFiltered reports whether any search or filter is active.
func (q ExpenseQuery) IsFiltered() bool {
	return normalize(q.Search) != "" || q.Range != query.RangeAll || q.Category != "" || q.GroupID != ""
}

// Pipeline builds the pipeline for q, grouping by calendar month.
func (q ExpenseQuery) Pipeline() query.Pipeline[models.Expense] {
	p := query.Pipeline[models.Expense]{
		Search: q.Search,
		SearchFields: func(e models.Expense) []string {
			return []string{e.Description, e.GroupName, e.PaidBy}
		},
		Range:     q.Range,
		Timestamp: func(e models.Expense) (time.Time, bool) { return e.Date, !e.Date.IsZero() },
		Compare:   q.Sort.compare(),
		GroupKey:  func(e models.Expense) string { return timefmt.MonthLabel(e.Date) },
	}
	if q.Category != "" {
		category := q.Category
		p.Filters = append(p.Filters, func(e models.Expense) bool { return e.Category == category })
	}
	if q.GroupID != "" {
		groupID := q.GroupID
		p.Filters = append(p.Filters, func(e models.Expense) bool { return e.GroupID == groupID })
	}
	return p
}

// Run returns the matching expenses in sort order.
func (q ExpenseQuery) Run(expenses []models.Expense, now time.Time) []models.Expense {
	return q.Pipeline().Run(expenses, now)
}

// MonthGroup is one month section of the expense list.
type MonthGroup struct {
	Month    string
	Total    money.Amount
	Expenses []models.Expense
}

// Months runs q and groups the result by month in first-seen order.
func (q ExpenseQuery) Months(expenses []models.Expense, now time.Time) []MonthGroup {
	return GroupByMonth(q.Run(expenses, now))
}

// GroupByMonth buckets expenses by "January 2006" labels. Buckets follow the
// order in which their month first appears.
func GroupByMonth(expenses []models.Expense) []MonthGroup {
	groups := query.GroupBy(expenses, func(e models.Expense) string { return timefmt.MonthLabel(e.Date) })
	out := make([]MonthGroup, len(groups))
	for i, g := range groups {
		var total money.Amount
		for _, e := range g.Items {
			total += e.Amount
		}
		out[i] = MonthGroup{Month: g.Key, Total: total, Expenses: g.Items}
	}
	return out
}

// ExpenseStats are the summary cards above the expense list.
type ExpenseStats struct {
	// MonthTotal sums expense amounts dated in now's calendar month.
	MonthTotal money.Amount

	// YourShareThisMonth sums |YourShare| for the same expenses.
	YourShareThisMonth money.Amount

	// NetBalance sums YourShare across all expenses.
	NetBalance money.Amount

	Count int
}

// Stats computes the summary cards for expenses relative to now.
func Stats(expenses []models.Expense, now time.Time) ExpenseStats {
	start := timefmt.StartOfMonth(now)
	stats := ExpenseStats{Count: len(expenses)}
	for _, e := range expenses {
		stats.NetBalance += e.YourShare
		if e.Date.Before(start) {
			continue
		}
		stats.MonthTotal += e.Amount
		stats.YourShareThisMonth += e.YourShare.Abs()
	}
	return stats
}
