package views

import (
	"fmt"
	"time"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/money"
	"github.com/mmynk/paisasplit/internal/query"
)

// GroupFilter restricts the group list by status or balance direction.
type GroupFilter string

const (
	FilterGroupsAll     GroupFilter = "all"
	FilterGroupsActive  GroupFilter = "active"
	FilterGroupsSettled GroupFilter = "settled"
	FilterGroupsOwed    GroupFilter = "owed"
	FilterGroupsOwing   GroupFilter = "owing"
)

// ParseGroupFilter converts a filter key. Empty means FilterGroupsAll.
func ParseGroupFilter(s string) (GroupFilter, error) {
	switch key := GroupFilter(normalize(s)); key {
	case "":
		return FilterGroupsAll, nil
	case FilterGroupsAll, FilterGroupsActive, FilterGroupsSettled, FilterGroupsOwed, FilterGroupsOwing:
		return key, nil
	}
	return "", unknownKey("group filter", s)
}

// Label returns the filter menu text.
func (f GroupFilter) Label() string {
	switch f {
	case FilterGroupsAll:
		return "All Groups"
	case FilterGroupsActive:
		return "Active Groups"
	case FilterGroupsSettled:
		return "Settled Groups"
	case FilterGroupsOwed:
		return "Groups You're Owed"
	case FilterGroupsOwing:
		return "Groups You Owe"
	}
	panic(fmt.Sprintf("views: invalid group filter %q", string(f)))
}

func (f GroupFilter) predicate() query.Predicate[models.Group] {
	switch f {
	case "", FilterGroupsAll:
		return nil
	case FilterGroupsActive:
		return func(g models.Group) bool { return g.Status == models.GroupActive }
	case FilterGroupsSettled:
		return func(g models.Group) bool { return g.Status == models.GroupSettled }
	case FilterGroupsOwed:
		return func(g models.Group) bool { return g.YourBalance > 0 }
	case FilterGroupsOwing:
		return func(g models.Group) bool { return g.YourBalance < 0 }
	}
	panic(fmt.Sprintf("views: invalid group filter %q", string(f)))
}

// GroupSort is the ordering of the group list.
type GroupSort string

const (
	SortGroupName     GroupSort = "name"
	SortGroupBalance  GroupSort = "balance"
	SortGroupActivity GroupSort = "activity"
	SortGroupMembers  GroupSort = "members"
)

// ParseGroupSort converts a sort key. Empty means SortGroupName.
func ParseGroupSort(s string) (GroupSort, error) {
	switch key := GroupSort(normalize(s)); key {
	case "":
		return SortGroupName, nil
	case SortGroupName, SortGroupBalance, SortGroupActivity, SortGroupMembers:
		return key, nil
	}
	return "", unknownKey("group sort", s)
}

// Label returns the sort menu text.
func (s GroupSort) Label() string {
	switch s {
	case SortGroupName:
		return "Group Name"
	case SortGroupBalance:
		return "Balance Amount"
	case SortGroupActivity:
		return "Recent Activity"
	case SortGroupMembers:
		return "Member Count"
	}
	panic(fmt.Sprintf("views: invalid group sort %q", string(s)))
}

func (s GroupSort) compare() func(a, b models.Group) int {
	switch s {
	case "", SortGroupName:
		return query.ByText(func(g models.Group) string { return g.Name })
	case SortGroupBalance:
		return query.ByAmountDesc(func(g models.Group) money.Amount { return g.YourBalance.Abs() })
	case SortGroupActivity:
		return query.ByTimeDesc(func(g models.Group) time.Time { return g.LastActivity })
	case SortGroupMembers:
		return query.ByIntDesc(models.Group.MemberCount)
	}
	panic(fmt.Sprintf("views: invalid group sort %q", string(s)))
}

// GroupQuery selects and orders the group list.
type GroupQuery struct {
	// Search matches the group name and member names.
	Search string
	Filter GroupFilter
	Sort   GroupSort
}

// IsFiltered reports whether a search or filter is active.
func (q GroupQuery) IsFiltered() bool {
	return normalize(q.Search) != "" || (q.Filter != "" && q.Filter != FilterGroupsAll)
}

// Pipeline builds the pipeline for q.
func (q GroupQuery) Pipeline() query.Pipeline[models.Group] {
	return query.Pipeline[models.Group]{
		Search: q.Search,
		SearchFields: func(g models.Group) []string {
			fields := make([]string, 0, len(g.Members)+1)
			fields = append(fields, g.Name)
			for _, m := range g.Members {
				fields = append(fields, m.Name)
			}
			return fields
		},
		Filters: []query.Predicate[models.Group]{q.Filter.predicate()},
		Compare: q.Sort.compare(),
	}
}

// Run returns the matching groups in sort order.
func (q GroupQuery) Run(groups []models.Group, now time.Time) []models.Group {
	return q.Pipeline().Run(groups, now)
}

// GroupStats are the summary cards above the group list.
type GroupStats struct {
	Active       int
	TotalBalance money.Amount
	TotalMembers int
}

// SummarizeGroups computes the group list summary.
func SummarizeGroups(groups []models.Group) GroupStats {
	var stats GroupStats
	for _, g := range groups {
		if g.Status == models.GroupActive {
			stats.Active++
		}
		stats.TotalBalance += g.YourBalance
		stats.TotalMembers += g.MemberCount()
	}
	return stats
}

// BalanceShare returns |g.YourBalance| as a percentage of the largest absolute
// balance across groups, for the balance bar. Zero when every balance is zero.
func BalanceShare(g models.Group, groups []models.Group) float64 {
	var largest money.Amount
	for _, other := range groups {
		largest = max(largest, other.YourBalance.Abs())
	}
	if largest == 0 {
		return 0
	}
	return g.YourBalance.Abs().Float64() / largest.Float64() * 100
}
