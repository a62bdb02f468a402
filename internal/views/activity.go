package views

import (
	"fmt"
	"time"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/query"
	"github.com/mmynk/paisasplit/internal/timefmt"
)

// ActivityTab selects which kinds of activity the feed shows.
type ActivityTab string

const (
	TabAll      ActivityTab = "all"
	TabExpenses ActivityTab = "expenses"
	TabPayments ActivityTab = "payments"
	TabFriends  ActivityTab = "friends"
	TabGroups   ActivityTab = "groups"
)

// ActivityTabs lists the tabs in display order.
var ActivityTabs = []ActivityTab{TabAll, TabExpenses, TabPayments, TabFriends, TabGroups}

// ParseActivityTab converts a tab key. Empty means TabAll.
func ParseActivityTab(s string) (ActivityTab, error) {
	key := ActivityTab(normalize(s))
	if key == "" {
		return TabAll, nil
	}
	for _, t := range ActivityTabs {
		if t == key {
			return t, nil
		}
	}
	return "", unknownKey("activity tab", s)
}

// Label returns the tab title.
func (tab ActivityTab) Label() string {
	switch tab {
	case "", TabAll:
		return "All"
	case TabExpenses:
		return "Expenses"
	case TabPayments:
		return "Payments"
	case TabFriends:
		return "Friends"
	case TabGroups:
		return "Groups"
	}
	panic(fmt.Sprintf("views: invalid activity tab %q", string(tab)))
}

// Includes reports whether an activity of type t belongs on the tab.
// Reminders only appear under TabAll.
func (tab ActivityTab) Includes(t models.ActivityType) bool {
	switch tab {
	case "", TabAll:
		return true
	case TabExpenses:
		return t == models.ActivityExpense
	case TabPayments:
		return t == models.ActivityPayment || t == models.ActivitySettlement
	case TabFriends:
		return t == models.ActivityFriend
	case TabGroups:
		return t == models.ActivityGroup
	}
	panic(fmt.Sprintf("views: invalid activity tab %q", string(tab)))
}

// ActivityQuery selects the activity feed.
type ActivityQuery struct {
	Tab   ActivityTab
	Range query.DateRange
}

// IsFiltered reports whether a tab other than "all" or a date range is active.
func (q ActivityQuery) IsFiltered() bool {
	return (q.Tab != "" && q.Tab != TabAll) || q.Range != query.RangeAll
}

// Pipeline builds the feed pipeline: newest first, grouped by day label
// relative to now.
func (q ActivityQuery) Pipeline(now time.Time) query.Pipeline[models.Activity] {
	tab := q.Tab
	return query.Pipeline[models.Activity]{
		Filters: []query.Predicate[models.Activity]{
			func(a models.Activity) bool { return tab.Includes(a.Type) },
		},
		Range:     q.Range,
		Timestamp: func(a models.Activity) (time.Time, bool) { return a.Timestamp, !a.Timestamp.IsZero() },
		Compare:   query.ByTimeDesc(func(a models.Activity) time.Time { return a.Timestamp }),
		GroupKey:  func(a models.Activity) string { return timefmt.DayLabel(a.Timestamp, now) },
	}
}

// Run returns the feed grouped under "Today", "Yesterday", weekday or date headings.
func (q ActivityQuery) Run(activities []models.Activity, now time.Time) []query.Group[models.Activity] {
	return q.Pipeline(now).RunGrouped(activities, now)
}

// UnreadCount returns the number of unread activities.
func UnreadCount(activities []models.Activity) int {
	n := 0
	for _, a := range activities {
		if !a.IsRead {
			n++
		}
	}
	return n
}

// TabCounts returns how many activities each tab would show.
func TabCounts(activities []models.Activity) map[ActivityTab]int {
	counts := make(map[ActivityTab]int, len(ActivityTabs))
	for _, tab := range ActivityTabs {
		for _, a := range activities {
			if tab.Includes(a.Type) {
				counts[tab]++
			}
		}
	}
	return counts
}

// ActivityStats are the summary cards above the feed.
type ActivityStats struct {
	// LastMonth counts activities within one calendar month of now.
	LastMonth int
	Unread    int

	// RecentExpenses counts expense activities in the last 7 days.
	RecentExpenses int

	// SocialActivity counts friend and group activities in the last 7 days.
	SocialActivity int
}

// ActivitySummary computes the feed summary relative to now.
func ActivitySummary(activities []models.Activity, now time.Time) ActivityStats {
	stats := ActivityStats{Unread: UnreadCount(activities)}
	for _, a := range activities {
		if query.RangeMonth.Contains(a.Timestamp, !a.Timestamp.IsZero(), now) {
			stats.LastMonth++
		}
		if !query.RangeWeek.Contains(a.Timestamp, !a.Timestamp.IsZero(), now) {
			continue
		}
		switch a.Type {
		case models.ActivityExpense:
			stats.RecentExpenses++
		case models.ActivityFriend, models.ActivityGroup:
			stats.SocialActivity++
		}
	}
	return stats
}
