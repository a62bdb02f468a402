package views

import (
	"fmt"
	"time"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/query"
)

// FriendSort is the ordering of the friend list.
type FriendSort string

const (
	SortFriendName     FriendSort = "name"
	SortFriendRecent   FriendSort = "recent"
	SortFriendActivity FriendSort = "activity"
)

// ParseFriendSort converts a sort key. Empty means SortFriendName.
func ParseFriendSort(s string) (FriendSort, error) {
	switch key := FriendSort(normalize(s)); key {
	case "":
		return SortFriendName, nil
	case SortFriendName, SortFriendRecent, SortFriendActivity:
		return key, nil
	}
	return "", unknownKey("friend sort", s)
}

// Label returns the sort menu text.
func (s FriendSort) Label() string {
	switch s {
	case SortFriendName:
		return "Name (A-Z)"
	case SortFriendRecent:
		return "Recently Added"
	case SortFriendActivity:
		return "Most Active"
	}
	panic(fmt.Sprintf("views: invalid friend sort %q", string(s)))
}

func (s FriendSort) compare() func(a, b models.Friend) int {
	switch s {
	case "", SortFriendName:
		return query.ByText(func(f models.Friend) string { return f.Name })
	case SortFriendRecent:
		return query.ByTimeDesc(func(f models.Friend) time.Time { return f.FriendsSince })
	case SortFriendActivity:
		return query.ByTimeDesc(func(f models.Friend) time.Time { return f.LastActivity })
	}
	panic(fmt.Sprintf("views: invalid friend sort %q", string(s)))
}

// ParseFriendStatusFilter converts a status filter key. "all" and the empty
// string disable the filter and return "".
func ParseFriendStatusFilter(s string) (models.FriendStatus, error) {
	key := normalize(s)
	if key == "" || key == all {
		return "", nil
	}
	status, err := models.ParseFriendStatus(key)
	if err != nil {
		return "", unknownKey("friend status", s)
	}
	return status, nil
}

// FriendQuery selects and orders the friend list.
type FriendQuery struct {
	// Search matches name and email.
	Search string

	// Status restricts the list when non-empty.
	Status models.FriendStatus

	Sort FriendSort
}

// IsFiltered reports whether a search or status filter is active.
func (q FriendQuery) IsFiltered() bool {
	return normalize(q.Search) != "" || q.Status != ""
}

// Pipeline builds the pipeline for q.
func (q FriendQuery) Pipeline() query.Pipeline[models.Friend] {
	p := query.Pipeline[models.Friend]{
		Search:       q.Search,
		SearchFields: func(f models.Friend) []string { return []string{f.Name, f.Email} },
		Compare:      q.Sort.compare(),
	}
	if q.Status != "" {
		status := q.Status
		p.Filters = []query.Predicate[models.Friend]{
			func(f models.Friend) bool { return f.Status == status },
		}
	}
	return p
}

// Run returns the matching friends in sort order.
func (q FriendQuery) Run(friends []models.Friend, now time.Time) []models.Friend {
	return q.Pipeline().Run(friends, now)
}

// FriendStats are the summary cards above the friend list.
type FriendStats struct {
	// Active counts friends with status active.
	Active int

	// RecentlyActive counts active friends with activity within a month of now.
	RecentlyActive int

	SharedExpenses int
}

// SummarizeFriends computes the friend list summary relative to now.
func SummarizeFriends(friends []models.Friend, now time.Time) FriendStats {
	var stats FriendStats
	for _, f := range friends {
		stats.SharedExpenses += f.SharedExpenses
		if f.Status != models.FriendActive {
			continue
		}
		stats.Active++
		if query.RangeMonth.Contains(f.LastActivity, !f.LastActivity.IsZero(), now) {
			stats.RecentlyActive++
		}
	}
	return stats
}
