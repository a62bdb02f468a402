// Package timefmt turns absolute timestamps into the labels shown in list
// views and feeds. Every function takes "now" explicitly; all calendar
// comparisons happen in now's location.
package timefmt

import (
	"fmt"
	"time"
)

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Sunday 00:00 of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first day of t's month at 00:00.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// StartOfQuarter returns the first day of t's 3-month block at 00:00.
func StartOfQuarter(t time.Time) time.Time {
	y, m, _ := t.Date()
	q := time.Month((int(m)-1)/3*3 + 1)
	return time.Date(y, q, 1, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// InWeek reports whether t falls inside now's calendar week
// (Sunday 00:00 inclusive, seven days).
func InWeek(t, now time.Time) bool {
	start := StartOfWeek(now)
	end := start.AddDate(0, 0, 7)
	t = t.In(now.Location())
	return !t.Before(start) && t.Before(end)
}

func yesterday(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-1, 12, 0, 0, 0, now.Location())
}

// DayLabel returns the grouping label for t:
// "Today", "Yesterday", the weekday name within now's week, otherwise
// "January 2", with ", 2006" appended when the year differs from now's.
func DayLabel(t, now time.Time) string {
	switch {
	case SameDay(t, now):
		return "Today"
	case SameDay(t, yesterday(now)):
		return "Yesterday"
	case InWeek(t, now):
		return t.In(now.Location()).Weekday().String()
	}
	return dateLabel(t, now, "January 2")
}

// ShortDate returns "Jan 2", with ", 2006" appended when the year differs
// from now's.
func ShortDate(t, now time.Time) string {
	return dateLabel(t, now, "Jan 2")
}

func dateLabel(t, now time.Time, layout string) string {
	t = t.In(now.Location())
	if t.Year() != now.Year() {
		layout += ", 2006"
	}
	return t.Format(layout)
}

// RelativeTime returns a compact age for inline timestamps:
// "Just now", "5m ago", "3h ago", "2d ago", otherwise ShortDate.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
	return ShortDate(t, now)
}

// AgeLabel labels an expense date by whole elapsed days:
// "Today", "Yesterday", "3 days ago", otherwise ShortDate.
func AgeLabel(t, now time.Time) string {
	days := int(now.Sub(t) / (24 * time.Hour))
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("%d days ago", days)
	}
	return ShortDate(t, now)
}

// MonthLabel returns "January 2006", the key used to group expenses by month.
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}
