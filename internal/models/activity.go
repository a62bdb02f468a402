package models

import (
	"time"

	"github.com/mmynk/paisasplit/internal/money"
)

// ActivityType is the kind of event an activity records.
type ActivityType string

const (
	ActivityExpense    ActivityType = "expense"
	ActivityPayment    ActivityType = "payment"
	ActivityFriend     ActivityType = "friend"
	ActivityGroup      ActivityType = "group"
	ActivityReminder   ActivityType = "reminder"
	ActivitySettlement ActivityType = "settlement"
)

// ParseActivityType converts text to an ActivityType.
func ParseActivityType(s string) (ActivityType, error) {
	switch ActivityType(s) {
	case ActivityExpense, ActivityPayment, ActivityFriend, ActivityGroup, ActivityReminder, ActivitySettlement:
		return ActivityType(s), nil
	}
	return "", unknown("activity type", s)
}

// Icon returns the feed glyph for the activity type.
func (t ActivityType) Icon() string {
	switch t {
	case ActivityExpense:
		return "💸"
	case ActivityPayment:
		return "💳"
	case ActivityFriend:
		return "👤"
	case ActivityGroup:
		return "👥"
	case ActivityReminder:
		return "🔔"
	case ActivitySettlement:
		return "⚖️"
	}
	panic("models: unhandled activity type " + string(t))
}

// Activity is a timestamped feed entry.
type Activity struct {
	ID          string       `json:"id" yaml:"id"`
	Type        ActivityType `json:"type" yaml:"type"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Timestamp   time.Time    `json:"timestamp" yaml:"timestamp"`
	IsRead      bool         `json:"isRead" yaml:"isRead"`

	// Amount is nil for activities without money (friend requests, ...).
	Amount *money.Amount `json:"amount,omitempty" yaml:"amount,omitempty"`

	Participants []Participant `json:"participants,omitempty" yaml:"participants,omitempty"`
	GroupID      string        `json:"groupId,omitempty" yaml:"groupId,omitempty"`
	RelatedID    string        `json:"relatedId,omitempty" yaml:"relatedId,omitempty"`
}
