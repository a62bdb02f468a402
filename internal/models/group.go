package models

import (
	"time"

	"github.com/mmynk/paisasplit/internal/money"
)

// GroupStatus is the lifecycle state of a group.
type GroupStatus string

const (
	GroupActive   GroupStatus = "active"
	GroupSettled  GroupStatus = "settled"
	GroupInactive GroupStatus = "inactive"
)

// ParseGroupStatus converts text to a GroupStatus.
func ParseGroupStatus(s string) (GroupStatus, error) {
	switch GroupStatus(s) {
	case GroupActive, GroupSettled, GroupInactive:
		return GroupStatus(s), nil
	}
	return "", unknown("group status", s)
}

// GroupType is what the group is used for. It picks the default icon.
type GroupType string

const (
	GroupGeneral GroupType = "general"
	GroupHome    GroupType = "home"
	GroupTrip    GroupType = "trip"
	GroupCouple  GroupType = "couple"
	GroupWork    GroupType = "work"
	GroupEvent   GroupType = "event"
)

// GroupTypes lists every group type in display order.
var GroupTypes = []GroupType{GroupGeneral, GroupHome, GroupTrip, GroupCouple, GroupWork, GroupEvent}

// ParseGroupType converts text to a GroupType.
func ParseGroupType(s string) (GroupType, error) {
	for _, t := range GroupTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", unknown("group type", s)
}

// Label returns the display title.
func (t GroupType) Label() string {
	switch t {
	case GroupGeneral:
		return "General"
	case GroupHome:
		return "Home"
	case GroupTrip:
		return "Trip"
	case GroupCouple:
		return "Couple"
	case GroupWork:
		return "Work"
	case GroupEvent:
		return "Event"
	}
	panic("models: unhandled group type " + string(t))
}

// Icon returns the suggested group icon.
func (t GroupType) Icon() string {
	switch t {
	case GroupGeneral:
		return "👥"
	case GroupHome:
		return "🏠"
	case GroupTrip:
		return "✈️"
	case GroupCouple:
		return "❤️"
	case GroupWork:
		return "💼"
	case GroupEvent:
		return "🎉"
	}
	panic("models: unhandled group type " + string(t))
}

// GroupSettings are per-group permissions.
type GroupSettings struct {
	AllowMembersToAddExpenses  bool `json:"allowMembersToAddExpenses" yaml:"allowMembersToAddExpenses"`
	AllowMembersToInviteOthers bool `json:"allowMembersToInviteOthers" yaml:"allowMembersToInviteOthers"`
	NotifyOnNewExpenses        bool `json:"notifyOnNewExpenses" yaml:"notifyOnNewExpenses"`
}

// DefaultGroupSettings returns the settings a new group starts with.
func DefaultGroupSettings() GroupSettings {
	return GroupSettings{
		AllowMembersToAddExpenses:  true,
		AllowMembersToInviteOthers: false,
		NotifyOnNewExpenses:        true,
	}
}

// Group represents a reusable participant list that owns expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id" yaml:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Office Team").
	Name string `json:"name" yaml:"name"`

	Icon        string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Type        GroupType `json:"type,omitempty" yaml:"type,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`

	// Members is the list of participants in this group.
	Members []Participant `json:"members" yaml:"members"`

	// YourBalance is the current user's net position in the group.
	YourBalance money.Amount `json:"yourBalance" yaml:"yourBalance"`

	// TotalExpenses and ExpenseCount summarise the group's history.
	TotalExpenses money.Amount `json:"totalExpenses" yaml:"totalExpenses"`
	ExpenseCount  int          `json:"expenseCount" yaml:"expenseCount"`

	LastActivity time.Time     `json:"lastActivity" yaml:"lastActivity"`
	Status       GroupStatus   `json:"status" yaml:"status"`
	Settings     GroupSettings `json:"settings" yaml:"settings"`

	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	CreatedBy string    `json:"createdBy,omitempty" yaml:"createdBy,omitempty"`
}

// MemberCount returns the number of members.
func (g Group) MemberCount() int {
	return len(g.Members)
}
