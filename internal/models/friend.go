package models

import (
	"time"

	"github.com/mmynk/paisasplit/internal/money"
)

// FriendStatus is the state of a friendship.
type FriendStatus string

const (
	FriendActive  FriendStatus = "active"
	FriendPending FriendStatus = "pending"
	FriendBlocked FriendStatus = "blocked"
)

// ParseFriendStatus converts text to a FriendStatus.
func ParseFriendStatus(s string) (FriendStatus, error) {
	switch FriendStatus(s) {
	case FriendActive, FriendPending, FriendBlocked:
		return FriendStatus(s), nil
	}
	return "", unknown("friend status", s)
}

// Friend is a person the current user splits with directly.
type Friend struct {
	ID        string       `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	Email     string       `json:"email" yaml:"email"`
	Phone     string       `json:"phone,omitempty" yaml:"phone,omitempty"`
	AvatarURL string       `json:"avatarUrl,omitempty" yaml:"avatarUrl,omitempty"`
	Status    FriendStatus `json:"status" yaml:"status"`

	FriendsSince time.Time `json:"friendsSince" yaml:"friendsSince"`
	LastActivity time.Time `json:"lastActivity" yaml:"lastActivity"`

	SharedExpenses int `json:"sharedExpenses" yaml:"sharedExpenses"`

	// TotalOwed is positive when the friend owes the current user.
	TotalOwed money.Amount `json:"totalOwed" yaml:"totalOwed"`

	// Groups are the names of groups shared with this friend.
	Groups []string `json:"groups,omitempty" yaml:"groups,omitempty"`
}
