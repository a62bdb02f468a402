package models

import (
	"fmt"
	"strings"
)

// Participant is a person referenced by a split.
type Participant struct {
	// ID is an opaque identifier (UUID for records created by this module).
	ID string `json:"id" yaml:"id"`

	// Name is the display name.
	Name string `json:"name" yaml:"name"`

	// Email is optional for participants, required for invites.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// AvatarURL is an optional avatar reference.
	AvatarURL string `json:"avatarUrl,omitempty" yaml:"avatarUrl,omitempty"`

	// IsCurrentUser marks the signed-in user's own entry.
	IsCurrentUser bool `json:"isCurrentUser,omitempty" yaml:"isCurrentUser,omitempty"`
}

// Initials returns up to two upper-case initials for a name or email.
// For an email the first two letters of the local part are used.
func Initials(nameOrEmail string) string {
	s := strings.TrimSpace(nameOrEmail)
	if s == "" {
		return "?"
	}
	if at := strings.Index(s, "@"); at >= 0 {
		return strings.ToUpper(firstRunes(s[:at], 2))
	}
	parts := strings.Fields(s)
	if len(parts) >= 2 {
		return strings.ToUpper(firstRunes(parts[0], 1) + firstRunes(parts[len(parts)-1], 1))
	}
	return strings.ToUpper(firstRunes(s, 2))
}

// ParticipantsText joins names, collapsing long lists to
// "A, B and N others".
func ParticipantsText(names []string) string {
	if len(names) <= 3 {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s and %d others", strings.Join(names[:2], ", "), len(names)-2)
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
