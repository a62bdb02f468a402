package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mmynk/paisasplit/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// normalizeEmail trims and lowercases an address.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// GroupDraft is the content of the create-group form.
type GroupDraft struct {
	Name        string
	Icon        string
	Type        models.GroupType
	Description string

	// MemberEmails lists the people to add besides the current user.
	MemberEmails []string

	// Settings defaults to models.DefaultGroupSettings.
	Settings *models.GroupSettings
}

// GroupService handles the create-group dialog.
type GroupService struct {
	deps   Deps
	submit *submitter
}

// NewGroupService creates a GroupService.
func NewGroupService(deps Deps) *GroupService {
	return &GroupService{deps: deps, submit: newSubmitter("create_group", deps)}
}

// CreateGroup validates the draft and creates the group with the current
// user as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, draft GroupDraft) (*models.Group, error) {
	slog.Info("CreateGroup request received",
		"name", draft.Name,
		"type", draft.Type,
		"members_count", len(draft.MemberEmails),
	)

	emails, err := s.validate(draft)
	if err != nil {
		return nil, s.submit.invalid(err)
	}

	now := s.deps.now()
	me := s.deps.CurrentUser
	me.IsCurrentUser = true
	members := []models.Participant{me}
	for _, email := range emails {
		members = append(members, models.Participant{ID: uuid.New().String(), Name: email, Email: email})
	}

	icon := draft.Icon
	if icon == "" {
		icon = draft.Type.Icon()
	}
	settings := models.DefaultGroupSettings()
	if draft.Settings != nil {
		settings = *draft.Settings
	}

	group := &models.Group{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(draft.Name),
		Icon:         icon,
		Type:         draft.Type,
		Description:  strings.TrimSpace(draft.Description),
		Members:      members,
		LastActivity: now,
		Status:       models.GroupActive,
		Settings:     settings,
		CreatedAt:    now,
		CreatedBy:    me.ID,
	}

	err = s.submit.do(ctx, nil, func(ctx context.Context) error {
		if err := s.deps.Ledger.CreateGroup(ctx, group); err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}
		return s.deps.Ledger.AddActivity(ctx, &models.Activity{
			ID:          uuid.New().String(),
			Type:        models.ActivityGroup,
			Title:       "You created " + group.Name,
			Description: fmt.Sprintf("%d members", group.MemberCount()),
			Timestamp:   now,
			IsRead:      true,
			GroupID:     group.ID,
			RelatedID:   group.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID)
	return group, nil
}

// validate returns the normalized member emails.
func (s *GroupService) validate(draft GroupDraft) ([]string, error) {
	errs := fieldErrors{}

	name := strings.TrimSpace(draft.Name)
	switch {
	case name == "":
		errs.add("groupName", "Please enter a group name")
	case utf8.RuneCountInString(name) < 2:
		errs.add("groupName", "Group name must be at least 2 characters")
	}
	if _, err := models.ParseGroupType(string(draft.Type)); err != nil {
		errs.add("groupType", "Please select a group type")
	}

	self := normalizeEmail(s.deps.CurrentUser.Email)
	emails := make([]string, 0, len(draft.MemberEmails))
	seen := make(map[string]bool, len(draft.MemberEmails))
	for _, raw := range draft.MemberEmails {
		email := normalizeEmail(raw)
		switch {
		case email == "":
			continue
		case !emailPattern.MatchString(email):
			errs.add("newMemberEmail", "Please enter a valid email address")
		case email == self:
			errs.add("newMemberEmail", "You can't add yourself to the group")
		case seen[email]:
			errs.add("newMemberEmail", "This person is already in the group")
		default:
			seen[email] = true
			emails = append(emails, email)
		}
	}
	return emails, errs.err()
}
