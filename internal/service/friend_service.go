package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/paisasplit/internal/models"
)

// FriendService handles the invite-friends dialog.
type FriendService struct {
	deps   Deps
	submit *submitter
}

// NewFriendService creates a FriendService.
func NewFriendService(deps Deps) *FriendService {
	return &FriendService{deps: deps, submit: newSubmitter("invite_friends", deps)}
}

// Invite creates a pending friend for every email. The optional message is
// kept on the recorded activities.
func (s *FriendService) Invite(ctx context.Context, emails []string, message string) ([]models.Friend, error) {
	slog.Info("Invite request received", "emails_count", len(emails))

	now := s.deps.now()
	var friends []models.Friend
	check := func(ctx context.Context) error {
		existing, err := s.deps.Ledger.ListFriends(ctx)
		if err != nil {
			return fmt.Errorf("failed to list friends: %w", err)
		}
		valid, err := s.validate(emails, existing)
		if err != nil {
			return err
		}
		friends = make([]models.Friend, len(valid))
		for i, email := range valid {
			friends[i] = models.Friend{
				ID:           uuid.New().String(),
				Name:         email,
				Email:        email,
				Status:       models.FriendPending,
				FriendsSince: now,
				LastActivity: now,
			}
		}
		return nil
	}

	err := s.submit.do(ctx, check, func(ctx context.Context) error {
		for i := range friends {
			if err := s.deps.Ledger.CreateFriend(ctx, &friends[i]); err != nil {
				return fmt.Errorf("failed to create friend: %w", err)
			}
			err := s.deps.Ledger.AddActivity(ctx, &models.Activity{
				ID:          uuid.New().String(),
				Type:        models.ActivityFriend,
				Title:       "You invited " + friends[i].Email,
				Description: strings.TrimSpace(message),
				Timestamp:   now,
				IsRead:      true,
				RelatedID:   friends[i].ID,
			})
			if err != nil {
				return fmt.Errorf("failed to add activity: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Friends invited", "count", len(friends))
	return friends, nil
}

func (s *FriendService) validate(emails []string, existing []models.Friend) ([]string, error) {
	errs := fieldErrors{}

	known := make(map[string]bool, len(existing))
	for _, f := range existing {
		known[normalizeEmail(f.Email)] = true
	}

	self := normalizeEmail(s.deps.CurrentUser.Email)
	out := make([]string, 0, len(emails))
	seen := make(map[string]bool, len(emails))
	for _, raw := range emails {
		email := normalizeEmail(raw)
		switch {
		case email == "":
			continue
		case !emailPattern.MatchString(email):
			errs.add("newEmail", "Please enter a valid email address")
		case email == self:
			errs.add("newEmail", "You can't invite yourself")
		case seen[email]:
			errs.add("newEmail", "This email is already in the list")
		case known[email]:
			errs.add("newEmail", "You're already friends with "+email)
		default:
			seen[email] = true
			out = append(out, email)
		}
	}
	if len(out) == 0 && len(errs) == 0 {
		errs.add("emails", "Please add at least one email address")
	}
	return out, errs.err()
}
