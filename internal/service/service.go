// Package service implements the submit flows behind the PaisaSplit dialogs
// on top of a storage.Ledger.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/mmynk/paisasplit/internal/metrics"
	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/storage"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrSubmitPending is returned when a submit is already in flight.
	ErrSubmitPending = errors.New("submit already in progress")
)

// ValidationError maps form field keys to user-facing messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// fieldErrors collects per-field messages. The first message for a field wins.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// Deps are the collaborators shared by the services.
type Deps struct {
	Ledger      storage.Ledger
	CurrentUser models.Participant

	// SubmitDelay is how long a submit waits before it is committed.
	SubmitDelay time.Duration

	// Metrics may be nil.
	Metrics *metrics.Metrics

	// Now defaults to time.Now.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// submitter allows one submission at a time and applies the configured delay
// before running it.
type submitter struct {
	operation string
	sem       *semaphore.Weighted
	delay     time.Duration
	metrics   *metrics.Metrics
}

func newSubmitter(operation string, d Deps) *submitter {
	return &submitter{
		operation: operation,
		sem:       semaphore.NewWeighted(1),
		delay:     d.SubmitDelay,
		metrics:   d.Metrics,
	}
}

// invalid records a submission rejected by validation.
func (s *submitter) invalid(err error) error {
	slog.Info("Submit rejected", "operation", s.operation, "error", err)
	s.metrics.ObserveSubmit(s.operation, metrics.OutcomeInvalid)
	return err
}

// do runs check and then, once the delay has elapsed, commit. Both run while
// the submit slot is held, so the ledger state check reads is the state commit
// writes over. A second call while one is pending fails with ErrSubmitPending.
// A check failing with ErrValidation is recorded as an invalid submission.
func (s *submitter) do(ctx context.Context, check, commit func(context.Context) error) error {
	if !s.sem.TryAcquire(1) {
		s.metrics.ObserveSubmit(s.operation, metrics.OutcomeBusy)
		return ErrSubmitPending
	}
	defer s.sem.Release(1)

	if check != nil {
		if err := check(ctx); err != nil {
			if errors.Is(err, ErrValidation) {
				return s.invalid(err)
			}
			s.metrics.ObserveSubmit(s.operation, metrics.OutcomeError)
			return err
		}
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			s.metrics.ObserveSubmit(s.operation, metrics.OutcomeError)
			return ctx.Err()
		case <-timer.C:
		}
	}

	if err := commit(ctx); err != nil {
		slog.Error("Submit failed", "operation", s.operation, "error", err)
		s.metrics.ObserveSubmit(s.operation, metrics.OutcomeError)
		return err
	}
	s.metrics.ObserveSubmit(s.operation, metrics.OutcomeOK)
	return nil
}

// directory resolves participant IDs to people known from groups and friends.
func directory(ctx context.Context, d Deps) (map[string]models.Participant, error) {
	people := map[string]models.Participant{d.CurrentUser.ID: d.CurrentUser}

	groups, err := d.Ledger.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	for _, g := range groups {
		for _, m := range g.Members {
			if _, ok := people[m.ID]; !ok {
				people[m.ID] = m
			}
		}
	}

	friends, err := d.Ledger.ListFriends(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	for _, f := range friends {
		people[f.ID] = models.Participant{ID: f.ID, Name: f.Name, Email: f.Email, AvatarURL: f.AvatarURL}
	}
	return people, nil
}
