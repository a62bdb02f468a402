// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/settings"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// SettingsStore loads and saves the user's settings blob.
// This abstraction allows swapping storage backends (SQLite, a JSON file,
// memory) without changing the service layer.
type SettingsStore interface {
	// LoadSettings returns the saved settings overlaid on the defaults.
	// A store with nothing saved returns settings.Defaults().
	LoadSettings(ctx context.Context) (*settings.Settings, error)

	// SaveSettings replaces the saved settings.
	SaveSettings(ctx context.Context, s *settings.Settings) error

	// ResetSettings removes the saved settings so the defaults apply again.
	ResetSettings(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// Ledger holds the records behind the list views and dialogs.
// List methods return copies in insertion order.
type Ledger interface {
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	// CreateExpense persists a new expense. The expense.ID field must be set.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	ListGroups(ctx context.Context) ([]models.Group, error)
	// GetGroup returns ErrNotFound for an unknown ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	CreateGroup(ctx context.Context, group *models.Group) error
	// UpdateGroup returns ErrNotFound for an unknown ID.
	UpdateGroup(ctx context.Context, group *models.Group) error

	ListFriends(ctx context.Context) ([]models.Friend, error)
	CreateFriend(ctx context.Context, friend *models.Friend) error

	ListSettlements(ctx context.Context) ([]models.Settlement, error)
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	ListActivities(ctx context.Context) ([]models.Activity, error)
	AddActivity(ctx context.Context, activity *models.Activity) error
}
