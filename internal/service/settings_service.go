package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/paisasplit/internal/settings"
	"github.com/mmynk/paisasplit/internal/storage"
)

// SettingsService keeps the loaded settings and writes every change through
// to the store.
type SettingsService struct {
	store storage.SettingsStore

	mu      sync.Mutex
	current settings.Settings
}

// NewSettingsService loads the settings from store once.
func NewSettingsService(ctx context.Context, store storage.SettingsStore) (*SettingsService, error) {
	s, err := store.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &SettingsService{store: store, current: *s}, nil
}

// Get returns the current settings.
func (s *SettingsService) Get() settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update applies fn to a copy of the current settings, validates the result
// and saves it. Nothing changes when validation or saving fails.
func (s *SettingsService) Update(ctx context.Context, fn func(*settings.Settings) error) (settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	if err := fn(&next); err != nil {
		return s.current, err
	}
	if err := next.Validate(); err != nil {
		return s.current, fmt.Errorf("invalid settings: %w", err)
	}
	if err := s.store.SaveSettings(ctx, &next); err != nil {
		return s.current, fmt.Errorf("failed to save settings: %w", err)
	}
	s.current = next
	slog.Info("Settings saved")
	return next, nil
}

// Set updates a single "section.field" value.
func (s *SettingsService) Set(ctx context.Context, key, value string) (settings.Settings, error) {
	return s.Update(ctx, func(st *settings.Settings) error {
		next, err := st.With(key, value)
		if err != nil {
			return err
		}
		*st = next
		return nil
	})
}

// Import replaces the settings with an exported document.
func (s *SettingsService) Import(ctx context.Context, data []byte) (settings.Settings, error) {
	return s.Update(ctx, func(st *settings.Settings) error {
		imported, err := settings.Import(settings.Defaults(), data)
		if err != nil {
			return err
		}
		*st = imported
		return nil
	})
}

// Reset clears the saved settings and returns to the defaults.
func (s *SettingsService) Reset(ctx context.Context) (settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ResetSettings(ctx); err != nil {
		return s.current, fmt.Errorf("failed to reset settings: %w", err)
	}
	s.current = settings.Defaults()
	slog.Info("Settings reset to defaults")
	return s.current, nil
}
