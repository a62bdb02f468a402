// Package file provides a storage.SettingsStore backed by a JSON file.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mmynk/paisasplit/internal/settings"
	"github.com/mmynk/paisasplit/internal/storage"
)

// Ensure SettingsStore implements storage.SettingsStore
var _ storage.SettingsStore = (*SettingsStore)(nil)

// SettingsStore keeps the settings blob in one file.
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

// New returns a store writing to path. Parent directories are created.
func New(path string) (*SettingsStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}
	return &SettingsStore{path: path}, nil
}

// LoadSettings reads the file. A missing file yields the defaults.
func (s *SettingsStore) LoadSettings(ctx context.Context) (*settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		data = nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	loaded, err := settings.Decode(data)
	if err != nil {
		return nil, err
	}
	return &loaded, nil
}

// SaveSettings writes st to a temporary file and renames it into place.
func (s *SettingsStore) SaveSettings(ctx context.Context, st *settings.Settings) error {
	data, err := st.Encode()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

// ResetSettings removes the file.
func (s *SettingsStore) ResetSettings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove settings: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *SettingsStore) Close() error {
	return nil
}
