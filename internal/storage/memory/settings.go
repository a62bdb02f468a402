// Package memory provides in-process implementations of the storage
// interfaces. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/paisasplit/internal/settings"
	"github.com/mmynk/paisasplit/internal/storage"
)

var _ storage.SettingsStore = (*SettingsStore)(nil)

// SettingsStore keeps the encoded settings blob in memory.
type SettingsStore struct {
	mu   sync.Mutex
	blob []byte
}

// NewSettingsStore returns an empty store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

// LoadSettings decodes the saved blob over the defaults.
func (s *SettingsStore) LoadSettings(ctx context.Context) (*settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loaded, err := settings.Decode(s.blob)
	if err != nil {
		return nil, err
	}
	return &loaded, nil
}

// SaveSettings encodes and keeps st.
func (s *SettingsStore) SaveSettings(ctx context.Context, st *settings.Settings) error {
	data, err := st.Encode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = data
	return nil
}

// ResetSettings forgets the saved blob.
func (s *SettingsStore) ResetSettings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = nil
	return nil
}

// Close is a no-op.
func (s *SettingsStore) Close() error {
	return nil
}
