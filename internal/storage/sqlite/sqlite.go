// Package sqlite provides a SQLite-backed implementation of the storage.SettingsStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/paisasplit/internal/settings"
	"github.com/mmynk/paisasplit/internal/storage"
)

// Ensure SQLiteStore implements storage.SettingsStore
var _ storage.SettingsStore = (*SQLiteStore)(nil)

// SQLiteStore implements storage.SettingsStore using a key/value table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteStore) put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

// LoadSettings reads the settings row. A missing row yields the defaults.
func (s *SQLiteStore) LoadSettings(ctx context.Context) (*settings.Settings, error) {
	blob, err := s.get(ctx, settings.StorageKey)
	if err != nil {
		return nil, err
	}
	loaded, err := settings.Decode(blob)
	if err != nil {
		return nil, err
	}
	return &loaded, nil
}

// SaveSettings upserts the settings row.
func (s *SQLiteStore) SaveSettings(ctx context.Context, st *settings.Settings) error {
	blob, err := st.Encode()
	if err != nil {
		return err
	}
	return s.put(ctx, settings.StorageKey, blob)
}

// ResetSettings deletes the settings row.
func (s *SQLiteStore) ResetSettings(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", settings.StorageKey); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	return nil
}

// UpdatedAt returns when the settings row was last written. The second
// result is false when nothing is saved.
func (s *SQLiteStore) UpdatedAt(ctx context.Context) (time.Time, bool, error) {
	var ts int64
	err := s.db.QueryRowContext(ctx, "SELECT updated_at FROM kv WHERE key = ?", settings.StorageKey).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get settings timestamp: %w", err)
	}
	return time.Unix(ts, 0), true, nil
}
