package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidExport is returned by Import when the file has no settings section.
var ErrInvalidExport = errors.New("invalid settings file format")

// Export is the document written by "export settings".
type Export struct {
	Settings   *Settings `json:"settings"`
	ExportDate time.Time `json:"exportDate"`
	Version    string    `json:"version"`
}

// ExportFileName returns the suggested download name for an export made at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("paisasplit-settings-%s.json", now.UTC().Format(time.DateOnly))
}

// MarshalExport returns the indented export document for s.
func MarshalExport(s Settings, now time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(Export{Settings: &s, ExportDate: now.UTC(), Version: Version}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

// Import overlays the settings section of an export document on base.
func Import(base Settings, data []byte) (Settings, error) {
	var raw struct {
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return base, fmt.Errorf("failed to decode export: %w", err)
	}
	if len(raw.Settings) == 0 || string(raw.Settings) == "null" {
		return base, ErrInvalidExport
	}
	out := base
	if err := json.Unmarshal(raw.Settings, &out); err != nil {
		return base, fmt.Errorf("failed to decode export: %w", err)
	}
	return out, nil
}
