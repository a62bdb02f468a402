// Package config loads runtime configuration from an optional YAML file and
// environment variables. Environment variables win over the file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/paisasplit/pkg/logging"
)

// Settings backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the runtime configuration of the CLI.
type Config struct {
	// Logging
	LogLevel string `yaml:"logLevel"`

	// Timezone is the IANA location used for "today" and week boundaries.
	Timezone string `yaml:"timezone"`

	// Settings storage
	SettingsBackend string `yaml:"settingsBackend"`
	SettingsFile    string `yaml:"settingsFile"`
	SQLiteDBPath    string `yaml:"sqliteDbPath"`

	// DatasetPath points at a JSON or YAML dataset; empty uses the built-in sample.
	DatasetPath string `yaml:"datasetPath"`

	CurrentUserID string `yaml:"currentUserId"`

	// SubmitDelay is the pause before a dialog submission completes.
	SubmitDelay time.Duration `yaml:"submitDelay"`

	MetricsEnabled bool `yaml:"metricsEnabled"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		LogLevel:        "info",
		Timezone:        "Local",
		SettingsBackend: BackendMemory,
		SettingsFile:    "./data/settings.json",
		SQLiteDBPath:    "./data/paisasplit.db",
		CurrentUserID:   "current-user",
		SubmitDelay:     0,
		MetricsEnabled:  false,
	}
}

// Load builds the configuration from Default, then the YAML file at path
// when path is not empty, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.SettingsBackend = getEnv("SETTINGS_BACKEND", cfg.SettingsBackend)
	cfg.SettingsFile = getEnv("SETTINGS_FILE", cfg.SettingsFile)
	cfg.SQLiteDBPath = getEnv("SQLITE_DB_PATH", cfg.SQLiteDBPath)
	cfg.DatasetPath = getEnv("DATASET_PATH", cfg.DatasetPath)
	cfg.CurrentUserID = getEnv("CURRENT_USER_ID", cfg.CurrentUserID)
	cfg.SubmitDelay = getEnvDuration("SUBMIT_DELAY", cfg.SubmitDelay)
	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled)

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	validBackends := []string{BackendMemory, BackendFile, BackendSQLite}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.SettingsBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid settings backend '%s': must be one of %v", c.SettingsBackend, validBackends))
	}

	if c.SettingsBackend == BackendFile && c.SettingsFile == "" {
		errors = append(errors, "settings file path cannot be empty when using file backend")
	}
	if c.SettingsBackend == BackendSQLite && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.DatasetPath != "" {
		switch strings.ToLower(filepath.Ext(c.DatasetPath)) {
		case ".json", ".yaml", ".yml":
			if _, err := os.Stat(c.DatasetPath); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("dataset file does not exist: %s", c.DatasetPath))
			}
		default:
			errors = append(errors, fmt.Sprintf("invalid dataset file '%s': must be .json, .yaml or .yml", c.DatasetPath))
		}
	}

	if strings.TrimSpace(c.CurrentUserID) == "" {
		errors = append(errors, "current user ID cannot be empty")
	}

	if c.SubmitDelay < 0 {
		errors = append(errors, fmt.Sprintf("invalid submit delay %v: must not be negative", c.SubmitDelay))
	} else if c.SubmitDelay > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid submit delay %v: must be at most 1 minute", c.SubmitDelay))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Location returns the configured timezone. Call Validate first.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Level returns the configured log level. Call Validate first.
func (c *Config) Level() slog.Level {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
