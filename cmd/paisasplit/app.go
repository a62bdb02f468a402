package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/paisasplit/internal/config"
	"github.com/mmynk/paisasplit/internal/dataset"
	"github.com/mmynk/paisasplit/internal/metrics"
	"github.com/mmynk/paisasplit/internal/service"
	"github.com/mmynk/paisasplit/internal/storage"
	"github.com/mmynk/paisasplit/internal/storage/file"
	"github.com/mmynk/paisasplit/internal/storage/memory"
	"github.com/mmynk/paisasplit/internal/storage/sqlite"
	"github.com/mmynk/paisasplit/pkg/logging"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath  string
	datasetPath string
	now         string
	metrics     bool
	write       bool
}

// app holds everything a command needs, built once per invocation.
type app struct {
	cfg  *config.Config
	data *dataset.Dataset
	now  time.Time

	ledger   *memory.Ledger
	deps     service.Deps
	settings storage.SettingsStore
	registry *prometheus.Registry
}

func newApp(opts *options, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.datasetPath != "" {
		cfg.DatasetPath = opts.datasetPath
	}
	if opts.metrics {
		cfg.MetricsEnabled = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.SetDefault(logging.New(stderr, cfg.Level()))

	data := dataset.Sample()
	if cfg.DatasetPath != "" {
		if data, err = dataset.Load(cfg.DatasetPath); err != nil {
			return nil, err
		}
	}
	if cfg.CurrentUserID != data.CurrentUser.ID {
		p, ok := data.Person(cfg.CurrentUserID)
		if !ok {
			return nil, fmt.Errorf("current user %q is not in the dataset", cfg.CurrentUserID)
		}
		p.IsCurrentUser = true
		data.CurrentUser = p
	}
	data.Prepare()

	now, err := resolveNow(opts.now, data.AsOf, cfg.Location())
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, data: data, now: now, registry: prometheus.NewRegistry()}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		if m, err = metrics.New(a.registry); err != nil {
			return nil, err
		}
	}

	a.ledger = memory.NewLedger(data.Seed())
	a.deps = service.Deps{
		Ledger:      a.ledger,
		CurrentUser: data.CurrentUser,
		SubmitDelay: cfg.SubmitDelay,
		Metrics:     m,
		Now:         func() time.Time { return a.now },
	}

	if a.settings, err = openSettingsStore(cfg); err != nil {
		return nil, err
	}

	slog.Debug("App initialized",
		"dataset", cfg.DatasetPath,
		"current_user", data.CurrentUser.ID,
		"settings_backend", cfg.SettingsBackend,
		"now", now,
	)
	return a, nil
}

func openSettingsStore(cfg *config.Config) (storage.SettingsStore, error) {
	switch cfg.SettingsBackend {
	case config.BackendMemory:
		return memory.NewSettingsStore(), nil
	case config.BackendFile:
		return file.New(cfg.SettingsFile)
	case config.BackendSQLite:
		return sqlite.New(cfg.SQLiteDBPath)
	}
	return nil, fmt.Errorf("unknown settings backend %q", cfg.SettingsBackend)
}

// resolveNow picks the reference time: the --now flag, else the dataset's
// asOf, else the wall clock. Times are expressed in loc.
func resolveNow(flag string, asOf time.Time, loc *time.Location) (time.Time, error) {
	switch {
	case flag != "":
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
			if t, err := time.ParseInLocation(layout, flag, loc); err == nil {
				return t.In(loc), nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid --now %q: use RFC 3339 or YYYY-MM-DD", flag)
	case !asOf.IsZero():
		return asOf.In(loc), nil
	}
	return time.Now().In(loc), nil
}

// persist writes the ledger back to the dataset file.
func (a *app) persist(ctx context.Context) error {
	if a.cfg.DatasetPath == "" {
		return errors.New("--write needs a dataset file (--dataset or DATASET_PATH)")
	}
	if err := a.data.Snapshot(ctx, a.ledger); err != nil {
		return err
	}
	if err := dataset.Save(a.cfg.DatasetPath, a.data); err != nil {
		return err
	}
	slog.Info("Dataset saved", "path", a.cfg.DatasetPath)
	return nil
}

// close releases the settings store and dumps metrics when enabled.
func (a *app) close(w io.Writer) error {
	var errs []error
	if a.cfg.MetricsEnabled {
		errs = append(errs, metrics.Dump(w, a.registry))
	}
	errs = append(errs, a.settings.Close())
	return errors.Join(errs...)
}

// name returns the display name for a person ID, or the ID itself.
func (a *app) name(id string) string {
	if p, ok := a.data.Person(id); ok {
		return p.Name
	}
	return id
}
