package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/paisasplit/internal/settings"
	"github.com/mmynk/paisasplit/internal/storage/memory"
)

func TestSettingsService(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSettingsStore()
	svc, err := NewSettingsService(ctx, store)
	if err != nil {
		t.Fatalf("NewSettingsService failed: %v", err)
	}

	if svc.Get() != settings.Defaults() {
		t.Fatal("expected defaults before any change")
	}

	updated, err := svc.Set(ctx, "app.theme", "dark")
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if updated.App.Theme != "dark" || svc.Get().App.Theme != "dark" {
		t.Errorf("theme = %q", svc.Get().App.Theme)
	}

	stored, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if stored.App.Theme != "dark" {
		t.Errorf("stored theme = %q, want dark", stored.App.Theme)
	}

	reopened, err := NewSettingsService(ctx, store)
	if err != nil {
		t.Fatalf("NewSettingsService failed: %v", err)
	}
	if reopened.Get().App.Theme != "dark" {
		t.Error("reopened service lost the saved theme")
	}

	if _, err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if svc.Get() != settings.Defaults() {
		t.Error("expected defaults after reset")
	}
}

func TestSettingsService_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	svc, err := NewSettingsService(ctx, memory.NewSettingsStore())
	if err != nil {
		t.Fatalf("NewSettingsService failed: %v", err)
	}

	if _, err := svc.Set(ctx, "app.theme", "neon"); err == nil {
		t.Error("expected error for unknown theme")
	}
	if _, err := svc.Set(ctx, "app.nope", "x"); !errors.Is(err, settings.ErrUnknownSetting) {
		t.Errorf("Set(app.nope) error = %v, want ErrUnknownSetting", err)
	}

	boom := errors.New("boom")
	if _, err := svc.Update(ctx, func(*settings.Settings) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Update() error = %v, want boom", err)
	}
	if svc.Get() != settings.Defaults() {
		t.Error("failed updates changed the settings")
	}
}

func TestSettingsService_Import(t *testing.T) {
	ctx := context.Background()
	svc, err := NewSettingsService(ctx, memory.NewSettingsStore())
	if err != nil {
		t.Fatalf("NewSettingsService failed: %v", err)
	}

	exported := settings.Defaults()
	exported.App.DefaultCurrency = "INR"
	data, err := settings.MarshalExport(exported, time.Date(2025, 9, 23, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("MarshalExport failed: %v", err)
	}

	got, err := svc.Import(ctx, data)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if got.App.DefaultCurrency != "INR" {
		t.Errorf("default currency = %q, want INR", got.App.DefaultCurrency)
	}

	if _, err := svc.Import(ctx, []byte(`{"version":"2.1.4"}`)); !errors.Is(err, settings.ErrInvalidExport) {
		t.Errorf("Import() error = %v, want ErrInvalidExport", err)
	}
}
