package settings

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/paisasplit/internal/models"
)

func TestDecodeKeepsDefaults(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want func(*Settings)
	}{
		{"empty", "", func(*Settings) {}},
		{"empty object", "{}", func(*Settings) {}},
		{
			name: "partial section",
			blob: `{"app":{"theme":"dark"}}`,
			want: func(s *Settings) { s.App.Theme = "dark" },
		},
		{
			name: "several sections",
			blob: `{"expense":{"defaultSplitMethod":"percentage"},"advanced":{"debugMode":true},"unknown":{"x":1}}`,
			want: func(s *Settings) {
				s.Expense.DefaultSplitMethod = models.SplitPercentage
				s.Advanced.DebugMode = true
			},
		},
		{
			name: "explicit false overrides true default",
			blob: `{"notification":{"pushEnabled":false}}`,
			want: func(s *Settings) { s.Notification.PushEnabled = false },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.blob))
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			want := Defaults()
			tt.want(&want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeInvalidReturnsDefaults(t *testing.T) {
	got, err := Decode([]byte("{not json"))
	if err == nil {
		t.Fatal("Decode() expected error")
	}
	if diff := cmp.Diff(Defaults(), got); diff != "" {
		t.Errorf("Decode() on error mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	s := Defaults()
	s.Privacy.ProfileVisibility = "private"
	data, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("Defaults().Validate() = %v", err)
	}

	s := Defaults()
	s.App.Theme = "neon"
	s.Expense.DefaultSplitMethod = "shares"
	s.Notification.QuietHoursStart = "25:00"
	s.Advanced.CacheSize = "huge"

	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, field := range []string{"app.theme", "expense.defaultSplitMethod", "notification.quietHoursStart", "advanced.cacheSize"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() error %q does not mention %s", err, field)
		}
	}
	if !errors.Is(err, models.ErrUnknownValue) {
		t.Errorf("Validate() error should wrap models.ErrUnknownValue for the split method")
	}
}

func TestQuietHours(t *testing.T) {
	n := Defaults().Notification
	at := func(h, m int) time.Time { return time.Date(2025, 9, 23, h, m, 0, 0, time.UTC) }

	if n.InQuietHours(at(23, 0)) {
		t.Error("quiet hours disabled by default")
	}
	n.QuietHoursEnabled = true
	tests := []struct {
		t    time.Time
		want bool
	}{
		{at(22, 0), true},
		{at(23, 30), true},
		{at(3, 0), true},
		{at(8, 0), false},
		{at(12, 0), false},
	}
	for _, tt := range tests {
		if got := n.InQuietHours(tt.t); got != tt.want {
			t.Errorf("InQuietHours(%s) = %v, want %v", tt.t.Format("15:04"), got, tt.want)
		}
	}

	n.QuietHoursStart, n.QuietHoursEnd = "13:00", "14:00"
	if !n.InQuietHours(at(13, 30)) || n.InQuietHours(at(14, 0)) {
		t.Error("same-day window not honoured")
	}
}

func TestCacheFootprint(t *testing.T) {
	a := Defaults().Advanced
	if got := a.CacheFootprint(); got != "78MB" {
		t.Errorf("CacheFootprint() = %q, want 78MB", got)
	}
	a.CacheSize = "large"
	if got := a.CacheFootprint(); got != "156MB" {
		t.Errorf("CacheFootprint() = %q, want 156MB", got)
	}
}

func TestGetAndWith(t *testing.T) {
	s := Defaults()

	if v, err := s.Get("app.theme"); err != nil || v != "light" {
		t.Errorf("Get(app.theme) = %q, %v", v, err)
	}
	if v, err := s.Get("advanced.offlineMode"); err != nil || v != "true" {
		t.Errorf("Get(advanced.offlineMode) = %q, %v", v, err)
	}

	got, err := s.With("app.theme", "dark")
	if err != nil {
		t.Fatalf("With() error: %v", err)
	}
	if got.App.Theme != "dark" || s.App.Theme != "light" {
		t.Errorf("With() theme = %q, original = %q", got.App.Theme, s.App.Theme)
	}

	got, err = s.With("notification.soundEnabled", "false")
	if err != nil {
		t.Fatalf("With() error: %v", err)
	}
	if got.Notification.SoundEnabled {
		t.Error("With() did not clear soundEnabled")
	}

	if _, err := s.With("notification.soundEnabled", "loud"); err == nil {
		t.Error("With() accepted a non-boolean")
	}
	for _, key := range []string{"theme", "app.colour", "nope.theme"} {
		if _, err := s.With(key, "x"); !errors.Is(err, ErrUnknownSetting) {
			t.Errorf("With(%q) error = %v, want ErrUnknownSetting", key, err)
		}
	}

	keys := s.Keys()
	if len(keys) != 34 {
		t.Errorf("Keys() returned %d keys, want 34", len(keys))
	}
	if keys[0] != "advanced.animationEffects" {
		t.Errorf("Keys()[0] = %q", keys[0])
	}
}

func TestExportImport(t *testing.T) {
	now := time.Date(2025, time.September, 23, 10, 0, 0, 0, time.UTC)
	s := Defaults()
	s.App.Theme = "dark"

	data, err := MarshalExport(s, now)
	if err != nil {
		t.Fatalf("MarshalExport() error: %v", err)
	}
	if want := `"version": "2.1.4"`; !strings.Contains(string(data), want) {
		t.Errorf("export missing %s:\n%s", want, data)
	}

	got, err := Import(Defaults(), data)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("Import() mismatch (-want +got):\n%s", diff)
	}

	if _, err := Import(Defaults(), []byte(`{"app":{"theme":"dark"}}`)); !errors.Is(err, ErrInvalidExport) {
		t.Errorf("Import() without settings error = %v, want ErrInvalidExport", err)
	}
	if got := ExportFileName(now); got != "paisasplit-settings-2025-09-23.json" {
		t.Errorf("ExportFileName() = %q", got)
	}
}
