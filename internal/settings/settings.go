// Package settings defines the user preferences persisted by PaisaSplit and
// the rules for decoding, validating and editing them.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/mmynk/paisasplit/internal/models"
)

// StorageKey names the persisted settings blob.
const StorageKey = "paisasplit-settings"

// Version is the application version written into exports.
const Version = "2.1.4"

// App holds display preferences.
type App struct {
	Theme           string `json:"theme" yaml:"theme"`
	Language        string `json:"language" yaml:"language"`
	DefaultCurrency string `json:"defaultCurrency" yaml:"defaultCurrency"`
	DateFormat      string `json:"dateFormat" yaml:"dateFormat"`
	NumberFormat    string `json:"numberFormat" yaml:"numberFormat"`
	StartOfWeek     string `json:"startOfWeek" yaml:"startOfWeek"`
}

// Expense holds expense entry preferences.
type Expense struct {
	AutoSaveDrafts     bool               `json:"autoSaveDrafts" yaml:"autoSaveDrafts"`
	DefaultSplitMethod models.SplitMethod `json:"defaultSplitMethod" yaml:"defaultSplitMethod"`
	ReceiptScanning    bool               `json:"receiptScanning" yaml:"receiptScanning"`
	SmartCategories    bool               `json:"smartCategories" yaml:"smartCategories"`
	ExpenseReminders   bool               `json:"expenseReminders" yaml:"expenseReminders"`
	RoundSmallAmounts  bool               `json:"roundSmallAmounts" yaml:"roundSmallAmounts"`
}

// Notification holds alert preferences.
type Notification struct {
	PushEnabled       bool   `json:"pushEnabled" yaml:"pushEnabled"`
	EmailEnabled      bool   `json:"emailEnabled" yaml:"emailEnabled"`
	NewExpenseAlerts  bool   `json:"newExpenseAlerts" yaml:"newExpenseAlerts"`
	PaymentReminders  bool   `json:"paymentReminders" yaml:"paymentReminders"`
	GroupActivity     bool   `json:"groupActivity" yaml:"groupActivity"`
	FriendRequests    bool   `json:"friendRequests" yaml:"friendRequests"`
	SoundEnabled      bool   `json:"soundEnabled" yaml:"soundEnabled"`
	QuietHoursEnabled bool   `json:"quietHoursEnabled" yaml:"quietHoursEnabled"`
	QuietHoursStart   string `json:"quietHoursStart" yaml:"quietHoursStart"`
	QuietHoursEnd     string `json:"quietHoursEnd" yaml:"quietHoursEnd"`
}

// Privacy holds visibility preferences.
type Privacy struct {
	ProfileVisibility      string `json:"profileVisibility" yaml:"profileVisibility"`
	ShowOnlineStatus       bool   `json:"showOnlineStatus" yaml:"showOnlineStatus"`
	AllowFriendRequests    bool   `json:"allowFriendRequests" yaml:"allowFriendRequests"`
	AutoAcceptGroupInvites bool   `json:"autoAcceptGroupInvites" yaml:"autoAcceptGroupInvites"`
	DataAnalytics          bool   `json:"dataAnalytics" yaml:"dataAnalytics"`
	SessionTimeout         string `json:"sessionTimeout" yaml:"sessionTimeout"`
}

// Advanced holds diagnostic and performance preferences.
type Advanced struct {
	BetaFeatures     bool   `json:"betaFeatures" yaml:"betaFeatures"`
	DebugMode        bool   `json:"debugMode" yaml:"debugMode"`
	CacheSize        string `json:"cacheSize" yaml:"cacheSize"`
	OfflineMode      bool   `json:"offlineMode" yaml:"offlineMode"`
	AnimationEffects bool   `json:"animationEffects" yaml:"animationEffects"`
	AutoUpdate       bool   `json:"autoUpdate" yaml:"autoUpdate"`
}

// Settings is the full preference set, persisted as one JSON blob.
type Settings struct {
	App          App          `json:"app" yaml:"app"`
	Expense      Expense      `json:"expense" yaml:"expense"`
	Notification Notification `json:"notification" yaml:"notification"`
	Privacy      Privacy      `json:"privacy" yaml:"privacy"`
	Advanced     Advanced     `json:"advanced" yaml:"advanced"`
}

// Defaults returns the settings of a fresh install.
func Defaults() Settings {
	return Settings{
		App: App{
			Theme:           "light",
			Language:        "en",
			DefaultCurrency: "USD",
			DateFormat:      "MM/DD/YYYY",
			NumberFormat:    "1,234.56",
			StartOfWeek:     "sunday",
		},
		Expense: Expense{
			AutoSaveDrafts:     true,
			DefaultSplitMethod: models.SplitEqual,
			ReceiptScanning:    true,
			SmartCategories:    true,
			ExpenseReminders:   false,
			RoundSmallAmounts:  true,
		},
		Notification: Notification{
			PushEnabled:       true,
			EmailEnabled:      true,
			NewExpenseAlerts:  true,
			PaymentReminders:  true,
			GroupActivity:     true,
			FriendRequests:    true,
			SoundEnabled:      true,
			QuietHoursEnabled: false,
			QuietHoursStart:   "22:00",
			QuietHoursEnd:     "08:00",
		},
		Privacy: Privacy{
			ProfileVisibility:      "friends",
			ShowOnlineStatus:       true,
			AllowFriendRequests:    true,
			AutoAcceptGroupInvites: false,
			DataAnalytics:          true,
			SessionTimeout:         "4h",
		},
		Advanced: Advanced{
			BetaFeatures:     false,
			DebugMode:        false,
			CacheSize:        "medium",
			OfflineMode:      true,
			AnimationEffects: true,
			AutoUpdate:       true,
		},
	}
}

// Decode overlays a stored blob on Defaults. Sections and fields missing
// from data keep their default values. Empty data yields Defaults.
func Decode(data []byte) (Settings, error) {
	s := Defaults()
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}

// Encode returns the JSON blob for s.
func (s Settings) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return data, nil
}

var (
	themes             = []string{"light", "dark", "auto"}
	weekStarts         = []string{"sunday", "monday"}
	visibilities       = []string{"public", "friends", "private"}
	cacheSizes         = []string{"small", "medium", "large"}
	sessionTimeouts    = []string{"1h", "4h", "8h", "24h", "never"}
	clockTime          = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	cacheSizeFootprint = map[string]string{"small": "42MB", "medium": "78MB", "large": "156MB"}
)

func oneOf(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: %q is not one of %v", field, value, allowed)
}

// Validate reports every invalid field of s.
func (s Settings) Validate() error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	add(oneOf("app.theme", s.App.Theme, themes))
	add(oneOf("app.startOfWeek", s.App.StartOfWeek, weekStarts))
	if _, err := models.ParseSplitMethod(string(s.Expense.DefaultSplitMethod)); err != nil {
		add(fmt.Errorf("expense.defaultSplitMethod: %w", err))
	}
	if !clockTime.MatchString(s.Notification.QuietHoursStart) {
		add(fmt.Errorf("notification.quietHoursStart: %q is not HH:MM", s.Notification.QuietHoursStart))
	}
	if !clockTime.MatchString(s.Notification.QuietHoursEnd) {
		add(fmt.Errorf("notification.quietHoursEnd: %q is not HH:MM", s.Notification.QuietHoursEnd))
	}
	add(oneOf("privacy.profileVisibility", s.Privacy.ProfileVisibility, visibilities))
	add(oneOf("privacy.sessionTimeout", s.Privacy.SessionTimeout, sessionTimeouts))
	add(oneOf("advanced.cacheSize", s.Advanced.CacheSize, cacheSizes))

	return errors.Join(errs...)
}

// CacheFootprint returns the approximate disk use shown next to the cache
// size option.
func (a Advanced) CacheFootprint() string {
	if f, ok := cacheSizeFootprint[a.CacheSize]; ok {
		return f
	}
	return cacheSizeFootprint["medium"]
}

// InQuietHours reports whether t's wall clock falls inside the quiet hours
// window. Windows that wrap midnight, such as 22:00 to 08:00, are supported.
func (n Notification) InQuietHours(t time.Time) bool {
	if !n.QuietHoursEnabled {
		return false
	}
	start, err1 := time.Parse("15:04", n.QuietHoursStart)
	end, err2 := time.Parse("15:04", n.QuietHoursEnd)
	if err1 != nil || err2 != nil {
		return false
	}
	minute := func(c time.Time) int { return c.Hour()*60 + c.Minute() }
	now, from, to := minute(t), minute(start), minute(end)
	if from <= to {
		return now >= from && now < to
	}
	return now >= from || now < to
}
