// Package dataset loads the records behind the CLI from JSON or YAML files.
package dataset

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/paisasplit/internal/calculator"
	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/money"
	"github.com/mmynk/paisasplit/internal/storage"
	"github.com/mmynk/paisasplit/internal/storage/memory"
)

//go:embed sample.yaml
var sample []byte

// Dataset is a snapshot of everything the current user can see.
type Dataset struct {
	// AsOf is the reference time the data was captured at. Zero means unset.
	AsOf time.Time `json:"asOf,omitempty" yaml:"asOf,omitempty"`

	CurrentUser models.Participant   `json:"currentUser" yaml:"currentUser"`
	People      []models.Participant `json:"people,omitempty" yaml:"people,omitempty"`

	Groups      []models.Group      `json:"groups,omitempty" yaml:"groups,omitempty"`
	Expenses    []models.Expense    `json:"expenses,omitempty" yaml:"expenses,omitempty"`
	Settlements []models.Settlement `json:"settlements,omitempty" yaml:"settlements,omitempty"`
	Friends     []models.Friend     `json:"friends,omitempty" yaml:"friends,omitempty"`
	Activities  []models.Activity   `json:"activities,omitempty" yaml:"activities,omitempty"`
}

// Sample returns the built-in demo dataset.
func Sample() *Dataset {
	d, err := Decode(sample, ".yaml")
	if err != nil {
		panic(fmt.Sprintf("dataset: invalid built-in sample: %v", err))
	}
	return d
}

// Load reads a dataset file. The format follows the extension: .json, .yaml or .yml.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	d, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Decode parses data in the format named by ext and validates the result.
func Decode(data []byte, ext string) (*Dataset, error) {
	var d Dataset
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to parse dataset: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to parse dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
	d.applyDefaults()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// applyDefaults fills enum fields a data file may leave out: expenses fall
// back to the "other" category, equal splits and pending status, groups to
// general and active, friends to active.
func (d *Dataset) applyDefaults() {
	for i := range d.Expenses {
		e := &d.Expenses[i]
		if e.Category == "" {
			e.Category = models.CategoryOther
		}
		if e.SplitMethod == "" {
			e.SplitMethod = models.SplitEqual
		}
		if e.Status == "" {
			e.Status = models.StatusPending
		}
	}
	for i := range d.Groups {
		g := &d.Groups[i]
		if g.Type == "" {
			g.Type = models.GroupGeneral
		}
		if g.Status == "" {
			g.Status = models.GroupActive
		}
	}
	for i := range d.Friends {
		if d.Friends[i].Status == "" {
			d.Friends[i].Status = models.FriendActive
		}
	}
}

// Save writes d to path in the format named by its extension.
func Save(path string, d *Dataset) error {
	data, err := Encode(d, filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return nil
}

// Encode renders d in the format named by ext.
func Encode(d *Dataset, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".json":
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode dataset: %w", err)
		}
		return append(data, '\n'), nil
	case ".yaml", ".yml":
		data, err := yaml.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("failed to encode dataset: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported dataset format %q", ext)
}

// Validate checks identifiers, enum values and that every recorded split
// reconciles with its expense total.
func (d *Dataset) Validate() error {
	var errs []error
	if d.CurrentUser.ID == "" {
		errs = append(errs, errors.New("currentUser.id is required"))
	}

	seen := make(map[string]bool)
	for _, e := range d.Expenses {
		switch {
		case e.ID == "":
			errs = append(errs, fmt.Errorf("expense %q has no id", e.Description))
			continue
		case seen[e.ID]:
			errs = append(errs, fmt.Errorf("duplicate expense id %q", e.ID))
		}
		seen[e.ID] = true
		errs = appendParse(errs, "expense "+e.ID, models.ParseCategory, e.Category)
		errs = appendParse(errs, "expense "+e.ID, models.ParseSplitMethod, e.SplitMethod)
		errs = appendParse(errs, "expense "+e.ID, models.ParseSettlementStatus, e.Status)
		if len(e.Splits) > 0 && !money.Reconciles(e.Amount, calculator.Allocated(e.Splits)) {
			errs = append(errs, fmt.Errorf("expense %s: splits sum to %s, want %s",
				e.ID, calculator.Allocated(e.Splits), e.Amount))
		}
	}

	groups := make(map[string]bool)
	for _, g := range d.Groups {
		if g.ID == "" {
			errs = append(errs, fmt.Errorf("group %q has no id", g.Name))
		}
		groups[g.ID] = true
		errs = appendParse(errs, "group "+g.ID, models.ParseGroupType, g.Type)
		errs = appendParse(errs, "group "+g.ID, models.ParseGroupStatus, g.Status)
	}
	for _, e := range d.Expenses {
		if e.GroupID != "" && !groups[e.GroupID] {
			errs = append(errs, fmt.Errorf("expense %s references unknown group %q", e.ID, e.GroupID))
		}
	}

	for _, st := range d.Settlements {
		errs = appendParse(errs, "settlement "+st.ID, models.ParseSettlementType, st.Type)
		if st.PaymentMethod != "" {
			errs = appendParse(errs, "settlement "+st.ID, models.ParsePaymentMethod, st.PaymentMethod)
		}
	}
	for _, f := range d.Friends {
		errs = appendParse(errs, "friend "+f.ID, models.ParseFriendStatus, f.Status)
	}
	for _, a := range d.Activities {
		errs = appendParse(errs, "activity "+a.ID, models.ParseActivityType, a.Type)
	}

	return errors.Join(errs...)
}

// appendParse appends an error naming record when value is not a known enum value.
func appendParse[T ~string](errs []error, record string, parse func(string) (T, error), value T) []error {
	if _, err := parse(string(value)); err != nil {
		return append(errs, fmt.Errorf("%s: %w", record, err))
	}
	return errs
}

// Prepare fills derived fields: each expense's YourShare is computed from
// its splits when it has any.
func (d *Dataset) Prepare() {
	for i := range d.Expenses {
		if len(d.Expenses[i].Splits) > 0 {
			d.Expenses[i].YourShare = calculator.YourShare(d.CurrentUser.ID, d.Expenses[i])
		}
	}
}

// Person returns the participant with id, searching the current user and People.
func (d *Dataset) Person(id string) (models.Participant, bool) {
	if id == d.CurrentUser.ID {
		return d.CurrentUser, true
	}
	for _, p := range d.People {
		if p.ID == id {
			return p, true
		}
	}
	return models.Participant{}, false
}

// Snapshot replaces the records of d with the current content of ledger.
func (d *Dataset) Snapshot(ctx context.Context, ledger storage.Ledger) error {
	var err error
	if d.Expenses, err = ledger.ListExpenses(ctx); err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}
	if d.Groups, err = ledger.ListGroups(ctx); err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}
	if d.Friends, err = ledger.ListFriends(ctx); err != nil {
		return fmt.Errorf("failed to list friends: %w", err)
	}
	if d.Settlements, err = ledger.ListSettlements(ctx); err != nil {
		return fmt.Errorf("failed to list settlements: %w", err)
	}
	if d.Activities, err = ledger.ListActivities(ctx); err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}
	return nil
}

// Seed returns the records as the initial content of a memory ledger.
func (d *Dataset) Seed() memory.Seed {
	return memory.Seed{
		Expenses:    d.Expenses,
		Groups:      d.Groups,
		Friends:     d.Friends,
		Settlements: d.Settlements,
		Activities:  d.Activities,
	}
}
