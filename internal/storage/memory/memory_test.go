package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/settings"
	"github.com/mmynk/paisasplit/internal/storage"
)

func TestSettingsStore(t *testing.T) {
	store := NewSettingsStore()
	ctx := context.Background()

	s := settings.Defaults()
	s.App.Language = "hi"
	if err := store.SaveSettings(ctx, &s); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	got, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if diff := cmp.Diff(s, *got); diff != "" {
		t.Errorf("LoadSettings mismatch (-want +got):\n%s", diff)
	}

	// Mutating the loaded copy must not leak into the store.
	got.App.Language = "ta"
	again, _ := store.LoadSettings(ctx)
	if again.App.Language != "hi" {
		t.Errorf("Language = %q, want hi", again.App.Language)
	}

	if err := store.ResetSettings(ctx); err != nil {
		t.Fatalf("ResetSettings failed: %v", err)
	}
	got, _ = store.LoadSettings(ctx)
	if got.App.Language != "en" {
		t.Errorf("Language after reset = %q, want en", got.App.Language)
	}
}

func TestLedger(t *testing.T) {
	seed := Seed{
		Groups: []models.Group{{ID: "g1", Name: "Roommates"}},
	}
	ledger := NewLedger(seed)
	ctx := context.Background()

	// The seed slice is copied.
	seed.Groups[0].Name = "changed"
	g, err := ledger.GetGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if g.Name != "Roommates" {
		t.Errorf("Name = %q, want Roommates", g.Name)
	}

	if _, err := ledger.GetGroup(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetGroup(missing) error = %v, want ErrNotFound", err)
	}
	if err := ledger.UpdateGroup(ctx, &models.Group{ID: "missing"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateGroup(missing) error = %v, want ErrNotFound", err)
	}

	g.ExpenseCount = 3
	if err := ledger.UpdateGroup(ctx, g); err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	groups, _ := ledger.ListGroups(ctx)
	if len(groups) != 1 || groups[0].ExpenseCount != 3 {
		t.Errorf("ListGroups = %+v", groups)
	}

	for _, id := range []string{"e1", "e2"} {
		if err := ledger.CreateExpense(ctx, &models.Expense{ID: id}); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}
	if err := ledger.CreateExpense(ctx, &models.Expense{}); err == nil {
		t.Error("CreateExpense accepted an empty ID")
	}
	expenses, _ := ledger.ListExpenses(ctx)
	if len(expenses) != 2 || expenses[0].ID != "e1" || expenses[1].ID != "e2" {
		t.Errorf("ListExpenses = %+v, want e1, e2 in order", expenses)
	}

	if err := ledger.CreateFriend(ctx, &models.Friend{ID: "f1"}); err != nil {
		t.Fatalf("CreateFriend failed: %v", err)
	}
	if err := ledger.CreateSettlement(ctx, &models.Settlement{ID: "s1"}); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	if err := ledger.AddActivity(ctx, &models.Activity{ID: "a1"}); err != nil {
		t.Fatalf("AddActivity failed: %v", err)
	}
	friends, _ := ledger.ListFriends(ctx)
	settlements, _ := ledger.ListSettlements(ctx)
	activities, _ := ledger.ListActivities(ctx)
	if len(friends) != 1 || len(settlements) != 1 || len(activities) != 1 {
		t.Errorf("got %d friends, %d settlements, %d activities; want 1 each", len(friends), len(settlements), len(activities))
	}
}
