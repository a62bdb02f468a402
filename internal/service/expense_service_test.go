package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/money"
	"github.com/mmynk/paisasplit/internal/storage"
)

func splitsFor(ids ...string) []models.MemberSplit {
	out := make([]models.MemberSplit, len(ids))
	for i, id := range ids {
		out[i] = models.MemberSplit{ParticipantID: id}
	}
	return out
}

func validDraft() ExpenseDraft {
	return ExpenseDraft{
		Description: "Pizza night",
		Amount:      money.Cents(10000),
		Category:    models.CategoryFood,
		GroupID:     "g2",
		PaidByID:    "current-user",
		SplitMethod: models.SplitEqual,
		Splits:      splitsFor("current-user", "alex", "emma"),
	}
}

func TestPreview(t *testing.T) {
	deps, _, _ := setupTestDeps(t)
	svc := NewExpenseService(deps)

	tests := []struct {
		name      string
		draft     ExpenseDraft
		want      []money.Amount
		wantValid bool
	}{
		{
			name:      "equal with leftover cent",
			draft:     validDraft(),
			want:      []money.Amount{3334, 3333, 3333},
			wantValid: true,
		},
		{
			name: "method defaults to equal",
			draft: ExpenseDraft{
				Amount: money.Cents(900),
				Splits: splitsFor("a", "b", "c"),
			},
			want:      []money.Amount{300, 300, 300},
			wantValid: true,
		},
		{
			name: "percentage not summing to 100",
			draft: ExpenseDraft{
				Amount:      money.Cents(10000),
				SplitMethod: models.SplitPercentage,
				Splits: []models.MemberSplit{
					{ParticipantID: "a", Percentage: 50},
					{ParticipantID: "b", Percentage: 40},
				},
			},
			want:      []money.Amount{5000, 4000},
			wantValid: false,
		},
		{
			name: "exact",
			draft: ExpenseDraft{
				Amount:      money.Cents(32000),
				SplitMethod: models.SplitExact,
				Splits: []models.MemberSplit{
					{ParticipantID: "a", Amount: money.Cents(20000)},
					{ParticipantID: "b", Amount: money.Cents(12000)},
				},
			},
			want:      []money.Amount{20000, 12000},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Preview(tt.draft)
			got := make([]money.Amount, len(result.Splits))
			for i, s := range result.Splits {
				got[i] = s.Amount
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("amounts mismatch (-want +got):\n%s", diff)
			}
			if result.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Valid, tt.wantValid)
			}
		})
	}
}

func TestPreview_UnknownMethod(t *testing.T) {
	deps, _, _ := setupTestDeps(t)
	svc := NewExpenseService(deps)

	result := svc.Preview(ExpenseDraft{Amount: money.Cents(500), SplitMethod: "shares"})
	if result.Valid || result.Remaining != money.Cents(500) {
		t.Errorf("Preview() = %+v, want invalid with everything remaining", result)
	}
}

func TestAddExpense(t *testing.T) {
	deps, ledger, _ := setupTestDeps(t)
	svc := NewExpenseService(deps)
	ctx := context.Background()

	expense, err := svc.AddExpense(ctx, validDraft())
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	if expense.ID == "" {
		t.Error("expected non-empty expense ID")
	}
	if expense.GroupName != "Roommates" || expense.PaidBy != "You" {
		t.Errorf("group name %q, paid by %q", expense.GroupName, expense.PaidBy)
	}
	if expense.YourShare != money.Cents(6666) {
		t.Errorf("YourShare = %v, want 66.66", expense.YourShare)
	}
	if !expense.Date.Equal(deps.now()) {
		t.Errorf("Date = %v, want submit time", expense.Date)
	}
	if diff := cmp.Diff([]string{"current-user", "alex", "emma"}, expense.Participants); diff != "" {
		t.Errorf("participants mismatch (-want +got):\n%s", diff)
	}

	expenses, _ := ledger.ListExpenses(ctx)
	if len(expenses) != 7 || expenses[6].ID != expense.ID {
		t.Errorf("expense not stored, have %d expenses", len(expenses))
	}

	group, err := ledger.GetGroup(ctx, "g2")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if group.YourBalance != money.Cents(22666) {
		t.Errorf("group balance = %v, want 226.66", group.YourBalance)
	}
	if group.ExpenseCount != 3 || group.TotalExpenses != money.Cents(440000) {
		t.Errorf("group count %d total %v", group.ExpenseCount, group.TotalExpenses)
	}

	activities, _ := ledger.ListActivities(ctx)
	last := activities[len(activities)-1]
	if last.Type != models.ActivityExpense || last.RelatedID != expense.ID {
		t.Errorf("last activity = %+v", last)
	}
	if last.Description != "You added an expense in Roommates" {
		t.Errorf("activity description = %q", last.Description)
	}
}

func TestAddExpense_ReopensSettledGroup(t *testing.T) {
	deps, ledger, _ := setupTestDeps(t)
	svc := NewExpenseService(deps)
	ctx := context.Background()

	draft := ExpenseDraft{
		Description: "Team lunch",
		Amount:      money.Cents(60000),
		Category:    models.CategoryFood,
		GroupID:     "g3",
		PaidByID:    "mike",
		Splits:      splitsFor("current-user", "mike"),
	}
	if _, err := svc.AddExpense(ctx, draft); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	group, _ := ledger.GetGroup(ctx, "g3")
	if group.Status != models.GroupActive || group.YourBalance != money.Cents(-30000) {
		t.Errorf("group status %q balance %v", group.Status, group.YourBalance)
	}
}

func TestAddExpense_Validation(t *testing.T) {
	deps, ledger, _ := setupTestDeps(t)
	svc := NewExpenseService(deps)

	tests := []struct {
		name   string
		modify func(*ExpenseDraft)
		want   map[string]string
	}{
		{
			name: "empty form",
			modify: func(d *ExpenseDraft) {
				*d = ExpenseDraft{}
			},
			want: map[string]string{
				"description":  "Please enter a description",
				"amount":       "Please enter a valid amount",
				"category":     "Please select a category",
				"groupId":      "Please select a group",
				"participants": "Please select at least one participant",
				"paidBy":       "Please select who paid",
			},
		},
		{
			name:   "unknown group",
			modify: func(d *ExpenseDraft) { d.GroupID = "g9" },
			want:   map[string]string{"groupId": "Please select a group"},
		},
		{
			name:   "payer outside group",
			modify: func(d *ExpenseDraft) { d.PaidByID = "sarah" },
			want:   map[string]string{"paidBy": "Payer must be a member of the group"},
		},
		{
			name:   "participant outside group",
			modify: func(d *ExpenseDraft) { d.Splits = splitsFor("current-user", "mike") },
			want:   map[string]string{"participants": "mike is not a member of Roommates"},
		},
		{
			name:   "duplicate participant",
			modify: func(d *ExpenseDraft) { d.Splits = splitsFor("alex", "alex") },
			want:   map[string]string{"participants": "alex is listed more than once"},
		},
		{
			name:   "future date",
			modify: func(d *ExpenseDraft) { d.Date = deps.now().Add(48 * time.Hour) },
			want:   map[string]string{"date": "Date cannot be in the future"},
		},
		{
			name:   "unknown split method",
			modify: func(d *ExpenseDraft) { d.SplitMethod = "shares" },
			want:   map[string]string{"splitMethod": "Please select a split method"},
		},
		{
			name: "unbalanced exact split",
			modify: func(d *ExpenseDraft) {
				d.SplitMethod = models.SplitExact
				d.Splits = []models.MemberSplit{
					{ParticipantID: "current-user", Amount: money.Cents(5000)},
					{ParticipantID: "alex", Amount: money.Cents(4000)},
				}
			},
			want: map[string]string{"splits": "Split amounts must add up to the total (10.00 remaining)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.modify(&draft)

			_, err := svc.AddExpense(context.Background(), draft)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("AddExpense() error = %v, want ErrValidation", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if diff := cmp.Diff(tt.want, verr.Fields); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}

	expenses, _ := ledger.ListExpenses(context.Background())
	if len(expenses) != 6 {
		t.Errorf("rejected drafts were stored: %d expenses", len(expenses))
	}
}

func TestAddExpense_Pending(t *testing.T) {
	deps, ledger, _ := setupTestDeps(t)
	svc := NewExpenseService(deps)

	svc.submit.sem.TryAcquire(1)
	defer svc.submit.sem.Release(1)

	if _, err := svc.AddExpense(context.Background(), validDraft()); !errors.Is(err, ErrSubmitPending) {
		t.Fatalf("AddExpense() error = %v, want ErrSubmitPending", err)
	}
	expenses, _ := ledger.ListExpenses(context.Background())
	if len(expenses) != 6 {
		t.Errorf("pending submit stored an expense: %d expenses", len(expenses))
	}
}

// gatedLedger blocks the first GetGroup until release is closed.
type gatedLedger struct {
	storage.Ledger
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (l *gatedLedger) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	first := false
	l.once.Do(func() { first = true })
	if first {
		close(l.entered)
		<-l.release
	}
	return l.Ledger.GetGroup(ctx, groupID)
}

func TestAddExpense_OverlappingSubmitsKeepGroupTotals(t *testing.T) {
	deps, ledger, _ := setupTestDeps(t)
	gated := &gatedLedger{Ledger: ledger, entered: make(chan struct{}), release: make(chan struct{})}
	deps.Ledger = gated
	svc := NewExpenseService(deps)
	ctx := context.Background()

	before, err := ledger.GetGroup(ctx, "g2")
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.AddExpense(ctx, validDraft())
		done <- err
	}()
	<-gated.entered

	if _, err := svc.AddExpense(ctx, validDraft()); !errors.Is(err, ErrSubmitPending) {
		t.Errorf("overlapping AddExpense() error = %v, want ErrSubmitPending", err)
	}
	close(gated.release)
	if err := <-done; err != nil {
		t.Fatalf("first AddExpense() failed: %v", err)
	}
	if _, err := svc.AddExpense(ctx, validDraft()); err != nil {
		t.Fatalf("AddExpense() after release failed: %v", err)
	}

	after, err := ledger.GetGroup(ctx, "g2")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := after.ExpenseCount, before.ExpenseCount+2; got != want {
		t.Errorf("ExpenseCount = %d, want %d", got, want)
	}
	if got, want := after.TotalExpenses, before.TotalExpenses+money.Cents(20000); got != want {
		t.Errorf("TotalExpenses = %s, want %s", got, want)
	}
	expenses, _ := ledger.ListExpenses(ctx)
	if len(expenses) != 8 {
		t.Errorf("ledger holds %d expenses, want 8", len(expenses))
	}
}
