package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/paisasplit/internal/calculator"
	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/money"
	"github.com/mmynk/paisasplit/internal/storage"
)

// ExpenseDraft is the content of the add-expense form.
type ExpenseDraft struct {
	Description string
	Amount      money.Amount
	Category    models.Category
	GroupID     string

	// Date defaults to the submit time.
	Date time.Time

	PaidByID string

	// SplitMethod defaults to equal.
	SplitMethod models.SplitMethod

	// Splits lists the participants. Percentage splits carry their
	// percentages and exact splits their amounts.
	Splits []models.MemberSplit

	Notes string
}

func (d ExpenseDraft) method() models.SplitMethod {
	if d.SplitMethod == "" {
		return models.SplitEqual
	}
	return d.SplitMethod
}

// ExpenseService handles the add-expense dialog.
type ExpenseService struct {
	deps   Deps
	submit *submitter
}

// NewExpenseService creates an ExpenseService.
func NewExpenseService(deps Deps) *ExpenseService {
	return &ExpenseService{deps: deps, submit: newSubmitter("add_expense", deps)}
}

// Preview computes the split for the draft as it currently stands.
func (s *ExpenseService) Preview(draft ExpenseDraft) calculator.Result {
	method := draft.method()
	if _, err := models.ParseSplitMethod(string(method)); err != nil {
		return calculator.Result{Method: method, Remaining: draft.Amount}
	}
	result := calculator.Compute(draft.Amount, method, draft.Splits)
	s.deps.Metrics.ObserveSplit(string(method), result.Valid)
	return result
}

// AddExpense validates the draft, computes its splits and records the expense.
// The group's balance and totals are updated and an expense activity is added.
func (s *ExpenseService) AddExpense(ctx context.Context, draft ExpenseDraft) (*models.Expense, error) {
	slog.Info("AddExpense request received",
		"description", draft.Description,
		"amount", draft.Amount,
		"group_id", draft.GroupID,
		"split_method", draft.SplitMethod,
		"participants_count", len(draft.Splits),
	)

	now := s.deps.now()
	var (
		group   *models.Group
		result  calculator.Result
		expense *models.Expense
	)
	check := func(ctx context.Context) (err error) {
		group, result, err = s.validate(ctx, draft, now)
		return err
	}
	err := s.submit.do(ctx, check, func(ctx context.Context) (err error) {
		expense, err = s.commit(ctx, draft, group, result, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deps.Metrics.AddAmount("expense", draft.Amount.Float64())
	slog.Info("Expense created", "expense_id", expense.ID, "your_share", expense.YourShare)
	return expense, nil
}

func (s *ExpenseService) validate(ctx context.Context, draft ExpenseDraft, now time.Time) (*models.Group, calculator.Result, error) {
	errs := fieldErrors{}

	if strings.TrimSpace(draft.Description) == "" {
		errs.add("description", "Please enter a description")
	}
	if draft.Amount <= 0 {
		errs.add("amount", "Please enter a valid amount")
	}
	if _, err := models.ParseCategory(string(draft.Category)); err != nil {
		errs.add("category", "Please select a category")
	}
	if draft.Date.After(now) {
		errs.add("date", "Date cannot be in the future")
	}

	method := draft.method()
	if _, err := models.ParseSplitMethod(string(method)); err != nil {
		errs.add("splitMethod", "Please select a split method")
	}

	var group *models.Group
	if draft.GroupID == "" {
		errs.add("groupId", "Please select a group")
	} else {
		g, err := s.deps.Ledger.GetGroup(ctx, draft.GroupID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			errs.add("groupId", "Please select a group")
		case err != nil:
			return nil, calculator.Result{}, fmt.Errorf("failed to get group: %w", err)
		default:
			group = g
		}
	}

	if len(draft.Splits) == 0 {
		errs.add("participants", "Please select at least one participant")
	}
	if draft.PaidByID == "" {
		errs.add("paidBy", "Please select who paid")
	}
	if group != nil {
		if draft.PaidByID != "" && !isMember(group, draft.PaidByID) {
			errs.add("paidBy", "Payer must be a member of the group")
		}
		seen := make(map[string]bool, len(draft.Splits))
		for _, sp := range draft.Splits {
			if !isMember(group, sp.ParticipantID) {
				errs.add("participants", fmt.Sprintf("%s is not a member of %s", sp.ParticipantID, group.Name))
			}
			if seen[sp.ParticipantID] {
				errs.add("participants", fmt.Sprintf("%s is listed more than once", sp.ParticipantID))
			}
			seen[sp.ParticipantID] = true
		}
	}

	if len(errs) > 0 {
		return nil, calculator.Result{}, errs.err()
	}

	result := s.Preview(draft)
	if !result.Valid {
		errs.add("splits", fmt.Sprintf("Split amounts must add up to the total (%s remaining)", money.Format(result.Remaining)))
		return nil, result, errs.err()
	}
	return group, result, nil
}

func (s *ExpenseService) commit(ctx context.Context, draft ExpenseDraft, group *models.Group, result calculator.Result, now time.Time) (*models.Expense, error) {
	date := draft.Date
	if date.IsZero() {
		date = now
	}

	participants := make([]string, len(result.Splits))
	for i, sp := range result.Splits {
		participants[i] = sp.ParticipantID
	}

	expense := &models.Expense{
		ID:           uuid.New().String(),
		Description:  strings.TrimSpace(draft.Description),
		Amount:       draft.Amount,
		Category:     draft.Category,
		Date:         date,
		GroupID:      group.ID,
		GroupName:    group.Name,
		PaidBy:       memberName(group, draft.PaidByID),
		PaidByID:     draft.PaidByID,
		Participants: participants,
		SplitMethod:  result.Method,
		Splits:       result.Splits,
		Status:       models.StatusPending,
		Notes:        strings.TrimSpace(draft.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	expense.YourShare = calculator.YourShare(s.deps.CurrentUser.ID, *expense)

	if err := s.deps.Ledger.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	group.YourBalance += expense.YourShare
	group.TotalExpenses += expense.Amount
	group.ExpenseCount++
	group.LastActivity = now
	if group.Status == models.GroupSettled && group.YourBalance != 0 {
		group.Status = models.GroupActive
	}
	if err := s.deps.Ledger.UpdateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	amount := expense.Amount
	activity := &models.Activity{
		ID:          uuid.New().String(),
		Type:        models.ActivityExpense,
		Title:       expense.Description,
		Description: "You added an expense in " + group.Name,
		Timestamp:   now,
		IsRead:      true,
		Amount:      &amount,
		GroupID:     group.ID,
		RelatedID:   expense.ID,
	}
	if err := s.deps.Ledger.AddActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to add activity: %w", err)
	}
	return expense, nil
}

func isMember(g *models.Group, id string) bool {
	return slices.ContainsFunc(g.Members, func(m models.Participant) bool { return m.ID == id })
}

func memberName(g *models.Group, id string) string {
	for _, m := range g.Members {
		if m.ID == id {
			return m.Name
		}
	}
	return id
}
