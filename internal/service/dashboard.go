package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/paisasplit/internal/calculator"
	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/money"
	"github.com/mmynk/paisasplit/internal/query"
	"github.com/mmynk/paisasplit/internal/views"
)

// recentLimit is the number of expenses shown on the dashboard.
const recentLimit = 5

// Dashboard is the landing page summary.
type Dashboard struct {
	// TotalBalance is the sum of the current user's balances with everyone.
	TotalBalance money.Amount

	// MonthlyExpenses totals the expenses dated in the current month.
	MonthlyExpenses money.Amount

	ActiveGroups int
	TotalFriends int

	// RecentExpenses holds the latest expenses, newest first.
	RecentExpenses []models.Expense
}

// DashboardService builds the dashboard summary.
type DashboardService struct {
	deps Deps
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(deps Deps) *DashboardService {
	return &DashboardService{deps: deps}
}

// Dashboard summarizes the ledger as of now.
func (s *DashboardService) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	start := time.Now()
	defer func() { s.deps.Metrics.ObserveQuery("dashboard", time.Since(start)) }()

	expenses, err := s.deps.Ledger.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	settlements, err := s.deps.Ledger.ListSettlements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	groups, err := s.deps.Ledger.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	friends, err := s.deps.Ledger.ListFriends(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}

	d := &Dashboard{
		MonthlyExpenses: views.Stats(expenses, now).MonthTotal,
		ActiveGroups:    views.SummarizeGroups(groups).Active,
		TotalFriends:    views.SummarizeFriends(friends, now).Active,
	}
	for _, b := range calculator.PairwiseBalances(s.deps.CurrentUser.ID, expenses, settlements) {
		d.TotalBalance += b.Balance
	}

	recent := query.Pipeline[models.Expense]{
		Compare: query.ByTimeDesc(func(e models.Expense) time.Time { return e.Date }),
	}.Run(expenses, now)
	d.RecentExpenses = recent[:min(len(recent), recentLimit)]
	return d, nil
}
