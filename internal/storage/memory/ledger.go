package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/storage"
)

var _ storage.Ledger = (*Ledger)(nil)

// Ledger keeps every record in slices guarded by one mutex.
type Ledger struct {
	mu          sync.RWMutex
	expenses    []models.Expense
	groups      []models.Group
	friends     []models.Friend
	settlements []models.Settlement
	activities  []models.Activity
}

// Seed is the initial content of a Ledger.
type Seed struct {
	Expenses    []models.Expense
	Groups      []models.Group
	Friends     []models.Friend
	Settlements []models.Settlement
	Activities  []models.Activity
}

// NewLedger returns a ledger holding copies of the seed records.
func NewLedger(seed Seed) *Ledger {
	return &Ledger{
		expenses:    slices.Clone(seed.Expenses),
		groups:      slices.Clone(seed.Groups),
		friends:     slices.Clone(seed.Friends),
		settlements: slices.Clone(seed.Settlements),
		activities:  slices.Clone(seed.Activities),
	}
}

func requireID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s ID is required", kind)
	}
	return nil
}

// ListExpenses returns a copy of all expenses in insertion order.
func (l *Ledger) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.expenses), nil
}

// CreateExpense stores a new expense. The ID must be set.
func (l *Ledger) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if err := requireID("expense", expense.ID); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expenses = append(l.expenses, *expense)
	return nil
}

// ListGroups returns a copy of all groups.
func (l *Ledger) ListGroups(ctx context.Context) ([]models.Group, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.groups), nil
}

// GetGroup returns a copy of the group with groupID.
func (l *Ledger) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, g := range l.groups {
		if g.ID == groupID {
			return &g, nil
		}
	}
	return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
}

// CreateGroup stores a new group. The ID must be set.
func (l *Ledger) CreateGroup(ctx context.Context, group *models.Group) error {
	if err := requireID("group", group.ID); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.groups = append(l.groups, *group)
	return nil
}

// UpdateGroup replaces the stored group with the same ID.
func (l *Ledger) UpdateGroup(ctx context.Context, group *models.Group) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.groups {
		if l.groups[i].ID == group.ID {
			l.groups[i] = *group
			return nil
		}
	}
	return fmt.Errorf("group %s: %w", group.ID, storage.ErrNotFound)
}

// ListFriends returns a copy of all friends.
func (l *Ledger) ListFriends(ctx context.Context) ([]models.Friend, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.friends), nil
}

// CreateFriend stores a new friend. The ID must be set.
func (l *Ledger) CreateFriend(ctx context.Context, friend *models.Friend) error {
	if err := requireID("friend", friend.ID); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.friends = append(l.friends, *friend)
	return nil
}

// ListSettlements returns a copy of all settlements.
func (l *Ledger) ListSettlements(ctx context.Context) ([]models.Settlement, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.settlements), nil
}

// CreateSettlement stores a new settlement. The ID must be set.
func (l *Ledger) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if err := requireID("settlement", settlement.ID); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settlements = append(l.settlements, *settlement)
	return nil
}

// ListActivities returns a copy of all activities.
func (l *Ledger) ListActivities(ctx context.Context) ([]models.Activity, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.activities), nil
}

// AddActivity appends an activity. The ID must be set.
func (l *Ledger) AddActivity(ctx context.Context, activity *models.Activity) error {
	if err := requireID("activity", activity.ID); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.activities = append(l.activities, *activity)
	return nil
}
