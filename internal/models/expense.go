package models

import (
	"time"

	"github.com/mmynk/paisasplit/internal/money"
)

// Category classifies an expense.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryEntertainment Category = "entertainment"
	CategoryGroceries     Category = "groceries"
	CategoryTransport     Category = "transport"
	CategoryUtilities     Category = "utilities"
	CategoryShopping      Category = "shopping"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryTravel        Category = "travel"
	CategoryRent          Category = "rent"
	CategoryOther         Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood, CategoryEntertainment, CategoryGroceries, CategoryTransport,
	CategoryUtilities, CategoryShopping, CategoryHealth, CategoryEducation,
	CategoryTravel, CategoryRent, CategoryOther,
}

// ParseCategory converts text to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", unknown("category", s)
}

// Label returns the display label.
func (c Category) Label() string {
	switch c {
	case CategoryFood:
		return "Food & Dining"
	case CategoryEntertainment:
		return "Entertainment"
	case CategoryGroceries:
		return "Groceries"
	case CategoryTransport:
		return "Transportation"
	case CategoryUtilities:
		return "Utilities"
	case CategoryShopping:
		return "Shopping"
	case CategoryHealth:
		return "Healthcare"
	case CategoryEducation:
		return "Education"
	case CategoryTravel:
		return "Travel"
	case CategoryRent:
		return "Rent & Housing"
	case CategoryOther:
		return "Other"
	}
	panic("models: unhandled category " + string(c))
}

// Icon returns the category glyph.
func (c Category) Icon() string {
	switch c {
	case CategoryFood:
		return "🍽️"
	case CategoryEntertainment:
		return "🎬"
	case CategoryGroceries:
		return "🛒"
	case CategoryTransport:
		return "🚗"
	case CategoryUtilities:
		return "💡"
	case CategoryShopping:
		return "🛍️"
	case CategoryHealth:
		return "⚕️"
	case CategoryEducation:
		return "📚"
	case CategoryTravel:
		return "✈️"
	case CategoryRent:
		return "🏠"
	case CategoryOther:
		return "💰"
	}
	panic("models: unhandled category " + string(c))
}

// SettlementStatus tracks how much of an expense has been paid back.
type SettlementStatus string

const (
	StatusPending          SettlementStatus = "pending"
	StatusSettled          SettlementStatus = "settled"
	StatusPartiallySettled SettlementStatus = "partially_settled"
)

// ParseSettlementStatus converts text to a SettlementStatus.
func ParseSettlementStatus(s string) (SettlementStatus, error) {
	switch SettlementStatus(s) {
	case StatusPending, StatusSettled, StatusPartiallySettled:
		return SettlementStatus(s), nil
	}
	return "", unknown("settlement status", s)
}

// Label returns the display label.
func (s SettlementStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusSettled:
		return "Settled"
	case StatusPartiallySettled:
		return "Partially Settled"
	}
	panic("models: unhandled settlement status " + string(s))
}

// SplitMethod determines how a total is distributed among participants.
type SplitMethod string

const (
	SplitEqual      SplitMethod = "equal"
	SplitPercentage SplitMethod = "percentage"
	SplitExact      SplitMethod = "exact"
)

// ParseSplitMethod converts text to a SplitMethod.
func ParseSplitMethod(s string) (SplitMethod, error) {
	switch SplitMethod(s) {
	case SplitEqual, SplitPercentage, SplitExact:
		return SplitMethod(s), nil
	}
	return "", unknown("split method", s)
}

// Label returns the title shown in the split method picker.
func (m SplitMethod) Label() string {
	switch m {
	case SplitEqual:
		return "Split Equally"
	case SplitPercentage:
		return "Split by Percentage"
	case SplitExact:
		return "Split by Exact Amounts"
	}
	panic("models: unhandled split method " + string(m))
}

// MemberSplit is one participant's allocation of an expense.
// Amount is authoritative; Percentage is derived and kept in sync by the
// calculator.
type MemberSplit struct {
	ParticipantID string       `json:"participantId" yaml:"participantId"`
	Amount        money.Amount `json:"amount" yaml:"amount"`
	Percentage    float64      `json:"percentage" yaml:"percentage"`
}

// Expense represents a shared cost.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id" yaml:"id"`

	// Description is the human-readable name (e.g. "Dinner at Olive").
	Description string `json:"description" yaml:"description"`

	// Amount is the full cost of the expense.
	Amount money.Amount `json:"amount" yaml:"amount"`

	Category Category `json:"category" yaml:"category"`

	// Date is when the expense happened (not when it was recorded).
	Date time.Time `json:"date" yaml:"date"`

	// GroupID is the owning group; GroupName is denormalised for search.
	GroupID   string `json:"groupId,omitempty" yaml:"groupId,omitempty"`
	GroupName string `json:"groupName,omitempty" yaml:"groupName,omitempty"`

	// PaidBy is the payer's display name; PaidByID references the participant.
	PaidBy   string `json:"paidBy" yaml:"paidBy"`
	PaidByID string `json:"paidById" yaml:"paidById"`

	// YourShare is the current user's net position on this expense.
	// Positive = others owe you, negative = you owe.
	YourShare money.Amount `json:"yourShare" yaml:"yourShare"`

	// Participants are the participant IDs sharing the expense.
	Participants []string `json:"participants,omitempty" yaml:"participants,omitempty"`

	SplitMethod SplitMethod   `json:"splitMethod,omitempty" yaml:"splitMethod,omitempty"`
	Splits      []MemberSplit `json:"splits,omitempty" yaml:"splits,omitempty"`

	Status SettlementStatus `json:"settlementStatus" yaml:"settlementStatus"`
	Notes  string           `json:"notes,omitempty" yaml:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}
