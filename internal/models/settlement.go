package models

import (
	"time"

	"github.com/mmynk/paisasplit/internal/money"
)

// SettlementType says which direction a settlement goes.
type SettlementType string

const (
	// SettlePay records that the current user paid someone.
	SettlePay SettlementType = "pay"
	// SettleRequest asks someone to pay the current user.
	SettleRequest SettlementType = "request"
	// SettleRecord records a payment received outside the app.
	SettleRecord SettlementType = "record"
)

// ParseSettlementType converts text to a SettlementType.
func ParseSettlementType(s string) (SettlementType, error) {
	switch SettlementType(s) {
	case SettlePay, SettleRequest, SettleRecord:
		return SettlementType(s), nil
	}
	return "", unknown("settlement type", s)
}

// NeedsPaymentMethod reports whether a payment method must be given.
func (t SettlementType) NeedsPaymentMethod() bool {
	switch t {
	case SettlePay, SettleRecord:
		return true
	case SettleRequest:
		return false
	}
	panic("models: unhandled settlement type " + string(t))
}

// PaymentMethod is how a settlement was paid.
type PaymentMethod string

const (
	PayCash         PaymentMethod = "cash"
	PayUPI          PaymentMethod = "upi"
	PayCard         PaymentMethod = "card"
	PayBankTransfer PaymentMethod = "bank_transfer"
	PayOther        PaymentMethod = "other"
)

// ParsePaymentMethod converts text to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PayCash, PayUPI, PayCard, PayBankTransfer, PayOther:
		return PaymentMethod(s), nil
	}
	return "", unknown("payment method", s)
}

// Label returns the display label.
func (m PaymentMethod) Label() string {
	switch m {
	case PayCash:
		return "Cash"
	case PayUPI:
		return "UPI"
	case PayCard:
		return "Card"
	case PayBankTransfer:
		return "Bank Transfer"
	case PayOther:
		return "Other"
	}
	panic("models: unhandled payment method " + string(m))
}

// Settlement represents a payment between the current user and another person.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id" yaml:"id"`

	Type SettlementType `json:"type" yaml:"type"`

	// PersonID is the counterparty.
	PersonID string `json:"personId" yaml:"personId"`

	// Amount is the payment amount, always positive.
	Amount money.Amount `json:"amount" yaml:"amount"`

	// PaymentMethod is empty for requests.
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty" yaml:"paymentMethod,omitempty"`

	// Notes is an optional description for the settlement.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}
