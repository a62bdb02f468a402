package models

import (
	"errors"
	"testing"
)

func TestParseEnums(t *testing.T) {
	if c, err := ParseCategory("food"); err != nil || c != CategoryFood {
		t.Errorf("ParseCategory(food) = %q, %v", c, err)
	}
	if _, err := ParseCategory("snacks"); !errors.Is(err, ErrUnknownValue) {
		t.Errorf("ParseCategory(snacks) error = %v, want ErrUnknownValue", err)
	}
	if m, err := ParseSplitMethod("percentage"); err != nil || m != SplitPercentage {
		t.Errorf("ParseSplitMethod(percentage) = %q, %v", m, err)
	}
	if _, err := ParseSettlementType("refund"); !errors.Is(err, ErrUnknownValue) {
		t.Errorf("ParseSettlementType(refund) error = %v, want ErrUnknownValue", err)
	}
}

func TestLabelsAreExhaustive(t *testing.T) {
	for _, c := range Categories {
		if c.Label() == "" || c.Icon() == "" {
			t.Errorf("category %q has no label or icon", c)
		}
	}
	for _, gt := range GroupTypes {
		if gt.Label() == "" || gt.Icon() == "" {
			t.Errorf("group type %q has no label or icon", gt)
		}
	}
	if got := PayBankTransfer.Label(); got != "Bank Transfer" {
		t.Errorf("PayBankTransfer.Label() = %q", got)
	}
	if got := StatusPartiallySettled.Label(); got != "Partially Settled" {
		t.Errorf("StatusPartiallySettled.Label() = %q", got)
	}
}

func TestUnknownEnumPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unhandled category")
		}
	}()
	_ = Category("snacks").Label()
}

func TestNeedsPaymentMethod(t *testing.T) {
	if !SettlePay.NeedsPaymentMethod() || !SettleRecord.NeedsPaymentMethod() {
		t.Error("pay and record need a payment method")
	}
	if SettleRequest.NeedsPaymentMethod() {
		t.Error("request does not need a payment method")
	}
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"Sarah Johnson":     "SJ",
		"Mary Ann Lee":      "ML",
		"madonna":           "MA",
		"john@example.com":  "JO",
		"":                  "?",
		"  ":                "?",
	}
	for in, want := range tests {
		if got := Initials(in); got != want {
			t.Errorf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParticipantsText(t *testing.T) {
	if got := ParticipantsText([]string{"A", "B", "C"}); got != "A, B, C" {
		t.Errorf("got %q", got)
	}
	if got := ParticipantsText([]string{"A", "B", "C", "D", "E"}); got != "A, B and 3 others" {
		t.Errorf("got %q", got)
	}
}
