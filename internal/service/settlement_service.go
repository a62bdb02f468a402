package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/paisasplit/internal/calculator"
	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/money"
)

// Counterparty is a person the current user has an open balance with.
type Counterparty struct {
	Person models.Participant

	// Balance is positive when the person owes the current user.
	Balance money.Amount
}

// SettlementDraft is the content of the settle-up form.
type SettlementDraft struct {
	Type          models.SettlementType
	PersonID      string
	Amount        money.Amount
	PaymentMethod models.PaymentMethod
	Notes         string
}

// SettlementService handles the settle-up dialog.
type SettlementService struct {
	deps   Deps
	submit *submitter
}

// NewSettlementService creates a SettlementService.
func NewSettlementService(deps Deps) *SettlementService {
	return &SettlementService{deps: deps, submit: newSubmitter("settle", deps)}
}

// Counterparties returns everyone the current user has a non-zero balance
// with, ordered by person ID.
func (s *SettlementService) Counterparties(ctx context.Context) ([]Counterparty, error) {
	expenses, err := s.deps.Ledger.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	settlements, err := s.deps.Ledger.ListSettlements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	people, err := directory(ctx, s.deps)
	if err != nil {
		return nil, err
	}

	var out []Counterparty
	for _, b := range calculator.PairwiseBalances(s.deps.CurrentUser.ID, expenses, settlements) {
		if b.Balance == 0 {
			continue
		}
		p, ok := people[b.PersonID]
		if !ok {
			p = models.Participant{ID: b.PersonID, Name: b.PersonID}
		}
		out = append(out, Counterparty{Person: p, Balance: b.Balance})
	}
	return out, nil
}

// Settle validates the draft and records the settlement together with an activity.
func (s *SettlementService) Settle(ctx context.Context, draft SettlementDraft) (*models.Settlement, error) {
	slog.Info("Settle request received",
		"type", draft.Type,
		"person_id", draft.PersonID,
		"amount", draft.Amount,
	)

	now := s.deps.now()
	var (
		person     models.Participant
		settlement *models.Settlement
	)
	check := func(ctx context.Context) error {
		people, err := directory(ctx, s.deps)
		if err != nil {
			return err
		}
		if person, err = s.validate(draft, people); err != nil {
			return err
		}
		settlement = &models.Settlement{
			ID:            uuid.New().String(),
			Type:          draft.Type,
			PersonID:      person.ID,
			Amount:        draft.Amount,
			PaymentMethod: draft.PaymentMethod,
			Notes:         strings.TrimSpace(draft.Notes),
			CreatedAt:     now,
		}
		if !draft.Type.NeedsPaymentMethod() {
			settlement.PaymentMethod = ""
		}
		return nil
	}

	err := s.submit.do(ctx, check, func(ctx context.Context) error {
		if err := s.deps.Ledger.CreateSettlement(ctx, settlement); err != nil {
			return fmt.Errorf("failed to create settlement: %w", err)
		}
		return s.deps.Ledger.AddActivity(ctx, settlementActivity(settlement, person))
	})
	if err != nil {
		return nil, err
	}

	s.deps.Metrics.AddAmount("settlement", draft.Amount.Float64())
	slog.Info("Settlement recorded", "settlement_id", settlement.ID, "type", settlement.Type)
	return settlement, nil
}

func (s *SettlementService) validate(draft SettlementDraft, people map[string]models.Participant) (models.Participant, error) {
	errs := fieldErrors{}

	if _, err := models.ParseSettlementType(string(draft.Type)); err != nil {
		errs.add("settlementType", "Please select a settlement type")
	}
	person, ok := people[draft.PersonID]
	if !ok || draft.PersonID == s.deps.CurrentUser.ID {
		errs.add("selectedPerson", "Please select a person")
	}
	if draft.Amount <= 0 {
		errs.add("amount", "Please enter a valid amount")
	}
	if draft.Type != models.SettleRequest {
		if _, err := models.ParsePaymentMethod(string(draft.PaymentMethod)); err != nil {
			errs.add("paymentMethod", "Please select a payment method")
		}
	}
	return person, errs.err()
}

func settlementActivity(st *models.Settlement, person models.Participant) *models.Activity {
	amount := st.Amount
	a := &models.Activity{
		ID:           uuid.New().String(),
		Description:  st.Notes,
		Timestamp:    st.CreatedAt,
		IsRead:       true,
		Amount:       &amount,
		Participants: []models.Participant{person},
		RelatedID:    st.ID,
	}
	switch st.Type {
	case models.SettlePay:
		a.Type = models.ActivityPayment
		a.Title = "You paid " + person.Name
	case models.SettleRequest:
		a.Type = models.ActivityPayment
		a.Title = fmt.Sprintf("You requested %s from %s", money.Format(st.Amount), person.Name)
	case models.SettleRecord:
		a.Type = models.ActivitySettlement
		a.Title = person.Name + " paid you"
	default:
		panic("service: unhandled settlement type " + string(st.Type))
	}
	return a
}
