package calculator

import (
	"sort"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/money"
)

// MemberBalance represents the balance information for one participant.
type MemberBalance struct {
	ParticipantID string
	NetBalance    money.Amount // Positive = owed money, Negative = owes money
	TotalPaid     money.Amount // Total amount paid across all expenses and settlements
	TotalOwed     money.Amount // Total amount this person owes
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount money.Amount
}

// CalculateBalances computes balances across expenses and the current user's
// settlements.
//
// Algorithm:
//   - For each expense: the payer contributed +amount, each split participant owes their split amount
//   - For each settlement: "pay" moves money from the current user to the person,
//     "record" from the person to the current user, "request" moves nothing
//   - Aggregate: net_balance = total_paid - total_owed
//   - Debt edges: greedy matching of debtors against creditors
//
// Balances are returned sorted by participant ID.
func CalculateBalances(currentUserID string, expenses []models.Expense, settlements []models.Settlement) ([]MemberBalance, []DebtEdge) {
	balances := make(map[string]*MemberBalance)
	get := func(id string) *MemberBalance {
		b, ok := balances[id]
		if !ok {
			b = &MemberBalance{ParticipantID: id}
			balances[id] = b
		}
		return b
	}

	for _, e := range expenses {
		// Skip expenses without payer (can't calculate balances)
		if e.PaidByID == "" {
			continue
		}
		get(e.PaidByID).TotalPaid += e.Amount
		for _, s := range e.Splits {
			get(s.ParticipantID).TotalOwed += s.Amount
		}
	}

	for _, s := range settlements {
		var from, to string
		switch s.Type {
		case models.SettlePay:
			from, to = currentUserID, s.PersonID
		case models.SettleRecord:
			from, to = s.PersonID, currentUserID
		case models.SettleRequest:
			continue
		default:
			panic("calculator: unhandled settlement type " + string(s.Type))
		}
		// Payer's balance improves, receiver's balance decreases
		get(from).TotalPaid += s.Amount
		get(to).TotalOwed += s.Amount
	}

	memberBalances := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		b.NetBalance = b.TotalPaid - b.TotalOwed
		memberBalances = append(memberBalances, *b)
	}
	sort.Slice(memberBalances, func(i, j int) bool {
		return memberBalances[i].ParticipantID < memberBalances[j].ParticipantID
	})

	return memberBalances, simplifyDebts(memberBalances)
}

// simplifyDebts matches debtors with creditors to minimize transactions.
func simplifyDebts(balances []MemberBalance) []DebtEdge {
	var creditors, debtors []MemberBalance
	for _, b := range balances {
		if b.NetBalance > 0 {
			creditors = append(creditors, b)
		} else if b.NetBalance < 0 {
			debtors = append(debtors, b)
		}
	}

	// Largest amounts first; ties keep ID order.
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].NetBalance > creditors[j].NetBalance })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].NetBalance < debtors[j].NetBalance })

	owes := make([]money.Amount, len(debtors))
	for i, d := range debtors {
		owes[i] = -d.NetBalance
	}
	owed := make([]money.Amount, len(creditors))
	for j, c := range creditors {
		owed[j] = c.NetBalance
	}

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := min(owes[i], owed[j])
		if amount > 0 {
			edges = append(edges, DebtEdge{
				From:   debtors[i].ParticipantID,
				To:     creditors[j].ParticipantID,
				Amount: amount,
			})
		}
		owes[i] -= amount
		owed[j] -= amount
		if owes[i] == 0 {
			i++
		}
		if owed[j] == 0 {
			j++
		}
	}
	return edges
}

// BalanceWith returns the net balance of one participant, zero if absent.
func BalanceWith(balances []MemberBalance, participantID string) money.Amount {
	for _, b := range balances {
		if b.ParticipantID == participantID {
			return b.NetBalance
		}
	}
	return 0
}

// YourShare returns the current user's net position on one expense: what
// others owe them if they paid, or minus their own split otherwise.
func YourShare(currentUserID string, e models.Expense) money.Amount {
	var own money.Amount
	for _, s := range e.Splits {
		if s.ParticipantID == currentUserID {
			own += s.Amount
		}
	}
	if e.PaidByID == currentUserID {
		return e.Amount - own
	}
	return -own
}

// PersonBalance is the current user's balance with one other person.
// Positive means they owe the current user, negative means the current user
// owes them.
type PersonBalance struct {
	PersonID string
	Balance  money.Amount
}

// PairwiseBalances computes the current user's direct balance with each other
// person, without debt simplification. Zero balances are kept; the result is
// sorted by person ID.
func PairwiseBalances(currentUserID string, expenses []models.Expense, settlements []models.Settlement) []PersonBalance {
	totals := make(map[string]money.Amount)

	for _, e := range expenses {
		switch e.PaidByID {
		case "":
			continue
		case currentUserID:
			for _, s := range e.Splits {
				if s.ParticipantID != currentUserID {
					totals[s.ParticipantID] += s.Amount
				}
			}
		default:
			for _, s := range e.Splits {
				if s.ParticipantID == currentUserID {
					totals[e.PaidByID] -= s.Amount
				}
			}
		}
	}

	for _, s := range settlements {
		switch s.Type {
		case models.SettlePay:
			totals[s.PersonID] += s.Amount
		case models.SettleRecord:
			totals[s.PersonID] -= s.Amount
		case models.SettleRequest:
		default:
			panic("calculator: unhandled settlement type " + string(s.Type))
		}
	}

	out := make([]PersonBalance, 0, len(totals))
	for id, b := range totals {
		out = append(out, PersonBalance{PersonID: id, Balance: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PersonID < out[j].PersonID })
	return out
}
