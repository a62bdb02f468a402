package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/money"
)

// Method is the split algorithm used to divide a total.
type Method = models.SplitMethod

const (
	Equal      = models.SplitEqual
	Percentage = models.SplitPercentage
	Exact      = models.SplitExact
)

// Result is the outcome of a split computation.
type Result struct {
	Method Method
	Splits []models.MemberSplit

	// Allocated is the sum of all split amounts.
	Allocated money.Amount

	// Remaining is total minus Allocated; zero for a balanced split.
	Remaining money.Amount

	// Valid reports whether the split may be confirmed.
	Valid bool
}

var hundred = decimal.NewFromInt(100)

// EqualShare returns the per-person amount of an equal split, truncated to the
// cent. Zero participants yield zero.
func EqualShare(total money.Amount, participants int) money.Amount {
	if participants <= 0 {
		return 0
	}
	return total / money.Amount(participants)
}

// EqualSplits divides total equally among ids. Leftover cents go one each to
// the first participants in input order, so the amounts always sum to total.
func EqualSplits(total money.Amount, ids []string) []models.MemberSplit {
	n := len(ids)
	splits := make([]models.MemberSplit, n)
	if n == 0 {
		return splits
	}

	base := EqualShare(total, n)
	leftover := total - base*money.Amount(n)
	step := money.Amount(leftover.Sign())
	pct := 100 / float64(n)

	for i, id := range ids {
		amount := base
		if money.Amount(i) < leftover.Abs() {
			amount += step
		}
		splits[i] = models.MemberSplit{ParticipantID: id, Amount: amount, Percentage: pct}
	}
	return splits
}

// InitPercentages assigns floor(100/N) percent to every participant except the
// first, who receives the rest so the percentages sum to exactly 100.
func InitPercentages(ids []string) []models.MemberSplit {
	n := len(ids)
	splits := make([]models.MemberSplit, n)
	if n == 0 {
		return splits
	}

	each := 100 / n
	first := 100 - each*(n-1)
	for i, id := range ids {
		pct := each
		if i == 0 {
			pct = first
		}
		splits[i] = models.MemberSplit{ParticipantID: id, Percentage: float64(pct)}
	}
	return splits
}

// ApplyPercentages sets amount = total * percentage / 100 for each split.
//
// Exact shares are resolved to cents with the largest remainder method: every
// split gets the floor of its share, and the cents still missing from the
// rounded overall target go to the largest fractional parts (earlier splits win
// ties). When the percentages sum to 100 the amounts sum to total exactly.
func ApplyPercentages(total money.Amount, splits []models.MemberSplit) []models.MemberSplit {
	out := make([]models.MemberSplit, len(splits))
	copy(out, splits)
	if len(out) == 0 {
		return out
	}

	cents := decimal.NewFromInt(int64(total))
	shares := make([]decimal.Decimal, len(out))
	sum := decimal.Zero
	for i, s := range out {
		shares[i] = cents.Mul(decimal.NewFromFloat(s.Percentage)).Div(hundred)
		sum = sum.Add(shares[i])
	}

	target := money.Amount(sum.Round(0).IntPart())
	var allocated money.Amount
	for i := range out {
		out[i].Amount = money.Amount(shares[i].Floor().IntPart())
		allocated += out[i].Amount
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		fa := shares[order[a]].Sub(shares[order[a]].Floor())
		fb := shares[order[b]].Sub(shares[order[b]].Floor())
		return fa.GreaterThan(fb)
	})
	for k := 0; allocated < target && k < len(order); k++ {
		out[order[k]].Amount++
		allocated++
	}
	return out
}

// ApplyExact keeps the entered amounts and back-computes each percentage as
// amount / total * 100 for display. Percentages are zero when total is zero.
func ApplyExact(total money.Amount, splits []models.MemberSplit) []models.MemberSplit {
	out := make([]models.MemberSplit, len(splits))
	copy(out, splits)
	for i := range out {
		if total == 0 {
			out[i].Percentage = 0
			continue
		}
		out[i].Percentage = out[i].Amount.Float64() / total.Float64() * 100
	}
	return out
}

// Allocated returns the sum of the split amounts.
func Allocated(splits []models.MemberSplit) money.Amount {
	var sum money.Amount
	for _, s := range splits {
		sum += s.Amount
	}
	return sum
}

// Validate reports whether splits may be confirmed for total. Equal splits are
// always valid; percentage and exact splits must reconcile with total within
// one cent.
func Validate(total money.Amount, splits []models.MemberSplit, method Method) bool {
	switch method {
	case Equal:
		return true
	case Percentage, Exact:
		return money.Reconciles(total, Allocated(splits))
	}
	panic("calculator: unhandled split method " + string(method))
}

// Initialize returns fresh splits for ids when the split method changes:
// amounts are zero, and percentage splits start from InitPercentages.
func Initialize(method Method, ids []string) []models.MemberSplit {
	switch method {
	case Percentage:
		return InitPercentages(ids)
	case Equal, Exact:
		splits := make([]models.MemberSplit, len(ids))
		for i, id := range ids {
			splits[i] = models.MemberSplit{ParticipantID: id}
		}
		return splits
	}
	panic("calculator: unhandled split method " + string(method))
}

// Compute derives the allocation for total using method.
//
// For Equal only the participant IDs of splits are used. For Percentage the
// Percentage fields are inputs, for Exact the Amount fields are.
func Compute(total money.Amount, method Method, splits []models.MemberSplit) Result {
	var out []models.MemberSplit
	switch method {
	case Equal:
		ids := make([]string, len(splits))
		for i, s := range splits {
			ids[i] = s.ParticipantID
		}
		out = EqualSplits(total, ids)
	case Percentage:
		out = ApplyPercentages(total, splits)
	case Exact:
		out = ApplyExact(total, splits)
	default:
		panic("calculator: unhandled split method " + string(method))
	}

	allocated := Allocated(out)
	return Result{
		Method:    method,
		Splits:    out,
		Allocated: allocated,
		Remaining: total - allocated,
		Valid:     Validate(total, out, method),
	}
}
