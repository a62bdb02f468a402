package calculator

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/money"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func TestEqualShare(t *testing.T) {
	tests := []struct {
		name  string
		total money.Amount
		n     int
		want  money.Amount
	}{
		{"two people", 10000, 2, 5000},
		{"three people truncates", 10000, 3, 3333},
		{"zero total zero people", 0, 0, 0},
		{"no participants", 10000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EqualShare(tt.total, tt.n); got != tt.want {
				t.Errorf("EqualShare(%d, %d) = %d, want %d", tt.total, tt.n, got, tt.want)
			}
		})
	}
}

func TestEqualSplits(t *testing.T) {
	tests := []struct {
		name  string
		total money.Amount
		ids   []string
		want  []money.Amount
	}{
		{"100 three ways", 10000, ids(3), []money.Amount{3334, 3333, 3333}},
		{"even split", 9000, ids(3), []money.Amount{3000, 3000, 3000}},
		{"two leftover cents", 1002, ids(4), []money.Amount{251, 251, 250, 250}},
		{"negative total", -1000, ids(3), []money.Amount{-334, -333, -333}},
		{"no participants", 10000, nil, []money.Amount{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits := EqualSplits(tt.total, tt.ids)
			got := make([]money.Amount, len(splits))
			for i, s := range splits {
				got[i] = s.Amount
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("EqualSplits amounts mismatch (-want +got):\n%s", diff)
			}
			if len(tt.ids) > 0 && Allocated(splits) != tt.total {
				t.Errorf("allocated %d, want %d", Allocated(splits), tt.total)
			}
		})
	}
}

func TestInitPercentages(t *testing.T) {
	tests := []struct {
		n    int
		want []float64
	}{
		{1, []float64{100}},
		{2, []float64{50, 50}},
		{3, []float64{34, 33, 33}},
		{6, []float64{20, 16, 16, 16, 16, 16}},
		{7, []float64{16, 14, 14, 14, 14, 14, 14}},
	}
	for _, tt := range tests {
		splits := InitPercentages(ids(tt.n))
		got := make([]float64, len(splits))
		for i, s := range splits {
			got[i] = s.Percentage
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("InitPercentages(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}

	if got := InitPercentages(nil); len(got) != 0 {
		t.Errorf("InitPercentages(nil) = %v, want empty", got)
	}
}

func TestPercentageSplitSumsToTotal(t *testing.T) {
	totals := []money.Amount{0, 1, 10, 9999, 10000, 33333, 123456789, -5000}
	for n := 1; n <= 12; n++ {
		for _, total := range totals {
			splits := ApplyPercentages(total, InitPercentages(ids(n)))

			var pct float64
			for _, s := range splits {
				pct += s.Percentage
			}
			if pct != 100 {
				t.Errorf("n=%d: percentages sum to %v, want 100", n, pct)
			}
			if !money.Reconciles(total, Allocated(splits)) {
				t.Errorf("n=%d total=%d: amounts sum to %d", n, total, Allocated(splits))
			}
			if !Validate(total, splits, Percentage) {
				t.Errorf("n=%d total=%d: expected valid percentage split", n, total)
			}
		}
	}
}

func TestApplyPercentagesDoesNotMutateInput(t *testing.T) {
	in := InitPercentages(ids(3))
	before := append([]models.MemberSplit(nil), in...)
	_ = ApplyPercentages(10000, in)
	if diff := cmp.Diff(before, in); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestApplyPercentagesUnbalanced(t *testing.T) {
	splits := []models.MemberSplit{
		{ParticipantID: "a", Percentage: 40},
		{ParticipantID: "b", Percentage: 40},
	}
	out := ApplyPercentages(10000, splits)
	if out[0].Amount != 4000 || out[1].Amount != 4000 {
		t.Errorf("amounts = %d, %d; want 4000, 4000", out[0].Amount, out[1].Amount)
	}
	if Validate(10000, out, Percentage) {
		t.Error("80% split should not validate")
	}
}

func TestApplyExact(t *testing.T) {
	splits := []models.MemberSplit{
		{ParticipantID: "a", Amount: 2500},
		{ParticipantID: "b", Amount: 7500},
	}
	out := ApplyExact(10000, splits)
	if math.Abs(out[0].Percentage-25) > 1e-9 || math.Abs(out[1].Percentage-75) > 1e-9 {
		t.Errorf("percentages = %v, %v; want 25, 75", out[0].Percentage, out[1].Percentage)
	}

	zero := ApplyExact(0, []models.MemberSplit{{ParticipantID: "a", Amount: 100, Percentage: 12}})
	if zero[0].Percentage != 0 {
		t.Errorf("zero total percentage = %v, want 0", zero[0].Percentage)
	}
}

func TestValidateExact(t *testing.T) {
	tests := []struct {
		name    string
		amounts []money.Amount
		want    bool
	}{
		{"40+40 of 100", []money.Amount{4000, 4000}, false},
		{"50+50 of 100", []money.Amount{5000, 5000}, true},
		{"one cent short", []money.Amount{5000, 4999}, false},
		{"one cent over", []money.Amount{5000, 5001}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits := make([]models.MemberSplit, len(tt.amounts))
			for i, a := range tt.amounts {
				splits[i] = models.MemberSplit{ParticipantID: ids(len(tt.amounts))[i], Amount: a}
			}
			if got := Validate(10000, splits, Exact); got != tt.want {
				t.Errorf("Validate = %v, want %v", got, tt.want)
			}
		})
	}

	if !Validate(10000, nil, Equal) {
		t.Error("equal split is always valid")
	}
}

func TestCompute(t *testing.T) {
	t.Run("equal", func(t *testing.T) {
		res := Compute(10000, Equal, Initialize(Equal, ids(3)))
		if !res.Valid || res.Allocated != 10000 || res.Remaining != 0 {
			t.Errorf("unexpected result: %+v", res)
		}
	})

	t.Run("exact with remaining", func(t *testing.T) {
		splits := Initialize(Exact, ids(2))
		splits[0].Amount = 4000
		splits[1].Amount = 4000
		res := Compute(10000, Exact, splits)
		if res.Valid {
			t.Error("expected invalid split")
		}
		if res.Remaining != 2000 {
			t.Errorf("Remaining = %d, want 2000", res.Remaining)
		}
	})

	t.Run("percentage", func(t *testing.T) {
		res := Compute(10000, Percentage, Initialize(Percentage, ids(3)))
		want := []money.Amount{3400, 3300, 3300}
		for i, s := range res.Splits {
			if s.Amount != want[i] {
				t.Errorf("split %d = %d, want %d", i, s.Amount, want[i])
			}
		}
		if !res.Valid {
			t.Error("expected valid split")
		}
	})

	t.Run("zero participants", func(t *testing.T) {
		res := Compute(0, Equal, nil)
		if len(res.Splits) != 0 || !res.Valid {
			t.Errorf("unexpected result: %+v", res)
		}
	})
}
