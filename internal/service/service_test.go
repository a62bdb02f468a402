package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/paisasplit/internal/dataset"
	"github.com/mmynk/paisasplit/internal/metrics"
	"github.com/mmynk/paisasplit/internal/storage/memory"
)

// setupTestDeps returns deps over a ledger seeded with the sample dataset and
// a clock fixed at the dataset's reference time.
func setupTestDeps(t *testing.T) (Deps, *memory.Ledger, *prometheus.Registry) {
	t.Helper()

	d := dataset.Sample()
	d.Prepare()
	ledger := memory.NewLedger(d.Seed())

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	deps := Deps{
		Ledger:      ledger,
		CurrentUser: d.CurrentUser,
		Metrics:     m,
		Now:         func() time.Time { return d.AsOf },
	}
	return deps, ledger, reg
}

func TestValidationError(t *testing.T) {
	err := fieldErrors{"amount": "Please enter a valid amount", "description": "Please enter a description"}.err()

	if !errors.Is(err, ErrValidation) {
		t.Error("errors.Is(err, ErrValidation) = false")
	}
	want := "validation failed: amount: Please enter a valid amount; description: Please enter a description"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Errorf("errors.As() did not yield two fields: %+v", verr)
	}

	if err := (fieldErrors{}).err(); err != nil {
		t.Errorf("empty fieldErrors.err() = %v, want nil", err)
	}
}

func TestFieldErrorsFirstMessageWins(t *testing.T) {
	f := fieldErrors{}
	f.add("paidBy", "first")
	f.add("paidBy", "second")
	if f["paidBy"] != "first" {
		t.Errorf("paidBy = %q, want first", f["paidBy"])
	}
}

func TestSubmitterPending(t *testing.T) {
	deps, _, reg := setupTestDeps(t)
	s := newSubmitter("add_expense", deps)

	if !s.sem.TryAcquire(1) {
		t.Fatal("failed to acquire semaphore")
	}
	called := false
	err := s.do(context.Background(), nil, func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrSubmitPending) {
		t.Errorf("do() error = %v, want ErrSubmitPending", err)
	}
	if called {
		t.Error("commit ran while another submit was pending")
	}
	s.sem.Release(1)

	if err := s.do(context.Background(), nil, func(context.Context) error { return nil }); err != nil {
		t.Errorf("do() after release failed: %v", err)
	}

	want := `
# HELP paisasplit_submissions_total Dialog submissions by operation and outcome.
# TYPE paisasplit_submissions_total counter
paisasplit_submissions_total{operation="add_expense",outcome="busy"} 1
paisasplit_submissions_total{operation="add_expense",outcome="ok"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "paisasplit_submissions_total"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestSubmitterCheck(t *testing.T) {
	deps, _, reg := setupTestDeps(t)
	s := newSubmitter("invite_friends", deps)

	called := false
	commit := func(context.Context) error {
		called = true
		return nil
	}

	invalid := fieldErrors{"emails": "Please add at least one email address"}.err()
	if err := s.do(context.Background(), func(context.Context) error { return invalid }, commit); !errors.Is(err, ErrValidation) {
		t.Errorf("do() error = %v, want ErrValidation", err)
	}
	boom := errors.New("boom")
	if err := s.do(context.Background(), func(context.Context) error { return boom }, commit); !errors.Is(err, boom) {
		t.Errorf("do() error = %v, want boom", err)
	}
	if called {
		t.Error("commit ran after a failed check")
	}

	if err := s.do(context.Background(), func(context.Context) error { return nil }, commit); err != nil {
		t.Fatalf("do() failed: %v", err)
	}
	if !called {
		t.Error("commit did not run after a passing check")
	}

	want := `
# HELP paisasplit_submissions_total Dialog submissions by operation and outcome.
# TYPE paisasplit_submissions_total counter
paisasplit_submissions_total{operation="invite_friends",outcome="error"} 1
paisasplit_submissions_total{operation="invite_friends",outcome="invalid"} 1
paisasplit_submissions_total{operation="invite_friends",outcome="ok"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "paisasplit_submissions_total"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestSubmitterDelay(t *testing.T) {
	deps, _, _ := setupTestDeps(t)

	t.Run("cancelled while waiting", func(t *testing.T) {
		deps := deps
		deps.SubmitDelay = time.Hour
		s := newSubmitter("settle", deps)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		err := s.do(ctx, nil, func(context.Context) error {
			called = true
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("do() error = %v, want context.Canceled", err)
		}
		if called {
			t.Error("commit ran after cancellation")
		}
	})

	t.Run("commits after delay", func(t *testing.T) {
		deps := deps
		deps.SubmitDelay = time.Millisecond
		s := newSubmitter("settle", deps)

		called := false
		err := s.do(context.Background(), nil, func(context.Context) error {
			called = true
			return nil
		})
		if err != nil {
			t.Fatalf("do() failed: %v", err)
		}
		if !called {
			t.Error("commit did not run")
		}
	})

	t.Run("commit error is returned", func(t *testing.T) {
		s := newSubmitter("settle", deps)
		boom := errors.New("boom")
		if err := s.do(context.Background(), nil, func(context.Context) error { return boom }); !errors.Is(err, boom) {
			t.Errorf("do() error = %v, want boom", err)
		}
	})
}

func TestDirectory(t *testing.T) {
	deps, _, _ := setupTestDeps(t)

	people, err := directory(context.Background(), deps)
	if err != nil {
		t.Fatalf("directory() failed: %v", err)
	}
	tests := map[string]string{
		"current-user": "You",
		"sarah":        "Sarah Wilson",
		"priya":        "Priya Sharma",
	}
	for id, name := range tests {
		if got := people[id].Name; got != name {
			t.Errorf("people[%s].Name = %q, want %q", id, got, name)
		}
	}
}
