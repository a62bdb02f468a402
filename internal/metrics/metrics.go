// Package metrics exposes Prometheus collectors for the split calculator,
// the list queries and the dialog submissions.
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "paisasplit"

// Outcome labels for submissions.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeBusy    = "busy"
	OutcomeError   = "error"
)

// Metrics holds the collectors registered by New.
type Metrics struct {
	splits      *prometheus.CounterVec
	submissions *prometheus.CounterVec
	queries     *prometheus.HistogramVec
	amounts     *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		splits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "splits_computed_total",
			Help:      "Split computations by method and validity.",
		}, []string{"method", "valid"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Dialog submissions by operation and outcome.",
		}, []string{"operation", "outcome"}),
		queries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time spent running list view queries.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"view"}),
		amounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recorded_amount_total",
			Help:      "Sum of recorded amounts in currency units by kind.",
		}, []string{"kind"}),
	}
	for _, c := range []prometheus.Collector{m.splits, m.submissions, m.queries, m.amounts} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return m, nil
}

// ObserveSplit counts one split computation.
func (m *Metrics) ObserveSplit(method string, valid bool) {
	if m == nil {
		return
	}
	m.splits.WithLabelValues(method, strconv.FormatBool(valid)).Inc()
}

// ObserveSubmit counts one dialog submission.
func (m *Metrics) ObserveSubmit(operation, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(operation, outcome).Inc()
}

// ObserveQuery records how long a view query took.
func (m *Metrics) ObserveQuery(view string, d time.Duration) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(view).Observe(d.Seconds())
}

// AddAmount adds a recorded amount, in currency units, under kind.
func (m *Metrics) AddAmount(kind string, units float64) {
	if m == nil || units < 0 {
		return
	}
	m.amounts.WithLabelValues(kind).Add(units)
}

// Dump writes every metric gathered from g in the Prometheus text format.
func Dump(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}
	return nil
}
