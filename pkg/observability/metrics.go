package observability

import (
	"context"
	"errors"
	"strings"

	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Run results recorded by ObserveRun.
const (
	ResultOK       = "ok"
	ResultCanceled = "canceled"
)

// Metrics records simulation activity in Prometheus collectors.
type Metrics struct {
	steps    prometheus.Counter
	pruned   prometheus.Counter
	halts    *prometheus.CounterVec
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ndtm_steps_total",
			Help: "Total number of configurations expanded",
		}),
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ndtm_pruned_total",
			Help: "Total number of configurations skipped as already visited",
		}),
		halts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ndtm_halts_total",
				Help: "Total number of branches that reached a terminal state",
			},
			[]string{"classification"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ndtm_runs_total",
				Help: "Total number of simulation runs by result",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ndtm_run_duration_seconds",
			Help:    "Duration of simulation runs",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.steps, m.pruned, m.halts, m.runs, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the step, prune and halt counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.steps.Inc()
		},
		OnPrune: func(ctx context.Context, e *domain.StepEvent) {
			m.pruned.Inc()
		},
		OnHalt: func(ctx context.Context, e *domain.StepEvent) {
			m.halts.WithLabelValues(e.Classification.Name()).Inc()
		},
	}
}

// ObserveRun records the outcome and duration of one run.
// Failed runs are labeled with their error kind.
func (m *Metrics) ObserveRun(seconds float64, err error) {
	m.duration.Observe(seconds)
	m.runs.WithLabelValues(Result(err)).Inc()
}

// Result maps a run error to its metric label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ResultCanceled
	}
	if kind := domain.KindOf(err); kind != 0 {
		return strings.ReplaceAll(kind.String(), " ", "_")
	}
	return "error"
}
