package observability_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/ndtm/internal/runtime"
	"github.com/aretw0/ndtm/internal/testutils"
	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/aretw0/ndtm/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	table := testutils.MustParse(t, testutils.Converging).Table
	engine := runtime.NewEngine(table, runtime.WithLifecycleHooks(m.Hooks()))

	_, stats, err := engine.SimulateWithStats(context.Background(), "", true)
	require.NoError(t, err)
	m.ObserveRun(stats.Elapsed.Seconds(), err)

	assert.Equal(t, float64(stats.Steps), counterValue(t, reg, "ndtm_steps_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "ndtm_pruned_total"))

	assert.Equal(t, 1.0, counterValue(t, reg, "ndtm_halts_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "ndtm_runs_total"))

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "ndtm_run_duration_seconds" {
			assert.Equal(t, uint64(1), f.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
}

func TestMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, observability.ResultOK},
		{context.Canceled, observability.ResultCanceled},
		{fmt.Errorf("run: %w", context.DeadlineExceeded), observability.ResultCanceled},
		{&domain.MachineError{Kind: domain.KindUndefinedTransition}, "undefined_transition"},
		{&domain.MachineError{Kind: domain.KindTapeOrigin}, "tape_origin_violation"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, observability.Result(tt.err))
	}
}

// counterValue sums every series of a gathered counter family.
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		total := 0.0
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	t.Fatalf("metric %s not found", name)
	return 0
}
