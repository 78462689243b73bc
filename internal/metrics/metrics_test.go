package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBeforeInitIsNoop(t *testing.T) {
	if arqStateTransitions != nil {
		t.Skip("metrics already initialized")
	}
	RecordTransition("Initial", "Bound")
	ObserveBind(time.Second, "Bound")
	RecordReservation(nil)
	RecordResync("gpu")
	RecordExpired(3)
}

func TestInitMetricsAndRecord(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NoError(t, InitMetrics(registry))
	// Second call keeps the first registry.
	require.NoError(t, InitMetrics(prometheus.NewRegistry()))

	RecordTransition("Initial", "Bound")
	RecordTransition("Initial", "Bound")
	assert.Equal(t, 2.0, testutil.ToFloat64(arqStateTransitions.WithLabelValues("Initial", "Bound")))

	RecordReservation(nil)
	RecordReservation(errors.New("boom"))
	assert.Equal(t, 1.0, testutil.ToFloat64(quotaReservations.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(quotaReservations.WithLabelValues(ResultError)))

	RecordResync("gpu")
	assert.Equal(t, 1.0, testutil.ToFloat64(quotaUsageResyncs.WithLabelValues("gpu")))

	RecordExpired(3)
	RecordExpired(0)
	assert.Equal(t, 3.0, testutil.ToFloat64(quotaReservationsExpire))

	ObserveBind(250*time.Millisecond, "Bound")
	count, err := testutil.GatherAndCount(registry, "arq_bind_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegisterAllRollsBackOnFailure(t *testing.T) {
	registry := prometheus.NewRegistry()
	taken := prometheus.NewCounter(prometheus.CounterOpts{Name: "second_total", Help: "h"})
	require.NoError(t, registry.Register(taken))

	first := prometheus.NewCounter(prometheus.CounterOpts{Name: "first_total", Help: "h"})
	second := prometheus.NewCounter(prometheus.CounterOpts{Name: "second_total", Help: "h"})
	third := prometheus.NewCounter(prometheus.CounterOpts{Name: "third_total", Help: "h"})

	err := registerAll(registry, []namedCollector{
		{"first_total", first},
		{"second_total", second},
		{"third_total", third},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second_total")

	// Nothing from the failed batch stays registered.
	assert.True(t, registry.Unregister(taken))
	assert.False(t, registry.Unregister(first))
	assert.False(t, registry.Unregister(third))
	assert.NoError(t, registerAll(registry, []namedCollector{{"first_total", first}, {"third_total", third}}))
}
