package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	LabelFrom     = "from"
	LabelTo       = "to"
	LabelResult   = "result"
	LabelResource = "resource"
	LabelOutcome  = "outcome"

	ResultOK    = "ok"
	ResultError = "error"
)

var (
	arqStateTransitions     *prometheus.CounterVec
	arqBindDuration         *prometheus.HistogramVec
	quotaReservations       *prometheus.CounterVec
	quotaUsageResyncs       *prometheus.CounterVec
	quotaReservationsExpire prometheus.Counter

	// initOnce ensures InitMetrics is only executed once
	initOnce sync.Once
	initErr  error
)

// InitMetrics registers all metrics with the provided registry. Only the
// first call's registry is used. Until it is called every Record function
// is a no-op.
func InitMetrics(registry prometheus.Registerer) error {
	initOnce.Do(func() {
		transitions := prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arq_state_transitions_total",
				Help: "Total number of accelerator request state transitions",
			},
			[]string{LabelFrom, LabelTo},
		)
		bindDuration := prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arq_bind_duration_seconds",
				Help:    "Time spent binding an accelerator request, including the device handshake",
				Buckets: prometheus.DefBuckets,
			},
			[]string{LabelOutcome},
		)
		reservations := prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quota_reservations_total",
				Help: "Total number of quota reserve calls by result",
			},
			[]string{LabelResult},
		)
		resyncs := prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quota_usage_resyncs_total",
				Help: "Total number of quota usage rows resynced from actual usage",
			},
			[]string{LabelResource},
		)
		expired := prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quota_reservations_expired_total",
				Help: "Total number of reservations rolled back after expiry",
			},
		)

		if err := registerAll(registry, []namedCollector{
			{"arq_state_transitions_total", transitions},
			{"arq_bind_duration_seconds", bindDuration},
			{"quota_reservations_total", reservations},
			{"quota_usage_resyncs_total", resyncs},
			{"quota_reservations_expired_total", expired},
		}); err != nil {
			initErr = err
			return
		}
		arqStateTransitions = transitions
		arqBindDuration = bindDuration
		quotaReservations = reservations
		quotaUsageResyncs = resyncs
		quotaReservationsExpire = expired
	})

	return initErr
}

type namedCollector struct {
	name      string
	collector prometheus.Collector
}

// registerAll registers collectors in order. On failure the ones already
// registered are removed again.
func registerAll(registry prometheus.Registerer, collectors []namedCollector) error {
	for i, c := range collectors {
		if err := registry.Register(c.collector); err != nil {
			for _, done := range collectors[:i] {
				registry.Unregister(done.collector)
			}
			return fmt.Errorf("failed to register %s metric: %w", c.name, err)
		}
	}
	return nil
}

func RecordTransition(from, to string) {
	if arqStateTransitions == nil {
		return
	}
	arqStateTransitions.With(prometheus.Labels{LabelFrom: from, LabelTo: to}).Inc()
}

// ObserveBind records a bind call. outcome is the resulting state or "error".
func ObserveBind(d time.Duration, outcome string) {
	if arqBindDuration == nil {
		return
	}
	arqBindDuration.With(prometheus.Labels{LabelOutcome: outcome}).Observe(d.Seconds())
}

func RecordReservation(err error) {
	if quotaReservations == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	quotaReservations.With(prometheus.Labels{LabelResult: result}).Inc()
}

func RecordResync(resource string) {
	if quotaUsageResyncs == nil {
		return
	}
	quotaUsageResyncs.With(prometheus.Labels{LabelResource: resource}).Inc()
}

func RecordExpired(n int) {
	if quotaReservationsExpire == nil || n <= 0 {
		return
	}
	quotaReservationsExpire.Add(float64(n))
}
