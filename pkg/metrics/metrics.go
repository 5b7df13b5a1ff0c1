package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// StageDuration records how long each stage took from the dispatch
	// of its first system to the completion of its last.
	StageDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taskgraph_stage_duration_seconds",
			Help:    "Time taken to fully complete a dispatch stage, in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// BorrowConflictsTotal counts how many times a queued system failed
	// to acquire its declared resources and had to wait.
	BorrowConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "taskgraph_borrow_conflicts_total",
			Help: "Total number of times a system's resource borrow was denied and retried",
		},
	)

	// DispatchTotal counts completed Execute calls, labeled by outcome.
	DispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskgraph_dispatch_total",
			Help: "Total number of dispatch runs by outcome",
		},
		[]string{"outcome"},
	)

	// ActiveSystems reports how many systems are currently running.
	ActiveSystems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskgraph_active_systems",
			Help: "Number of systems currently executing",
		},
	)

	// DispatchDuration records how long each full Execute call took.
	DispatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taskgraph_dispatch_duration_seconds",
			Help:    "Time taken to complete a full dispatch, in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(BorrowConflictsTotal)
	prometheus.MustRegister(DispatchTotal)
	prometheus.MustRegister(ActiveSystems)
	prometheus.MustRegister(DispatchDuration)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// ObserveDurationVec records the duration to a histogram vec with the
// given label values.
func (t *Timer) ObserveDurationVec(vec *prometheus.HistogramVec, labelValues ...string) {
	vec.WithLabelValues(labelValues...).Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
