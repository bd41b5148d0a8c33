// Package metrics keeps process counters for pagination sessions, late preview
// updates and resource loading.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tprint"

// Session results.
const (
	SessionComplete   = "complete"
	SessionFailed     = "failed"
	SessionSuperseded = "superseded"
	SessionRunaway    = "runaway"
)

// Late update results.
const (
	LateDelivered  = "delivered"
	LateSuppressed = "suppressed"
)

// Resource sources.
const (
	ResourceLoaded = "load"
	ResourceCached = "cache"
	ResourceBroken = "broken"
)

// Registry is a private registry so tests and library users are not affected
// by the global default one.
var Registry = prometheus.NewRegistry()

var (
	pagesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_total",
			Help:      "Counter of pages produced by completed pagination sessions.",
		},
	)

	sessionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Counter of pagination sessions broken out by result.",
		},
		[]string{"result"},
	)

	sessionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_duration_seconds",
			Help:      "Time spent building page sequence.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	lateUpdatesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "late_updates_total",
			Help:      "Counter of deferred preview updates broken out by whether they were delivered.",
		},
		[]string{"result"},
	)

	resourcesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resources_total",
			Help:      "Counter of page resources loaded broken out by source (cache, load, broken).",
		},
		[]string{"source"},
	)
)

var registerMetrics sync.Once

// Register all metrics with Registry.
func Register() {
	registerMetrics.Do(func() {
		Registry.MustRegister(pagesCounter)
		Registry.MustRegister(sessionsCounter)
		Registry.MustRegister(sessionDuration)
		Registry.MustRegister(lateUpdatesCounter)
		Registry.MustRegister(resourcesCounter)
	})
}

// Reset is used by tests.
func Reset() {
	sessionsCounter.Reset()
	lateUpdatesCounter.Reset()
	resourcesCounter.Reset()
}

// RecordSession records session outcome, for completed sessions page count and
// build time are recorded as well.
func RecordSession(result string, pages int, elapsed time.Duration) {
	sessionsCounter.WithLabelValues(result).Inc()
	if result != SessionComplete {
		return
	}
	pagesCounter.Add(float64(pages))
	sessionDuration.Observe(elapsed.Seconds())
}

func RecordLateUpdate(delivered bool) {
	if delivered {
		lateUpdatesCounter.WithLabelValues(LateDelivered).Inc()
		return
	}
	lateUpdatesCounter.WithLabelValues(LateSuppressed).Inc()
}

func RecordResource(source string) {
	resourcesCounter.WithLabelValues(source).Inc()
}

// WriteFile dumps current values in text exposition format.
func WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("unable to write metrics: %w", err)
	}
	return nil
}
