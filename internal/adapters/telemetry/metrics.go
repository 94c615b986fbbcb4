package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
)

var _ ports.Reporter = (*Metrics)(nil)

// Metrics counts executor activity in its own Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	passes        *prometheus.CounterVec
	invocations   *prometheus.CounterVec
	failures      *prometheus.CounterVec
	nonconformant *prometheus.CounterVec
	duration      *prometheus.HistogramVec

	mu     sync.Mutex
	starts map[string]time.Time // identifier -> start time
}

// NewMetrics creates the collectors and registers them.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ape_passes_total",
				Help: "Passes started by an executor.",
			},
			[]string{"executor"},
		),
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ape_unit_invocations_total",
				Help: "Child invocations started.",
			},
			[]string{"category", "unit"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ape_unit_failures_total",
				Help: "Child failures contained by an executor.",
			},
			[]string{"category", "unit"},
		),
		nonconformant: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ape_nonconformant_total",
				Help: "Children missing an optional capability.",
			},
			[]string{"capability"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ape_run_duration_seconds",
				Help:    "Duration of completed executor invocations in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
			},
			[]string{"executor"},
		),
		starts: make(map[string]time.Time),
	}

	m.registry.MustRegister(m.passes, m.invocations, m.failures, m.nonconformant, m.duration)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Report updates the collectors. A pass is counted when its first child starts,
// so passes over an executor without children are not counted.
//
//nolint:gocritic // ports.Reporter passes events by value
func (m *Metrics) Report(e domain.Event) {
	switch e.Kind {
	case domain.EventStarted:
		m.mu.Lock()
		m.starts[e.Identifier] = e.Time
		m.mu.Unlock()
	case domain.EventProgress:
		if e.Index == 1 {
			m.passes.WithLabelValues(e.Identifier).Inc()
		}
		m.invocations.WithLabelValues(e.Category, e.Unit).Inc()
	case domain.EventFailure:
		m.failures.WithLabelValues(e.Category, e.Unit).Inc()
	case domain.EventNonConformant:
		m.nonconformant.WithLabelValues(e.Capability).Inc()
	case domain.EventEnded:
		m.mu.Lock()
		start, ok := m.starts[e.Identifier]
		delete(m.starts, e.Identifier)
		m.mu.Unlock()
		if ok {
			m.duration.WithLabelValues(e.Identifier).Observe(e.Time.Sub(start).Seconds())
		}
	}
}
