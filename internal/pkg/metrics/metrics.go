// Package metrics exposes Prometheus instrumentation for the bridge handle tables and operations.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Namespace prefixes every metric name.
const Namespace = "fips_bridge"

// Metrics holds all bridge metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Handle metrics
	LiveHandles       *prometheus.GaugeVec
	HandleAllocations *prometheus.CounterVec
	HandleReleases    *prometheus.CounterVec
	StaleHandles      *prometheus.CounterVec

	// Operation metrics
	Verifications *prometheus.CounterVec
	RandomBytes   prometheus.Counter
	ModeEnabled   prometheus.Gauge
}

// NewMetrics creates a metrics instance backed by its own registry.
// Go runtime and process collectors are registered alongside the bridge metrics.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		LiveHandles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "live_handles",
			Help:      "Number of live contexts per family",
		}, []string{"family"}),
		HandleAllocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "handle_allocations_total",
			Help:      "Total number of contexts created per family",
		}, []string{"family"}),
		HandleReleases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "handle_releases_total",
			Help:      "Total number of contexts destroyed per family",
		}, []string{"family"}),
		StaleHandles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "stale_handles_total",
			Help:      "Total number of rejected null, stale or forged handles per family",
		}, []string{"family"}),
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "verifications_total",
			Help:      "Total number of signature verifications by family and outcome code",
		}, []string{"family", "outcome"}),
		RandomBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "drbg_bytes_total",
			Help:      "Total number of bytes drawn from the DRBG",
		}),
		ModeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "fips_mode_enabled",
			Help:      "1 when the module runs in FIPS mode, 0 otherwise",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.LiveHandles,
		m.HandleAllocations,
		m.HandleReleases,
		m.StaleHandles,
		m.Verifications,
		m.RandomBytes,
		m.ModeEnabled,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return m, nil
}

// GetGatherer returns the prometheus gatherer for metrics export
func (m *Metrics) GetGatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.DefaultGatherer
	}
	return m.registry
}

// HandleAllocated records a context creation.
func (m *Metrics) HandleAllocated(family string) {
	if m == nil {
		return
	}
	m.HandleAllocations.WithLabelValues(family).Inc()
	m.LiveHandles.WithLabelValues(family).Inc()
}

// HandleReleased records a context destruction.
func (m *Metrics) HandleReleased(family string) {
	if m == nil {
		return
	}
	m.HandleReleases.WithLabelValues(family).Inc()
	m.LiveHandles.WithLabelValues(family).Dec()
}

// StaleHandle records a rejected handle.
func (m *Metrics) StaleHandle(family string) {
	if m == nil {
		return
	}
	m.StaleHandles.WithLabelValues(family).Inc()
}

// VerificationCompleted records the outcome code of a verification.
func (m *Metrics) VerificationCompleted(family string, outcome int32) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(family, strconv.Itoa(int(outcome))).Inc()
}

// RandomGenerated records n bytes drawn from the DRBG.
func (m *Metrics) RandomGenerated(n int) {
	if m == nil {
		return
	}
	m.RandomBytes.Add(float64(n))
}

// SetMode records the current operating mode.
func (m *Metrics) SetMode(enabled bool) {
	if m == nil {
		return
	}
	if enabled {
		m.ModeEnabled.Set(1)
		return
	}
	m.ModeEnabled.Set(0)
}
