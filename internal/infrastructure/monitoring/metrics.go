package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Launch outcomes
const (
	OutcomeSuccess     = "success"
	OutcomeFailed      = "failed"
	OutcomeInterrupted = "interrupted"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Launch metrics
	LaunchesTotal  *prometheus.CounterVec
	LaunchesActive prometheus.Gauge
	StageDuration  *prometheus.HistogramVec
	Extracted      prometheus.Counter
	Materialized   prometheus.Counter

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time

	registry *prometheus.Registry

	// Snapshot for JSON API - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON status API
type Snapshot struct {
	Started     int64   `json:"started"`
	Succeeded   int64   `json:"succeeded"`
	Failed      int64   `json:"failed"`
	Interrupted int64   `json:"interrupted"`
	Active      int64   `json:"active"`
	Extracted   int64   `json:"files_extracted"`
	Uptime      float64 `json:"uptime_seconds"`
}

// NewMetrics creates a metrics collector on reg. A nil reg gets a fresh
// registry so collectors never clash across instances.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),
		registry:  reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "launcher_http_requests_total",
				Help: "Total number of status HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "launcher_http_request_duration_seconds",
				Help:    "Status HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		LaunchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "launcher_launches_total",
				Help: "Launch attempts by outcome and failure kind",
			},
			[]string{"outcome", "kind"},
		),
		LaunchesActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "launcher_launches_active",
				Help: "Launch attempts currently running",
			},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "launcher_stage_duration_seconds",
				Help:    "Time spent in each launch stage",
				Buckets: []float64{.001, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"stage"},
		),
		Extracted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "launcher_native_files_extracted_total",
				Help: "Files unpacked from native archives",
			},
		),
		Materialized: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "launcher_assets_materialized_total",
				Help: "Asset objects placed into virtual trees",
			},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "launcher_uptime_seconds",
			Help: "Launcher uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry the collectors are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records a status HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveStage records the time spent in one launch stage
func (m *Metrics) ObserveStage(stage string, duration time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// LaunchStarted marks a launch attempt as running
func (m *Metrics) LaunchStarted() {
	if m == nil {
		return
	}
	m.LaunchesActive.Inc()
	m.mu.Lock()
	m.snapshot.Started++
	m.snapshot.Active++
	m.mu.Unlock()
}

// LaunchFinished records the outcome of an attempt. kind is empty on success.
func (m *Metrics) LaunchFinished(outcome, kind string) {
	if m == nil {
		return
	}
	m.LaunchesActive.Dec()
	m.LaunchesTotal.WithLabelValues(outcome, kind).Inc()

	m.mu.Lock()
	m.snapshot.Active--
	switch outcome {
	case OutcomeSuccess:
		m.snapshot.Succeeded++
	case OutcomeInterrupted:
		m.snapshot.Interrupted++
	default:
		m.snapshot.Failed++
	}
	m.mu.Unlock()
}

// FilesExtracted adds n unpacked native files
func (m *Metrics) FilesExtracted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Extracted.Add(float64(n))
	m.mu.Lock()
	m.snapshot.Extracted += int64(n)
	m.mu.Unlock()
}

// AssetsMaterialized adds n placed asset objects
func (m *Metrics) AssetsMaterialized(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Materialized.Add(float64(n))
}

// GetSnapshot returns the current values for the JSON API
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.snapshot
	s.Uptime = time.Since(m.startTime).Seconds()
	return s
}
