// Package metrics provides Prometheus metrics for the squadform service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Roster and snapshot
	rosterPlayers         prometheus.Gauge
	rosterStaff           prometheus.Gauge
	snapshotBuildDuration prometheus.Histogram
	snapshotLastUnix      prometheus.Gauge
	snapshotBuildErrors   prometheus.Counter

	// Queries
	rankingQueries   *prometheus.CounterVec
	conversionErrors *prometheus.CounterVec

	// Narrative collaborator
	narrativeRequests  prometheus.Counter
	narrativeFailures  *prometheus.CounterVec
	narrativeFallbacks prometheus.Counter
	narrativeLatency   prometheus.Histogram
	breakerState       prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// DefaultLatencyBuckets are the millisecond buckets used when
// WithHistogramBuckets is not given.
var DefaultLatencyBuckets = []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000} //nolint:gochecknoglobals // read-only

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to keep the default Go collectors out of /healthz.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init replaces the global manager and its registry with one built from
// opts. Call it once at startup, before any handler reads GetRegistry.
func Init(opts ...Option) {
	reg := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(reg))...)
	customRegistry = reg
	globalManager = m
}

// NewManager creates a new metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "squadform",
		subsystem:        "dashboard",
		histogramBuckets: DefaultLatencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	})
}

func (m *Manager) initializeMetrics() {
	m.rosterPlayers = m.gauge("roster_players", "Number of non-staff players in the published roster")
	m.rosterStaff = m.gauge("roster_staff", "Number of staff members in the published roster")
	m.snapshotBuildDuration = m.histogram("snapshot_build_duration_milliseconds",
		"Time to synthesize, aggregate and rank the roster", m.histogramBuckets)
	m.snapshotLastUnix = m.gauge("snapshot_last_unix", "Unix timestamp of the last published snapshot")
	m.snapshotBuildErrors = m.counter("snapshot_build_errors_total", "Snapshot builds rejected by validation")

	m.rankingQueries = m.counterVec("ranking_queries_total", "Ranking and leaderboard lookups", "kind")
	m.conversionErrors = m.counterVec("conversion_errors_total", "Physical value conversions that failed", "metric")

	m.narrativeRequests = m.counter("narrative_requests_total", "Narrative summaries requested")
	m.narrativeFailures = m.counterVec("narrative_failures_total", "Narrative generation failures by reason", "reason")
	m.narrativeFallbacks = m.counter("narrative_fallbacks_total", "Narrative responses replaced by the fallback message")
	m.narrativeLatency = m.histogram("narrative_latency_milliseconds", "Upstream narrative generation latency",
		[]float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000})
	m.breakerState = m.gauge("narrative_breaker_state", "Narrative circuit breaker state (0 closed, 1 half-open, 2 open)")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		ConstLabels: m.constLabels,
		Buckets:     m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Total number of errors by endpoint",
		"endpoint", "method", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total", "Total number of errors by type", "error_type", "severity")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "Average GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// UpdateRosterSize sets the player and staff gauges.
func UpdateRosterSize(players, staff int) {
	globalManager.rosterPlayers.Set(float64(players))
	globalManager.rosterStaff.Set(float64(staff))
}

// RecordSnapshotBuild records a successful snapshot publish.
func RecordSnapshotBuild(durationMs float64, unix int64) {
	globalManager.snapshotBuildDuration.Observe(durationMs)
	globalManager.snapshotLastUnix.Set(float64(unix))
}

// RecordSnapshotBuildError increments the rejected snapshot counter.
func RecordSnapshotBuildError() {
	globalManager.snapshotBuildErrors.Inc()
}

// RecordRankingQuery counts a ranking lookup of the given kind ("top", "leader", "leaders").
func RecordRankingQuery(kind string) {
	globalManager.rankingQueries.WithLabelValues(kind).Inc()
}

// RecordConversionError counts a failed physical value conversion.
func RecordConversionError(metricKey string) {
	globalManager.conversionErrors.WithLabelValues(metricKey).Inc()
}

// RecordNarrativeRequest counts a narrative summary request.
func RecordNarrativeRequest() {
	globalManager.narrativeRequests.Inc()
}

// RecordNarrativeFailure counts a failed generation and the fallback that replaced it.
func RecordNarrativeFailure(reason string) {
	globalManager.narrativeFailures.WithLabelValues(reason).Inc()
	globalManager.narrativeFallbacks.Inc()
}

// RecordNarrativeLatency records upstream latency in milliseconds.
func RecordNarrativeLatency(latencyMs float64) {
	globalManager.narrativeLatency.Observe(latencyMs)
}

// UpdateBreakerState sets the breaker state gauge.
func UpdateBreakerState(state int) {
	globalManager.breakerState.Set(float64(state))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
