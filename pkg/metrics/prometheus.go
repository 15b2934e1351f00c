// Package metrics provides Prometheus metrics for the TalentFlow service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the TalentFlow service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Simulated Backend Metrics
	backendLatency     prometheus.Histogram
	faultsInjected     *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	reorders           prometheus.Counter
	stageChanges       prometheus.Counter

	// Optimistic Mutation Metrics
	optimisticCommits   prometheus.Counter
	optimisticRollbacks prometheus.Counter

	// Store Metrics
	storeReadLatency  prometheus.Histogram
	storeWriteLatency prometheus.Histogram
	recordsPerKind    *prometheus.GaugeVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "talentflow",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.backendLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "backend_latency_milliseconds",
		Help:      "Histogram of injected simulated-network latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.faultsInjected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "faults_injected_total",
			Help:      "Total number of simulated server errors by endpoint",
		},
		[]string{"endpoint"},
	)

	m.validationFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_failures_total",
			Help:      "Total number of deterministic validation rejections by reason",
		},
		[]string{"reason"},
	)

	m.reorders = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "job_reorders_total",
		Help:      "Total number of successful job reorder operations",
	})

	m.stageChanges = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_changes_total",
		Help:      "Total number of successful candidate stage transitions",
	})

	m.optimisticCommits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "optimistic_commits_total",
		Help:      "Total number of optimistic mutations confirmed by the backend",
	})

	m.optimisticRollbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "optimistic_rollbacks_total",
		Help:      "Total number of optimistic mutations rolled back after a failure",
	})

	m.storeReadLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_read_latency_milliseconds",
		Help:      "Persistent store read latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeWriteLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_write_latency_milliseconds",
		Help:      "Persistent store write latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.recordsPerKind = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "records",
			Help:      "Number of durable records per collection",
		},
		[]string{"collection"},
	)
}

// Package-level helpers operating on the global manager.

// RecordHTTPRequest increments the request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records a request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordBackendLatency records the injected simulated latency.
func RecordBackendLatency(latencyMs float64) {
	globalManager.backendLatency.Observe(latencyMs)
}

// RecordFaultInjected increments the injected-fault counter for an endpoint.
func RecordFaultInjected(endpoint string) {
	globalManager.faultsInjected.WithLabelValues(endpoint).Inc()
}

// RecordValidationFailure increments the validation rejection counter.
func RecordValidationFailure(reason string) {
	globalManager.validationFailures.WithLabelValues(reason).Inc()
}

// RecordReorder increments the successful reorder counter.
func RecordReorder() {
	globalManager.reorders.Inc()
}

// RecordStageChange increments the successful stage transition counter.
func RecordStageChange() {
	globalManager.stageChanges.Inc()
}

// RecordOptimisticCommit increments the confirmed-mutation counter.
func RecordOptimisticCommit() {
	globalManager.optimisticCommits.Inc()
}

// RecordOptimisticRollback increments the rollback counter.
func RecordOptimisticRollback() {
	globalManager.optimisticRollbacks.Inc()
}

// RecordStoreReadLatency records a store read latency in milliseconds.
func RecordStoreReadLatency(latencyMs float64) {
	globalManager.storeReadLatency.Observe(latencyMs)
}

// RecordStoreWriteLatency records a store write latency in milliseconds.
func RecordStoreWriteLatency(latencyMs float64) {
	globalManager.storeWriteLatency.Observe(latencyMs)
}

// UpdateRecordCount sets the durable record gauge for a collection.
func UpdateRecordCount(collection string, count int) {
	globalManager.recordsPerKind.WithLabelValues(collection).Set(float64(count))
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
