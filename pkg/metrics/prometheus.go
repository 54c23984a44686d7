// Package metrics provides Prometheus metrics for the timeline explorer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values shared by callers.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultHit      = "hit"
	ResultMiss     = "miss"

	OpZoom = "zoom"
	OpPan  = "pan"
)

// Manager manages all Prometheus metrics for the explorer.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	loadBuckets      []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Draw loop
	redraws        *prometheus.CounterVec
	redrawDuration prometheus.Histogram
	pointsDrawn    prometheus.Gauge

	// Interaction
	hitTests          *prometheus.CounterVec
	windowChanges     *prometheus.CounterVec
	selections        *prometheus.CounterVec
	highlightedPixels prometheus.Gauge
	highlightDuration prometheus.Histogram
	labelsPlaced      prometheus.Counter
	labelShifts       prometheus.Counter
	resizeRequests    prometheus.Counter
	resizeSettled     prometheus.Counter
	windowEvents      prometheus.Gauge
	windowSpanSeconds prometheus.Gauge

	// Dataset
	datasetLoadDuration prometheus.Histogram
	datasetEvents       prometheus.Gauge
	datasetCacheHits    *prometheus.CounterVec
	unknownGenreGroups  prometheus.Counter

	// HTTP
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	errorsByEndpoint *prometheus.CounterVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "timeline",
		subsystem:        "explorer",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		loadBuckets:      []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     m.histogramBuckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Draw loop metrics
	m.redraws = auto.NewCounterVec(
		m.counterOpts("redraws_total", "Total number of full redraws by trigger"),
		[]string{"reason"},
	)
	m.redrawDuration = auto.NewHistogram(
		m.histogramOpts("redraw_duration_milliseconds", "Full redraw duration in milliseconds"),
	)
	m.pointsDrawn = auto.NewGauge(
		m.gaugeOpts("points_drawn", "Number of points drawn by the last redraw"),
	)

	// Interaction metrics
	m.hitTests = auto.NewCounterVec(
		m.counterOpts("hit_tests_total", "Pointer hit tests by result"),
		[]string{"result"},
	)
	m.windowChanges = auto.NewCounterVec(
		m.counterOpts("window_changes_total", "Zoom and pan requests by result"),
		[]string{"op", "result"},
	)
	m.selections = auto.NewCounterVec(
		m.counterOpts("selections_total", "Selection transitions by kind"),
		[]string{"kind"},
	)
	m.highlightedPixels = auto.NewGauge(
		m.gaugeOpts("highlighted_pixels", "Pixels currently drawn in a highlight colour"),
	)
	m.highlightDuration = auto.NewHistogram(
		m.histogramOpts("highlight_duration_milliseconds", "Time to highlight a selection in milliseconds"),
	)
	m.labelsPlaced = auto.NewCounter(
		m.counterOpts("labels_placed_total", "Total number of artist labels placed"),
	)
	m.labelShifts = auto.NewCounter(
		m.counterOpts("label_shifts_total", "Labels moved up to avoid an earlier label"),
	)
	m.resizeRequests = auto.NewCounter(
		m.counterOpts("resize_requests_total", "Resize notifications received"),
	)
	m.resizeSettled = auto.NewCounter(
		m.counterOpts("resize_settled_total", "Resize notifications that led to a redraw"),
	)
	m.windowEvents = auto.NewGauge(
		m.gaugeOpts("window_events", "Number of scrobbles in the visible window"),
	)
	m.windowSpanSeconds = auto.NewGauge(
		m.gaugeOpts("window_span_seconds", "Time span of the visible window in seconds"),
	)

	// Dataset metrics
	loadOpts := m.histogramOpts("dataset_load_duration_milliseconds", "Dataset load and enrichment duration in milliseconds")
	loadOpts.Buckets = m.loadBuckets
	m.datasetLoadDuration = auto.NewHistogram(loadOpts)
	m.datasetEvents = auto.NewGauge(
		m.gaugeOpts("dataset_events", "Number of scrobbles in the loaded dataset"),
	)
	m.datasetCacheHits = auto.NewCounterVec(
		m.counterOpts("dataset_cache_lookups_total", "Dataset cache lookups by result"),
		[]string{"result"},
	)
	m.unknownGenreGroups = auto.NewCounter(
		m.counterOpts("unknown_genre_groups_total", "Genre groups missing from the palette"),
	)

	// HTTP metrics
	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status"},
	)
	m.httpDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counterOpts("http_errors_total", "HTTP errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)

	// Error metrics
	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
}

func active() bool {
	return globalManager != nil && globalManager.enabled
}

// Draw Loop Metrics Functions.

// RecordRedraw counts a full redraw and its duration.
func RecordRedraw(reason string, durationMs float64, points int) {
	if !active() {
		return
	}
	globalManager.redraws.WithLabelValues(reason).Inc()
	globalManager.redrawDuration.Observe(durationMs)
	globalManager.pointsDrawn.Set(float64(points))
}

// Interaction Metrics Functions.

// RecordHitTest counts a pointer hit test.
func RecordHitTest(hit bool) {
	if !active() {
		return
	}
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	globalManager.hitTests.WithLabelValues(result).Inc()
}

// RecordWindowChange counts a zoom or pan request.
func RecordWindowChange(op string, accepted bool) {
	if !active() {
		return
	}
	result := ResultRejected
	if accepted {
		result = ResultAccepted
	}
	globalManager.windowChanges.WithLabelValues(op, result).Inc()
}

// RecordSelection counts a selection transition.
func RecordSelection(kind string) {
	if !active() {
		return
	}
	globalManager.selections.WithLabelValues(kind).Inc()
}

// UpdateHighlightedPixels sets the number of highlighted pixels.
func UpdateHighlightedPixels(count int) {
	if !active() {
		return
	}
	globalManager.highlightedPixels.Set(float64(count))
}

// RecordHighlightDuration records how long a highlight pass took.
func RecordHighlightDuration(durationMs float64) {
	if !active() {
		return
	}
	globalManager.highlightDuration.Observe(durationMs)
}

// RecordLabelsPlaced counts placed labels and how many had to move.
func RecordLabelsPlaced(placed, shifted int) {
	if !active() {
		return
	}
	globalManager.labelsPlaced.Add(float64(placed))
	globalManager.labelShifts.Add(float64(shifted))
}

// RecordResizeRequest counts a resize notification.
func RecordResizeRequest() {
	if !active() {
		return
	}
	globalManager.resizeRequests.Inc()
}

// RecordResizeSettled counts a resize that led to a redraw.
func RecordResizeSettled() {
	if !active() {
		return
	}
	globalManager.resizeSettled.Inc()
}

// UpdateWindow sets the visible window gauges.
func UpdateWindow(events int, spanMs int64) {
	if !active() {
		return
	}
	globalManager.windowEvents.Set(float64(events))
	globalManager.windowSpanSeconds.Set(float64(spanMs) / 1000)
}

// Dataset Metrics Functions.

// RecordDatasetLoad records a dataset load.
func RecordDatasetLoad(durationMs float64, events int) {
	if !active() {
		return
	}
	globalManager.datasetLoadDuration.Observe(durationMs)
	globalManager.datasetEvents.Set(float64(events))
}

// RecordDatasetCacheLookup counts a dataset cache lookup.
func RecordDatasetCacheLookup(hit bool) {
	if !active() {
		return
	}
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	globalManager.datasetCacheHits.WithLabelValues(result).Inc()
}

// RecordUnknownGenreGroups counts genre groups missing from the palette.
func RecordUnknownGenreGroups(count int) {
	if !active() {
		return
	}
	globalManager.unknownGenreGroups.Add(float64(count))
}

// HTTP Metrics Functions.

// RecordHTTPRequest counts a served HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if !active() {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records how long an HTTP request took.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if !active() {
		return
	}
	globalManager.httpDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// RecordErrorByEndpoint counts an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !active() {
		return
	}
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if !active() {
		return
	}
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
