package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the gateway
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	tablesOpenedTotal    *prometheus.CounterVec
	recordsDecodedTotal  prometheus.Counter
	decodeDurationSecond *prometheus.HistogramVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dbfkit_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dbfkit_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dbfkit_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		tablesOpenedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dbfkit_tables_opened_total",
				Help: "Total number of table opens",
			},
			[]string{"status"},
		),

		recordsDecodedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dbfkit_records_decoded_total",
				Help: "Total number of records decoded and served",
			},
		),

		decodeDurationSecond: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dbfkit_decode_duration_seconds",
				Help:    "Table decode duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	code := strconv.Itoa(statusCode)
	m.httpRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordTableOpen records the outcome of opening a table
func (m *Metrics) RecordTableOpen(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.tablesOpenedTotal.WithLabelValues(status).Inc()
}

// RecordDecode records a decode operation and the records it produced
func (m *Metrics) RecordDecode(operation string, records int, duration time.Duration) {
	m.recordsDecodedTotal.Add(float64(records))
	m.decodeDurationSecond.WithLabelValues(operation).Observe(duration.Seconds())
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
