package metrics

import (
	"github.com/RuvinSL/alt-audit/pkg/interfaces"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements metrics collection using Prometheus
type PrometheusCollector struct {
	serviceName string

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	scansTotal         *prometheus.CounterVec
	scanDuration       *prometheus.HistogramVec
	fetchesTotal       *prometheus.CounterVec
	fetchDuration      *prometheus.HistogramVec
	securityRejections *prometheus.CounterVec
}

// NewPrometheusCollector creates a new Prometheus metrics collector
func NewPrometheusCollector(serviceName string) *PrometheusCollector {
	constLabels := prometheus.Labels{"service": serviceName}

	return &PrometheusCollector{
		serviceName: serviceName,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "http_requests_in_flight",
				Help:        "Number of HTTP requests currently being processed",
				ConstLabels: constLabels,
			},
		),

		scansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "alt_audit_scans_total",
				Help:        "Total number of URL scans by status and error category",
				ConstLabels: constLabels,
			},
			[]string{"status", "category"},
		),

		scanDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "alt_audit_scan_duration_seconds",
				Help:        "URL scan duration in seconds",
				ConstLabels: constLabels,
				Buckets:     []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"status"},
		),

		fetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "alt_audit_fetches_total",
				Help:        "Total number of page fetches by transport path",
				ConstLabels: constLabels,
			},
			[]string{"path", "status"},
		),

		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "alt_audit_fetch_duration_seconds",
				Help:        "Page fetch duration in seconds",
				ConstLabels: constLabels,
				Buckets:     []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"path"},
		),

		securityRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "alt_audit_security_rejections_total",
				Help:        "URLs and connections rejected by the network policy",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
	}
}

// GetCollectors returns all Prometheus collectors for registration
func (p *PrometheusCollector) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.httpRequestsTotal,
		p.httpRequestDuration,
		p.httpRequestsInFlight,
		p.scansTotal,
		p.scanDuration,
		p.fetchesTotal,
		p.fetchDuration,
		p.securityRejections,
	}
}

// RecordRequest records HTTP request metrics
func (p *PrometheusCollector) RecordRequest(method, path string, statusCode int, duration float64) {
	status := statusCodeToString(statusCode)

	p.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	p.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
}

// RecordScan records one finished scan. category is empty for completed scans.
func (p *PrometheusCollector) RecordScan(status, category string, duration float64) {
	if category == "" {
		category = "none"
	}

	p.scansTotal.WithLabelValues(status, category).Inc()
	p.scanDuration.WithLabelValues(status).Observe(duration)
}

// RecordFetch records a fetch attempt on the primary or fallback path
func (p *PrometheusCollector) RecordFetch(path string, success bool, duration float64) {
	status := "success"
	if !success {
		status = "failure"
	}

	p.fetchesTotal.WithLabelValues(path, status).Inc()
	p.fetchDuration.WithLabelValues(path).Observe(duration)
}

// RecordSecurityRejection counts a policy rejection
func (p *PrometheusCollector) RecordSecurityRejection(reason string) {
	p.securityRejections.WithLabelValues(reason).Inc()
}

// IncRequestsInFlight increments the in-flight requests gauge
func (p *PrometheusCollector) IncRequestsInFlight() {
	p.httpRequestsInFlight.Inc()
}

// DecRequestsInFlight decrements the in-flight requests gauge
func (p *PrometheusCollector) DecRequestsInFlight() {
	p.httpRequestsInFlight.Dec()
}

// statusCodeToString converts HTTP status code to string category
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

// Collector is the full collector surface used by the service wiring
type Collector interface {
	interfaces.MetricsCollector
	IncRequestsInFlight()
	DecRequestsInFlight()
	GetCollectors() []prometheus.Collector
}

// Noop discards every measurement
type Noop struct{}

func (Noop) RecordRequest(method, path string, statusCode int, duration float64) {}
func (Noop) RecordScan(status, category string, duration float64) {}
func (Noop) RecordFetch(path string, success bool, duration float64) {}
func (Noop) RecordSecurityRejection(reason string) {}

// Ensure PrometheusCollector implements interfaces.MetricsCollector
var (
	_ interfaces.MetricsCollector = (*PrometheusCollector)(nil)
	_ interfaces.MetricsCollector = Noop{}
	_ Collector                   = (*PrometheusCollector)(nil)
)
