package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every collector the service exports. All collectors are
// registered on the registry passed to New so tests can use an isolated one.
type Metrics struct {
	registry *prometheus.Registry

	// UploadsTotal counts per-file uploads by provider and outcome.
	UploadsTotal *prometheus.CounterVec

	// CutoutAttempts counts background-removal attempts by provider and outcome.
	CutoutAttempts *prometheus.CounterVec

	// CatalogMerges counts catalog writes by path (single, finalize) and outcome.
	CatalogMerges *prometheus.CounterVec

	// BatchPending is the number of entries waiting for finalize.
	BatchPending prometheus.Gauge

	// CircuitState tracks the cutout breaker state per provider (0=closed, 1=half-open, 2=open).
	CircuitState *prometheus.GaugeVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPInFlight        prometheus.Gauge
}

// New creates all collectors on reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		UploadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "forward_upload_total",
			Help: "Uploaded files by provider and outcome",
		}, []string{"provider", "outcome"}),
		CutoutAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "forward_cutout_attempts_total",
			Help: "Background removal attempts by provider and outcome",
		}, []string{"provider", "outcome"}),
		CatalogMerges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "forward_catalog_merge_total",
			Help: "Catalog merges by path and outcome",
		}, []string{"path", "outcome"}),
		BatchPending: f.NewGauge(prometheus.GaugeOpts{
			Name: "forward_batch_pending",
			Help: "Entries waiting in the pending batch",
		}),
		CircuitState: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "forward_cutout_circuit_state",
			Help: "Cutout provider circuit breaker state (0=closed, 1=half-open, 2=open)",
		}, []string{"provider"}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "route"}),
		HTTPInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),
	}
}

// NewDefault creates a registry with the Go and process collectors and
// registers all service collectors on it.
func NewDefault() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeQueued  = "queued"
	OutcomeSkipped = "skipped"
)
