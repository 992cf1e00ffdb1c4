package instrument

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the service's Prometheus collectors. Each instance owns its
// registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	LintIssues          *prometheus.GaugeVec
	CatalogReloads      *prometheus.CounterVec
	DescriptorsLoaded   prometheus.Gauge
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LintIssues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "descriptor_lint_issues",
			Help:      "Descriptor lint issues of the loaded catalog by code",
		}, []string{"code"}),
		CatalogReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Descriptor catalog reloads by result",
		}, []string{"result"}),
		DescriptorsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "descriptors_loaded",
			Help:      "Number of descriptor bundles in the registry",
		}),
	}
	m.Registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LintIssues,
		m.CatalogReloads,
		m.DescriptorsLoaded,
		prometheus.NewGoCollector(),
	)
	return m
}

// RecordLint replaces the lint gauge with the given per-code counts.
func (m *Metrics) RecordLint(counts map[string]int) {
	m.LintIssues.Reset()
	for code, n := range counts {
		m.LintIssues.WithLabelValues(code).Set(float64(n))
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
