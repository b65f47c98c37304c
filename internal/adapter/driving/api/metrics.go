package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exposed on /metrics.
// A private registry keeps repeated servers (and tests) from colliding on the default one.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	reports       *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the API collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retail_report",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retail_report",
			Name:      "builds_total",
			Help:      "Insight and report builds, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "retail_report",
			Name:      "build_duration_seconds",
			Help:      "Time spent building insights or documents.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.requests, m.reports, m.buildDuration)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeRequest(route string, code int) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

func (m *Metrics) observeBuild(kind string, started time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.reports.WithLabelValues(kind, outcome).Inc()
	m.buildDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}
