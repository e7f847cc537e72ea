package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records page render counts and latencies.
type Metrics struct {
	registry *prometheus.Registry
	renders  *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics registers the page collectors, plus the Go and process collectors, on a
// dedicated registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "web",
			Name:      "page_renders_total",
			Help:      "Auth pages rendered, by page and response status.",
		}, []string{"page", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "web",
			Name:      "page_render_seconds",
			Help:      "Time spent rendering auth pages.",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"page"}),
	}
	reg.MustRegister(
		m.renders,
		m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObservePageRender records one render of page.
func (m *Metrics) ObservePageRender(page string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(page, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(page).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
