// Package metrics exposes Prometheus metrics for the inventor registry.
package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation names used as the "operation" label.
const (
	OpRegisterInventor = "register_inventor"
	OpVerifyInventor   = "verify_inventor"
	OpTransferAdmin    = "transfer_admin"
)

// OutcomeOK is the "outcome" label for successful operations. Failed operations
// are labelled with the registry error code name.
const OutcomeOK = "ok"

// Metrics holds the registry metrics. Every instance owns its own Prometheus
// registry so that several servers (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	Operations *prometheus.CounterVec
	Inventors  prometheus.Gauge
}

// NewMetrics creates and registers all metrics under namespace.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	namespace = sanitizeNamespace(namespace)

	return &Metrics{
		registry: reg,
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Registry state-mutating operations by outcome",
		}, []string{"operation", "outcome"}),
		Inventors: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventors",
			Help:      "Number of registered inventors",
		}),
	}
}

// ObserveOperation records the outcome of an operation.
func (m *Metrics) ObserveOperation(operation, outcome string) {
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

// SetInventors records the current number of registered inventors.
func (m *Metrics) SetInventors(n int) {
	m.Inventors.Set(float64(n))
}

// Handler returns the HTTP handler serving this instance's metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the underlying registry, mostly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func sanitizeNamespace(ns string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(ns)
}
