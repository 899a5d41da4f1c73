// Package metrics exposes Prometheus collectors for the routing engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus collectors
type Metrics struct {
	dispatchTotal    *prometheus.CounterVec
	resolveDuration  *prometheus.HistogramVec
	errorConversions prometheus.Counter
}

// New registers the engine collectors with a registry. Passing nil uses
// the default registerer.
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		dispatchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "route_engine",
			Name:      "dispatch_total",
			Help:      "Dispatch outcomes by code",
		}, []string{"code"}),

		resolveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "route_engine",
			Name:      "resolve_duration_seconds",
			Help:      "Request resolution duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code"}),

		errorConversions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "route_engine",
			Name:      "error_conversions_total",
			Help:      "Total route-to-error-route conversions",
		}),
	}
}

// ObserveDispatch records one dispatch outcome
func (m *Metrics) ObserveDispatch(code string) {
	m.dispatchTotal.WithLabelValues(code).Inc()
}

// ObserveResolve records one completed resolution
func (m *Metrics) ObserveResolve(code string, duration time.Duration) {
	m.resolveDuration.WithLabelValues(code).Observe(duration.Seconds())
}

// ObserveErrorConversions records the conversions a route went through
func (m *Metrics) ObserveErrorConversions(count int) {
	if count > 0 {
		m.errorConversions.Add(float64(count))
	}
}
