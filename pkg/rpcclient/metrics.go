package rpcclient

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the optional Prometheus instrumentation for a Client.
// Any combination of fields may be left nil; a nil Metrics (or a nil
// field within one) simply records nothing, so instrumentation is
// opt-in and adds no overhead when unused.
type Metrics struct {
	Requests *prometheus.CounterVec
	Errors   *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewMetrics builds a Metrics with counters/histograms registered
// under the given namespace, ready to be registered with a
// prometheus.Registerer by the caller.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpcclient",
			Name:      "requests_total",
			Help:      "Total number of JSON-RPC requests sent, labeled by method.",
		}, []string{"method"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpcclient",
			Name:      "errors_total",
			Help:      "Total number of JSON-RPC requests that failed, labeled by method.",
		}, []string{"method"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpcclient",
			Name:      "request_duration_seconds",
			Help:      "JSON-RPC request latency in seconds, labeled by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"})}
}

// Collectors returns every metric so the caller can register them
// with a prometheus.Registerer in one call.
func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.Requests, m.Errors, m.Latency}
}

func (m *Metrics) observe(method string, seconds float64, failed bool) {
	if m == nil {
		return
	}
	if m.Requests != nil {
		m.Requests.WithLabelValues(method).Inc()
	}
	if failed && m.Errors != nil {
		m.Errors.WithLabelValues(method).Inc()
	}
	if m.Latency != nil {
		m.Latency.WithLabelValues(method).Observe(seconds)
	}
}
