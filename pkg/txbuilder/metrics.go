package txbuilder

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the optional Prometheus instrumentation for a
// Builder. Any field may be left nil; a nil Metrics (or a nil field
// within one) simply records nothing.
type Metrics struct {
	FeeNegotiations prometheus.Histogram
	SystemFee       prometheus.Histogram
	Submissions     *prometheus.CounterVec
}

// NewMetrics builds a Metrics with counters/histograms registered
// under the given namespace, ready to be registered with a
// prometheus.Registerer by the caller.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FeeNegotiations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "txbuilder",
			Name:      "fee_negotiation_seconds",
			Help:      "Time spent pricing a transaction's system and network fee.",
			Buckets:   prometheus.DefBuckets,
		}),
		SystemFee: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "txbuilder",
			Name:      "system_fee_gas",
			Help:      "System fee (in GAS fractions) the node reported for a built transaction.",
			Buckets:   prometheus.ExponentialBuckets(1e5, 4, 10),
		}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "txbuilder",
			Name:      "submissions_total",
			Help:      "Total number of transactions submitted, labeled by outcome.",
		}, []string{"outcome"}),
	}
}

// Collectors returns every metric so the caller can register them
// with a prometheus.Registerer in one call.
func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.FeeNegotiations, m.SystemFee, m.Submissions}
}

func (m *Metrics) observeFeeNegotiation(seconds float64, systemFee int64) {
	if m == nil {
		return
	}
	if m.FeeNegotiations != nil {
		m.FeeNegotiations.Observe(seconds)
	}
	if m.SystemFee != nil {
		m.SystemFee.Observe(float64(systemFee))
	}
}

func (m *Metrics) observeSubmission(outcome string) {
	if m == nil || m.Submissions == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}
