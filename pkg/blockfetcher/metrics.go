package blockfetcher

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the optional Prometheus instrumentation for a Poller
// or Subscriber. Any field may be left nil; a nil Metrics (or a nil
// field within one) simply records nothing.
type Metrics struct {
	Polls         prometheus.Counter
	Notifications *prometheus.CounterVec
	PollLatency   prometheus.Histogram
}

// NewMetrics builds a Metrics with counters/histograms registered
// under the given namespace, ready to be registered with a
// prometheus.Registerer by the caller.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Polls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blockfetcher",
			Name:      "polls_total",
			Help:      "Total number of getblockcount polls performed.",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blockfetcher",
			Name:      "notifications_total",
			Help:      "Total number of block notifications delivered, labeled by transport.",
		}, []string{"transport"}),
		PollLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "blockfetcher",
			Name:      "poll_duration_seconds",
			Help:      "getblockcount round-trip latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Collectors returns every metric so the caller can register them
// with a prometheus.Registerer in one call.
func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.Polls, m.Notifications, m.PollLatency}
}

func (m *Metrics) observePoll(seconds float64) {
	if m == nil {
		return
	}
	if m.Polls != nil {
		m.Polls.Inc()
	}
	if m.PollLatency != nil {
		m.PollLatency.Observe(seconds)
	}
}

func (m *Metrics) observeNotification(transport string) {
	if m == nil || m.Notifications == nil {
		return
	}
	m.Notifications.WithLabelValues(transport).Inc()
}
