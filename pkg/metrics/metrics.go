package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Dispatch cycle metrics
	MessagesSent         prometheus.Counter
	MessagesFailed       prometheus.Counter
	CyclesSkippedEmbargo prometheus.Counter
	CyclesSkippedLocked  prometheus.Counter
	CycleLatency         prometheus.Histogram
	DueSetSize           prometheus.Gauge

	// SMS gateway metrics
	GatewayRequests *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		MessagesSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "messages_sent_total",
			Help:      "Total number of messages accepted by the SMS gateway",
		}),
		MessagesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "messages_failed_total",
			Help:      "Total number of messages the SMS gateway rejected",
		}),
		CyclesSkippedEmbargo: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycles_skipped_embargo_total",
			Help:      "Dispatch cycles short-circuited by quiet hours",
		}),
		CyclesSkippedLocked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycles_skipped_locked_total",
			Help:      "Dispatch cycles skipped because another instance held the lease",
		}),
		CycleLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycle_duration_seconds",
			Help:      "Time spent running one dispatch cycle",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		DueSetSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "due_set_size",
			Help:      "Number of due messages selected in the most recent cycle",
		}),
		GatewayRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "gateway_requests_total",
			Help:      "SMS gateway requests by result",
		}, []string{"result"}),
	}
}
