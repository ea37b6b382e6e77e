package multicall

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics tracks aggregated round trips.
type Metrics struct {
	batchesTotal  *prometheus.CounterVec
	callsTotal    prometheus.Counter
	batchDuration *prometheus.HistogramVec
}

// NewMetrics creates the aggregator metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		batchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pairlens",
			Subsystem: "multicall",
			Name:      "batches_total",
			Help:      "Aggregated batches executed, labelled by outcome.",
		}, []string{"outcome"}),
		callsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pairlens",
			Subsystem: "multicall",
			Name:      "calls_total",
			Help:      "Sub-calls shipped inside successful batches.",
		}),
		batchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pairlens",
			Subsystem: "multicall",
			Name:      "batch_duration_seconds",
			Help:      "Wall time of one aggregated round trip.",
			Buckets:   prometheus.DefBuckets,
		}, []string{}),
	}

	reg.MustRegister(m.batchesTotal, m.callsTotal, m.batchDuration)

	return m
}
