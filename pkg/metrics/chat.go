package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation chat HTTP handler
	ChatLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pickwise_chat_latency_seconds",
		Help:    "Latency of the recommendation chat handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of chat requests served
	ChatRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pickwise_chat_requests_total",
		Help: "Total number of recommendation chat requests",
	})
)

func Init() {
	prometheus.MustRegister(
		ChatLatency,
		ChatRequests,
	)
}
