package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RetrievalCandidates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickwise_retrieval_candidates_total",
			Help: "Count of retrieved candidates by retrieval path.",
		},
		[]string{"source"},
	)

	RangeCacheRefreshes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pickwise_range_cache_refreshes_total",
			Help: "How many times the statistical range cache was rebuilt.",
		},
	)
)

func init() {
	prometheus.MustRegister(RetrievalCandidates, RangeCacheRefreshes)
}
