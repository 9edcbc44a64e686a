package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the cart recommendation HTTP handler, by response status
	RecommendLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_recommend_latency_seconds",
		Help:    "Latency of the cart recommendation handler",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})

	// Total number of cart recommendation requests
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_recommend_requests_total",
		Help: "Total number of cart recommendation requests",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
	)
}
