package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MatrixBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reco_matrix_build_duration_seconds",
		Help:    "Time spent building and saving the co-occurrence matrix.",
		Buckets: prometheus.DefBuckets,
	})

	MatrixProducts = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reco_matrix_products",
		Help: "Number of products with at least one co-occurrence in the last built matrix.",
	})

	MatrixLoadErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_matrix_load_errors_total",
			Help: "Count of failed matrix loads by kind (corrupt, store).",
		},
		[]string{"kind"},
	)

	RecommendationsServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_recommendations_served_total",
			Help: "Count of cart recommendation requests by outcome (hit, empty).",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		MatrixBuildDuration,
		MatrixProducts,
		MatrixLoadErrorsTotal,
		RecommendationsServedTotal,
	)
}
