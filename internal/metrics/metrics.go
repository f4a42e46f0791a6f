package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_predictions_total",
		Help: "Prediction attempts by outcome.",
	}, []string{"outcome"})

	UpstreamLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "placement_upstream_latency_seconds",
		Help:    "Latency of calls to the prediction API.",
		Buckets: prometheus.DefBuckets,
	})
)

func ObservePrediction(outcome string, started time.Time) {
	PredictionsTotal.WithLabelValues(outcome).Inc()
	UpstreamLatency.Observe(time.Since(started).Seconds())
}
