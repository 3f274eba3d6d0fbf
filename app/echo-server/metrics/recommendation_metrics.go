package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	IdealRequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ideal_request_latency_seconds",
		Help:    "Latency of the ideal recommendation endpoint",
		Buckets: prometheus.DefBuckets,
	})

	IdealRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ideal_requests_total",
		Help: "Total ideal recommendation requests served",
	})
)

func Init() {
	prometheus.MustRegister(IdealRequestDuration, IdealRequestsTotal)
}
