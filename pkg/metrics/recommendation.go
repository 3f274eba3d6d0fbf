package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Total number of compatibility evaluations performed
	EvaluationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "compatibility_evaluations_total",
		Help: "Total number of rider/moto compatibility evaluations",
	})

	// Total number of ideal computations served
	IdealComputationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ideal_computations_total",
		Help: "Total number of ideal moto computations",
	})

	// Ideal results computed but not persisted
	IdealPersistFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ideal_persist_failures_total",
		Help: "Total number of ideal assignments that failed to persist",
	})
)

func Init() {
	prometheus.MustRegister(
		EvaluationsTotal,
		IdealComputationsTotal,
		IdealPersistFailuresTotal,
	)
}
