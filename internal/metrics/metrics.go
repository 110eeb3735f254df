package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrchestrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxstack_orchestrations_total",
			Help: "Total number of compose invocations issued",
		},
		[]string{"operation"},
	)

	OrchestrationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxstack_orchestration_errors_total",
			Help: "Total number of failed compose invocations",
		},
		[]string{"operation"},
	)

	OrchestrationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voxstack_orchestration_duration_seconds",
			Help:    "Compose invocation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(OrchestrationsTotal)
	prometheus.MustRegister(OrchestrationErrors)
	prometheus.MustRegister(OrchestrationDuration)
}
