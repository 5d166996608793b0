package coach

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeOK          = "ok"
	outcomeUnavailable = "unavailable"
	outcomeMalformed   = "malformed"
)

var (
	generationRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gofast",
		Subsystem: "generation",
		Name:      "requests_total",
		Help:      "Generation backend exchanges by purpose and outcome.",
	}, []string{"purpose", "outcome"})

	generationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gofast",
		Subsystem: "generation",
		Name:      "duration_seconds",
		Help:      "Latency of generation backend calls.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60, 90},
	}, []string{"purpose"})
)

func init() {
	prometheus.MustRegister(generationRequests, generationDuration)
}
