package training

import "github.com/prometheus/client_golang/prometheus"

var (
	plansMaterialized = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gofast",
		Subsystem: "training",
		Name:      "plans_materialized_total",
		Help:      "Plans persisted with their workouts.",
	})

	workoutsMaterialized = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gofast",
		Subsystem: "training",
		Name:      "workouts_materialized_total",
		Help:      "Workout rows created during plan materialization.",
	})

	workoutsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gofast",
		Subsystem: "training",
		Name:      "workouts_completed_total",
		Help:      "Workout completion writes, including corrections.",
	})
)

func init() {
	prometheus.MustRegister(plansMaterialized, workoutsMaterialized, workoutsCompleted)
}
