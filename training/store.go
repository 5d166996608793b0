package training

import (
	"context"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

// Store is the persistence the pipeline needs. Lookups of a missing row
// return an apperr NotFound error; other failures return apperr
// PersistenceError values.
type Store interface {
	// AthleteWithProfile loads an athlete and, when present, its profile.
	AthleteWithProfile(ctx context.Context, id string) (*models.Athlete, error)
	Race(ctx context.Context, id string) (*models.Race, error)

	InsertPlan(ctx context.Context, p *models.Plan) error
	InsertWorkout(ctx context.Context, w *models.Workout) error

	// Plan and PlansByAthlete embed the race and the workouts ordered by
	// week then sequence.
	Plan(ctx context.Context, id string) (*models.Plan, error)
	PlansByAthlete(ctx context.Context, athleteID string) ([]*models.Plan, error)
	UpdatePlanPhase(ctx context.Context, id string, phase models.Phase) error
	DeletePlan(ctx context.Context, id string) error

	WeekWorkouts(ctx context.Context, planID string, week int) ([]*models.Workout, error)
	// Workout loads a workout together with its parent plan.
	Workout(ctx context.Context, id string) (*models.Workout, error)
	UpdateWorkoutCompletion(ctx context.Context, w *models.Workout) error
	CompletedWorkouts(ctx context.Context, athleteID string, limit int) ([]models.Workout, error)

	// RecentActivities returns up to limit activities, newest first.
	RecentActivities(ctx context.Context, athleteID string, limit int) ([]models.Activity, error)

	// InTx runs fn against a Store bound to a single transaction. The
	// transaction commits only when fn returns nil.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
