package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/coach"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/training"
)

// Trainer is the training pipeline. *training.Service implements it.
type Trainer interface {
	GeneratePlan(ctx context.Context, req training.GenerateRequest) (*models.Plan, error)
	ListPlans(ctx context.Context, userID string) ([]*models.Plan, error)
	GetPlan(ctx context.Context, id string) (*models.Plan, error)
	WeekWorkouts(ctx context.Context, planID string, week int) ([]*models.Workout, error)
	SetPhase(ctx context.Context, planID, phase string) (*models.Plan, error)
	DeletePlan(ctx context.Context, id string) error
	CompleteWorkout(ctx context.Context, id string, a training.Actuals) (*models.Workout, error)
	AnalyzeWorkout(ctx context.Context, id string) (*coach.WorkoutAnalysis, error)
	RaceStrategy(ctx context.Context, raceID, userID string) (*coach.RaceStrategy, error)
}

// Directory is plain record keeping for athletes, races and activities.
// *store.Store implements it.
type Directory interface {
	FindOrCreateAthlete(ctx context.Context, a *models.Athlete) (*models.Athlete, bool, error)
	AthleteWithProfile(ctx context.Context, id string) (*models.Athlete, error)
	UpsertProfile(ctx context.Context, p *models.Profile) error
	DeleteAthleteBy(ctx context.Context, column, value string) (*models.Athlete, error)
	DeleteAthletes(ctx context.Context, ids []string) (int, error)

	CreateRace(ctx context.Context, r *models.Race) error
	Races(ctx context.Context) ([]models.Race, error)
	Race(ctx context.Context, id string) (*models.Race, error)
	DeleteRace(ctx context.Context, id string) error

	CreateActivity(ctx context.Context, a *models.Activity) error
	RecentActivities(ctx context.Context, athleteID string, limit int) ([]models.Activity, error)
	Activity(ctx context.Context, id string) (*models.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	trainer Trainer
	dir     Directory
	log     *zap.Logger
	debug   bool
	version string
}

// New creates a Handler. debug exposes error causes in responses.
func New(trainer Trainer, dir Directory, log *zap.Logger, debug bool, version string) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{trainer: trainer, dir: dir, log: log, debug: debug, version: version}
}
