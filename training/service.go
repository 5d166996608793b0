// Package training orchestrates plan generation, materialization, workout
// completion and analysis on top of a Store and a generation client.
package training

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/coach"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

const (
	recentActivityLimit = 5
	strategyHistoryMax  = 20
)

// Generator is the generation client. *coach.Client implements it.
type Generator interface {
	GeneratePlan(ctx context.Context, profile models.Profile, race models.Race, prefs models.Preferences) (*coach.PlanDocument, error)
	AnalyzeWorkout(ctx context.Context, workout models.Workout, profile models.Profile, recent []models.Activity) (*coach.WorkoutAnalysis, error)
	RaceStrategy(ctx context.Context, race models.Race, profile models.Profile, history []models.Workout) (*coach.RaceStrategy, error)
}

// GenerateRequest asks for a new plan for UserID targeting RaceID.
type GenerateRequest struct {
	UserID      string
	RaceID      string
	Preferences models.Preferences
}

// Actuals are the as-run metrics recorded against a workout.
type Actuals struct {
	Distance *float64
	Pace     *string
	Duration *string
	Notes    *string
}

type Service struct {
	store Store
	gen   Generator
	log   *zap.Logger
	now   func() time.Time
}

// NewService wires a Service. now defaults to time.Now.
func NewService(store Store, gen Generator, log *zap.Logger, now func() time.Time) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, gen: gen, log: log, now: now}
}

// GeneratePlan resolves the athlete's profile and the race, asks the
// generator for a plan and materializes it.
func (s *Service) GeneratePlan(ctx context.Context, req GenerateRequest) (*models.Plan, error) {
	athlete, profile, err := s.resolveAthlete(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	race, err := s.store.Race(ctx, req.RaceID)
	if err != nil {
		return nil, err
	}

	doc, err := s.gen.GeneratePlan(ctx, *profile, *race, req.Preferences)
	if err != nil {
		return nil, err
	}

	plan, err := s.Materialize(ctx, athlete.ID, race, doc)
	if err != nil {
		return nil, err
	}
	s.log.Info("plan generated",
		zap.String("plan_id", plan.ID),
		zap.String("athlete_id", athlete.ID),
		zap.String("race_id", race.ID),
		zap.Int("total_weeks", plan.TotalWeeks),
		zap.Int("workouts", len(plan.Workouts)),
	)
	return plan, nil
}

// Materialize persists one plan row and one workout row per scheduled
// session in a single transaction. Rest entries stay in the plan data only.
func (s *Service) Materialize(ctx context.Context, athleteID string, race *models.Race, doc *coach.PlanDocument) (*models.Plan, error) {
	data := doc.Raw
	if len(data) == 0 {
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode plan data: %w", err)
		}
		data = b
	}

	plan := &models.Plan{
		ID:         uuid.NewString(),
		AthleteID:  athleteID,
		RaceID:     race.ID,
		StartDate:  s.now().UTC(),
		RaceDate:   race.Date,
		TotalWeeks: doc.PlanOverview.TotalWeeks,
		Phase:      models.PhaseBase,
		PlanData:   data,
	}
	workouts := Expand(plan.ID, doc)

	err := s.store.InTx(ctx, func(ctx context.Context, tx Store) error {
		if err := tx.InsertPlan(ctx, plan); err != nil {
			return err
		}
		for _, w := range workouts {
			if err := tx.InsertWorkout(ctx, w); err != nil {
				return fmt.Errorf("week %d %s: %w", w.WeekNumber, w.DayOfWeek, err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("materialize plan failed", zap.String("plan_id", plan.ID), zap.Error(err))
		return nil, apperr.Persistence("materialize plan", err)
	}

	plansMaterialized.Inc()
	workoutsMaterialized.Add(float64(len(workouts)))

	plan.Race = race
	plan.Workouts = workouts
	return plan, nil
}

// Expand turns a plan document into workout rows in generation order,
// numbering them with a plan-wide sequence and skipping rest entries.
func Expand(planID string, doc *coach.PlanDocument) []*models.Workout {
	var out []*models.Workout
	seq := 0
	for _, week := range doc.WeeklyPlans {
		for _, pw := range week.Workouts {
			if pw.IsRest() {
				continue
			}
			seq++
			segments := pw.Segments
			if segments == nil {
				segments = []models.Segment{}
			}
			out = append(out, &models.Workout{
				ID:          uuid.NewString(),
				PlanID:      planID,
				WeekNumber:  week.Week,
				DayOfWeek:   strings.TrimSpace(pw.Day),
				Sequence:    seq,
				WorkoutType: strings.ToLower(strings.TrimSpace(pw.Type)),
				Distance:    pw.Distance,
				Pace:        pw.Pace,
				Description: pw.Description,
				Segments:    segments,
			})
		}
	}
	return out
}

// ListPlans returns every plan of an athlete.
func (s *Service) ListPlans(ctx context.Context, userID string) ([]*models.Plan, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Validation("userId is required")
	}
	return s.store.PlansByAthlete(ctx, userID)
}

func (s *Service) GetPlan(ctx context.Context, id string) (*models.Plan, error) {
	return s.store.Plan(ctx, id)
}

// WeekWorkouts returns the workouts of one week of a plan.
func (s *Service) WeekWorkouts(ctx context.Context, planID string, week int) ([]*models.Workout, error) {
	if week < 1 {
		return nil, apperr.Validation("week must be a positive number")
	}
	workouts, err := s.store.WeekWorkouts(ctx, planID, week)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		// Distinguish an empty week from a plan that does not exist.
		if _, err := s.store.Plan(ctx, planID); err != nil {
			return nil, err
		}
	}
	return workouts, nil
}

// SetPhase moves a plan to phase. Transitions are caller driven and any
// known phase may follow any other.
func (s *Service) SetPhase(ctx context.Context, planID, phase string) (*models.Plan, error) {
	p, ok := models.ParsePhase(phase)
	if !ok {
		return nil, apperr.Validation("phase must be one of base, build, peak, taper")
	}
	if err := s.store.UpdatePlanPhase(ctx, planID, p); err != nil {
		return nil, err
	}
	return s.store.Plan(ctx, planID)
}

// DeletePlan removes a plan and, by cascade, its workouts.
func (s *Service) DeletePlan(ctx context.Context, id string) error {
	return s.store.DeletePlan(ctx, id)
}

// RaceStrategy generates race day guidance using the athlete's completed workouts.
func (s *Service) RaceStrategy(ctx context.Context, raceID, userID string) (*coach.RaceStrategy, error) {
	race, err := s.store.Race(ctx, raceID)
	if err != nil {
		return nil, err
	}
	athlete, profile, err := s.resolveAthlete(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := s.store.CompletedWorkouts(ctx, athlete.ID, strategyHistoryMax)
	if err != nil {
		return nil, err
	}
	return s.gen.RaceStrategy(ctx, *race, *profile, history)
}

func (s *Service) resolveAthlete(ctx context.Context, userID string) (*models.Athlete, *models.Profile, error) {
	athlete, err := s.store.AthleteWithProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if athlete.Profile == nil {
		return nil, nil, apperr.NotFound("profile", userID)
	}
	return athlete, athlete.Profile, nil
}
