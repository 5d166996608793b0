package training

import (
	"context"

	"go.uber.org/zap"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/coach"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

// CompleteWorkout marks a workout completed and overwrites its actuals.
// Repeated calls replace the previous actuals; scheduled fields never change.
func (s *Service) CompleteWorkout(ctx context.Context, id string, a Actuals) (*models.Workout, error) {
	w, err := s.store.Workout(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Distance != nil && *a.Distance < 0 {
		return nil, apperr.Validation("actualDistance must not be negative")
	}

	now := s.now().UTC()
	w.Completed = true
	w.CompletedAt = &now
	w.ActualDistance = a.Distance
	w.ActualPace = a.Pace
	w.ActualDuration = a.Duration
	w.Notes = a.Notes

	if err := s.store.UpdateWorkoutCompletion(ctx, w); err != nil {
		return nil, err
	}
	workoutsCompleted.Inc()
	s.log.Info("workout completed", zap.String("workout_id", w.ID), zap.String("plan_id", w.PlanID))
	return w, nil
}

// AnalyzeWorkout asks the generator for feedback on a workout using the
// owner's profile and five most recent activities. Nothing is persisted.
func (s *Service) AnalyzeWorkout(ctx context.Context, id string) (*coach.WorkoutAnalysis, error) {
	w, err := s.store.Workout(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Plan == nil {
		return nil, apperr.NotFound("plan", w.PlanID)
	}

	athlete, profile, err := s.resolveAthlete(ctx, w.Plan.AthleteID)
	if err != nil {
		return nil, err
	}
	recent, err := s.store.RecentActivities(ctx, athlete.ID, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	return s.gen.AnalyzeWorkout(ctx, *w, *profile, recent)
}
