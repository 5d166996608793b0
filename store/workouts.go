package store

import (
	"context"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

func (s *Store) WeekWorkouts(ctx context.Context, planID string, week int) ([]*models.Workout, error) {
	workouts := []*models.Workout{}
	if !validID(planID) {
		return workouts, nil
	}
	err := s.db.NewSelect().Model(&workouts).
		Where("w.plan_id = ?", planID).
		Where("w.week_number = ?", week).
		OrderExpr("w.sequence ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperr.Persistence("select week workouts", err)
	}
	return workouts, nil
}

func (s *Store) Workout(ctx context.Context, id string) (*models.Workout, error) {
	if !validID(id) {
		return nil, apperr.NotFound("workout", id)
	}
	w := &models.Workout{}
	err := s.db.NewSelect().Model(w).
		Relation("Plan").
		Where("w.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, lookup(err, "workout", id)
	}
	return w, nil
}

// UpdateWorkoutCompletion writes only the completion columns.
func (s *Store) UpdateWorkoutCompletion(ctx context.Context, w *models.Workout) error {
	if !validID(w.ID) {
		return apperr.NotFound("workout", w.ID)
	}
	res, err := s.db.NewUpdate().Model(w).
		Column("completed", "completed_at", "actual_distance", "actual_pace", "actual_duration", "notes").
		WherePK().
		Exec(ctx)
	return affected(res, err, "update workout", "workout", w.ID)
}

// CompletedWorkouts returns the athlete's latest completed workouts, oldest first.
func (s *Store) CompletedWorkouts(ctx context.Context, athleteID string, limit int) ([]models.Workout, error) {
	var workouts []models.Workout
	if !validID(athleteID) {
		return workouts, nil
	}
	err := s.db.NewSelect().Model(&workouts).
		Join("JOIN plans AS pl ON pl.id = w.plan_id").
		Where("pl.athlete_id = ?", athleteID).
		Where("w.completed").
		OrderExpr("w.completed_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, apperr.Persistence("select completed workouts", err)
	}
	for i, j := 0, len(workouts)-1; i < j; i, j = i+1, j-1 {
		workouts[i], workouts[j] = workouts[j], workouts[i]
	}
	return workouts, nil
}
