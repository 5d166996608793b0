package store

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

func orderedWorkouts(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("w.week_number ASC, w.sequence ASC")
}

func (s *Store) InsertPlan(ctx context.Context, p *models.Plan) error {
	if _, err := s.db.NewInsert().Model(p).Exec(ctx); err != nil {
		return apperr.Persistence("insert plan", err)
	}
	return nil
}

func (s *Store) InsertWorkout(ctx context.Context, w *models.Workout) error {
	if _, err := s.db.NewInsert().Model(w).Exec(ctx); err != nil {
		return apperr.Persistence("insert workout", err)
	}
	return nil
}

func (s *Store) Plan(ctx context.Context, id string) (*models.Plan, error) {
	if !validID(id) {
		return nil, apperr.NotFound("plan", id)
	}
	plan := &models.Plan{}
	err := s.db.NewSelect().Model(plan).
		Relation("Race").
		Relation("Workouts", orderedWorkouts).
		Where("pl.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, lookup(err, "plan", id)
	}
	return plan, nil
}

func (s *Store) PlansByAthlete(ctx context.Context, athleteID string) ([]*models.Plan, error) {
	plans := []*models.Plan{}
	if !validID(athleteID) {
		return plans, nil
	}
	err := s.db.NewSelect().Model(&plans).
		Relation("Race").
		Relation("Workouts", orderedWorkouts).
		Where("pl.athlete_id = ?", athleteID).
		OrderExpr("pl.start_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, apperr.Persistence("select plans", err)
	}
	return plans, nil
}

func (s *Store) UpdatePlanPhase(ctx context.Context, id string, phase models.Phase) error {
	if !validID(id) {
		return apperr.NotFound("plan", id)
	}
	res, err := s.db.NewUpdate().Model((*models.Plan)(nil)).
		Set("phase = ?", phase).
		Where("id = ?", id).
		Exec(ctx)
	return affected(res, err, "update plan phase", "plan", id)
}

func (s *Store) DeletePlan(ctx context.Context, id string) error {
	if !validID(id) {
		return apperr.NotFound("plan", id)
	}
	res, err := s.db.NewDelete().Model((*models.Plan)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return affected(res, err, "delete plan", "plan", id)
}
