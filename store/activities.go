package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

func (s *Store) CreateActivity(ctx context.Context, a *models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Source == "" {
		a.Source = "manual"
	}
	if !validID(a.AthleteID) {
		return apperr.NotFound("athlete", a.AthleteID)
	}
	_, err := s.db.NewInsert().Model(a).Returning("*").Exec(ctx)
	if pgCode(err) == codeForeignKey {
		return apperr.NotFound("athlete", a.AthleteID)
	}
	if err != nil {
		return apperr.Persistence("insert activity", err)
	}
	return nil
}

func (s *Store) Activity(ctx context.Context, id string) (*models.Activity, error) {
	if !validID(id) {
		return nil, apperr.NotFound("activity", id)
	}
	a := &models.Activity{}
	if err := s.db.NewSelect().Model(a).Where("act.id = ?", id).Scan(ctx); err != nil {
		return nil, lookup(err, "activity", id)
	}
	return a, nil
}

func (s *Store) DeleteActivity(ctx context.Context, id string) error {
	if !validID(id) {
		return apperr.NotFound("activity", id)
	}
	res, err := s.db.NewDelete().Model((*models.Activity)(nil)).Where("id = ?", id).Exec(ctx)
	return affected(res, err, "delete activity", "activity", id)
}

// RecentActivities returns up to limit activities of an athlete, newest first.
func (s *Store) RecentActivities(ctx context.Context, athleteID string, limit int) ([]models.Activity, error) {
	activities := []models.Activity{}
	if !validID(athleteID) {
		return activities, nil
	}
	err := s.db.NewSelect().Model(&activities).
		Where("act.athlete_id = ?", athleteID).
		OrderExpr("act.date DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, apperr.Persistence("select activities", err)
	}
	return activities, nil
}
