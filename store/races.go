package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

func (s *Store) Race(ctx context.Context, id string) (*models.Race, error) {
	if !validID(id) {
		return nil, apperr.NotFound("race", id)
	}
	r := &models.Race{}
	if err := s.db.NewSelect().Model(r).Where("rc.id = ?", id).Scan(ctx); err != nil {
		return nil, lookup(err, "race", id)
	}
	return r, nil
}

// Races lists races by date, soonest first.
func (s *Store) Races(ctx context.Context) ([]models.Race, error) {
	races := []models.Race{}
	if err := s.db.NewSelect().Model(&races).OrderExpr("rc.date ASC, rc.name ASC").Scan(ctx); err != nil {
		return nil, apperr.Persistence("select races", err)
	}
	return races, nil
}

func (s *Store) CreateRace(ctx context.Context, r *models.Race) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if _, err := s.db.NewInsert().Model(r).Returning("*").Exec(ctx); err != nil {
		return apperr.Persistence("insert race", err)
	}
	return nil
}

// DeleteRace refuses to remove a race that a training plan still targets.
func (s *Store) DeleteRace(ctx context.Context, id string) error {
	if !validID(id) {
		return apperr.NotFound("race", id)
	}
	res, err := s.db.NewDelete().Model((*models.Race)(nil)).Where("id = ?", id).Exec(ctx)
	if pgCode(err) == codeForeignKey {
		return apperr.Conflict("race", id, "race is referenced by a training plan")
	}
	return affected(res, err, "delete race", "race", id)
}
