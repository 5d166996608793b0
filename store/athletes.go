package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

func (s *Store) AthleteWithProfile(ctx context.Context, id string) (*models.Athlete, error) {
	if !validID(id) {
		return nil, apperr.NotFound("athlete", id)
	}
	a := &models.Athlete{}
	err := s.db.NewSelect().Model(a).
		Relation("Profile").
		Where("ath.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, lookup(err, "athlete", id)
	}
	if a.Profile != nil && a.Profile.AthleteID == "" {
		a.Profile = nil
	}
	return a, nil
}

// FindOrCreateAthlete returns the athlete linked to a.FirebaseID, inserting a
// when none exists. created reports whether a row was inserted.
func (s *Store) FindOrCreateAthlete(ctx context.Context, a *models.Athlete) (*models.Athlete, bool, error) {
	existing := &models.Athlete{}
	err := s.db.NewSelect().Model(existing).
		Relation("Profile").
		Where("ath.firebase_id = ?", a.FirebaseID).
		Scan(ctx)
	switch {
	case err == nil:
		if existing.Profile != nil && existing.Profile.AthleteID == "" {
			existing.Profile = nil
		}
		return existing, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, false, apperr.Persistence("select athlete", err)
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if _, err := s.db.NewInsert().Model(a).Returning("*").Exec(ctx); err != nil {
		return nil, false, apperr.Persistence("insert athlete", err)
	}
	return a, true, nil
}

// UpsertProfile creates or replaces the profile of an existing athlete.
func (s *Store) UpsertProfile(ctx context.Context, p *models.Profile) error {
	if !validID(p.AthleteID) {
		return apperr.NotFound("athlete", p.AthleteID)
	}
	exists, err := s.db.NewSelect().Model((*models.Athlete)(nil)).
		Where("ath.id = ?", p.AthleteID).
		Exists(ctx)
	if err != nil {
		return apperr.Persistence("select athlete", err)
	}
	if !exists {
		return apperr.NotFound("athlete", p.AthleteID)
	}

	p.UpdatedAt = time.Now().UTC()
	_, err = s.db.NewInsert().Model(p).
		On("CONFLICT (athlete_id) DO UPDATE").
		Set("experience = EXCLUDED.experience").
		Set("current_pace = EXCLUDED.current_pace").
		Set("target_pace = EXCLUDED.target_pace").
		Set("weekly_mileage = EXCLUDED.weekly_mileage").
		Set("age = EXCLUDED.age").
		Set("gender = EXCLUDED.gender").
		Set("injury_history = EXCLUDED.injury_history").
		Set("preferred_days = EXCLUDED.preferred_days").
		Set("preferred_time = EXCLUDED.preferred_time").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return apperr.Persistence("upsert profile", err)
	}
	return nil
}

// DeleteAthleteBy deletes the athlete whose column equals value and returns
// the deleted row. column must be one of id, email or firebase_id.
func (s *Store) DeleteAthleteBy(ctx context.Context, column, value string) (*models.Athlete, error) {
	switch column {
	case "id", "email", "firebase_id":
	default:
		return nil, apperr.Validation("cannot delete athletes by %s", column)
	}
	if column == "id" && !validID(value) {
		return nil, apperr.NotFound("athlete", value)
	}

	a := &models.Athlete{}
	err := s.db.NewSelect().Model(a).
		Where("? = ?", bun.Ident("ath."+column), value).
		Scan(ctx)
	if err != nil {
		return nil, lookup(err, "athlete", value)
	}

	res, err := s.db.NewDelete().Model(a).WherePK().Exec(ctx)
	if err := affected(res, err, "delete athlete", "athlete", value); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAthletes deletes every athlete in ids and returns how many existed.
// Ids that are not UUIDs cannot exist and are skipped.
func (s *Store) DeleteAthletes(ctx context.Context, ids []string) (int, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return 0, nil
	}
	ids = valid

	res, err := s.db.NewDelete().Model((*models.Athlete)(nil)).
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx)
	if err != nil {
		return 0, apperr.Persistence("delete athletes", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperr.Persistence("delete athletes", err)
	}
	return int(n), nil
}
