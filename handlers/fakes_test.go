package handlers

import (
	"context"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/coach"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/training"
)

// fakeTrainer returns err from every call when set, otherwise canned values.
type fakeTrainer struct {
	err error

	plan     *models.Plan
	workouts []*models.Workout
	analysis *coach.WorkoutAnalysis
	strategy *coach.RaceStrategy

	gotGenerate training.GenerateRequest
	gotActuals  training.Actuals
	gotUserID   string
	gotID       string
	gotWeek     int
	gotPhase    string
}

func (f *fakeTrainer) GeneratePlan(_ context.Context, req training.GenerateRequest) (*models.Plan, error) {
	f.gotGenerate = req
	return f.plan, f.err
}

func (f *fakeTrainer) ListPlans(_ context.Context, userID string) ([]*models.Plan, error) {
	f.gotUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Plan{f.plan}, nil
}

func (f *fakeTrainer) GetPlan(_ context.Context, id string) (*models.Plan, error) {
	f.gotID = id
	return f.plan, f.err
}

func (f *fakeTrainer) WeekWorkouts(_ context.Context, planID string, week int) ([]*models.Workout, error) {
	f.gotID, f.gotWeek = planID, week
	return f.workouts, f.err
}

func (f *fakeTrainer) SetPhase(_ context.Context, planID, phase string) (*models.Plan, error) {
	f.gotID, f.gotPhase = planID, phase
	return f.plan, f.err
}

func (f *fakeTrainer) DeletePlan(_ context.Context, id string) error {
	f.gotID = id
	return f.err
}

func (f *fakeTrainer) CompleteWorkout(_ context.Context, id string, a training.Actuals) (*models.Workout, error) {
	f.gotID, f.gotActuals = id, a
	if f.err != nil {
		return nil, f.err
	}
	return &models.Workout{ID: id, Completed: true, ActualDistance: a.Distance}, nil
}

func (f *fakeTrainer) AnalyzeWorkout(_ context.Context, id string) (*coach.WorkoutAnalysis, error) {
	f.gotID = id
	return f.analysis, f.err
}

func (f *fakeTrainer) RaceStrategy(_ context.Context, raceID, userID string) (*coach.RaceStrategy, error) {
	f.gotID, f.gotUserID = raceID, userID
	return f.strategy, f.err
}

// fakeDir keeps athletes keyed by id and races and activities in slices.
type fakeDir struct {
	athletes   map[string]*models.Athlete
	races      []models.Race
	activities []models.Activity
	err        error
}

func newFakeDir() *fakeDir {
	return &fakeDir{athletes: map[string]*models.Athlete{}}
}

func (d *fakeDir) FindOrCreateAthlete(_ context.Context, a *models.Athlete) (*models.Athlete, bool, error) {
	if d.err != nil {
		return nil, false, d.err
	}
	for _, existing := range d.athletes {
		if existing.FirebaseID == a.FirebaseID {
			return existing, false, nil
		}
	}
	a.ID = "ath-" + a.FirebaseID
	d.athletes[a.ID] = a
	return a, true, nil
}

func (d *fakeDir) AthleteWithProfile(_ context.Context, id string) (*models.Athlete, error) {
	if a, ok := d.athletes[id]; ok {
		return a, nil
	}
	return nil, apperr.NotFound("athlete", id)
}

func (d *fakeDir) UpsertProfile(_ context.Context, p *models.Profile) error {
	a, ok := d.athletes[p.AthleteID]
	if !ok {
		return apperr.NotFound("athlete", p.AthleteID)
	}
	a.Profile = p
	return nil
}

func (d *fakeDir) DeleteAthleteBy(_ context.Context, column, value string) (*models.Athlete, error) {
	for id, a := range d.athletes {
		if (column == "id" && a.ID == value) || (column == "email" && a.Email == value) || (column == "firebase_id" && a.FirebaseID == value) {
			delete(d.athletes, id)
			return a, nil
		}
	}
	return nil, apperr.NotFound("athlete", value)
}

func (d *fakeDir) DeleteAthletes(_ context.Context, ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := d.athletes[id]; ok {
			delete(d.athletes, id)
			n++
		}
	}
	return n, nil
}

func (d *fakeDir) CreateRace(_ context.Context, r *models.Race) error {
	if d.err != nil {
		return d.err
	}
	r.ID = "race-1"
	d.races = append(d.races, *r)
	return nil
}

func (d *fakeDir) Races(context.Context) ([]models.Race, error) { return d.races, d.err }

func (d *fakeDir) Race(_ context.Context, id string) (*models.Race, error) {
	for _, r := range d.races {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, apperr.NotFound("race", id)
}

func (d *fakeDir) DeleteRace(_ context.Context, id string) error {
	if d.err != nil {
		return d.err
	}
	for i, r := range d.races {
		if r.ID == id {
			d.races = append(d.races[:i], d.races[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("race", id)
}

func (d *fakeDir) CreateActivity(_ context.Context, a *models.Activity) error {
	a.ID = "act-1"
	if a.Source == "" {
		a.Source = "manual"
	}
	d.activities = append(d.activities, *a)
	return nil
}

func (d *fakeDir) RecentActivities(_ context.Context, athleteID string, limit int) ([]models.Activity, error) {
	out := []models.Activity{}
	for _, a := range d.activities {
		if a.AthleteID == athleteID && len(out) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}

func (d *fakeDir) Activity(_ context.Context, id string) (*models.Activity, error) {
	for _, a := range d.activities {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, apperr.NotFound("activity", id)
}

func (d *fakeDir) DeleteActivity(_ context.Context, id string) error {
	if _, err := d.Activity(context.Background(), id); err != nil {
		return err
	}
	return nil
}
