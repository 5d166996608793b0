package training

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

var errInjected = errors.New("injected insert failure")

type memState struct {
	athletes   map[string]models.Athlete
	profiles   map[string]models.Profile
	races      map[string]models.Race
	plans      map[string]models.Plan
	workouts   map[string]models.Workout
	activities []models.Activity
}

func (s *memState) clone() *memState {
	c := &memState{
		athletes:   make(map[string]models.Athlete, len(s.athletes)),
		profiles:   make(map[string]models.Profile, len(s.profiles)),
		races:      make(map[string]models.Race, len(s.races)),
		plans:      make(map[string]models.Plan, len(s.plans)),
		workouts:   make(map[string]models.Workout, len(s.workouts)),
		activities: append([]models.Activity(nil), s.activities...),
	}
	for k, v := range s.athletes {
		c.athletes[k] = v
	}
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for k, v := range s.races {
		c.races[k] = v
	}
	for k, v := range s.plans {
		c.plans[k] = v
	}
	for k, v := range s.workouts {
		c.workouts[k] = v
	}
	return c
}

// memStore is an in-memory Store. Transactions run on a copy of the state
// that replaces the original only on success. failWorkoutInsert makes the
// n-th workout insert of a transaction fail.
type memStore struct {
	mu    *sync.Mutex
	state *memState
	inTx  bool

	failWorkoutInsert int
	workoutInserts    int
}

func newMemStore() *memStore {
	return &memStore{
		mu: &sync.Mutex{},
		state: &memState{
			athletes: map[string]models.Athlete{},
			profiles: map[string]models.Profile{},
			races:    map[string]models.Race{},
			plans:    map[string]models.Plan{},
			workouts: map[string]models.Workout{},
		},
	}
}

func (m *memStore) lock() func() {
	if m.inTx {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *memStore) addAthlete(a models.Athlete, p *models.Profile) {
	m.state.athletes[a.ID] = a
	if p != nil {
		p.AthleteID = a.ID
		m.state.profiles[a.ID] = *p
	}
}

func (m *memStore) addRace(r models.Race) { m.state.races[r.ID] = r }

func (m *memStore) addActivity(a models.Activity) { m.state.activities = append(m.state.activities, a) }

func (m *memStore) counts() (plans, workouts int) {
	defer m.lock()()
	return len(m.state.plans), len(m.state.workouts)
}

func (m *memStore) AthleteWithProfile(_ context.Context, id string) (*models.Athlete, error) {
	defer m.lock()()
	a, ok := m.state.athletes[id]
	if !ok {
		return nil, apperr.NotFound("athlete", id)
	}
	if p, ok := m.state.profiles[id]; ok {
		a.Profile = &p
	}
	return &a, nil
}

func (m *memStore) Race(_ context.Context, id string) (*models.Race, error) {
	defer m.lock()()
	r, ok := m.state.races[id]
	if !ok {
		return nil, apperr.NotFound("race", id)
	}
	return &r, nil
}

func (m *memStore) InsertPlan(_ context.Context, p *models.Plan) error {
	defer m.lock()()
	if _, dup := m.state.plans[p.ID]; dup {
		return apperr.Persistence("insert plan", fmt.Errorf("duplicate plan id %s", p.ID))
	}
	row := *p
	row.Race, row.Workouts = nil, nil
	m.state.plans[p.ID] = row
	return nil
}

func (m *memStore) InsertWorkout(_ context.Context, w *models.Workout) error {
	defer m.lock()()
	m.workoutInserts++
	if m.failWorkoutInsert > 0 && m.workoutInserts == m.failWorkoutInsert {
		return apperr.Persistence("insert workout", errInjected)
	}
	if _, ok := m.state.plans[w.PlanID]; !ok {
		return apperr.Persistence("insert workout", fmt.Errorf("plan %s does not exist", w.PlanID))
	}
	for _, other := range m.state.workouts {
		if other.PlanID == w.PlanID && other.WeekNumber == w.WeekNumber && other.DayOfWeek == w.DayOfWeek {
			return apperr.Persistence("insert workout", errors.New("duplicate key value violates unique constraint \"workouts_no_dupes\""))
		}
	}
	row := *w
	row.Plan = nil
	m.state.workouts[w.ID] = row
	return nil
}

func (m *memStore) planLocked(id string) (*models.Plan, error) {
	p, ok := m.state.plans[id]
	if !ok {
		return nil, apperr.NotFound("plan", id)
	}
	if r, ok := m.state.races[p.RaceID]; ok {
		p.Race = &r
	}
	p.Workouts = m.workoutsLocked(func(w models.Workout) bool { return w.PlanID == id })
	return &p, nil
}

func (m *memStore) workoutsLocked(keep func(models.Workout) bool) []*models.Workout {
	var out []*models.Workout
	for _, w := range m.state.workouts {
		if keep(w) {
			w := w
			out = append(out, &w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WeekNumber != out[j].WeekNumber {
			return out[i].WeekNumber < out[j].WeekNumber
		}
		return out[i].Sequence < out[j].Sequence
	})
	return out
}

func (m *memStore) Plan(_ context.Context, id string) (*models.Plan, error) {
	defer m.lock()()
	return m.planLocked(id)
}

func (m *memStore) PlansByAthlete(_ context.Context, athleteID string) ([]*models.Plan, error) {
	defer m.lock()()
	out := []*models.Plan{}
	for id, p := range m.state.plans {
		if p.AthleteID != athleteID {
			continue
		}
		full, err := m.planLocked(id)
		if err != nil {
			return nil, err
		}
		out = append(out, full)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (m *memStore) UpdatePlanPhase(_ context.Context, id string, phase models.Phase) error {
	defer m.lock()()
	p, ok := m.state.plans[id]
	if !ok {
		return apperr.NotFound("plan", id)
	}
	p.Phase = phase
	m.state.plans[id] = p
	return nil
}

func (m *memStore) DeletePlan(_ context.Context, id string) error {
	defer m.lock()()
	if _, ok := m.state.plans[id]; !ok {
		return apperr.NotFound("plan", id)
	}
	delete(m.state.plans, id)
	for wid, w := range m.state.workouts {
		if w.PlanID == id {
			delete(m.state.workouts, wid)
		}
	}
	return nil
}

func (m *memStore) WeekWorkouts(_ context.Context, planID string, week int) ([]*models.Workout, error) {
	defer m.lock()()
	return m.workoutsLocked(func(w models.Workout) bool { return w.PlanID == planID && w.WeekNumber == week }), nil
}

func (m *memStore) Workout(_ context.Context, id string) (*models.Workout, error) {
	defer m.lock()()
	w, ok := m.state.workouts[id]
	if !ok {
		return nil, apperr.NotFound("workout", id)
	}
	if p, ok := m.state.plans[w.PlanID]; ok {
		w.Plan = &p
	}
	return &w, nil
}

func (m *memStore) UpdateWorkoutCompletion(_ context.Context, w *models.Workout) error {
	defer m.lock()()
	row, ok := m.state.workouts[w.ID]
	if !ok {
		return apperr.NotFound("workout", w.ID)
	}
	row.Completed = w.Completed
	row.CompletedAt = w.CompletedAt
	row.ActualDistance = w.ActualDistance
	row.ActualPace = w.ActualPace
	row.ActualDuration = w.ActualDuration
	row.Notes = w.Notes
	m.state.workouts[w.ID] = row
	return nil
}

func (m *memStore) CompletedWorkouts(_ context.Context, athleteID string, limit int) ([]models.Workout, error) {
	defer m.lock()()
	var out []models.Workout
	for _, w := range m.workoutsLocked(func(w models.Workout) bool {
		return w.Completed && m.state.plans[w.PlanID].AthleteID == athleteID
	}) {
		out = append(out, *w)
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *memStore) RecentActivities(_ context.Context, athleteID string, limit int) ([]models.Activity, error) {
	defer m.lock()()
	var out []models.Activity
	for _, a := range m.state.activities {
		if a.AthleteID == athleteID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memStore{
		mu:                m.mu,
		state:             m.state.clone(),
		inTx:              true,
		failWorkoutInsert: m.failWorkoutInsert,
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	m.state = tx.state
	return nil
}
