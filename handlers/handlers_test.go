package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/coach"
	mw "github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/middleware"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

var testKey = []byte("handler-test-secret")

type testServer struct {
	e     *echo.Echo
	tr    *fakeTrainer
	dir   *fakeDir
	token string
}

func newServer(t *testing.T, debug bool) *testServer {
	t.Helper()
	tr := &fakeTrainer{plan: &models.Plan{ID: "plan-1", TotalWeeks: 12, Phase: models.PhaseBase}}
	dir := newFakeDir()

	e := echo.New()
	Routes(e, New(tr, dir, nil, debug, "test"), mw.JWT(testKey, ""))

	token, err := mw.Sign(testKey, "", mw.Identity{Subject: "fb-1", Email: "Runner@GoFast.app", Name: "Sam Runner"}, time.Hour)
	require.NoError(t, err)
	return &testServer{e: e, tr: tr, dir: dir, token: token}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if s.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthIsPublic(t *testing.T) {
	s := newServer(t, false)
	s.token = ""

	rec := s.do(http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "test", body["version"])
	assert.NotEmpty(t, body["timestamp"])

	rec = s.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newServer(t, false)
	s.token = ""

	rec := s.do(http.MethodGet, "/api/training/plans?userId=u1", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing authorization header", decode(t, rec)["error"])
}

func TestUnknownRoute(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(http.MethodGet, "/api/nothing/here", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode(t, rec)["error"])

	rec = s.do(http.MethodGet, "/elsewhere", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode(t, rec)["error"])
}

func TestGeneratePlan(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(http.MethodPost, "/api/training/plans/generate",
		`{"userId":"u1","raceId":"r1","preferences":{"trainingDays":4,"preferredTime":"morning"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Training plan generated successfully!", body["message"])
	assert.Equal(t, "plan-1", body["plan"].(map[string]interface{})["id"])

	assert.Equal(t, "u1", s.tr.gotGenerate.UserID)
	assert.Equal(t, "r1", s.tr.gotGenerate.RaceID)
	assert.Equal(t, 4, s.tr.gotGenerate.Preferences.TrainingDays)
	assert.Equal(t, "morning", s.tr.gotGenerate.Preferences.PreferredTime)
}

func TestGeneratePlanRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing user", `{"raceId":"r1"}`, "userId is required"},
		{"missing race", `{"userId":"u1"}`, "raceId is required"},
		{"too many days", `{"userId":"u1","raceId":"r1","preferences":{"trainingDays":9}}`, "trainingDays"},
		{"not json", `{"userId":`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newServer(t, false)
			rec := s.do(http.MethodPost, "/api/training/plans/generate", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode(t, rec)["error"], tc.want)
		})
	}
}

func TestErrorMapping(t *testing.T) {
	cause := errors.New("connection reset")
	cases := []struct {
		name     string
		err      error
		status   int
		errorMsg string
	}{
		{"not found", apperr.NotFound("athlete", "u1"), http.StatusNotFound, `athlete "u1" not found`},
		{"validation", apperr.Validation("userId is required"), http.StatusBadRequest, "userId is required"},
		{"unavailable", apperr.Unavailable("plan", cause), http.StatusServiceUnavailable, "plan generation is unavailable"},
		{"malformed", apperr.Malformed("plan", cause), http.StatusInternalServerError, "plan generation failed"},
		{"persistence", apperr.Persistence("materialize plan", cause), http.StatusInternalServerError, "failed to save changes"},
		{"wrapped not found", fmt.Errorf("load plan: %w", apperr.NotFound("plan", "p1")), http.StatusNotFound, `plan "p1" not found`},
		{"wrapped validation", fmt.Errorf("resolve athlete: %w", apperr.Validation("athlete u1 has no profile")), http.StatusBadRequest, "athlete u1 has no profile"},
		{"malformed schema", apperr.Malformed("plan", fmt.Errorf("schema: %w", validator.ValidationErrors{})), http.StatusInternalServerError, "plan generation failed"},
		{"conflict", apperr.Conflict("race", "r1", "race is referenced by a training plan"), http.StatusConflict, "race is referenced by a training plan"},
		{"unknown", cause, http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newServer(t, false)
			s.tr.err = tc.err

			rec := s.do(http.MethodPost, "/api/training/plans/generate", `{"userId":"u1","raceId":"r1"}`)
			require.Equal(t, tc.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tc.errorMsg, body["error"])
			assert.NotContains(t, body, "details")
		})
	}
}

func TestSchemaInvalidPlanIsGenerationFailure(t *testing.T) {
	gen := coach.New(coach.BackendFunc(func(context.Context, coach.Request) (string, error) {
		return `{"planOverview":{"totalWeeks":0},"weeklyPlans":[]}`, nil
	}), coach.Options{})
	race := models.Race{Distance: "half-marathon", GoalTime: "2:00:00", Date: time.Now().AddDate(0, 3, 0)}
	_, err := gen.GeneratePlan(context.Background(), models.Profile{Experience: "beginner"}, race, models.Preferences{TrainingDays: 4})
	require.ErrorIs(t, err, apperr.ErrGenerationMalformed)

	s := newServer(t, false)
	s.tr.err = err
	rec := s.do(http.MethodPost, "/api/training/plans/generate", `{"userId":"u1","raceId":"r1"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "plan generation failed", decode(t, rec)["error"])
	assert.NotContains(t, rec.Body.String(), "TotalWeeks")
	assert.NotContains(t, rec.Body.String(), "WeeklyPlans")
}

func TestNotFoundEchoesKey(t *testing.T) {
	s := newServer(t, false)
	s.tr.err = apperr.NotFound("race", "r-missing")

	rec := s.do(http.MethodGet, "/api/training/plans/p1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "race", body["resource"])
	assert.Equal(t, "r-missing", body["key"])
}

func TestDebugAddsDetails(t *testing.T) {
	s := newServer(t, true)
	s.tr.err = apperr.Persistence("materialize plan", errors.New("duplicate key"))

	rec := s.do(http.MethodPost, "/api/training/plans/generate", `{"userId":"u1","raceId":"r1"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "duplicate key", decode(t, rec)["details"])
}

func TestPlanRoutes(t *testing.T) {
	s := newServer(t, false)
	s.tr.workouts = []*models.Workout{{ID: "w1", WeekNumber: 2}}

	rec := s.do(http.MethodGet, "/api/training/plans?userId=u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["plans"], 1)
	assert.Equal(t, "u1", s.tr.gotUserID)

	rec = s.do(http.MethodGet, "/api/training/plans/plan-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "plan-1", s.tr.gotID)

	rec = s.do(http.MethodGet, "/api/training/plans/plan-1/workouts/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, s.tr.gotWeek)
	assert.Len(t, decode(t, rec)["workouts"], 1)

	rec = s.do(http.MethodGet, "/api/training/plans/plan-1/workouts/two", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/api/training/plans/plan-1/phase", `{"phase":"build"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "build", s.tr.gotPhase)

	rec = s.do(http.MethodPut, "/api/training/plans/plan-1/phase", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/training/plans/plan-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "plan-1", decode(t, rec)["id"])
}

func TestCompleteWorkout(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(http.MethodPut, "/api/training/workouts/w1/complete",
		`{"actualDistance":5.2,"actualPace":"8:55/mi","notes":"felt strong"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Workout completed! Great job!", body["message"])
	assert.Equal(t, "w1", s.tr.gotID)
	require.NotNil(t, s.tr.gotActuals.Distance)
	assert.Equal(t, 5.2, *s.tr.gotActuals.Distance)
	assert.Equal(t, "felt strong", *s.tr.gotActuals.Notes)
	assert.Nil(t, s.tr.gotActuals.Duration)

	rec = s.do(http.MethodPut, "/api/training/workouts/w1/complete", `{"actualDistance":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeAndStrategy(t *testing.T) {
	s := newServer(t, false)
	s.tr.analysis = &coach.WorkoutAnalysis{}
	s.tr.analysis.Analysis.Performance = "good"
	s.tr.strategy = &coach.RaceStrategy{}
	s.tr.strategy.Strategy.Pacing.TargetPace = "9:09/mi"

	rec := s.do(http.MethodPost, "/api/training/workouts/analyze", `{"workoutId":"w1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	analysis := decode(t, rec)["analysis"].(map[string]interface{})
	assert.Equal(t, "good", analysis["analysis"].(map[string]interface{})["performance"])

	rec = s.do(http.MethodPost, "/api/training/workouts/analyze", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/training/races/r1/strategy", `{"userId":"u1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "r1", s.tr.gotID)
	assert.Equal(t, "u1", s.tr.gotUserID)
	assert.Contains(t, rec.Body.String(), "9:09/mi")
}

func TestFindOrCreateAthlete(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(http.MethodPost, "/api/athlete/athleteuser", `{}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	athlete := decode(t, rec)["athlete"].(map[string]interface{})
	assert.Equal(t, "fb-1", athlete["firebaseId"])
	assert.Equal(t, "runner@gofast.app", athlete["email"])
	assert.Equal(t, "Sam", athlete["firstName"])
	assert.Equal(t, "Runner", athlete["lastName"])

	rec = s.do(http.MethodPost, "/api/athlete/athleteuser", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["created"])
}

func TestAthleteProfileAndDelete(t *testing.T) {
	s := newServer(t, false)
	s.dir.athletes["a1"] = &models.Athlete{ID: "a1", FirebaseID: "fb-a1", Email: "a1@gofast.app", FirstName: "Ann"}

	rec := s.do(http.MethodPut, "/api/athlete/a1/profile",
		`{"experience":"intermediate","currentPace":"9:00/mi","weeklyMileage":20}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "intermediate", s.dir.athletes["a1"].Profile.Experience)

	rec = s.do(http.MethodPut, "/api/athlete/a1/profile", `{"experience":"intermediate"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/api/athlete/missing/profile", `{"experience":"new","currentPace":"10:00/mi"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/athlete/a1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/api/athlete/email/nobody@gofast.app", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "nobody@gofast.app", decode(t, rec)["key"])

	rec = s.do(http.MethodDelete, "/api/athlete/firebase/fb-a1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	deleted := decode(t, rec)["deleted"].(map[string]interface{})
	assert.Equal(t, "a1", deleted["id"])
	assert.Equal(t, "Ann", deleted["name"])
}

func TestBulkDeleteAthletes(t *testing.T) {
	s := newServer(t, false)
	s.dir.athletes["a1"] = &models.Athlete{ID: "a1"}
	s.dir.athletes["a2"] = &models.Athlete{ID: "a2"}

	for _, body := range []string{"", `{}`, `{"ids":[]}`, `{"ids":["  "]}`} {
		rec := s.do(http.MethodDelete, "/api/athlete/bulk", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec := s.do(http.MethodDelete, "/api/athlete/bulk", `{"ids":["x","y"]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/athlete/bulk", `{"ids":["a1","a2","x"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["deletedCount"])
	assert.Empty(t, s.dir.athletes)
}

func TestRaces(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(http.MethodPost, "/api/races", `{"name":"City Half","distance":"half-marathon","date":"Oct 25"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/races", `{"name":"City Half","distance":"half-marathon","date":"2026-10-25","goalTime":"2:00:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, s.dir.races, 1)
	assert.Equal(t, time.Date(2026, time.October, 25, 0, 0, 0, 0, time.UTC), s.dir.races[0].Date)

	rec = s.do(http.MethodGet, "/api/races/race-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/races", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["races"], 1)

	rec = s.do(http.MethodDelete, "/api/races/race-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/api/races/race-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteReferencedRace(t *testing.T) {
	s := newServer(t, false)
	s.dir.err = apperr.Conflict("race", "race-1", "race is referenced by a training plan")

	rec := s.do(http.MethodDelete, "/api/races/race-1", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "race is referenced by a training plan", body["error"])
	assert.Equal(t, "race", body["resource"])
	assert.Equal(t, "race-1", body["key"])
}

func TestActivities(t *testing.T) {
	s := newServer(t, false)
	s.dir.athletes["a1"] = &models.Athlete{ID: "a1"}

	rec := s.do(http.MethodPost, "/api/activities", `{"userId":"ghost","date":"2026-07-01","type":"run","distance":4}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/activities", `{"userId":"a1","date":"2026-07-01T07:00:00Z","type":"Run","distance":4,"avgHeartRate":150}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	activity := decode(t, rec)["activity"].(map[string]interface{})
	assert.Equal(t, "run", activity["type"])
	assert.Equal(t, "manual", activity["source"])

	rec = s.do(http.MethodGet, "/api/activities", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/activities?userId=a1&limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/activities?userId=a1&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["activities"], 1)

	rec = s.do(http.MethodGet, "/api/activities/act-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/api/activities/act-2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
