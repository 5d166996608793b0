package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/training"
)

type generateJSON struct {
	UserID      string             `json:"userId" validate:"required"`
	RaceID      string             `json:"raceId" validate:"required"`
	Preferences models.Preferences `json:"preferences"`
}

type completeJSON struct {
	ActualDistance *float64 `json:"actualDistance" validate:"omitempty,gte=0"`
	ActualPace     *string  `json:"actualPace"`
	ActualDuration *string  `json:"actualDuration"`
	Notes          *string  `json:"notes"`
}

type analyzeJSON struct {
	WorkoutID string `json:"workoutId" validate:"required"`
}

type phaseJSON struct {
	Phase string `json:"phase" validate:"required"`
}

type strategyJSON struct {
	UserID string `json:"userId" validate:"required"`
}

// bind decodes the request body into v and validates it.
func bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return err
	}
	return c.Validate(v)
}

// GeneratePlan creates a plan and its workouts for a user and race.
func (h *Handler) GeneratePlan(c echo.Context) error {
	var req generateJSON
	if err := bind(c, &req); err != nil {
		return err
	}

	plan, err := h.trainer.GeneratePlan(c.Request().Context(), training.GenerateRequest{
		UserID:      req.UserID,
		RaceID:      req.RaceID,
		Preferences: req.Preferences,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"plan":    plan,
		"message": "Training plan generated successfully!",
	})
}

// ListPlans returns every plan of the user in the userId query param.
func (h *Handler) ListPlans(c echo.Context) error {
	plans, err := h.trainer.ListPlans(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"plans": plans})
}

func (h *Handler) GetPlan(c echo.Context) error {
	plan, err := h.trainer.GetPlan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"plan": plan})
}

func (h *Handler) DeletePlan(c echo.Context) error {
	id := c.Param("id")
	if err := h.trainer.DeletePlan(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "id": id})
}

// SetPhase moves a plan to the phase named in the body.
func (h *Handler) SetPhase(c echo.Context) error {
	var req phaseJSON
	if err := bind(c, &req); err != nil {
		return err
	}
	plan, err := h.trainer.SetPhase(c.Request().Context(), c.Param("id"), req.Phase)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"plan": plan})
}

// WeekWorkouts returns one week of a plan's workouts in schedule order.
func (h *Handler) WeekWorkouts(c echo.Context) error {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		return apperr.Validation("week must be a number, got %q", c.Param("week"))
	}
	workouts, err := h.trainer.WeekWorkouts(c.Request().Context(), c.Param("id"), week)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"workouts": workouts})
}

// CompleteWorkout records actuals against a workout.
func (h *Handler) CompleteWorkout(c echo.Context) error {
	var req completeJSON
	if err := bind(c, &req); err != nil {
		return err
	}

	w, err := h.trainer.CompleteWorkout(c.Request().Context(), c.Param("id"), training.Actuals{
		Distance: req.ActualDistance,
		Pace:     req.ActualPace,
		Duration: req.ActualDuration,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"workout": w,
		"message": "Workout completed! Great job!",
	})
}

// AnalyzeWorkout returns generated feedback for a workout.
func (h *Handler) AnalyzeWorkout(c echo.Context) error {
	var req analyzeJSON
	if err := bind(c, &req); err != nil {
		return err
	}
	analysis, err := h.trainer.AnalyzeWorkout(c.Request().Context(), req.WorkoutID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"analysis": analysis})
}

// RaceStrategy returns generated race day guidance for a user.
func (h *Handler) RaceStrategy(c echo.Context) error {
	var req strategyJSON
	if err := bind(c, &req); err != nil {
		return err
	}
	strategy, err := h.trainer.RaceStrategy(c.Request().Context(), c.Param("id"), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"strategy": strategy})
}
