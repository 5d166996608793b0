package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes installs the validator, the error handler and every route on e.
// auth guards everything except health and metrics.
func Routes(e *echo.Echo, h *Handler, auth echo.MiddlewareFunc) {
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = h.HTTPError

	// Public
	e.GET("/api/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Protected – require a valid bearer token
	api := e.Group("/api", auth)

	api.POST("/athlete/athleteuser", h.FindOrCreateAthlete)
	api.DELETE("/athlete/bulk", h.DeleteAthletes)
	api.DELETE("/athlete/email/:email", h.DeleteAthleteByEmail)
	api.DELETE("/athlete/firebase/:firebaseId", h.DeleteAthleteByFirebaseID)
	api.GET("/athlete/:id", h.GetAthlete)
	api.PUT("/athlete/:id/profile", h.UpsertProfile)
	api.DELETE("/athlete/:id", h.DeleteAthlete)

	api.POST("/races", h.CreateRace)
	api.GET("/races", h.Races)
	api.GET("/races/:id", h.Race)
	api.DELETE("/races/:id", h.DeleteRace)

	api.POST("/activities", h.CreateActivity)
	api.GET("/activities", h.Activities)
	api.GET("/activities/:id", h.Activity)
	api.DELETE("/activities/:id", h.DeleteActivity)

	tr := api.Group("/training")
	tr.POST("/plans/generate", h.GeneratePlan)
	tr.GET("/plans", h.ListPlans)
	tr.GET("/plans/:id", h.GetPlan)
	tr.DELETE("/plans/:id", h.DeletePlan)
	tr.PUT("/plans/:id/phase", h.SetPhase)
	tr.GET("/plans/:id/workouts/:week", h.WeekWorkouts)
	tr.PUT("/workouts/:id/complete", h.CompleteWorkout)
	tr.POST("/workouts/analyze", h.AnalyzeWorkout)
	tr.POST("/races/:id/strategy", h.RaceStrategy)

	api.RouteNotFound("/*", routeNotFound)
	e.RouteNotFound("/*", routeNotFound)
}

func routeNotFound(echo.Context) error {
	return echo.NewHTTPError(http.StatusNotFound, "Route not found")
}
