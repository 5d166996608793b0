package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

type raceJSON struct {
	Name          string  `json:"name" validate:"required"`
	Distance      string  `json:"distance" validate:"required"`
	Date          string  `json:"date" validate:"required"`
	GoalTime      string  `json:"goalTime"`
	CourseType    string  `json:"courseType"`
	ElevationGain float64 `json:"elevationGain" validate:"gte=0"`
	WeatherNotes  string  `json:"weatherNotes"`
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(field, s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apperr.Validation("%s must be YYYY-MM-DD or RFC 3339, got %q", field, s)
}

func (h *Handler) CreateRace(c echo.Context) error {
	var req raceJSON
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}

	r := &models.Race{
		Name:          req.Name,
		Distance:      req.Distance,
		Date:          date,
		GoalTime:      req.GoalTime,
		CourseType:    req.CourseType,
		ElevationGain: req.ElevationGain,
		WeatherNotes:  req.WeatherNotes,
	}
	if err := h.dir.CreateRace(c.Request().Context(), r); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"race": r})
}

func (h *Handler) Races(c echo.Context) error {
	races, err := h.dir.Races(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"races": races})
}

func (h *Handler) Race(c echo.Context) error {
	r, err := h.dir.Race(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"race": r})
}

func (h *Handler) DeleteRace(c echo.Context) error {
	id := c.Param("id")
	if err := h.dir.DeleteRace(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "id": id})
}
