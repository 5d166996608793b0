package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 200
)

type activityJSON struct {
	UserID       string  `json:"userId" validate:"required"`
	Date         string  `json:"date" validate:"required"`
	Type         string  `json:"type" validate:"required"`
	Distance     float64 `json:"distance" validate:"gte=0"`
	Duration     string  `json:"duration"`
	Pace         string  `json:"pace"`
	AvgHeartRate *int    `json:"avgHeartRate" validate:"omitempty,gt=0,lt=260"`
	Notes        string  `json:"notes"`
	Source       string  `json:"source"`
}

func (h *Handler) CreateActivity(c echo.Context) error {
	var req activityJSON
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}
	// Surface a missing athlete as 404 rather than a foreign key failure.
	if _, err := h.dir.AthleteWithProfile(c.Request().Context(), req.UserID); err != nil {
		return err
	}

	a := &models.Activity{
		AthleteID:    req.UserID,
		Date:         date,
		ActivityType: strings.ToLower(req.Type),
		Distance:     req.Distance,
		Duration:     req.Duration,
		Pace:         req.Pace,
		AvgHeartRate: req.AvgHeartRate,
		Notes:        req.Notes,
		Source:       req.Source,
	}
	if err := h.dir.CreateActivity(c.Request().Context(), a); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"activity": a})
}

// Activities lists a user's activities, newest first.
func (h *Handler) Activities(c echo.Context) error {
	userID := strings.TrimSpace(c.QueryParam("userId"))
	if userID == "" {
		return apperr.Validation("userId is required")
	}
	limit := defaultActivityLimit
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxActivityLimit {
			return apperr.Validation("limit must be between 1 and %d", maxActivityLimit)
		}
		limit = n
	}

	activities, err := h.dir.RecentActivities(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"activities": activities})
}

func (h *Handler) Activity(c echo.Context) error {
	a, err := h.dir.Activity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"activity": a})
}

func (h *Handler) DeleteActivity(c echo.Context) error {
	id := c.Param("id")
	if err := h.dir.DeleteActivity(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "id": id})
}
