package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	mw "github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/middleware"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

type athleteJSON struct {
	Email     string  `json:"email" validate:"omitempty,email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	PhotoURL  *string `json:"photoURL" validate:"omitempty,url"`
}

type profileJSON struct {
	Experience    string   `json:"experience" validate:"required"`
	CurrentPace   string   `json:"currentPace" validate:"required"`
	TargetPace    string   `json:"targetPace"`
	WeeklyMileage float64  `json:"weeklyMileage" validate:"gte=0"`
	Age           int      `json:"age" validate:"gte=0"`
	Gender        string   `json:"gender"`
	InjuryHistory string   `json:"injuryHistory"`
	PreferredDays []string `json:"preferredDays" validate:"max=7"`
	PreferredTime string   `json:"preferredTime"`
}

type bulkDeleteJSON struct {
	IDs []string `json:"ids"`
}

type deletedAthlete struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirebaseID string `json:"firebaseId"`
	Name       string `json:"name"`
}

// FindOrCreateAthlete links the verified caller to an athlete record,
// creating one on first sign in.
func (h *Handler) FindOrCreateAthlete(c echo.Context) error {
	id, ok := mw.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req athleteJSON
	if err := bind(c, &req); err != nil {
		return err
	}

	email := id.Email
	if email == "" {
		email = strings.TrimSpace(req.Email)
	}
	if email == "" {
		return apperr.Validation("email is required")
	}

	first, last := req.FirstName, req.LastName
	if first == "" && last == "" && id.Name != "" {
		first, last, _ = strings.Cut(id.Name, " ")
	}
	photo := req.PhotoURL
	if photo == nil && id.Picture != "" {
		photo = &id.Picture
	}

	athlete, created, err := h.dir.FindOrCreateAthlete(c.Request().Context(), &models.Athlete{
		FirebaseID: id.Subject,
		Email:      strings.ToLower(email),
		FirstName:  strings.TrimSpace(first),
		LastName:   strings.TrimSpace(last),
		PhotoURL:   photo,
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, map[string]interface{}{"athlete": athlete, "created": created})
}

func (h *Handler) GetAthlete(c echo.Context) error {
	athlete, err := h.dir.AthleteWithProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"athlete": athlete})
}

// UpsertProfile creates or replaces the training profile of an athlete.
func (h *Handler) UpsertProfile(c echo.Context) error {
	var req profileJSON
	if err := bind(c, &req); err != nil {
		return err
	}

	p := &models.Profile{
		AthleteID:     c.Param("id"),
		Experience:    req.Experience,
		CurrentPace:   req.CurrentPace,
		TargetPace:    req.TargetPace,
		WeeklyMileage: req.WeeklyMileage,
		Age:           req.Age,
		Gender:        req.Gender,
		InjuryHistory: req.InjuryHistory,
		PreferredDays: req.PreferredDays,
		PreferredTime: req.PreferredTime,
	}
	if p.PreferredDays == nil {
		p.PreferredDays = []string{}
	}
	if err := h.dir.UpsertProfile(c.Request().Context(), p); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"profile": p})
}

func (h *Handler) DeleteAthlete(c echo.Context) error {
	return h.deleteAthleteBy(c, "id", c.Param("id"))
}

func (h *Handler) DeleteAthleteByEmail(c echo.Context) error {
	return h.deleteAthleteBy(c, "email", strings.ToLower(c.Param("email")))
}

func (h *Handler) DeleteAthleteByFirebaseID(c echo.Context) error {
	return h.deleteAthleteBy(c, "firebase_id", c.Param("firebaseId"))
}

func (h *Handler) deleteAthleteBy(c echo.Context, column, value string) error {
	a, err := h.dir.DeleteAthleteBy(c.Request().Context(), column, value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Athlete deleted",
		"deleted": deletedAthlete{ID: a.ID, Email: a.Email, FirebaseID: a.FirebaseID, Name: a.FullName()},
	})
}

// DeleteAthletes removes every athlete listed in the ids body field.
func (h *Handler) DeleteAthletes(c echo.Context) error {
	var req bulkDeleteJSON
	if err := c.Bind(&req); err != nil {
		return err
	}
	ids := make([]string, 0, len(req.IDs))
	for _, id := range req.IDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return apperr.Validation("ids must be a non-empty array")
	}

	n, err := h.dir.DeleteAthletes(c.Request().Context(), ids)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("athlete", strings.Join(ids, ","))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "deletedCount": n})
}
