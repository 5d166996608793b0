package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health reports liveness and the running version.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
	})
}
