// Package handlers implements the HTTP handlers of the bot's status server.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ReadinessChecker reports whether the bot finished authenticating.
type ReadinessChecker interface {
	Ready() bool
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	checker ReadinessChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(rc ReadinessChecker) *HealthHandler {
	return &HealthHandler{checker: rc}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 once the bot holds a session, 503 before that and
// after a critical startup failure.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if !h.checker.Ready() {
		return c.JSON(
			http.StatusServiceUnavailable,
			StatusResponse{Status: "unavailable"},
		)
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
