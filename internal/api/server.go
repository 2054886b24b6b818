// Package api wires the status server: health probes, the last cycle's
// listings and Prometheus metrics.
package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/sorare-listing-bot/internal/api/handlers"
	"github.com/donaldgifford/sorare-listing-bot/internal/api/middleware"
)

// StatusSource is what the status server reads from the running bot.
type StatusSource interface {
	handlers.ReadinessChecker
	handlers.ListingsSource
}

// NewServer builds the echo instance serving /healthz, /readyz, /listings
// and /metrics.
func NewServer(src StatusSource, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(src)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)

	e.GET("/listings", handlers.NewListingsHandler(src).LastListings)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
