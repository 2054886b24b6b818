// Package middleware provides Echo middleware for the bot's status server.
package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/sorare-listing-bot/internal/metrics"
)

// probeGauges maps probe paths to the 0/1 gauge tracking their last result.
var probeGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that counts status server requests by
// method, route and status. Scrapes of /metrics are not counted. Probe
// paths also update their up/down gauge.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			if path == "/metrics" {
				return err
			}

			status := c.Response().Status
			if gauge, ok := probeGauges[path]; ok {
				if status >= 200 && status < 300 {
					gauge.Set(1)
				} else {
					gauge.Set(0)
				}
			}

			metrics.StatusRequestsTotal.
				WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).
				Inc()

			return err
		}
	}
}
