package main

import "errors"

// KnownMetrics is the set of metric names exported by sorare-bot plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Poll loop metrics.
	"sorare_bot_cycles_total":                 true,
	"sorare_bot_cycle_errors_total":           true,
	"sorare_bot_cycle_duration_seconds":       true,
	"sorare_bot_last_cycle_timestamp_seconds": true,
	"sorare_bot_authenticated":                true,

	// Sorare API metrics.
	"sorare_bot_graphql_request_duration_seconds": true,
	"sorare_bot_listings_fetched_total":           true,
	"sorare_bot_fetch_failures_total":             true,

	// Notification metrics.
	"sorare_bot_notifications_sent_total":      true,
	"sorare_bot_notification_failures_total":   true,
	"sorare_bot_notification_duration_seconds": true,

	// Status server metrics.
	"sorare_bot_status_requests_total": true,
	"sorare_bot_healthz_up":            true,
	"sorare_bot_readyz_up":             true,

	// Recording rules.
	"sorare_bot:cycles:rate5m":                true,
	"sorare_bot:cycle_errors:rate5m":          true,
	"sorare_bot:listings_fetched:rate5m":      true,
	"sorare_bot:fetch_failures:rate5m":        true,
	"sorare_bot:notification_failures:rate5m": true,
	"sorare_bot:graphql_duration:p95_15m":     true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
