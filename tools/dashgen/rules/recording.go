package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "sorare-bot-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "sorare-bot-recording",
					Rules: []Rule{
						{
							Record: "sorare_bot:cycles:rate5m",
							Expr:   `sum(rate(sorare_bot_cycles_total[5m]))`,
						},
						{
							Record: "sorare_bot:cycle_errors:rate5m",
							Expr:   `sum(rate(sorare_bot_cycle_errors_total[5m]))`,
						},
						{
							Record: "sorare_bot:listings_fetched:rate5m",
							Expr:   `sum(rate(sorare_bot_listings_fetched_total[5m]))`,
						},
						{
							Record: "sorare_bot:fetch_failures:rate5m",
							Expr:   `sum(rate(sorare_bot_fetch_failures_total[5m]))`,
						},
						{
							Record: "sorare_bot:notification_failures:rate5m",
							Expr:   `sum(rate(sorare_bot_notification_failures_total[5m]))`,
						},
						{
							Record: "sorare_bot:graphql_duration:p95_15m",
							Expr:   `histogram_quantile(0.95, sum(rate(sorare_bot_graphql_request_duration_seconds_bucket[15m])) by (le, operation))`,
						},
					},
				},
			},
		},
	}
}
