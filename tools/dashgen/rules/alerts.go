package rules

// AlertRules returns a PrometheusRule CR containing alert rules for the
// bot's poll loop.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "sorare-bot-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "sorare-bot-alerts",
					Rules: []Rule{
						{
							Alert: "SorareBotDown",
							Expr:  `absent(up{job="sorare-bot"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Sorare bot is down",
								"description": "The sorare-bot job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "SorareBotNotAuthenticated",
							Expr:  `sorare_bot_authenticated == 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Sorare bot has not signed in",
								"description": "The bot has been running without a session for 5 minutes. Check the credentials.",
							},
						},
						{
							Alert: "SorareBotStalled",
							Expr:  `time() - sorare_bot_last_cycle_timestamp_seconds > 900`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Sorare bot poll loop stalled",
								"description": "No poll cycle has completed in the last 15 minutes.",
							},
						},
						{
							Alert: "SorareBotFetchFailing",
							Expr:  `sorare_bot:fetch_failures:rate5m > 0 and sorare_bot:listings_fetched:rate5m == 0`,
							For:   "30m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Every listing fetch is failing",
								"description": "Listing fetches have failed for 30 minutes. The session token may have expired; restart the bot.",
							},
						},
						{
							Alert: "SorareBotCycleErrors",
							Expr:  `sorare_bot:cycle_errors:rate5m > 0`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Unexpected poll cycle errors",
								"description": "Poll cycles have been backing off after unexpected errors for 15 minutes.",
							},
						},
						{
							Alert: "SorareBotNotificationFailures",
							Expr:  `increase(sorare_bot_notification_failures_total[15m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Discord notification delivery failures detected",
								"description": "One or more Discord webhook messages failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
