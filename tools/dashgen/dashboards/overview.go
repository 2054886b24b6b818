// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/sorare-listing-bot/tools/dashgen/panels"
)

// BuildOverview constructs the sorare-bot overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Sorare Bot Overview").
		Uid("sorare-bot-overview").
		Tags([]string{"sorare-bot"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.AuthenticatedStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.LastCycleStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("Poll Loop").
		WithPanel(panels.CyclesRate()).
		WithPanel(panels.CycleErrors()).
		WithPanel(panels.CycleDuration()))

	b.WithRow(dashboard.NewRowBuilder("Sorare API").
		WithPanel(panels.GraphQLLatency()).
		WithPanel(panels.ListingsFetched()))

	b.WithRow(dashboard.NewRowBuilder("Discord").
		WithPanel(panels.NotificationsRate()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
