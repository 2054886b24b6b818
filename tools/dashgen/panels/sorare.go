package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// GraphQLLatency returns a timeseries panel showing the p95 Sorare GraphQL
// latency per operation.
func GraphQLLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("GraphQL Latency (p95)").
		Description("95th percentile Sorare GraphQL request duration by operation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sorare_bot:graphql_duration:p95_15m`, "{{operation}}", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(2, 10)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ListingsFetched returns a timeseries panel comparing listings fetched with
// failed fetches.
func ListingsFetched() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Listings vs Fetch Failures / h").
		Description("Listings returned by the API and failed listing fetches, per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sorare_bot:listings_fetched:rate5m * 3600`, "listings/h", "A")).
		WithTarget(PromQuery(`sorare_bot:fetch_failures:rate5m * 3600`, "failures/h", "B")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
