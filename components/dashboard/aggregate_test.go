package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 12, 15, 30, 0, 0, time.UTC)
}

func testAggregator() Aggregator {
	return Aggregator{
		Statuses: []Status{
			{ID: "open", Name: "Open"},
			{ID: "done", Name: "Done", IsFinal: true},
			{ID: "wontfix", Name: "Cancelled", IsCancelled: true},
		},
		Now: fixedNow,
	}
}

func TestScalarTotal(t *testing.T) {
	agg := testAggregator()
	rows := []StatsRow{
		statsRow(strPtr("s1"), nil, "open", 4),
		statsRow(strPtr("s2"), nil, "done", 6),
		statsRow(strPtr("s3"), nil, "wontfix", 3),
	}

	w := Widget{Type: WidgetKPI, StatusFilter: StatusFilterAll}
	assert.Equal(t, 13.0, agg.ScalarTotal(w, rows))

	w.StatusFilter = StatusFilterActive
	assert.Equal(t, 4.0, agg.ScalarTotal(w, rows))

	// Status scope plus filter tree compose.
	w.StatusFilter = StatusFilterAll
	w.FilterGroups = []FilterGroup{
		{Match: MatchAll, Rules: []FilterRule{{Field: FieldAssignee, Operator: OpEqual, Value: "s1"}}},
		{Match: MatchAll, Rules: []FilterRule{{Field: FieldAssignee, Operator: OpEqual, Value: "s2"}}},
	}
	assert.Equal(t, 10.0, agg.ScalarTotal(w, rows))
}

func TestGroupedSeriesSortsDescending(t *testing.T) {
	agg := testAggregator()
	rows := []StatsRow{
		statsRow(strPtr("s1"), nil, "open", 3),
		statsRow(strPtr("s1"), nil, "open", 1),
		statsRow(strPtr("s2"), nil, "done", 6),
	}
	w := Widget{Type: WidgetBar, GroupBy: GroupByStatus, StatusFilter: StatusFilterAll}

	series := agg.GroupedSeries(w, rows)
	require.Len(t, series, 2)
	assert.Equal(t, SeriesPoint{Name: "Done", Value: 6}, series[0])
	assert.Equal(t, SeriesPoint{Name: "Open", Value: 4}, series[1])
}

func TestGroupedSeriesTieKeepsFirstSeenOrder(t *testing.T) {
	agg := testAggregator()
	rows := []StatsRow{
		statsRow(strPtr("s1"), nil, "open", 5),
		statsRow(strPtr("s2"), nil, "done", 5),
	}
	w := Widget{Type: WidgetBar, GroupBy: GroupByStatus, StatusFilter: StatusFilterAll}

	series := agg.GroupedSeries(w, rows)
	require.Len(t, series, 2)
	assert.Equal(t, "Open", series[0].Name)
	assert.Equal(t, "Done", series[1].Name)
}

func TestGroupedSeriesUnassignedBuckets(t *testing.T) {
	agg := testAggregator()
	rows := []StatsRow{
		statsRow(nil, nil, "open", 2),
		statsRow(strPtr("s1"), nil, "open", 1),
	}

	w := Widget{Type: WidgetBar, GroupBy: GroupByAssignee, StatusFilter: StatusFilterAll, IncludeUnassigned: true}
	series := agg.GroupedSeries(w, rows)
	require.Len(t, series, 2)
	assert.Equal(t, SeriesPoint{Name: "Unassigned", Value: 2}, series[0])

	w.IncludeUnassigned = false
	series = agg.GroupedSeries(w, rows)
	require.Len(t, series, 1)
	assert.Equal(t, "s1", series[0].Name)
}

func TestGroupedSeriesNullBucketStaysSeparateFromMatchingID(t *testing.T) {
	agg := testAggregator()
	rows := []StatsRow{
		statsRow(strPtr("Unassigned"), nil, "open", 5),
		statsRow(nil, nil, "open", 3),
	}
	w := Widget{Type: WidgetBar, GroupBy: GroupByAssignee, StatusFilter: StatusFilterAll, IncludeUnassigned: true}

	series := agg.GroupedSeries(w, rows)
	require.Len(t, series, 2)
	assert.Equal(t, SeriesPoint{Name: "Unassigned", Value: 5}, series[0])
	assert.Equal(t, SeriesPoint{Name: "Unassigned", Value: 3}, series[1])
}

func TestGroupedSeriesKeepsDuplicateDisplayNamesApart(t *testing.T) {
	agg := Aggregator{
		Statuses: []Status{
			{ID: "s1", Name: "Review"},
			{ID: "s2", Name: "Review"},
		},
		Now: fixedNow,
	}
	rows := []StatsRow{
		statsRow(nil, nil, "s1", 6),
		statsRow(nil, nil, "s2", 4),
	}
	w := Widget{Type: WidgetBar, GroupBy: GroupByStatus, StatusFilter: StatusFilterAll}

	series := agg.GroupedSeries(w, rows)
	require.Len(t, series, 2)
	assert.Equal(t, SeriesPoint{Name: "Review", Value: 6}, series[0])
	assert.Equal(t, SeriesPoint{Name: "Review", Value: 4}, series[1])
}

func TestGroupedSeriesLabelResolver(t *testing.T) {
	agg := testAggregator()
	agg.Labels = func(field GroupBy, id string) string {
		if field == GroupByProject && id == "p1" {
			return "Website"
		}
		return ""
	}
	rows := []StatsRow{
		statsRow(nil, strPtr("p1"), "open", 1),
		statsRow(nil, strPtr("p2"), "open", 1),
		statsRow(nil, nil, "open", 1),
	}
	w := Widget{Type: WidgetPie, GroupBy: GroupByProject, StatusFilter: StatusFilterAll}

	series := agg.GroupedSeries(w, rows)
	names := make([]string, len(series))
	for i, p := range series {
		names[i] = p.Name
	}
	assert.ElementsMatch(t, []string{"Website", "p2", "No project"}, names)
}

func TestTimeSeriesZeroFillsWeek(t *testing.T) {
	agg := testAggregator()
	rows := []SeriesRow{
		{StatsRow: statsRow(nil, nil, "open", 2), BucketDate: "2026-03-10"},
		{StatsRow: statsRow(nil, nil, "done", 1), BucketDate: "2026-03-12"},
	}
	w := Widget{Type: WidgetLine, Period: PeriodWeek, GroupBy: GroupByStatus, StatusFilter: StatusFilterAll}

	result := agg.TimeSeries(w, rows)
	assert.Equal(t, []string{"Open", "Done"}, result.Keys)
	require.Len(t, result.Points, 7)
	assert.Equal(t, "2026-03-06", result.Points[0].Date)
	assert.Equal(t, "2026-03-12", result.Points[6].Date)

	// Every day carries every key, zero-filled.
	for _, point := range result.Points {
		require.Len(t, point.Values, 2, "date %s", point.Date)
	}
	assert.Equal(t, 2.0, result.Points[4].Values["Open"])
	assert.Equal(t, 0.0, result.Points[4].Values["Done"])
	assert.Equal(t, 1.0, result.Points[6].Values["Done"])
}

func TestTimeSeriesMergesDuplicateDisplayNames(t *testing.T) {
	agg := Aggregator{
		Statuses: []Status{
			{ID: "s1", Name: "Review"},
			{ID: "s2", Name: "Review"},
		},
		Now: fixedNow,
	}
	rows := []SeriesRow{
		{StatsRow: statsRow(nil, nil, "s1", 2), BucketDate: "2026-03-12"},
		{StatsRow: statsRow(nil, nil, "s2", 3), BucketDate: "2026-03-12"},
	}
	w := Widget{Type: WidgetLine, Period: PeriodDay, GroupBy: GroupByStatus, StatusFilter: StatusFilterAll}

	result := agg.TimeSeries(w, rows)
	assert.Equal(t, []string{"Review"}, result.Keys)
	require.Len(t, result.Points, 1)
	assert.Equal(t, 5.0, result.Points[0].Values["Review"])
}

func TestTimeSeriesDayPeriod(t *testing.T) {
	agg := testAggregator()
	w := Widget{Type: WidgetLine, Period: PeriodDay, StatusFilter: StatusFilterAll}

	result := agg.TimeSeries(w, nil)
	require.Len(t, result.Points, 1)
	assert.Equal(t, "2026-03-12", result.Points[0].Date)
	assert.Empty(t, result.Keys)
}

func TestTimeSeriesIgnoresRowsOutsideStatusScope(t *testing.T) {
	agg := testAggregator()
	rows := []SeriesRow{
		{StatsRow: statsRow(nil, nil, "wontfix", 9), BucketDate: "2026-03-12"},
	}
	w := Widget{Type: WidgetArea, Period: PeriodWeek, GroupBy: GroupByStatus, StatusFilter: StatusFilterActive}

	result := agg.TimeSeries(w, rows)
	assert.Empty(t, result.Keys)
	require.Len(t, result.Points, 7)
}

func TestPeriodRange(t *testing.T) {
	now := fixedNow()

	start, end := PeriodRange(PeriodDay, now)
	assert.Equal(t, start, end)
	assert.Equal(t, "2026-03-12", start.Format(time.DateOnly))

	start, end = PeriodRange(PeriodWeek, now)
	assert.Equal(t, "2026-03-06", start.Format(time.DateOnly))
	assert.Equal(t, "2026-03-12", end.Format(time.DateOnly))

	start, _ = PeriodRange(PeriodMonth, now)
	assert.Equal(t, "2026-02-12", start.Format(time.DateOnly))
}
