package dashboard

import (
	"context"
	"fmt"
	"time"
)

// CountQuery scopes a count fetch to one workspace and an inclusive
// date range (time.DateOnly strings).
type CountQuery struct {
	WorkspaceID string `json:"workspace_id"`
	From        string `json:"from"`
	To          string `json:"to"`
}

// SeriesQuery scopes a per-day series fetch.
type SeriesQuery struct {
	CountQuery
}

// CountRepository supplies aggregate count rows for KPI and grouped
// widgets.
type CountRepository interface {
	FetchCounts(ctx context.Context, query CountQuery) ([]StatsRow, error)
}

// SeriesRepository supplies day-bucketed rows for line/area widgets.
type SeriesRepository interface {
	FetchSeries(ctx context.Context, query SeriesQuery) ([]SeriesRow, error)
}

// StatusRepository supplies the workspace status list used for
// classification and labeling.
type StatusRepository interface {
	FetchStatuses(ctx context.Context, workspaceID string) ([]Status, error)
}

// BoardData computes per-widget display values by combining external
// repositories with the aggregation pipeline. One instance serves a
// single workspace's board.
type BoardData struct {
	WorkspaceID string
	Counts      CountRepository
	Series      SeriesRepository
	Statuses    StatusRepository
	Rules       RuleEvaluator
	Labels      LabelResolver
	Now         func() time.Time
}

// WidgetScalar resolves a KPI widget's single number.
func (d *BoardData) WidgetScalar(ctx context.Context, w Widget) (float64, error) {
	agg, rows, err := d.countData(ctx, w)
	if err != nil {
		return 0, err
	}
	return agg.ScalarTotal(w, rows), nil
}

// WidgetGrouped resolves a bar/pie widget's grouped series.
func (d *BoardData) WidgetGrouped(ctx context.Context, w Widget) ([]SeriesPoint, error) {
	agg, rows, err := d.countData(ctx, w)
	if err != nil {
		return nil, err
	}
	return agg.GroupedSeries(w, rows), nil
}

// WidgetTimeSeries resolves a line/area widget's day buckets.
func (d *BoardData) WidgetTimeSeries(ctx context.Context, w Widget) (TimeSeriesResult, error) {
	if d.Series == nil {
		return TimeSeriesResult{}, fmt.Errorf("dashboard: series repository is required")
	}
	agg, err := d.aggregator(ctx)
	if err != nil {
		return TimeSeriesResult{}, err
	}
	from, to := PeriodRange(w.Period, agg.now())
	rows, err := d.Series.FetchSeries(ctx, SeriesQuery{CountQuery: d.query(from, to)})
	if err != nil {
		return TimeSeriesResult{}, fmt.Errorf("dashboard: fetch series: %w", err)
	}
	return agg.TimeSeries(w, rows), nil
}

func (d *BoardData) countData(ctx context.Context, w Widget) (Aggregator, []StatsRow, error) {
	if d.Counts == nil {
		return Aggregator{}, nil, fmt.Errorf("dashboard: count repository is required")
	}
	agg, err := d.aggregator(ctx)
	if err != nil {
		return Aggregator{}, nil, err
	}
	from, to := PeriodRange(w.Period, agg.now())
	rows, err := d.Counts.FetchCounts(ctx, d.query(from, to))
	if err != nil {
		return Aggregator{}, nil, fmt.Errorf("dashboard: fetch counts: %w", err)
	}
	return agg, rows, nil
}

func (d *BoardData) aggregator(ctx context.Context) (Aggregator, error) {
	var statuses []Status
	if d.Statuses != nil {
		fetched, err := d.Statuses.FetchStatuses(ctx, d.WorkspaceID)
		if err != nil {
			return Aggregator{}, fmt.Errorf("dashboard: fetch statuses: %w", err)
		}
		statuses = fetched
	}
	return Aggregator{
		Statuses: statuses,
		Rules:    d.Rules,
		Labels:   d.Labels,
		Now:      d.Now,
	}, nil
}

func (d *BoardData) query(from, to time.Time) CountQuery {
	return CountQuery{
		WorkspaceID: d.WorkspaceID,
		From:        from.Format(time.DateOnly),
		To:          to.Format(time.DateOnly),
	}
}
