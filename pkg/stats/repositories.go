package stats

import (
	"context"

	dashboard "github.com/goliatone/go-gridboard/components/dashboard"
)

// NewCountRepository adapts a stats client into a dashboard repository.
func NewCountRepository(client CountClient) dashboard.CountRepository {
	return &countRepository{client: client}
}

type countRepository struct {
	client CountClient
}

func (r *countRepository) FetchCounts(ctx context.Context, query dashboard.CountQuery) ([]dashboard.StatsRow, error) {
	return r.client.FetchCounts(ctx, query)
}

// NewSeriesRepository adapts the stats client for time-series widgets.
func NewSeriesRepository(client SeriesClient) dashboard.SeriesRepository {
	return &seriesRepository{client: client}
}

type seriesRepository struct {
	client SeriesClient
}

func (r *seriesRepository) FetchSeries(ctx context.Context, query dashboard.SeriesQuery) ([]dashboard.SeriesRow, error) {
	return r.client.FetchSeries(ctx, query)
}

// NewStatusRepository adapts the stats client for status classification.
func NewStatusRepository(client StatusClient) dashboard.StatusRepository {
	return &statusRepository{client: client}
}

type statusRepository struct {
	client StatusClient
}

func (r *statusRepository) FetchStatuses(ctx context.Context, workspaceID string) ([]dashboard.Status, error) {
	return r.client.FetchStatuses(ctx, workspaceID)
}

// NewBoardData wires a full client into a per-workspace data service.
func NewBoardData(workspaceID string, client Client) *dashboard.BoardData {
	return &dashboard.BoardData{
		WorkspaceID: workspaceID,
		Counts:      NewCountRepository(client),
		Series:      NewSeriesRepository(client),
		Statuses:    NewStatusRepository(client),
	}
}
