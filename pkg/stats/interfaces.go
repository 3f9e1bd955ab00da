package stats

import (
	"context"

	dashboard "github.com/goliatone/go-gridboard/components/dashboard"
)

// CountClient fetches aggregate task counts from the workspace query
// service.
type CountClient interface {
	FetchCounts(ctx context.Context, query dashboard.CountQuery) ([]dashboard.StatsRow, error)
}

// SeriesClient fetches day-bucketed task counts.
type SeriesClient interface {
	FetchSeries(ctx context.Context, query dashboard.SeriesQuery) ([]dashboard.SeriesRow, error)
}

// StatusClient fetches the workspace status list.
type StatusClient interface {
	FetchStatuses(ctx context.Context, workspaceID string) ([]dashboard.Status, error)
}

// Client is a convenience union for services implementing all stats calls.
type Client interface {
	CountClient
	SeriesClient
	StatusClient
}
