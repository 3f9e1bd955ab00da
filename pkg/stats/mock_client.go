package stats

import (
	"context"
	"sync"

	dashboard "github.com/goliatone/go-gridboard/components/dashboard"
)

// MockData seeds deterministic stats responses for tests or local demos.
type MockData struct {
	Counts   []dashboard.StatsRow
	Series   []dashboard.SeriesRow
	Statuses []dashboard.Status
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

// NewMockClient builds a mock stats client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FetchCounts returns the configured rows ignoring query filters.
func (c *MockClient) FetchCounts(context.Context, dashboard.CountQuery) ([]dashboard.StatsRow, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]dashboard.StatsRow(nil), c.data.Counts...), nil
}

// FetchSeries returns the configured rows ignoring query filters.
func (c *MockClient) FetchSeries(context.Context, dashboard.SeriesQuery) ([]dashboard.SeriesRow, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]dashboard.SeriesRow(nil), c.data.Series...), nil
}

// FetchStatuses returns the configured status list.
func (c *MockClient) FetchStatuses(context.Context, string) ([]dashboard.Status, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]dashboard.Status(nil), c.data.Statuses...), nil
}
