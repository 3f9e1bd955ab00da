package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	dashboard "github.com/goliatone/go-gridboard/components/dashboard"
)

// HTTPConfig configures the HTTP stats client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to a remote workspace query service via REST
// endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting a live query service.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("stats: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchCounts implements CountClient by calling the counts endpoint.
func (c *HTTPClient) FetchCounts(ctx context.Context, query dashboard.CountQuery) ([]dashboard.StatsRow, error) {
	var resp countResponse
	if err := c.do(ctx, http.MethodPost, "/counts/query", query, &resp); err != nil {
		return nil, err
	}
	return resp.toRows(), nil
}

// FetchSeries implements SeriesClient via the series endpoint.
func (c *HTTPClient) FetchSeries(ctx context.Context, query dashboard.SeriesQuery) ([]dashboard.SeriesRow, error) {
	var resp seriesResponse
	if err := c.do(ctx, http.MethodPost, "/series/query", query, &resp); err != nil {
		return nil, err
	}
	return resp.toRows()
}

// FetchStatuses implements StatusClient via the statuses endpoint.
func (c *HTTPClient) FetchStatuses(ctx context.Context, workspaceID string) ([]dashboard.Status, error) {
	if workspaceID == "" {
		return nil, fmt.Errorf("stats: workspace id is required")
	}
	var resp statusResponse
	path := "/workspaces/" + workspaceID + "/statuses"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Statuses, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("stats: encode payload: %w", err)
		}
		body = encoded
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("stats: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("stats: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("stats: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("stats: decode response: %w", err)
	}
	return nil
}

// countRow tolerates loosely typed totals: some query backends emit
// numeric strings for decimal columns.
type countRow struct {
	AssigneeID *string `json:"assignee_id"`
	ProjectID  *string `json:"project_id"`
	StatusID   string  `json:"status_id"`
	Total      any     `json:"total"`
}

type countResponse struct {
	Rows []countRow `json:"rows"`
}

func (r countResponse) toRows() []dashboard.StatsRow {
	rows := make([]dashboard.StatsRow, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = dashboard.StatsRow{
			AssigneeID: row.AssigneeID,
			ProjectID:  row.ProjectID,
			StatusID:   row.StatusID,
			Total:      parseTotal(row.Total),
		}
	}
	return rows
}

type seriesRow struct {
	countRow
	BucketDate string `json:"bucket_date"`
}

type seriesResponse struct {
	Rows []seriesRow `json:"rows"`
}

func (r seriesResponse) toRows() ([]dashboard.SeriesRow, error) {
	rows := make([]dashboard.SeriesRow, len(r.Rows))
	for i, row := range r.Rows {
		if _, err := time.Parse(time.DateOnly, row.BucketDate); err != nil {
			return nil, fmt.Errorf("stats: parse bucket date %q: %w", row.BucketDate, err)
		}
		rows[i] = dashboard.SeriesRow{
			StatsRow: dashboard.StatsRow{
				AssigneeID: row.AssigneeID,
				ProjectID:  row.ProjectID,
				StatusID:   row.StatusID,
				Total:      parseTotal(row.Total),
			},
			BucketDate: row.BucketDate,
		}
	}
	return rows, nil
}

type statusResponse struct {
	Statuses []dashboard.Status `json:"statuses"`
}

// parseTotal coerces loosely typed totals; anything that is not a
// finite number becomes 0 so aggregation never propagates NaN.
func parseTotal(v any) float64 {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
