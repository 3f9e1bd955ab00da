package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer turns computed widget series into go-echarts markup.
// The aggregation pipeline stays renderer-agnostic; this sits beside it
// for callers that want server-side charts instead of shipping raw
// series to a client grid.
type ChartRenderer struct {
	cache RenderCache
	theme string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithRenderTheme sets the echarts theme (defaults to Westeros).
func WithRenderTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// NewChartRenderer builds a renderer with shared-cache defaults.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderGrouped renders a bar or pie widget from its grouped series.
func (r *ChartRenderer) RenderGrouped(w Widget, series []SeriesPoint) (string, error) {
	render := func() (string, error) {
		switch w.Type {
		case WidgetBar:
			return r.renderBar(w, series)
		case WidgetPie:
			return r.renderPie(w, series)
		default:
			return "", fmt.Errorf("dashboard: widget type %s is not a grouped chart", w.Type)
		}
	}
	return r.cached(w, series, render)
}

// RenderTimeSeries renders a line or area widget from its day buckets.
// Area widgets reuse the line shape; the fill is a client styling
// concern.
func (r *ChartRenderer) RenderTimeSeries(w Widget, result TimeSeriesResult) (string, error) {
	render := func() (string, error) {
		switch w.Type {
		case WidgetLine, WidgetArea:
			return r.renderLine(w, result)
		default:
			return "", fmt.Errorf("dashboard: widget type %s is not a time-series chart", w.Type)
		}
	}
	return r.cached(w, result, render)
}

func (r *ChartRenderer) cached(w Widget, series any, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s", w.ID, w.Type, seriesHash(series))
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) renderBar(w Widget, series []SeriesPoint) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(w.Title)...)
	bar.SetXAxis(seriesNames(series))
	bar.AddSeries(w.Title, toBarData(series))
	return renderChart(bar)
}

func (r *ChartRenderer) renderPie(w Widget, series []SeriesPoint) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(w.Title)...)
	pie.AddSeries(w.Title, toPieData(series))
	return renderChart(pie)
}

func (r *ChartRenderer) renderLine(w Widget, result TimeSeriesResult) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(w.Title)...)
	line.SetXAxis(pointDates(result.Points))
	for _, key := range result.Keys {
		line.AddSeries(key, toLineData(result.Points, key))
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (r *ChartRenderer) globalChartOptions(title string) []charts.GlobalOpts {
	theme := r.theme
	if strings.TrimSpace(theme) == "" {
		theme = types.ThemeWesteros
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  theme,
			Width:  "100%",
			Height: defaultChartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func seriesNames(series []SeriesPoint) []string {
	names := make([]string, len(series))
	for i, point := range series {
		names[i] = point.Name
	}
	return names
}

func pointDates(points []TimePoint) []string {
	dates := make([]string, len(points))
	for i, point := range points {
		dates[i] = point.Date
	}
	return dates
}

func toBarData(series []SeriesPoint) []opts.BarData {
	data := make([]opts.BarData, len(series))
	for i, point := range series {
		data[i] = opts.BarData{Name: point.Name, Value: point.Value}
	}
	return data
}

func toPieData(series []SeriesPoint) []opts.PieData {
	data := make([]opts.PieData, len(series))
	for i, point := range series {
		data[i] = opts.PieData{Name: point.Name, Value: point.Value}
	}
	return data
}

func toLineData(points []TimePoint, key string) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{Value: point.Values[key]}
	}
	return data
}
