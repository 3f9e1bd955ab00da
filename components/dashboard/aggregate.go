package dashboard

import (
	"sort"
	"time"
)

// Bucket labels for rows that carry no id for the grouping field.
const (
	labelUnassigned = "Unassigned"
	labelNoProject  = "No project"
)

// SeriesPoint is one named value in a grouped series.
type SeriesPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TimePoint is one calendar day with a value for every active series
// key. Days without matching rows still appear, zero-filled.
type TimePoint struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
}

// TimeSeriesResult carries the discovered series keys (in first
// occurrence order) and one point per day of the widget's period.
type TimeSeriesResult struct {
	Keys   []string    `json:"keys"`
	Points []TimePoint `json:"points"`
}

// LabelResolver maps a grouping field id to the display name an
// external renderer shows. Nil resolvers fall back to the raw id
// (status names resolve from the aggregator's status list regardless).
type LabelResolver func(field GroupBy, id string) string

// Aggregator folds raw count rows into the scalar, grouped, or
// time-bucketed shape a widget displays. All methods are pure; rows are
// never mutated.
type Aggregator struct {
	Statuses []Status
	Rules    RuleEvaluator
	Labels   LabelResolver
	Now      func() time.Time
}

// ScalarTotal sums totals over rows passing the widget's status and
// filter scope. Used by KPI widgets (groupBy none).
func (a Aggregator) ScalarTotal(w Widget, rows []StatsRow) float64 {
	total := 0.0
	for _, row := range a.filterRows(w, rows) {
		total += row.Total
	}
	return total
}

// GroupedSeries buckets filtered rows by the widget's grouping field
// and returns per-bucket sums sorted by value descending. Ties keep the
// order buckets were first seen in, so output is deterministic. Buckets
// are keyed by the field's raw id; display names resolve only on
// output, so two ids sharing a name stay separate points.
func (a Aggregator) GroupedSeries(w Widget, rows []StatsRow) []SeriesPoint {
	totals := map[bucketKey]float64{}
	var order []bucketKey
	for _, row := range a.filterRows(w, rows) {
		key := bucketFor(w.GroupBy, row)
		if _, ok := totals[key]; !ok {
			order = append(order, key)
		}
		totals[key] += row.Total
	}
	series := make([]SeriesPoint, 0, len(order))
	for _, key := range order {
		series = append(series, SeriesPoint{Name: a.bucketLabel(w.GroupBy, key), Value: totals[key]})
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Value > series[j].Value
	})
	return series
}

// TimeSeries builds one point per calendar day of the widget's period.
// Series keys are discovered across all filtered rows, then every day
// is zero-filled for every key so sparse data still charts cleanly.
func (a Aggregator) TimeSeries(w Widget, rows []SeriesRow) TimeSeriesResult {
	statusSet := ResolveStatusSet(w, a.Statuses)
	filtered := make([]SeriesRow, 0, len(rows))
	for _, row := range rows {
		if a.rowInScope(w, row.StatsRow, statusSet) {
			filtered = append(filtered, row)
		}
	}

	var buckets []bucketKey
	seen := map[bucketKey]struct{}{}
	totals := map[string]map[bucketKey]float64{}
	for _, row := range filtered {
		key := bucketFor(w.GroupBy, row.StatsRow)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			buckets = append(buckets, key)
		}
		day := totals[row.BucketDate]
		if day == nil {
			day = map[bucketKey]float64{}
			totals[row.BucketDate] = day
		}
		day[key] += row.Total
	}

	// Display names resolve after bucketing; points are keyed by name,
	// so buckets sharing a name plot as one merged line.
	labels := make([]string, len(buckets))
	var keys []string
	labelSeen := map[string]struct{}{}
	for i, key := range buckets {
		labels[i] = a.bucketLabel(w.GroupBy, key)
		if _, ok := labelSeen[labels[i]]; !ok {
			labelSeen[labels[i]] = struct{}{}
			keys = append(keys, labels[i])
		}
	}

	start, end := PeriodRange(w.Period, a.now())
	var points []TimePoint
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(time.DateOnly)
		values := make(map[string]float64, len(keys))
		for _, key := range keys {
			values[key] = 0
		}
		for i, bucket := range buckets {
			values[labels[i]] += totals[date][bucket]
		}
		points = append(points, TimePoint{Date: date, Values: values})
	}
	return TimeSeriesResult{Keys: keys, Points: points}
}

func (a Aggregator) filterRows(w Widget, rows []StatsRow) []StatsRow {
	statusSet := ResolveStatusSet(w, a.Statuses)
	out := make([]StatsRow, 0, len(rows))
	for _, row := range rows {
		if a.rowInScope(w, row, statusSet) {
			out = append(out, row)
		}
	}
	return out
}

func (a Aggregator) rowInScope(w Widget, row StatsRow, statusSet map[string]struct{}) bool {
	if _, ok := statusSet[row.StatusID]; !ok {
		return false
	}
	if w.GroupBy == GroupByAssignee && !w.IncludeUnassigned && row.AssigneeID == nil {
		return false
	}
	return a.Rules.MatchesFilterGroups(row, w.FilterGroups)
}

// bucketKey identifies one grouping bucket by the field's raw id. Rows
// with no id for the field land in a dedicated null bucket, so a real
// id that happens to equal a display label never merges with it.
type bucketKey struct {
	null bool
	id   string
}

func bucketFor(field GroupBy, row StatsRow) bucketKey {
	switch field {
	case GroupByAssignee:
		if row.AssigneeID == nil {
			return bucketKey{null: true}
		}
		return bucketKey{id: *row.AssigneeID}
	case GroupByProject:
		if row.ProjectID == nil {
			return bucketKey{null: true}
		}
		return bucketKey{id: *row.ProjectID}
	case GroupByStatus:
		return bucketKey{id: row.StatusID}
	default:
		return bucketKey{}
	}
}

func (a Aggregator) bucketLabel(field GroupBy, key bucketKey) string {
	switch field {
	case GroupByAssignee:
		if key.null {
			return labelUnassigned
		}
		return a.label(field, key.id)
	case GroupByProject:
		if key.null {
			return labelNoProject
		}
		return a.label(field, key.id)
	case GroupByStatus:
		for _, s := range a.Statuses {
			if s.ID == key.id {
				return s.Name
			}
		}
		return a.label(field, key.id)
	default:
		return "total"
	}
}

func (a Aggregator) label(field GroupBy, id string) string {
	if a.Labels != nil {
		if name := a.Labels(field, id); name != "" {
			return name
		}
	}
	return id
}

func (a Aggregator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// PeriodRange resolves a widget period into inclusive calendar bounds
// ending today: day is today only, week the trailing 7 days, month the
// trailing calendar month.
func PeriodRange(p Period, now time.Time) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodDay:
		return end, end
	case PeriodMonth:
		return end.AddDate(0, -1, 0), end
	default:
		return end.AddDate(0, 0, -6), end
	}
}
