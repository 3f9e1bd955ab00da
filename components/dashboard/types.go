package dashboard

// WidgetType identifies the visual/behavioral family of a widget tile.
type WidgetType string

const (
	WidgetKPI       WidgetType = "kpi"
	WidgetBar       WidgetType = "bar"
	WidgetLine      WidgetType = "line"
	WidgetArea      WidgetType = "area"
	WidgetPie       WidgetType = "pie"
	WidgetMilestone WidgetType = "milestone"
)

// WidgetSize is the coarse visual size a user picks in the editor dialog.
type WidgetSize string

const (
	SizeSmall  WidgetSize = "small"
	SizeMedium WidgetSize = "medium"
	SizeLarge  WidgetSize = "large"
)

// Period selects the trailing time window a widget aggregates over.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// GroupBy selects the categorical field used to bucket counts.
type GroupBy string

const (
	GroupByNone     GroupBy = "none"
	GroupByAssignee GroupBy = "assignee"
	GroupByStatus   GroupBy = "status"
	GroupByProject  GroupBy = "project"
)

// StatusFilter names the status subset a widget counts against.
type StatusFilter string

const (
	StatusFilterAll       StatusFilter = "all"
	StatusFilterActive    StatusFilter = "active"
	StatusFilterFinal     StatusFilter = "final"
	StatusFilterCancelled StatusFilter = "cancelled"
	StatusFilterCustom    StatusFilter = "custom"
)

// MatchMode combines the rules inside a single filter group.
type MatchMode string

const (
	MatchAll MatchMode = "and"
	MatchAny MatchMode = "or"
)

// FilterField is the row attribute a filter rule inspects.
type FilterField string

const (
	FieldAssignee FilterField = "assignee"
	FieldGroup    FilterField = "group"
	FieldStatus   FilterField = "status"
	FieldProject  FilterField = "project"
)

// FilterOperator compares a row value against the rule value.
type FilterOperator string

const (
	OpEqual    FilterOperator = "eq"
	OpNotEqual FilterOperator = "neq"
)

// Widget is one dashboard tile: a chart/KPI type plus its data scope.
// Optional fields are filled with type-appropriate defaults by
// NormalizeWidget before the widget enters a Store.
type Widget struct {
	ID                string         `json:"id" yaml:"id"`
	Title             string         `json:"title" yaml:"title"`
	Type              WidgetType     `json:"type" yaml:"type"`
	Period            Period         `json:"period" yaml:"period"`
	GroupBy           GroupBy        `json:"groupBy" yaml:"group_by"`
	Size              WidgetSize     `json:"size" yaml:"size"`
	BarPalette        string         `json:"barPalette,omitempty" yaml:"bar_palette,omitempty"`
	MilestoneView     string         `json:"milestoneView,omitempty" yaml:"milestone_view,omitempty"`
	MilestoneCalendar string         `json:"milestoneCalendarMode,omitempty" yaml:"milestone_calendar_mode,omitempty"`
	StatusFilter      StatusFilter   `json:"statusFilter" yaml:"status_filter"`
	StatusIDs         []string       `json:"statusIds,omitempty" yaml:"status_ids,omitempty"`
	IncludeUnassigned bool           `json:"includeUnassigned" yaml:"include_unassigned"`
	FilterGroups      []FilterGroup  `json:"filterGroups,omitempty" yaml:"filter_groups,omitempty"`
}

// FilterGroup combines several rules with a single AND/OR mode. Groups
// combine across each other with OR, regardless of their own mode.
type FilterGroup struct {
	ID    string       `json:"id" yaml:"id"`
	Match MatchMode    `json:"match" yaml:"match"`
	Rules []FilterRule `json:"rules" yaml:"rules"`
}

// FilterRule is a single field/operator/value leaf. Unassigned matches
// rows where the field is absent instead of comparing against Value; a
// rule with neither Value nor Unassigned set is inert and skipped.
type FilterRule struct {
	ID         string         `json:"id" yaml:"id"`
	Field      FilterField    `json:"field" yaml:"field"`
	Operator   FilterOperator `json:"operator" yaml:"operator"`
	Value      string         `json:"value,omitempty" yaml:"value,omitempty"`
	Unassigned bool           `json:"unassigned,omitempty" yaml:"unassigned,omitempty"`
}

// LayoutItem is a widget's rectangle within one breakpoint's grid.
type LayoutItem struct {
	WidgetID string `json:"i" yaml:"i"`
	X        int    `json:"x" yaml:"x"`
	Y        int    `json:"y" yaml:"y"`
	W        int    `json:"w" yaml:"w"`
	H        int    `json:"h" yaml:"h"`
	MinW     int    `json:"minW" yaml:"min_w"`
	MinH     int    `json:"minH" yaml:"min_h"`
	MaxW     int    `json:"maxW" yaml:"max_w"`
	MaxH     int    `json:"maxH" yaml:"max_h"`
}

// Layouts maps each breakpoint to its independent item list.
type Layouts map[Breakpoint][]LayoutItem

// Clone deep-copies the layout map so callers can hold snapshots.
func (l Layouts) Clone() Layouts {
	if l == nil {
		return nil
	}
	out := make(Layouts, len(l))
	for bp, items := range l {
		out[bp] = append([]LayoutItem(nil), items...)
	}
	return out
}

// StatsRow is one aggregate count per distinct (assignee, project,
// status) combination, supplied by the external query layer. Nil
// pointer fields mean "unassigned" / "no project".
type StatsRow struct {
	AssigneeID *string `json:"assignee_id"`
	ProjectID  *string `json:"project_id"`
	StatusID   string  `json:"status_id"`
	Total      float64 `json:"total"`
}

// SeriesRow extends StatsRow with the calendar day the counts fall on.
type SeriesRow struct {
	StatsRow
	BucketDate string `json:"bucket_date"`
}

// Status is a workspace task status with its classification flags.
type Status struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
	IsFinal     bool   `json:"is_final" yaml:"is_final"`
	IsCancelled bool   `json:"is_cancelled" yaml:"is_cancelled"`
}

// Snapshot is the opaque {widgets, layouts} pair persisted per
// dashboard by an external upsert.
type Snapshot struct {
	Widgets []Widget `json:"widgets"`
	Layouts Layouts  `json:"layouts"`
}
