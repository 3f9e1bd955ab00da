package dashboard

var defaultWidgetDescriptors = []WidgetDescriptor{
	{
		Type:        WidgetKPI,
		Name:        "KPI Counter",
		Description: "Single number summarizing task counts in scope.",
		Category:    "stats",
		Schema:      widgetPayloadSchema(false, false),
	},
	{
		Type:        WidgetBar,
		Name:        "Bar Chart",
		Description: "Task counts grouped by assignee, status, or project.",
		Category:    "charts",
		Schema:      widgetPayloadSchema(true, false),
	},
	{
		Type:        WidgetLine,
		Name:        "Line Chart",
		Description: "Task counts per day over the selected period.",
		Category:    "charts",
		Schema:      widgetPayloadSchema(true, false),
	},
	{
		Type:        WidgetArea,
		Name:        "Area Chart",
		Description: "Stacked task counts per day over the selected period.",
		Category:    "charts",
		Schema:      widgetPayloadSchema(true, false),
	},
	{
		Type:        WidgetPie,
		Name:        "Pie Chart",
		Description: "Share of task counts per group.",
		Category:    "charts",
		Schema:      widgetPayloadSchema(true, false),
	},
	{
		Type:        WidgetMilestone,
		Name:        "Milestones",
		Description: "Upcoming milestones as a list or calendar.",
		Category:    "planning",
		Schema:      widgetPayloadSchema(false, true),
	},
}

func filterGroupSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"match", "rules"},
		"properties": map[string]any{
			"id":    map[string]any{"type": "string"},
			"match": map[string]any{"type": "string", "enum": []string{"and", "or"}},
			"rules": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"field", "operator"},
					"properties": map[string]any{
						"id":         map[string]any{"type": "string"},
						"field":      map[string]any{"type": "string", "enum": []string{"assignee", "group", "status", "project"}},
						"operator":   map[string]any{"type": "string", "enum": []string{"eq", "neq"}},
						"value":      map[string]any{"type": "string"},
						"unassigned": map[string]any{"type": "boolean", "default": false},
					},
				},
			},
		},
	}
}

func widgetPayloadSchema(includePalette, includeMilestone bool) map[string]any {
	props := map[string]any{
		"id":    map[string]any{"type": "string"},
		"title": map[string]any{"type": "string"},
		"type": map[string]any{
			"type": "string",
			"enum": []string{"kpi", "bar", "line", "area", "pie", "milestone"},
		},
		"period": map[string]any{
			"type":    "string",
			"enum":    []string{"day", "week", "month"},
			"default": "week",
		},
		"groupBy": map[string]any{
			"type":    "string",
			"enum":    []string{"none", "assignee", "status", "project"},
			"default": "none",
		},
		"size": map[string]any{
			"type":    "string",
			"enum":    []string{"small", "medium", "large"},
			"default": "medium",
		},
		"statusFilter": map[string]any{
			"type":    "string",
			"enum":    []string{"all", "active", "final", "cancelled", "custom"},
			"default": "all",
		},
		"statusIds": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"uniqueItems": true,
		},
		"includeUnassigned": map[string]any{"type": "boolean", "default": false},
		"filterGroups": map[string]any{
			"type":  "array",
			"items": filterGroupSchema(),
		},
	}
	if includePalette {
		props["barPalette"] = map[string]any{"type": "string"}
	}
	if includeMilestone {
		props["milestoneView"] = map[string]any{
			"type": "string",
			"enum": []string{"list", "calendar"},
		}
		props["milestoneCalendarMode"] = map[string]any{
			"type": "string",
			"enum": []string{"month", "week"},
		}
	}
	return map[string]any{
		"type":       "object",
		"required":   []string{"type"},
		"properties": props,
	}
}

var defaultSeedWidgets = []Widget{
	{
		Title:        "Open tasks",
		Type:         WidgetKPI,
		Period:       PeriodWeek,
		StatusFilter: StatusFilterActive,
	},
	{
		Title:        "Tasks by status",
		Type:         WidgetBar,
		Period:       PeriodWeek,
		GroupBy:      GroupByStatus,
		Size:         SizeMedium,
		StatusFilter: StatusFilterAll,
	},
	{
		Title:             "Workload by assignee",
		Type:              WidgetPie,
		Period:            PeriodMonth,
		GroupBy:           GroupByAssignee,
		Size:              SizeMedium,
		StatusFilter:      StatusFilterActive,
		IncludeUnassigned: true,
	},
	{
		Title:        "Completed per day",
		Type:         WidgetLine,
		Period:       PeriodWeek,
		GroupBy:      GroupByNone,
		Size:         SizeLarge,
		StatusFilter: StatusFilterFinal,
	},
}

// DefaultWidgetDescriptors returns copies of the built-in descriptors.
func DefaultWidgetDescriptors() []WidgetDescriptor {
	out := make([]WidgetDescriptor, len(defaultWidgetDescriptors))
	copy(out, defaultWidgetDescriptors)
	return out
}

// DefaultSeedWidgets returns starter widgets for an empty dashboard.
func DefaultSeedWidgets() []Widget {
	out := make([]Widget, len(defaultSeedWidgets))
	copy(out, defaultSeedWidgets)
	return out
}
