package dashboard

import "github.com/google/uuid"

const (
	defaultBarPalette       = "categorical"
	defaultMilestoneView    = "list"
	defaultMilestoneCalMode = "month"
)

// NormalizeWidget fills every optional field with a type-appropriate
// default and prunes inert filter rules/groups, producing the shape the
// editor dialog is expected to emit. A blank id gets a fresh one.
func NormalizeWidget(w Widget) Widget {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if !knownWidgetType(w.Type) {
		w.Type = WidgetKPI
	}
	if w.Period != PeriodDay && w.Period != PeriodWeek && w.Period != PeriodMonth {
		w.Period = PeriodWeek
	}
	if w.GroupBy != GroupByAssignee && w.GroupBy != GroupByStatus && w.GroupBy != GroupByProject {
		w.GroupBy = GroupByNone
	}
	if w.Size != SizeSmall && w.Size != SizeMedium && w.Size != SizeLarge {
		w.Size = SizeMedium
	}
	if !knownStatusFilter(w.StatusFilter) {
		w.StatusFilter = StatusFilterAll
	}
	if w.StatusFilter != StatusFilterCustom {
		w.StatusIDs = nil
	}
	switch w.Type {
	case WidgetBar, WidgetLine, WidgetArea, WidgetPie:
		if w.BarPalette == "" {
			w.BarPalette = defaultBarPalette
		}
		w.MilestoneView = ""
		w.MilestoneCalendar = ""
	case WidgetMilestone:
		if w.MilestoneView == "" {
			w.MilestoneView = defaultMilestoneView
		}
		if w.MilestoneCalendar == "" {
			w.MilestoneCalendar = defaultMilestoneCalMode
		}
		w.BarPalette = ""
	default:
		w.BarPalette = ""
		w.MilestoneView = ""
		w.MilestoneCalendar = ""
	}
	w.FilterGroups = pruneFilterGroups(w.FilterGroups)
	return w
}

// pruneFilterGroups drops inert rules and then groups left with no
// rules; an empty group matches everything anyway so nothing is lost.
func pruneFilterGroups(groups []FilterGroup) []FilterGroup {
	out := make([]FilterGroup, 0, len(groups))
	for _, group := range groups {
		rules := make([]FilterRule, 0, len(group.Rules))
		for _, rule := range group.Rules {
			if ruleInert(rule) {
				continue
			}
			if rule.Operator != OpNotEqual {
				rule.Operator = OpEqual
			}
			rules = append(rules, rule)
		}
		if len(rules) == 0 {
			continue
		}
		group.Rules = rules
		if group.Match != MatchAny {
			group.Match = MatchAll
		}
		out = append(out, group)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func knownWidgetType(t WidgetType) bool {
	switch t {
	case WidgetKPI, WidgetBar, WidgetLine, WidgetArea, WidgetPie, WidgetMilestone:
		return true
	}
	return false
}

func knownStatusFilter(f StatusFilter) bool {
	switch f {
	case StatusFilterAll, StatusFilterActive, StatusFilterFinal, StatusFilterCancelled, StatusFilterCustom:
		return true
	}
	return false
}
