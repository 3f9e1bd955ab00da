package dashboard

// RuleEvaluator evaluates widget filter rules against count rows. Rows
// only carry assignee/project/status ids, so rules on the group field
// need GroupOf to map an assignee to its member group; when GroupOf is
// nil, group rules behave as if the field were absent.
type RuleEvaluator struct {
	GroupOf func(assigneeID string) (string, bool)
}

// MatchesRule reports whether a single rule accepts the row. A rule
// flagged Unassigned matches rows whose field is absent rather than
// comparing ids. The neq operator negates the comparison.
func (e RuleEvaluator) MatchesRule(row StatsRow, rule FilterRule) bool {
	value := e.fieldValue(row, rule.Field)
	var matched bool
	if rule.Unassigned {
		matched = value == nil
	} else {
		matched = value != nil && *value == rule.Value
	}
	if rule.Operator == OpNotEqual {
		return !matched
	}
	return matched
}

// MatchesGroup combines the group's effective rules with its AND/OR
// mode. Inert rules are skipped; a group with no effective rules
// matches everything.
func (e RuleEvaluator) MatchesGroup(row StatsRow, group FilterGroup) bool {
	evaluated := false
	for _, rule := range group.Rules {
		if ruleInert(rule) {
			continue
		}
		matched := e.MatchesRule(row, rule)
		if group.Match == MatchAny {
			if matched {
				return true
			}
			evaluated = true
			continue
		}
		if !matched {
			return false
		}
		evaluated = true
	}
	if group.Match == MatchAny && evaluated {
		return false
	}
	return true
}

// MatchesFilterGroups applies the two-level filter tree: a row passes
// when any effective group matches. The OR across groups is fixed;
// only the combinator inside a group is configurable.
func (e RuleEvaluator) MatchesFilterGroups(row StatsRow, groups []FilterGroup) bool {
	effective := false
	for _, group := range groups {
		if groupInert(group) {
			continue
		}
		effective = true
		if e.MatchesGroup(row, group) {
			return true
		}
	}
	return !effective
}

func (e RuleEvaluator) fieldValue(row StatsRow, field FilterField) *string {
	switch field {
	case FieldAssignee:
		return row.AssigneeID
	case FieldProject:
		return row.ProjectID
	case FieldStatus:
		return &row.StatusID
	case FieldGroup:
		if row.AssigneeID == nil || e.GroupOf == nil {
			return nil
		}
		if group, ok := e.GroupOf(*row.AssigneeID); ok {
			return &group
		}
		return nil
	}
	return nil
}

func ruleInert(rule FilterRule) bool {
	return !rule.Unassigned && rule.Value == ""
}

func groupInert(group FilterGroup) bool {
	for _, rule := range group.Rules {
		if !ruleInert(rule) {
			return false
		}
	}
	return true
}
