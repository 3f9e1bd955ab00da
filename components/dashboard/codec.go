package dashboard

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// legacySentinelUnassigned is how older persisted blobs and filter
// editors encode "field is absent". The core keeps an explicit flag
// instead; the sentinel only exists at this boundary.
const legacySentinelUnassigned = "__unassigned__"

// DecodeSnapshot parses a persisted dashboard blob. It never fails:
// malformed JSON yields an empty snapshot and malformed entries are
// defaulted, because whatever was stored must still produce a
// renderable dashboard after normalization.
func DecodeSnapshot(data []byte) Snapshot {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Snapshot{Layouts: Layouts{}}
	}
	snap := Snapshot{Layouts: Layouts{}}
	if widgets, ok := doc["widgets"].([]any); ok {
		for _, entry := range widgets {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			snap.Widgets = append(snap.Widgets, decodeWidget(m))
		}
	}
	if layouts, ok := doc["layouts"].(map[string]any); ok {
		for name, entry := range layouts {
			items, ok := entry.([]any)
			if !ok {
				continue
			}
			bp := Breakpoint(name)
			for _, raw := range items {
				m, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				item := decodeLayoutItem(m)
				if item.WidgetID == "" {
					continue
				}
				snap.Layouts[bp] = append(snap.Layouts[bp], item)
			}
		}
	}
	return snap
}

// EncodeSnapshot serializes the pair for the external key-value upsert.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}

func decodeWidget(m map[string]any) Widget {
	w := Widget{
		ID:                stringValue(m["id"], ""),
		Title:             stringValue(m["title"], ""),
		Type:              WidgetType(stringValue(m["type"], "")),
		Period:            Period(stringValue(m["period"], "")),
		GroupBy:           GroupBy(stringValue(m["groupBy"], "")),
		Size:              WidgetSize(stringValue(m["size"], "")),
		BarPalette:        stringValue(m["barPalette"], ""),
		MilestoneView:     stringValue(m["milestoneView"], ""),
		MilestoneCalendar: stringValue(m["milestoneCalendarMode"], ""),
		StatusFilter:      StatusFilter(stringValue(m["statusFilter"], "")),
		IncludeUnassigned: boolValue(m["includeUnassigned"]),
	}
	if ids, ok := m["statusIds"].([]any); ok {
		for _, id := range ids {
			if s, ok := id.(string); ok && s != "" {
				w.StatusIDs = append(w.StatusIDs, s)
			}
		}
	}
	if groups, ok := m["filterGroups"].([]any); ok {
		for _, raw := range groups {
			gm, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			w.FilterGroups = append(w.FilterGroups, decodeFilterGroup(gm))
		}
	}
	return w
}

func decodeFilterGroup(m map[string]any) FilterGroup {
	group := FilterGroup{
		ID:    stringValue(m["id"], ""),
		Match: MatchMode(stringValue(m["match"], string(MatchAll))),
	}
	if rules, ok := m["rules"].([]any); ok {
		for _, raw := range rules {
			rm, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			rule := FilterRule{
				ID:         stringValue(rm["id"], ""),
				Field:      FilterField(stringValue(rm["field"], "")),
				Operator:   FilterOperator(stringValue(rm["operator"], string(OpEqual))),
				Value:      stringValue(rm["value"], ""),
				Unassigned: boolValue(rm["unassigned"]),
			}
			if rule.Value == legacySentinelUnassigned {
				rule.Value = ""
				rule.Unassigned = true
			}
			group.Rules = append(group.Rules, rule)
		}
	}
	return group
}

func decodeLayoutItem(m map[string]any) LayoutItem {
	return LayoutItem{
		WidgetID: stringValue(m["i"], ""),
		X:        intValue(m["x"]),
		Y:        intValue(m["y"]),
		W:        intValue(m["w"]),
		H:        intValue(m["h"]),
		MinW:     intValue(m["minW"]),
		MinH:     intValue(m["minH"]),
		MaxW:     intValue(m["maxW"]),
		MaxH:     intValue(m["maxH"]),
	}
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

// float64Value coerces loosely typed JSON numbers; anything that is not
// a finite number becomes 0 so arithmetic never propagates NaN.
func float64Value(v any) float64 {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
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

func intValue(v any) int {
	return int(math.Round(float64Value(v)))
}

func boolValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return false
	}
}
