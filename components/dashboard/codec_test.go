package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSnapshotMalformedJSON(t *testing.T) {
	for _, blob := range []string{"", "not json", `"string"`, `[1,2,3]`} {
		snap := DecodeSnapshot([]byte(blob))
		assert.Empty(t, snap.Widgets, "blob %q", blob)
		assert.NotNil(t, snap.Layouts, "blob %q", blob)
	}
}

func TestDecodeSnapshotRoundTrip(t *testing.T) {
	original := Snapshot{
		Widgets: []Widget{
			NormalizeWidget(Widget{ID: "w-1", Title: "Open", Type: WidgetKPI}),
			NormalizeWidget(Widget{
				ID:           "w-2",
				Type:         WidgetBar,
				GroupBy:      GroupByStatus,
				StatusFilter: StatusFilterCustom,
				StatusIDs:    []string{"open", "done"},
				FilterGroups: []FilterGroup{{
					Match: MatchAny,
					Rules: []FilterRule{
						{Field: FieldAssignee, Operator: OpEqual, Value: "s1"},
						{Field: FieldAssignee, Operator: OpEqual, Unassigned: true},
					},
				}},
			}),
		},
		Layouts: Layouts{
			BreakpointLG: {{WidgetID: "w-1", X: 0, Y: 0, W: 4, H: 2, MinW: 3, MinH: 2, MaxW: 6, MaxH: 3}},
		},
	}

	data, err := EncodeSnapshot(original)
	require.NoError(t, err)
	decoded := DecodeSnapshot(data)

	assert.Equal(t, original.Widgets, decoded.Widgets)
	assert.Equal(t, original.Layouts[BreakpointLG], decoded.Layouts[BreakpointLG])
}

func TestDecodeSnapshotLegacyUnassignedSentinel(t *testing.T) {
	blob := `{
		"widgets": [{
			"id": "w-1",
			"type": "bar",
			"filterGroups": [{
				"match": "and",
				"rules": [{"field": "assignee", "operator": "eq", "value": "__unassigned__"}]
			}]
		}]
	}`
	snap := DecodeSnapshot([]byte(blob))
	require.Len(t, snap.Widgets, 1)
	require.Len(t, snap.Widgets[0].FilterGroups, 1)
	rule := snap.Widgets[0].FilterGroups[0].Rules[0]
	assert.True(t, rule.Unassigned)
	assert.Empty(t, rule.Value)
}

func TestDecodeSnapshotCoercesLooseTypes(t *testing.T) {
	blob := `{
		"widgets": [
			{"id": "w-1", "type": "kpi", "includeUnassigned": "true"},
			"garbage",
			{"id": 42, "type": "bar"}
		],
		"layouts": {
			"lg": [
				{"i": "w-1", "x": "3", "y": 1.6, "w": null, "h": 2},
				{"x": 0, "y": 0, "w": 2, "h": 2},
				"garbage"
			],
			"md": "garbage"
		}
	}`
	snap := DecodeSnapshot([]byte(blob))

	require.Len(t, snap.Widgets, 2)
	assert.True(t, snap.Widgets[0].IncludeUnassigned)
	assert.Empty(t, snap.Widgets[1].ID)

	require.Len(t, snap.Layouts[BreakpointLG], 1)
	item := snap.Layouts[BreakpointLG][0]
	assert.Equal(t, 3, item.X)
	assert.Equal(t, 2, item.Y)
	assert.Equal(t, 0, item.W)
	assert.Empty(t, snap.Layouts[BreakpointMD])
}

func TestDecodeSnapshotSurvivesNormalization(t *testing.T) {
	blob := `{
		"widgets": [{"id": "w-1", "type": "mystery", "size": "giant"}],
		"layouts": {"lg": [{"i": "w-1", "x": -5, "y": 90, "w": 200, "h": 1}]}
	}`
	snap := DecodeSnapshot([]byte(blob))

	store := NewStore(StoreOptions{})
	store.Restore(snap)

	layouts := store.Layouts()
	assertNoOverlap(t, layouts)
	assertWithinBounds(t, layouts)
	require.Len(t, store.Widgets(), 1)
	assert.Equal(t, WidgetKPI, store.Widgets()[0].Type)
}

func TestFloat64ValueCoercion(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 4.5, 4.5},
		{"int", 7, 7},
		{"numeric string", " 12.5 ", 12.5},
		{"bad string", "n/a", 0},
		{"json number", json.Number("3"), 3},
		{"nil", nil, 0},
		{"bool", true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, float64Value(tc.in))
		})
	}
}
