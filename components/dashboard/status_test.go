package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func workspaceStatuses() []Status {
	return []Status{
		{ID: "backlog", Name: "Backlog"},
		{ID: "doing", Name: "In progress"},
		{ID: "done", Name: "Done", IsFinal: true},
		{ID: "wontfix", Name: "Won't fix", IsFinal: true, IsCancelled: true},
	}
}

func TestClassifyStatuses(t *testing.T) {
	sets := ClassifyStatuses(workspaceStatuses())

	assert.Len(t, sets.All, 4)
	assert.Contains(t, sets.Active, "backlog")
	assert.Contains(t, sets.Active, "doing")
	assert.Contains(t, sets.Final, "done")
	assert.Contains(t, sets.Cancelled, "wontfix")
	// Cancelled wins over final.
	assert.NotContains(t, sets.Final, "wontfix")
}

func TestClassifyStatusesNameMarkers(t *testing.T) {
	statuses := []Status{
		{ID: "a", Name: "Cancelled", IsFinal: true},
		{ID: "b", Name: "Отменено", IsFinal: true},
		{ID: "c", Name: "Chancellor review"},
	}
	sets := ClassifyStatuses(statuses)

	assert.Contains(t, sets.Cancelled, "a")
	assert.Contains(t, sets.Cancelled, "b")
	assert.NotContains(t, sets.Cancelled, "c")
	assert.Contains(t, sets.Active, "c")
}

func TestResolveStatusSet(t *testing.T) {
	statuses := workspaceStatuses()
	cases := []struct {
		name   string
		widget Widget
		want   []string
	}{
		{"all", Widget{StatusFilter: StatusFilterAll}, []string{"backlog", "doing", "done", "wontfix"}},
		{"active", Widget{StatusFilter: StatusFilterActive}, []string{"backlog", "doing"}},
		{"final", Widget{StatusFilter: StatusFilterFinal}, []string{"done"}},
		{"cancelled", Widget{StatusFilter: StatusFilterCancelled}, []string{"wontfix"}},
		{"custom", Widget{StatusFilter: StatusFilterCustom, StatusIDs: []string{"doing", "done"}}, []string{"doing", "done"}},
		{"custom without ids falls back to all", Widget{StatusFilter: StatusFilterCustom}, []string{"backlog", "doing", "done", "wontfix"}},
		{"unknown filter falls back to all", Widget{StatusFilter: StatusFilter("bogus")}, []string{"backlog", "doing", "done", "wontfix"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := ResolveStatusSet(tc.widget, statuses)
			assert.Len(t, set, len(tc.want))
			for _, id := range tc.want {
				assert.Contains(t, set, id)
			}
		})
	}
}
