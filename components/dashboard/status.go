package dashboard

import "strings"

// Older workspaces never set the cancelled flag explicitly; those
// statuses are recognized by name instead.
var cancelledMarkers = []string{"cancel", "отмен"}

// StatusSets partitions a workspace's statuses into the named subsets a
// widget can scope itself to.
type StatusSets struct {
	All       map[string]struct{}
	Active    map[string]struct{}
	Final     map[string]struct{}
	Cancelled map[string]struct{}
}

// ClassifyStatuses buckets statuses into all/active/final/cancelled. A
// status is cancelled when flagged or when its name carries a known
// cancellation marker; final only counts when not cancelled.
func ClassifyStatuses(statuses []Status) StatusSets {
	sets := StatusSets{
		All:       make(map[string]struct{}, len(statuses)),
		Active:    make(map[string]struct{}),
		Final:     make(map[string]struct{}),
		Cancelled: make(map[string]struct{}),
	}
	for _, s := range statuses {
		sets.All[s.ID] = struct{}{}
		switch {
		case statusCancelled(s):
			sets.Cancelled[s.ID] = struct{}{}
		case s.IsFinal:
			sets.Final[s.ID] = struct{}{}
		default:
			sets.Active[s.ID] = struct{}{}
		}
	}
	return sets
}

func statusCancelled(s Status) bool {
	if s.IsCancelled {
		return true
	}
	name := strings.ToLower(s.Name)
	for _, marker := range cancelledMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// ResolveStatusSet expands a widget's declared status filter into the
// concrete id set it counts against. A custom filter with no ids falls
// back to all statuses.
func ResolveStatusSet(w Widget, statuses []Status) map[string]struct{} {
	sets := ClassifyStatuses(statuses)
	switch w.StatusFilter {
	case StatusFilterActive:
		return sets.Active
	case StatusFilterFinal:
		return sets.Final
	case StatusFilterCancelled:
		return sets.Cancelled
	case StatusFilterCustom:
		if len(w.StatusIDs) == 0 {
			return sets.All
		}
		custom := make(map[string]struct{}, len(w.StatusIDs))
		for _, id := range w.StatusIDs {
			custom[id] = struct{}{}
		}
		return custom
	default:
		return sets.All
	}
}
