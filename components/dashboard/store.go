package dashboard

import (
	"context"
	"sync"
)

// StoreOptions configures a dashboard Store.
type StoreOptions struct {
	Telemetry Telemetry
}

// Store owns one dashboard's widget list and per-breakpoint layouts.
// All mutations run under a single lock so positions are always
// computed against a consistent snapshot of existing tiles, and every
// mutation marks the store dirty for an external debounced persister.
type Store struct {
	mu        sync.Mutex
	widgets   []Widget
	layouts   Layouts
	dirty     bool
	telemetry Telemetry
}

// NewStore builds an empty store.
func NewStore(opts StoreOptions) *Store {
	return &Store{
		layouts:   NormalizeLayouts(nil, nil),
		telemetry: normalizeTelemetry(opts.Telemetry),
	}
}

// AddWidget normalizes the widget, appends it, and places it at the
// first free slot of every breakpoint. The normalized widget (with its
// assigned id) is returned.
func (s *Store) AddWidget(ctx context.Context, w Widget) Widget {
	s.mu.Lock()
	defer s.mu.Unlock()

	w = NormalizeWidget(w)
	s.widgets = append(s.widgets, w)
	for _, bp := range breakpointOrder {
		cols := Cols(bp)
		size := SizeFor(w.Type, w.Size, cols)
		items := s.layouts[bp]
		x, y := FindFreePosition(items, size, cols)
		bounds := BoundsFor(w, cols)
		s.layouts[bp] = append(items, LayoutItem{
			WidgetID: w.ID,
			X:        x,
			Y:        y,
			W:        size.W,
			H:        size.H,
			MinW:     bounds.MinW,
			MinH:     bounds.MinH,
			MaxW:     bounds.MaxW,
			MaxH:     bounds.MaxH,
		})
	}
	s.dirty = true
	s.telemetry.Record(ctx, "dashboard.widget.add", map[string]any{
		"widget_id": w.ID,
		"type":      string(w.Type),
	})
	return w
}

// WidgetPatch is a partial widget update; nil fields are left alone.
// Wire names match the Widget JSON shape so clients patch with the same
// keys they read.
type WidgetPatch struct {
	Title             *string        `json:"title,omitempty"`
	Type              *WidgetType    `json:"type,omitempty"`
	Period            *Period        `json:"period,omitempty"`
	GroupBy           *GroupBy       `json:"groupBy,omitempty"`
	Size              *WidgetSize    `json:"size,omitempty"`
	BarPalette        *string        `json:"barPalette,omitempty"`
	MilestoneView     *string        `json:"milestoneView,omitempty"`
	MilestoneCalendar *string        `json:"milestoneCalendarMode,omitempty"`
	StatusFilter      *StatusFilter  `json:"statusFilter,omitempty"`
	StatusIDs         *[]string      `json:"statusIds,omitempty"`
	IncludeUnassigned *bool          `json:"includeUnassigned,omitempty"`
	FilterGroups      *[]FilterGroup `json:"filterGroups,omitempty"`
}

// UpdateWidget merges a patch into the widget with the given id. A size
// change resets the tile to the new preset in every breakpoint; a type
// change re-clamps the existing rectangle to the new bounds in place.
// Either way a tile only moves if its new rectangle would overlap an
// earlier one. Unknown ids are ignored.
func (s *Store) UpdateWidget(ctx context.Context, id string, patch WidgetPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.widgets {
		if s.widgets[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	w := s.widgets[idx]
	sizeChanged := patch.Size != nil && *patch.Size != w.Size
	typeChanged := patch.Type != nil && *patch.Type != w.Type
	applyPatch(&w, patch)
	w = NormalizeWidget(w)
	s.widgets[idx] = w

	if sizeChanged || typeChanged {
		for _, bp := range breakpointOrder {
			s.reflowWidget(bp, w, sizeChanged)
		}
	}
	s.dirty = true
	s.telemetry.Record(ctx, "dashboard.widget.update", map[string]any{
		"widget_id": id,
	})
}

// RemoveWidget drops the widget and its tile in every breakpoint.
func (s *Store) RemoveWidget(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.widgets[:0]
	removed := false
	for _, w := range s.widgets {
		if w.ID == id {
			removed = true
			continue
		}
		kept = append(kept, w)
	}
	if !removed {
		return
	}
	s.widgets = kept
	for bp, items := range s.layouts {
		filtered := items[:0]
		for _, item := range items {
			if item.WidgetID != id {
				filtered = append(filtered, item)
			}
		}
		s.layouts[bp] = filtered
	}
	s.dirty = true
	s.telemetry.Record(ctx, "dashboard.widget.remove", map[string]any{
		"widget_id": id,
	})
}

// SetLayouts replaces the layout map with externally produced drag or
// resize results. Raw input is never trusted: it always passes through
// the normalizer first.
func (s *Store) SetLayouts(ctx context.Context, raw Layouts) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.layouts = NormalizeLayouts(raw, s.widgets)
	s.dirty = true
	s.telemetry.Record(ctx, "dashboard.layout.set", map[string]any{
		"breakpoints": len(raw),
	})
}

// Widgets returns a copy of the widget list.
func (s *Store) Widgets() []Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Widget(nil), s.widgets...)
}

// Layouts returns a deep copy of the layout map.
func (s *Store) Layouts() Layouts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layouts.Clone()
}

// Snapshot returns the persistable {widgets, layouts} pair.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Widgets: append([]Widget(nil), s.widgets...),
		Layouts: s.layouts.Clone(),
	}
}

// Restore loads a previously persisted snapshot, repairing whatever the
// stored blob contains. The dirty flag is cleared: a freshly loaded
// board has nothing to persist until the next mutation.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	widgets := make([]Widget, 0, len(snap.Widgets))
	for _, w := range snap.Widgets {
		widgets = append(widgets, NormalizeWidget(w))
	}
	s.widgets = widgets
	s.layouts = NormalizeLayouts(snap.Layouts, widgets)
	s.dirty = false
}

// Dirty reports whether unsaved mutations exist.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// MarkSaved clears the dirty flag after external persistence succeeds.
func (s *Store) MarkSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// reflowWidget reapplies geometry for one widget in one breakpoint
// after a size or type change. resetSize switches the tile to the new
// size preset; otherwise the current rectangle is clamped to the new
// bounds so a type change alone never jumps the tile around.
func (s *Store) reflowWidget(bp Breakpoint, w Widget, resetSize bool) {
	cols := Cols(bp)
	items := s.layouts[bp]
	idx := -1
	for i := range items {
		if items[i].WidgetID == w.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	item := items[idx]
	bounds := BoundsFor(w, cols)
	if resetSize {
		size := SizeFor(w.Type, w.Size, cols)
		item.W = size.W
		item.H = size.H
	}
	item = clampItem(item, bounds, cols)
	others := make([]LayoutItem, 0, len(items)-1)
	others = append(others, items[:idx]...)
	others = append(others, items[idx+1:]...)
	if collidesAny(item, others) {
		x, y := FindFreePosition(others, Dimensions{W: item.W, H: item.H}, cols)
		item.X = x
		item.Y = y
	}
	items[idx] = item
}

func applyPatch(w *Widget, patch WidgetPatch) {
	if patch.Title != nil {
		w.Title = *patch.Title
	}
	if patch.Type != nil {
		w.Type = *patch.Type
	}
	if patch.Period != nil {
		w.Period = *patch.Period
	}
	if patch.GroupBy != nil {
		w.GroupBy = *patch.GroupBy
	}
	if patch.Size != nil {
		w.Size = *patch.Size
	}
	if patch.BarPalette != nil {
		w.BarPalette = *patch.BarPalette
	}
	if patch.MilestoneView != nil {
		w.MilestoneView = *patch.MilestoneView
	}
	if patch.MilestoneCalendar != nil {
		w.MilestoneCalendar = *patch.MilestoneCalendar
	}
	if patch.StatusFilter != nil {
		w.StatusFilter = *patch.StatusFilter
	}
	if patch.StatusIDs != nil {
		w.StatusIDs = append([]string(nil), (*patch.StatusIDs)...)
	}
	if patch.IncludeUnassigned != nil {
		w.IncludeUnassigned = *patch.IncludeUnassigned
	}
	if patch.FilterGroups != nil {
		w.FilterGroups = append([]FilterGroup(nil), (*patch.FilterGroups)...)
	}
}
