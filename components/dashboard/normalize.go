package dashboard

// NormalizeLayouts repairs a persisted (possibly stale or hand-edited)
// layout map against the current widget list. For every breakpoint it
// drops entries whose widget no longer exists, appends entries for
// widgets that lack one, and coerces every rectangle into the widget's
// bounds and the breakpoint's column range. Items keep their stored
// order; that order is also the collision-resolution priority, so an
// earlier item never moves to make room for a later one.
//
// Normalizing an already-normalized layout returns an identical result.
func NormalizeLayouts(layouts Layouts, widgets []Widget) Layouts {
	index := make(map[string]Widget, len(widgets))
	for _, w := range widgets {
		index[w.ID] = w
	}

	out := make(Layouts, len(breakpointOrder))
	for _, bp := range breakpointOrder {
		cols := Cols(bp)
		placed := make([]LayoutItem, 0, len(widgets))
		seen := make(map[string]struct{}, len(widgets))

		for _, item := range layouts[bp] {
			w, ok := index[item.WidgetID]
			if !ok {
				continue
			}
			if _, dup := seen[item.WidgetID]; dup {
				continue
			}
			placed = append(placed, placeItem(item, w, cols, placed))
			seen[item.WidgetID] = struct{}{}
		}

		for _, w := range widgets {
			if _, ok := seen[w.ID]; ok {
				continue
			}
			size := SizeFor(w.Type, w.Size, cols)
			x, y := FindFreePosition(placed, size, cols)
			bounds := BoundsFor(w, cols)
			placed = append(placed, LayoutItem{
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
			seen[w.ID] = struct{}{}
		}

		out[bp] = placed
	}
	return out
}

// placeItem clamps a stored rectangle to the widget's current bounds
// and re-positions it only if the clamped rectangle still collides with
// an already-placed item.
func placeItem(item LayoutItem, w Widget, cols int, placed []LayoutItem) LayoutItem {
	bounds := BoundsFor(w, cols)
	clamped := clampItem(item, bounds, cols)
	if collidesAny(clamped, placed) {
		x, y := FindFreePosition(placed, Dimensions{W: clamped.W, H: clamped.H}, cols)
		clamped.X = x
		clamped.Y = y
	}
	return clamped
}

func clampItem(item LayoutItem, bounds Bounds, cols int) LayoutItem {
	maxW := bounds.MaxW
	if maxW > cols {
		maxW = cols
	}
	item.W = clampInt(item.W, minInt(bounds.MinW, maxW), maxW)
	item.H = clampInt(item.H, bounds.MinH, bounds.MaxH)
	item.X = clampInt(item.X, 0, cols-item.W)
	if item.Y < 0 {
		item.Y = 0
	}
	item.MinW = bounds.MinW
	item.MinH = bounds.MinH
	item.MaxW = bounds.MaxW
	item.MaxH = bounds.MaxH
	return item
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
