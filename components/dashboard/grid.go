package dashboard

// Breakpoint is a named viewport width tier with its own column count
// and independent layout coordinate space.
type Breakpoint string

const (
	BreakpointLG Breakpoint = "lg"
	BreakpointMD Breakpoint = "md"
	BreakpointSM Breakpoint = "sm"
	BreakpointXS Breakpoint = "xs"
)

var breakpointCols = map[Breakpoint]int{
	BreakpointLG: 12,
	BreakpointMD: 10,
	BreakpointSM: 6,
	BreakpointXS: 2,
}

var breakpointOrder = []Breakpoint{BreakpointLG, BreakpointMD, BreakpointSM, BreakpointXS}

// Breakpoints returns the known breakpoints widest first.
func Breakpoints() []Breakpoint {
	out := make([]Breakpoint, len(breakpointOrder))
	copy(out, breakpointOrder)
	return out
}

// Cols returns the column count for a breakpoint, defaulting to the
// widest tier for unknown names.
func Cols(bp Breakpoint) int {
	if cols, ok := breakpointCols[bp]; ok {
		return cols
	}
	return breakpointCols[BreakpointLG]
}

// Dimensions is a tile size in grid cells.
type Dimensions struct {
	W int
	H int
}

// Bounds constrains a tile's width/height for its widget type.
type Bounds struct {
	MinW int
	MinH int
	MaxW int
	MaxH int
}

type sizeCategory string

const (
	categoryCompact sizeCategory = "compact"
	categoryPanel   sizeCategory = "panel"
)

// KPI tiles use a compact preset row; charts and milestone boards share
// the larger panel presets.
var sizePresets = map[sizeCategory]map[WidgetSize]Dimensions{
	categoryCompact: {
		SizeSmall:  {W: 3, H: 2},
		SizeMedium: {W: 4, H: 2},
		SizeLarge:  {W: 6, H: 3},
	},
	categoryPanel: {
		SizeSmall:  {W: 4, H: 3},
		SizeMedium: {W: 6, H: 4},
		SizeLarge:  {W: 12, H: 6},
	},
}

func categoryFor(t WidgetType) sizeCategory {
	if t == WidgetKPI {
		return categoryCompact
	}
	return categoryPanel
}

// SizeFor returns the preset cell size for a widget type at the given
// column count, clamping width so the tile always fits the grid.
func SizeFor(t WidgetType, size WidgetSize, cols int) Dimensions {
	presets := sizePresets[categoryFor(t)]
	dims, ok := presets[size]
	if !ok {
		dims = presets[SizeMedium]
	}
	if cols > 0 && dims.W > cols {
		dims.W = cols
	}
	return dims
}

// BoundsFor derives a widget's resize bounds: the small preset is the
// minimum and the large preset the maximum, both at the given columns.
func BoundsFor(w Widget, cols int) Bounds {
	min := SizeFor(w.Type, SizeSmall, cols)
	max := SizeFor(w.Type, SizeLarge, cols)
	return Bounds{MinW: min.W, MinH: min.H, MaxW: max.W, MaxH: max.H}
}

// Collides reports whether two tiles overlap. Touching edges do not
// count as a collision.
func Collides(a, b LayoutItem) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// FindFreePosition scans row-major (top to bottom, left to right) for
// the first slot where a tile of the given size collides with none of
// the existing items. The scan order is part of the contract: callers
// rely on deterministic placement.
func FindFreePosition(items []LayoutItem, size Dimensions, cols int) (int, int) {
	w := size.W
	if cols > 0 && w > cols {
		w = cols
	}
	maxY := 0
	for _, item := range items {
		if bottom := item.Y + item.H; bottom > maxY {
			maxY = bottom
		}
	}
	// A tile placed at maxY cannot overlap anything, so the scan always
	// terminates by then.
	for y := 0; y <= maxY; y++ {
		for x := 0; x+w <= cols; x++ {
			candidate := LayoutItem{X: x, Y: y, W: w, H: size.H}
			if !collidesAny(candidate, items) {
				return x, y
			}
		}
	}
	return 0, maxY
}

func collidesAny(candidate LayoutItem, items []LayoutItem) bool {
	for _, item := range items {
		if Collides(candidate, item) {
			return true
		}
	}
	return false
}
