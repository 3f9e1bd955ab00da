package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWidgets(ids ...string) []Widget {
	widgets := make([]Widget, len(ids))
	for i, id := range ids {
		widgets[i] = Widget{ID: id, Type: WidgetBar, Size: SizeMedium}
	}
	return widgets
}

func assertNoOverlap(t *testing.T, layouts Layouts) {
	t.Helper()
	for bp, items := range layouts {
		for i := range items {
			for j := i + 1; j < len(items); j++ {
				if Collides(items[i], items[j]) {
					t.Fatalf("breakpoint %s: %v overlaps %v", bp, items[i], items[j])
				}
			}
		}
	}
}

func assertWithinBounds(t *testing.T, layouts Layouts) {
	t.Helper()
	for bp, items := range layouts {
		cols := Cols(bp)
		for _, item := range items {
			if item.W < item.MinW && item.MinW <= cols {
				t.Fatalf("breakpoint %s: %s width %d below min %d", bp, item.WidgetID, item.W, item.MinW)
			}
			if item.W > item.MaxW || item.H < item.MinH || item.H > item.MaxH {
				t.Fatalf("breakpoint %s: %s out of bounds: %+v", bp, item.WidgetID, item)
			}
			if item.X < 0 || item.X+item.W > cols || item.Y < 0 {
				t.Fatalf("breakpoint %s: %s outside grid: %+v", bp, item.WidgetID, item)
			}
		}
	}
}

func TestNormalizeLayoutsPlacesMissingWidgets(t *testing.T) {
	widgets := testWidgets("a", "b", "c")
	layouts := NormalizeLayouts(Layouts{}, widgets)

	for _, bp := range Breakpoints() {
		require.Len(t, layouts[bp], 3, "breakpoint %s", bp)
	}
	assertNoOverlap(t, layouts)
	assertWithinBounds(t, layouts)
}

func TestNormalizeLayoutsDropsDanglingEntries(t *testing.T) {
	widgets := testWidgets("a")
	raw := Layouts{
		BreakpointLG: {
			{WidgetID: "ghost", X: 0, Y: 0, W: 4, H: 3},
			{WidgetID: "a", X: 4, Y: 0, W: 6, H: 4},
		},
	}
	layouts := NormalizeLayouts(raw, widgets)
	require.Len(t, layouts[BreakpointLG], 1)
	assert.Equal(t, "a", layouts[BreakpointLG][0].WidgetID)
}

func TestNormalizeLayoutsDropsDuplicateEntries(t *testing.T) {
	widgets := testWidgets("a")
	raw := Layouts{
		BreakpointLG: {
			{WidgetID: "a", X: 0, Y: 0, W: 6, H: 4},
			{WidgetID: "a", X: 6, Y: 0, W: 6, H: 4},
		},
	}
	layouts := NormalizeLayouts(raw, widgets)
	require.Len(t, layouts[BreakpointLG], 1)
	assert.Equal(t, 0, layouts[BreakpointLG][0].X)
}

func TestNormalizeLayoutsCoercesOutOfRangeGeometry(t *testing.T) {
	widgets := testWidgets("a")
	raw := Layouts{
		BreakpointLG: {
			{WidgetID: "a", X: 40, Y: -3, W: 99, H: 1},
		},
	}
	layouts := NormalizeLayouts(raw, widgets)
	assertWithinBounds(t, layouts)
	item := layouts[BreakpointLG][0]
	assert.Equal(t, 12, item.W)
	assert.Equal(t, 0, item.X)
	assert.Equal(t, 0, item.Y)
}

func TestNormalizeLayoutsRepositionsOnResidualCollision(t *testing.T) {
	widgets := testWidgets("a", "b")
	raw := Layouts{
		BreakpointLG: {
			{WidgetID: "a", X: 0, Y: 0, W: 6, H: 4},
			{WidgetID: "b", X: 0, Y: 0, W: 6, H: 4},
		},
	}
	layouts := NormalizeLayouts(raw, widgets)
	assertNoOverlap(t, layouts)
	// Earlier entries win: "a" keeps its slot, "b" moves.
	assert.Equal(t, 0, layouts[BreakpointLG][0].X)
	assert.Equal(t, 0, layouts[BreakpointLG][0].Y)
	b := layouts[BreakpointLG][1]
	assert.Equal(t, 6, b.X)
	assert.Equal(t, 0, b.Y)
}

func TestNormalizeLayoutsIdempotent(t *testing.T) {
	widgets := testWidgets("a", "b", "c", "d")
	first := NormalizeLayouts(Layouts{}, widgets)
	second := NormalizeLayouts(first, widgets)
	assert.Equal(t, first, second)
}

func TestNormalizeLayoutsReclampsAfterTypeChange(t *testing.T) {
	widgets := []Widget{{ID: "a", Type: WidgetKPI, Size: SizeSmall}}
	layouts := NormalizeLayouts(Layouts{}, widgets)
	item := layouts[BreakpointLG][0]

	// Same widget becomes a bar chart: rectangle grows into the new
	// minimum but the tile stays where it was.
	widgets[0].Type = WidgetBar
	relaid := NormalizeLayouts(layouts, widgets)
	updated := relaid[BreakpointLG][0]
	assert.Equal(t, item.X, updated.X)
	assert.Equal(t, item.Y, updated.Y)
	assert.GreaterOrEqual(t, updated.W, SizeFor(WidgetBar, SizeSmall, 12).W)
	assertWithinBounds(t, relaid)
}
