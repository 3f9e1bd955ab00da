package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeForUsesCompactPresetForKPI(t *testing.T) {
	kpi := SizeFor(WidgetKPI, SizeSmall, 12)
	chart := SizeFor(WidgetBar, SizeSmall, 12)
	assert.Less(t, kpi.W*kpi.H, chart.W*chart.H)
}

func TestSizeForClampsWidthToColumns(t *testing.T) {
	dims := SizeFor(WidgetLine, SizeLarge, 2)
	assert.Equal(t, 2, dims.W)
}

func TestSizeForFallsBackToMediumForUnknownSize(t *testing.T) {
	dims := SizeFor(WidgetBar, WidgetSize("huge"), 12)
	assert.Equal(t, SizeFor(WidgetBar, SizeMedium, 12), dims)
}

func TestBoundsForSpanSmallToLarge(t *testing.T) {
	bounds := BoundsFor(Widget{Type: WidgetBar}, 12)
	small := SizeFor(WidgetBar, SizeSmall, 12)
	large := SizeFor(WidgetBar, SizeLarge, 12)
	assert.Equal(t, small.W, bounds.MinW)
	assert.Equal(t, small.H, bounds.MinH)
	assert.Equal(t, large.W, bounds.MaxW)
	assert.Equal(t, large.H, bounds.MaxH)
}

func TestCollides(t *testing.T) {
	a := LayoutItem{X: 0, Y: 0, W: 4, H: 2}
	cases := []struct {
		name string
		b    LayoutItem
		want bool
	}{
		{"overlapping", LayoutItem{X: 2, Y: 1, W: 4, H: 2}, true},
		{"contained", LayoutItem{X: 1, Y: 0, W: 2, H: 1}, true},
		{"touching right edge", LayoutItem{X: 4, Y: 0, W: 4, H: 2}, false},
		{"touching bottom edge", LayoutItem{X: 0, Y: 2, W: 4, H: 2}, false},
		{"disjoint", LayoutItem{X: 8, Y: 4, W: 2, H: 2}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Collides(a, tc.b))
			assert.Equal(t, tc.want, Collides(tc.b, a))
		})
	}
}

func TestFindFreePositionEmptyGrid(t *testing.T) {
	x, y := FindFreePosition(nil, Dimensions{W: 4, H: 3}, 12)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestFindFreePositionBelowFullWidthRow(t *testing.T) {
	existing := []LayoutItem{{X: 0, Y: 0, W: 12, H: 2}}
	x, y := FindFreePosition(existing, Dimensions{W: 3, H: 2}, 12)
	assert.Equal(t, 0, x)
	assert.Equal(t, 2, y)
}

func TestFindFreePositionFillsGapsRowMajor(t *testing.T) {
	existing := []LayoutItem{
		{X: 0, Y: 0, W: 6, H: 4},
		{X: 6, Y: 0, W: 4, H: 2},
	}
	// The 2x2 gap at (10,0) comes before anything on later rows.
	x, y := FindFreePosition(existing, Dimensions{W: 2, H: 2}, 12)
	assert.Equal(t, 10, x)
	assert.Equal(t, 0, y)
}

func TestFindFreePositionClampsOversizedWidth(t *testing.T) {
	x, y := FindFreePosition(nil, Dimensions{W: 20, H: 2}, 6)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestColsUnknownBreakpointDefaultsToWidest(t *testing.T) {
	assert.Equal(t, 12, Cols(Breakpoint("xxl")))
}
