package zone_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cs121287/zen/internal/rules"
	"github.com/cs121287/zen/internal/zone"
)

func TestDominantHighestInfluenceWins(t *testing.T) {
	zones := []zone.Zone{
		{Kind: rules.ZoneEdge, StartRow: 0, StartCol: 0, Width: 10, Height: 10, Influence: 0.4},
		{Kind: rules.ZoneCenter, StartRow: 2, StartCol: 2, Width: 4, Height: 4, Influence: 0.8},
	}
	assert.Equal(t, rules.ZoneCenter, zone.Dominant(zones, 3, 3).Kind)
	assert.Equal(t, rules.ZoneEdge, zone.Dominant(zones, 8, 8).Kind)
}

func TestDominantTieGoesToFirstDeclared(t *testing.T) {
	zones := []zone.Zone{
		{Kind: rules.ZoneFlow, StartRow: 0, StartCol: 0, Width: 10, Height: 10, Influence: 0.5},
		{Kind: rules.ZoneCorner, StartRow: 0, StartCol: 0, Width: 10, Height: 10, Influence: 0.5},
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, rules.ZoneFlow, zone.Dominant(zones, 4, 4).Kind)
	}

	swapped := []zone.Zone{zones[1], zones[0]}
	assert.Equal(t, rules.ZoneCorner, zone.Dominant(swapped, 4, 4).Kind)
}

func TestDominantFallsBackToNearestCenter(t *testing.T) {
	zones := []zone.Zone{
		{Kind: rules.ZoneCorner, StartRow: 0, StartCol: 0, Width: 2, Height: 2, Influence: 0.9},
		{Kind: rules.ZoneCenter, StartRow: 20, StartCol: 20, Width: 2, Height: 2, Influence: 0.8},
	}
	assert.Equal(t, rules.ZoneCorner, zone.Dominant(zones, 5, 5).Kind)
	assert.Equal(t, rules.ZoneCenter, zone.Dominant(zones, 15, 15).Kind)
}

func TestDistanceInfluence(t *testing.T) {
	z := zone.Zone{Kind: rules.ZoneCenter, StartRow: 0, StartCol: 0, Width: 10, Height: 10, Influence: 0.8}

	assert.InDelta(t, 1.0, zone.DistanceInfluence(z, 5, 5), 1e-9)
	assert.InDelta(t, 0.8, zone.DistanceInfluence(z, 5, 6), 1e-9)
	assert.InDelta(t, 0.1, zone.DistanceInfluence(z, 50, 50), 1e-9)

	for r := -5; r < 20; r++ {
		for c := -5; c < 20; c++ {
			v := zone.DistanceInfluence(z, r, c)
			assert.Greater(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestLayoutCentersResolveToCenter(t *testing.T) {
	zones := zone.Layout(120, 60)
	center, ok := zone.Find(zones, rules.ZoneCenter)
	require.True(t, ok)

	cr, cc := center.Center()
	got := zone.Dominant(zones, int(cr), int(cc))
	assert.Equal(t, rules.ZoneCenter, got.Kind)
	assert.Equal(t, center, got)
}

func TestLayoutCoversEverySize(t *testing.T) {
	for _, dims := range [][2]int{{20, 12}, {37, 19}, {120, 60}, {200, 90}} {
		w, h := dims[0], dims[1]
		zones := zone.Layout(w, h)
		require.NotEmpty(t, zones)

		kinds := map[rules.ZoneKind]bool{}
		for _, z := range zones {
			kinds[z.Kind] = true
			assert.GreaterOrEqual(t, z.Width, 1)
			assert.GreaterOrEqual(t, z.Height, 1)
		}
		assert.Len(t, kinds, 6, "all six zone kinds present for %dx%d", w, h)

		corner := zone.Dominant(zones, 0, 0)
		assert.Equal(t, rules.ZoneCorner, corner.Kind, "%dx%d", w, h)
	}
}

func TestCenter(t *testing.T) {
	z := zone.Zone{StartRow: 2, StartCol: 4, Width: 6, Height: 3}
	r, c := z.Center()
	assert.Equal(t, 3.0, r)
	assert.Equal(t, 7.0, c)
	assert.InDelta(t, math.Hypot(1, 1), z.DistanceTo(4, 8), 1e-9)
}
