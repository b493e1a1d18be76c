package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cs121287/zen/internal/elements"
	"github.com/cs121287/zen/internal/rules"
)

// neverAccepted is a moss variant that the probability gate always rejects.
// open decides how many sites CanPlace lets through in total.
func neverAccepted(open int) (elements.Variant, *int) {
	painted := 0
	return elements.Variant{
		Kind: rules.Moss,
		CanPlace: func(s elements.Site) bool {
			return painted < open
		},
		Probability: func(s elements.Site) float64 { return -1 },
		Effect: func(s elements.Site) int {
			s.Grid.Set(s.Row, s.Col, symMoss)
			s.Ctx.Record(rules.Moss, s.Row, s.Col)
			painted++
			return 1
		},
	}, &painted
}

func TestForcedPassMeetsMinimum(t *testing.T) {
	r := gravelRun(t, 4)
	v, painted := neverAccepted(100)
	lim := rules.PlacementLimits{Min: 3, Max: 5}

	require.NoError(t, r.placeVariant(v, lim, span{70, 80}))

	assert.Equal(t, lim.Min, r.placements[rules.Moss], "forced pass stops at the minimum")
	assert.Equal(t, lim.Min, *painted)
	assert.Equal(t, lim.Min, r.ctx.Count(rules.Moss))
	assert.Empty(t, r.warnings)
}

func TestForcedPassShortfallWarnsOnce(t *testing.T) {
	tests := []struct {
		name string
		open int
	}{
		{"no sites", 0},
		{"one site", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gravelRun(t, 5)
			v, _ := neverAccepted(tt.open)
			lim := rules.PlacementLimits{Min: 3, Max: 5}

			require.NoError(t, r.placeVariant(v, lim, span{70, 80}))

			assert.Equal(t, tt.open, r.placements[rules.Moss])
			require.Len(t, r.warnings, 1)
			assert.Equal(t, SoftConstraintUnmet{Kind: rules.Moss, Min: 3, Placed: tt.open}, r.warnings[0])
		})
	}
}

func TestForcedPassSkippedWhenMinimumMet(t *testing.T) {
	r := gravelRun(t, 6)
	v, painted := neverAccepted(100)
	v.Probability = func(elements.Site) float64 { return 1 }
	lim := rules.PlacementLimits{Min: 3, Max: 5}

	require.NoError(t, r.placeVariant(v, lim, span{70, 80}))

	assert.Equal(t, lim.Max, r.placements[rules.Moss], "stochastic loop runs up to the maximum")
	assert.Equal(t, lim.Max, *painted)
	assert.Empty(t, r.warnings)
}

func TestForcedPassObservesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := gravelRun(t, 7)
	r.mon = newMonitor(ctx, nil)
	lim := rules.PlacementLimits{Min: 1, Max: 1}
	budget := attemptsPerSlot * lim.Max

	v, painted := neverAccepted(0)
	calls := 0
	v.CanPlace = func(elements.Site) bool {
		calls++
		if calls > budget {
			cancel()
		}
		return false
	}

	err := r.placeVariant(v, lim, span{70, 80})
	require.ErrorIs(t, err, ErrCancelled)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, budget+checkEvery, calls, "cancellation seen at the next forced check")
	assert.Zero(t, *painted)
	assert.Empty(t, r.warnings)
}
