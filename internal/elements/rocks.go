package elements

import "github.com/cs121287/zen/internal/rules"

// Clear-space radii around newly placed stones.
const (
	largeRockClearance  = 4
	mediumRockClearance = 2
)

func largeRocks() Variant {
	weights := zoneWeights{
		rules.ZoneFocalPoint: 3.0,
		rules.ZoneCenter:     1.5,
		rules.ZoneFlow:       0.8,
		rules.ZoneEdge:       0.4,
		rules.ZoneCorner:     0.6,
	}
	return Variant{
		Kind: rules.LargeRocks,
		CanPlace: func(s Site) bool {
			return baseGate(rules.LargeRocks, s) &&
				spaced(rules.LargeRocks, s) &&
				s.Grid.ClearAround(s.Row, s.Col, largeRockClearance)
		},
		Probability: func(s Site) float64 {
			p := weigh(rules.LargeRocks, s, 0.3, weights)
			p *= decay(s, rules.LargeRocks, 0.5)
			return fade(p, s)
		},
		Effect: single(rules.LargeRocks),
	}
}

func mediumRocks() Variant {
	weights := zoneWeights{
		rules.ZoneFocalPoint: 1.5,
		rules.ZoneCenter:     1.3,
		rules.ZoneFlow:       0.9,
		rules.ZoneEdge:       0.7,
		rules.ZoneCorner:     1.0,
	}
	return Variant{
		Kind: rules.MediumRocks,
		CanPlace: func(s Site) bool {
			return baseGate(rules.MediumRocks, s) &&
				spaced(rules.MediumRocks, s) &&
				!s.Ctx.IsNear(rules.LargeRocks, s.Row, s.Col, 2) &&
				s.Grid.ClearAround(s.Row, s.Col, mediumRockClearance)
		},
		Probability: func(s Site) float64 {
			p := weigh(rules.MediumRocks, s, 0.25, weights)
			// Supporting stones gather around a principal stone.
			if s.Ctx.NearestDistance(rules.LargeRocks, s.Row, s.Col) <= 10 {
				p *= 1.6
			}
			p *= decay(s, rules.MediumRocks, 0.15)
			return fade(p, s)
		},
		Effect: single(rules.MediumRocks),
	}
}

func smallStones() Variant {
	weights := zoneWeights{
		rules.ZoneFocalPoint: 1.0,
		rules.ZoneCenter:     1.0,
		rules.ZoneFlow:       1.1,
		rules.ZoneEdge:       1.3,
		rules.ZoneCorner:     1.4,
	}
	return Variant{
		Kind: rules.SmallStones,
		CanPlace: func(s Site) bool {
			return baseGate(rules.SmallStones, s) && spaced(rules.SmallStones, s)
		},
		Probability: func(s Site) float64 {
			p := weigh(rules.SmallStones, s, 0.2, weights)
			if s.Ctx.IsNearAny(rockKinds[:2], s.Row, s.Col, 6) {
				p *= 1.4
			}
			p *= s.Texture.Modulate(s.Row, s.Col)
			return fade(p, s)
		},
		Effect: single(rules.SmallStones),
	}
}

// single is the effect of a one-cell element.
func single(kind rules.ElementKind) func(Site) int {
	return func(s Site) int {
		paint(kind, s, s.Row, s.Col)
		return 1
	}
}
