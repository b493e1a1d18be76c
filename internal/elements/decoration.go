package elements

import "github.com/cs121287/zen/internal/rules"

// Moss support reach, in box distance.
const (
	MossLargeRockReach = 3
	MossStoneReach     = 2
	MossWaterReach     = 3
	MossEdgeReach      = 5
)

// LanternGap is the box distance a lantern keeps from any water cell and any
// bridge cell.
const LanternGap = 8

const (
	mossSpread       = 2 // cluster offsets are drawn from a ±2 box
	lanternClearance = 6
)

func moss() Variant {
	weights := zoneWeights{
		rules.ZoneFocalPoint: 1.2,
		rules.ZoneCenter:     0.8,
		rules.ZoneFlow:       1.0,
		rules.ZoneEdge:       1.5,
		rules.ZoneCorner:     2.0,
	}
	return Variant{
		Kind: rules.Moss,
		CanPlace: func(s Site) bool {
			return baseGate(rules.Moss, s) &&
				spaced(rules.Moss, s) &&
				mossFoothold(s)
		},
		Probability: func(s Site) float64 {
			p := weigh(rules.Moss, s, 0.3, weights)
			if s.Ctx.NearWater(s.Row, s.Col, MossWaterReach) {
				p *= 1.5
			}
			p *= s.Texture.Modulate(s.Row, s.Col)
			p *= decay(s, rules.Moss, 0.1)
			return fade(p, s)
		},
		Effect: spreadMoss,
	}
}

// mossFoothold reports whether moss has something to grow against: a stone,
// water, or the garden wall.
func mossFoothold(s Site) bool {
	return s.Ctx.IsNear(rules.LargeRocks, s.Row, s.Col, MossLargeRockReach) ||
		s.Ctx.IsNear(rules.MediumRocks, s.Row, s.Col, MossStoneReach) ||
		s.Ctx.IsNear(rules.SmallStones, s.Row, s.Col, MossStoneReach) ||
		s.Ctx.NearWater(s.Row, s.Col, MossWaterReach) ||
		s.Grid.EdgeDistance(s.Row, s.Col) <= MossEdgeReach
}

// spreadMoss paints the seed and then one to three neighbours drawn from a small
// box around it, onto background only and never past the kind's cap.
func spreadMoss(s Site) int {
	paint(rules.Moss, s, s.Row, s.Col)
	painted := 1

	limit := rules.LimitsFor(rules.Moss).Max
	want := intRange(s.Rand, 1, 3)
	grown := 0
	for tries := want * 4; tries > 0 && grown < want; tries-- {
		if s.Ctx.Count(rules.Moss) >= limit {
			break
		}
		dr := s.Rand.Intn(2*mossSpread+1) - mossSpread
		dc := s.Rand.Intn(2*mossSpread+1) - mossSpread
		if dr == 0 && dc == 0 {
			continue
		}
		r, c := s.Row+dr, s.Col+dc
		if !s.Grid.IsBackground(r, c) || !cellAllows(rules.Moss, s, r, c) {
			continue
		}
		paint(rules.Moss, s, r, c)
		grown++
		painted++
	}
	return painted
}

func stoneLantern() Variant {
	weights := zoneWeights{
		rules.ZoneFocalPoint: 0.5,
		rules.ZoneCenter:     0.8,
		rules.ZoneEdge:       1.3,
		rules.ZoneCorner:     1.5,
	}
	patterns := []rules.Symbol{
		rules.HorizontalRaked.Symbol(),
		rules.VerticalRaked.Symbol(),
		rules.CurvedRaked.Symbol(),
	}
	return Variant{
		Kind: rules.StoneLantern,
		CanPlace: func(s Site) bool {
			return baseGate(rules.StoneLantern, s) &&
				spaced(rules.StoneLantern, s) &&
				!s.Ctx.NearWater(s.Row, s.Col, LanternGap) &&
				!s.Ctx.IsNear(rules.BridgePath, s.Row, s.Col, LanternGap) &&
				s.Grid.ClearAround(s.Row, s.Col, lanternClearance, patterns...)
		},
		Probability: func(s Site) float64 {
			return fade(weigh(rules.StoneLantern, s, 0.2, weights), s)
		},
		Effect: single(rules.StoneLantern),
	}
}
