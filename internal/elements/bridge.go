package elements

import (
	"github.com/cs121287/zen/internal/garden"
	"github.com/cs121287/zen/internal/rules"
)

const (
	minBridgeLength    = 5
	maxBridgeLength    = 12
	horizontalChance   = 0.6
	bridgeLanternGap   = 8
	bridgeWaterReach   = 6
	bridgeLandingCells = 2 // cells of bank past the far shore
)

func bridgePath() Variant {
	weights := zoneWeights{
		rules.ZoneFocalPoint: 0.6,
		rules.ZoneCenter:     1.0,
		rules.ZoneFlow:       1.5,
		rules.ZoneEdge:       0.5,
		rules.ZoneCorner:     0.3,
	}
	return Variant{
		Kind: rules.BridgePath,
		CanPlace: func(s Site) bool {
			return !s.Ctx.BridgePlaced() &&
				baseGate(rules.BridgePath, s) &&
				!s.Ctx.IsNear(rules.StoneLantern, s.Row, s.Col, bridgeLanternGap)
		},
		Probability: func(s Site) float64 {
			p := weigh(rules.BridgePath, s, 0.1, weights)
			if s.Ctx.NearWater(s.Row, s.Col, bridgeWaterReach) {
				p *= 4
			}
			return fade(p, s)
		},
		Effect: layBridge,
	}
}

// layBridge runs a straight path from the site. A path that would meet water is
// stretched to land past the far bank of the first water it meets, within the
// room left on the grid. Painting stops at the first cell that is neither free
// ground nor water.
func layBridge(s Site) int {
	length := intRange(s.Rand, minBridgeLength, maxBridgeLength)
	horizontal := s.Rand.Float64() < horizontalChance

	dr, dc := 1, 0
	room := s.Grid.Height - s.Row
	if horizontal {
		dr, dc = 0, 1
		room = s.Grid.Width - s.Col
	}

	if s.Ctx.WouldCrossWater(s.Row, s.Col, length, horizontal) {
		at := func(i int) garden.Point { return garden.Point{Row: s.Row + dr*i, Col: s.Col + dc*i} }
		far := 0
		for !s.Ctx.IsWater(at(far)) {
			far++
		}
		for far+1 < room && s.Ctx.IsWater(at(far+1)) {
			far++
		}
		length = max(length, far+1+bridgeLandingCells)
	}
	length = min(length, room)

	water := rules.WaterFeature.Symbol()
	painted := 0
	for i := 0; i < length; i++ {
		r, c := s.Row+dr*i, s.Col+dc*i
		if !cellAllows(rules.BridgePath, s, r, c) {
			break
		}
		if cur := s.Grid.At(r, c); !rules.IsBackground(cur) && cur != water {
			break
		}
		paint(rules.BridgePath, s, r, c)
		painted++
	}
	return painted
}
