package elements

import (
	"math"

	"github.com/cs121287/zen/internal/garden"
	"github.com/cs121287/zen/internal/rules"
)

const (
	waterClearance = 6
	pondChance     = 0.6
	maxPondRadius  = 2
	minRiverSteps  = 8
	maxRiverSteps  = 20
	riverWobble    = 0.5 // max heading change per step, radians
)

func waterFeature() Variant {
	weights := zoneWeights{
		rules.ZoneFocalPoint: 1.0,
		rules.ZoneCenter:     1.5,
		rules.ZoneFlow:       2.0,
		rules.ZoneEdge:       0.5,
	}
	return Variant{
		Kind: rules.WaterFeature,
		CanPlace: func(s Site) bool {
			return baseGate(rules.WaterFeature, s) &&
				spaced(rules.WaterFeature, s) &&
				s.Grid.ClearAround(s.Row, s.Col, waterClearance)
		},
		Probability: func(s Site) float64 {
			return fade(weigh(rules.WaterFeature, s, 0.15, weights), s)
		},
		Effect: func(s Site) int {
			s.Ctx.Record(rules.WaterFeature, s.Row, s.Col)
			if s.Rand.Float64() < pondChance {
				return fillPond(s)
			}
			return traceRiver(s)
		},
	}
}

// fillPond paints a disc of random radius around the site onto background cells.
func fillPond(s Site) int {
	radius := intRange(s.Rand, 1, maxPondRadius)
	sym := rules.WaterFeature.Symbol()

	var pts []garden.Point
	for r := s.Row - radius; r <= s.Row+radius; r++ {
		for c := s.Col - radius; c <= s.Col+radius; c++ {
			if math.Hypot(float64(r-s.Row), float64(c-s.Col)) > float64(radius) {
				continue
			}
			if !s.Grid.IsBackground(r, c) || !cellAllows(rules.WaterFeature, s, r, c) {
				continue
			}
			s.Grid.Set(r, c, sym)
			pts = append(pts, garden.Point{Row: r, Col: c})
		}
	}
	s.Ctx.RecordWaterPath(garden.NewWaterPath(pts, true))
	return len(pts)
}

// traceRiver walks a wandering stream from the site. The heading starts random and
// drifts a little each step. The walk ends at the water edge buffer or a zone water
// may not enter, on reaching an earlier stream or pond, or on any cell that is not free.
func traceRiver(s Site) int {
	sym := rules.WaterFeature.Symbol()
	steps := intRange(s.Rand, minRiverSteps, maxRiverSteps)
	heading := s.Rand.Float64() * 2 * math.Pi

	cur := garden.Point{Row: s.Row, Col: s.Col}
	s.Grid.Set(cur.Row, cur.Col, sym)
	pts := []garden.Point{cur}

	fr, fc := float64(s.Row), float64(s.Col)
	for step := 0; step < steps; step++ {
		heading += (s.Rand.Float64()*2 - 1) * riverWobble
		fr += math.Sin(heading)
		fc += math.Cos(heading)

		next := garden.Point{Row: int(math.Round(fr)), Col: int(math.Round(fc))}
		if next == cur {
			continue
		}
		if s.Ctx.IsWater(next) {
			break
		}
		if !s.Grid.IsBackground(next.Row, next.Col) || !cellAllows(rules.WaterFeature, s, next.Row, next.Col) {
			break
		}

		s.Grid.Set(next.Row, next.Col, sym)
		pts = append(pts, next)
		cur = next
	}

	s.Ctx.RecordWaterPath(garden.NewWaterPath(pts, false))
	return len(pts)
}
