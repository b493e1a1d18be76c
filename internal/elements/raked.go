package elements

import (
	"math"

	"github.com/cs121287/zen/internal/rules"
)

// rakeSpec describes one raked line kind.
type rakeSpec struct {
	kind      rules.ElementKind
	clearance int // box distance kept from rocks and lanterns
	base      float64
	weights   zoneWeights
	minLen    int
	maxLen    int
	bias      func(row, col int) float64
	// offset returns the cell of step i relative to the seed; phase is drawn once per line.
	offset func(i int, phase float64) (dr, dc int)
}

// rakeObstacles are the placements raked lines keep their distance from.
var rakeObstacles = append(append([]rules.ElementKind(nil), rockKinds...), rules.StoneLantern)

func horizontalRaked() Variant {
	return rakeSpec{
		kind:      rules.HorizontalRaked,
		clearance: 3,
		base:      0.08,
		weights: zoneWeights{
			rules.ZoneFocalPoint: 0.8,
			rules.ZoneCenter:     1.0,
			rules.ZoneFlow:       2.0,
			rules.ZoneEdge:       1.2,
			rules.ZoneCorner:     0.6,
		},
		minLen: 3,
		maxLen: 8,
		bias: func(row, _ int) float64 {
			return 0.5 + 0.5*math.Abs(math.Sin(float64(row)*math.Pi/4))
		},
		offset: func(i int, _ float64) (int, int) { return 0, i },
	}.variant()
}

func verticalRaked() Variant {
	return rakeSpec{
		kind:      rules.VerticalRaked,
		clearance: 2,
		base:      0.06,
		weights: zoneWeights{
			rules.ZoneFocalPoint: 0.8,
			rules.ZoneCenter:     1.0,
			rules.ZoneFlow:       0.8,
			rules.ZoneEdge:       1.4,
			rules.ZoneCorner:     0.8,
		},
		minLen: 3,
		maxLen: 6,
		bias: func(_, col int) float64 {
			return 0.5 + 0.5*math.Abs(math.Sin(float64(col)*math.Pi/6))
		},
		offset: func(i int, _ float64) (int, int) { return i, 0 },
	}.variant()
}

func curvedRaked() Variant {
	return rakeSpec{
		kind:      rules.CurvedRaked,
		clearance: 4,
		base:      0.05,
		weights: zoneWeights{
			rules.ZoneFocalPoint: 2.0,
			rules.ZoneCenter:     1.2,
			rules.ZoneFlow:       1.0,
			rules.ZoneEdge:       0.5,
			rules.ZoneCorner:     0.5,
		},
		minLen: 2,
		maxLen: 5,
		bias: func(row, col int) float64 {
			return 0.5 + 0.5*math.Abs(math.Sin(float64(row)*0.3)*math.Cos(float64(col)*0.3))
		},
		offset: func(i int, phase float64) (int, int) {
			wave := math.Round(math.Sin(float64(i)*0.9+phase)) - math.Round(math.Sin(phase))
			return int(wave), i
		},
	}.variant()
}

func (rs rakeSpec) variant() Variant {
	return Variant{
		Kind: rs.kind,
		CanPlace: func(s Site) bool {
			return baseGate(rs.kind, s) &&
				!s.Ctx.IsNearAny(rakeObstacles, s.Row, s.Col, rs.clearance)
		},
		Probability: func(s Site) float64 {
			p := weigh(rs.kind, s, rs.base, rs.weights)
			p *= rs.bias(s.Row, s.Col)
			return fade(p, s)
		},
		Effect: rs.draw,
	}
}

// draw grows a line from the seed until it reaches its length or meets a cell
// that is not background. Only the seed is recorded.
func (rs rakeSpec) draw(s Site) int {
	length := intRange(s.Rand, rs.minLen, rs.maxLen)
	phase := s.Rand.Float64() * 2 * math.Pi
	sym := rs.kind.Symbol()

	painted := 0
	for i := 0; i < length; i++ {
		dr, dc := rs.offset(i, phase)
		r, c := s.Row+dr, s.Col+dc
		if !s.Grid.IsBackground(r, c) {
			break
		}
		s.Grid.Set(r, c, sym)
		painted++
	}
	s.Ctx.Record(rs.kind, s.Row, s.Col)
	return painted
}
