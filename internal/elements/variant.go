// Package elements implements the per-kind placement behaviour of garden features.
// Each kind is a Variant: a placement predicate, a probability, and an effect that
// paints the grid and records placements. Variants are looked up through a closed
// dispatch table indexed by rules.ElementKind.
package elements

import (
	"math/rand"

	"github.com/cs121287/zen/internal/garden"
	"github.com/cs121287/zen/internal/rules"
	"github.com/cs121287/zen/internal/zone"
)

// Site is everything a variant may look at or touch for one candidate cell.
// Variants must not keep any of these references past the call.
type Site struct {
	Row, Col int
	Zone     zone.Zone   // dominant zone of (Row, Col)
	Zones    []zone.Zone // full layout, for cells an effect spills into
	Grid     *garden.Grid
	Ctx      *garden.Context
	Rand     *rand.Rand
	Texture  *Texture
}

// Variant bundles the three behaviours of one element kind.
type Variant struct {
	Kind rules.ElementKind

	// CanPlace is the hard gate: zone, edge buffer, cap, spacing, clear space.
	CanPlace func(s Site) bool
	// Probability is the acceptance likelihood for a cell that passed CanPlace.
	// It is not clamped; anything at or above 1 always accepts.
	Probability func(s Site) float64
	// Effect paints the grid, records placements, and returns the cells painted.
	Effect func(s Site) int
}

var variants [rules.NumKinds]Variant

func init() {
	for _, v := range []Variant{
		largeRocks(),
		mediumRocks(),
		smallStones(),
		waterFeature(),
		bridgePath(),
		fineGravel(),
		horizontalRaked(),
		verticalRaked(),
		curvedRaked(),
		moss(),
		stoneLantern(),
	} {
		variants[v.Kind] = v
	}
	for k, v := range variants {
		if v.CanPlace == nil || v.Probability == nil || v.Effect == nil {
			panic("elements: no variant registered for " + rules.ElementKind(k).String())
		}
	}
}

// For returns the variant of a kind.
func For(kind rules.ElementKind) Variant {
	return variants[kind]
}

// zoneWeights is a per-zone-kind probability multiplier, indexed by rules.ZoneKind.
type zoneWeights [6]float64

// preferredBonus scales probability inside a kind's preferred zones.
const preferredBonus = 1.25

// rockKinds are the obstacles raked lines keep clear of, together with lanterns.
var rockKinds = []rules.ElementKind{rules.LargeRocks, rules.MediumRocks, rules.SmallStones}

// zoneAllows is the single place the restriction table is consulted for zone
// membership and border distance. Effects use it for every cell they spill into.
func zoneAllows(kind rules.ElementKind, z zone.Zone, g *garden.Grid, row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	r := rules.RestrictionsFor(kind)
	if r.Forbids(z.Kind) {
		return false
	}
	return row >= r.EdgeRow && row < g.Height-r.EdgeRow &&
		col >= r.EdgeCol && col < g.Width-r.EdgeCol
}

// cellAllows resolves the dominant zone of a spill cell and checks it.
func cellAllows(kind rules.ElementKind, s Site, row, col int) bool {
	if !s.Grid.InBounds(row, col) {
		return false
	}
	return zoneAllows(kind, zone.Dominant(s.Zones, row, col), s.Grid, row, col)
}

// baseGate is the common part of every CanPlace: zone, border, cap, and a free cell.
func baseGate(kind rules.ElementKind, s Site) bool {
	if !zoneAllows(kind, s.Zone, s.Grid, s.Row, s.Col) {
		return false
	}
	if lim := rules.LimitsFor(kind); lim.Capped() && s.Ctx.Count(kind) >= lim.Max {
		return false
	}
	return s.Grid.IsBackground(s.Row, s.Col)
}

// spaced enforces the same-kind minimum Euclidean distance.
func spaced(kind rules.ElementKind, s Site) bool {
	lim := rules.LimitsFor(kind)
	if lim.MinDistance == 0 {
		return true
	}
	return s.Ctx.NearestDistance(kind, s.Row, s.Col) >= float64(lim.MinDistance)
}

// weigh applies the zone multiplier and the preferred-zone bonus to a base rate.
func weigh(kind rules.ElementKind, s Site, base float64, w zoneWeights) float64 {
	p := base * w[s.Zone.Kind]
	if rules.RestrictionsFor(kind).Prefers(s.Zone.Kind) {
		p *= preferredBonus
	}
	return p
}

// fade scales by the distance influence of the dominant zone.
func fade(p float64, s Site) float64 {
	return p * zone.DistanceInfluence(s.Zone, s.Row, s.Col)
}

// paint writes a kind's symbol and records the placement.
func paint(kind rules.ElementKind, s Site, row, col int) {
	s.Grid.Set(row, col, kind.Symbol())
	s.Ctx.Record(kind, row, col)
}

// decay shrinks probability as more of a kind is placed.
func decay(s Site, kind rules.ElementKind, rate float64) float64 {
	return 1 / (1 + rate*float64(s.Ctx.Count(kind)))
}

// intRange returns a uniform int in [lo, hi].
func intRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
