package rules

import (
	"math"
	"sort"
)

// Unbounded marks a kind with no placement cap.
const Unbounded = math.MaxInt32

// PlacementLimits bounds how many of a kind a garden holds and how far apart they sit.
type PlacementLimits struct {
	Min         int
	Max         int
	MinDistance int
}

// Capped reports whether the kind has a finite maximum.
func (l PlacementLimits) Capped() bool {
	return l.Max != Unbounded
}

var limitsTable = [numKinds]PlacementLimits{
	LargeRocks:      {Min: 1, Max: 3, MinDistance: 8},
	MediumRocks:     {Min: 2, Max: 8, MinDistance: 4},
	SmallStones:     {Min: 5, Max: 20, MinDistance: 2},
	WaterFeature:    {Min: 1, Max: 3, MinDistance: 12},
	BridgePath:      {Min: 0, Max: 1, MinDistance: 0},
	FineGravel:      {Min: 0, Max: Unbounded, MinDistance: 0},
	HorizontalRaked: {Min: 0, Max: Unbounded, MinDistance: 3},
	VerticalRaked:   {Min: 0, Max: Unbounded, MinDistance: 2},
	CurvedRaked:     {Min: 0, Max: Unbounded, MinDistance: 4},
	Moss:            {Min: 3, Max: 15, MinDistance: 1},
	StoneLantern:    {Min: 1, Max: 2, MinDistance: 20},
}

// LimitsFor returns the placement limits for a kind.
func LimitsFor(k ElementKind) PlacementLimits {
	return limitsTable[k]
}

// Density returns the visual weight of a symbol, 0 (background) to 9 (largest rock).
// Unknown symbols, including Empty, weigh 0.
func Density(s Symbol) int {
	k, ok := KindOf(s)
	if !ok {
		return 0
	}
	return kindTable[k].density
}

var phaseOrder = []Phase{
	PhaseTerrain,
	PhaseWater,
	PhaseInfrastructure,
	PhaseGravelGarden,
	PhaseFlowPatterns,
	PhaseDecoration,
}

// Phases returns the generation phases in execution order.
func Phases() []Phase {
	return append([]Phase(nil), phaseOrder...)
}

// KindsInPhase returns the kinds placed by a phase in processing order.
// Terrain runs darkest to lightest so the big stones claim space first;
// decoration runs lightest to darkest so lanterns see where moss settled.
func KindsInPhase(p Phase) []ElementKind {
	var out []ElementKind
	for _, k := range Kinds() {
		if k.Phase() == p {
			out = append(out, k)
		}
	}
	if p == PhaseDecoration {
		sortByDensity(out, true)
	} else {
		sortByDensity(out, false)
	}
	return out
}

func sortByDensity(kinds []ElementKind, ascending bool) {
	sort.SliceStable(kinds, func(i, j int) bool {
		a, b := kindTable[kinds[i]].density, kindTable[kinds[j]].density
		if ascending {
			return a < b
		}
		return a > b
	})
}
