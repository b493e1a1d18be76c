// Package rules holds the static rule tables for garden generation: element kinds,
// their symbols and phases, visual density, placement limits, and zone restrictions.
// Everything here is read-only after package initialization.
package rules

// Symbol is a single grid cell glyph.
type Symbol byte

// Empty is the reserved "nothing placed yet" sentinel. It never appears in a finished garden.
const Empty Symbol = 0

// ElementKind enumerates the garden features the generator can place.
type ElementKind uint8

const (
	LargeRocks      ElementKind = iota // Principal stones, the visual anchors
	MediumRocks                        // Secondary stones grouped near the anchors
	SmallStones                        // Scattered accent stones
	WaterFeature                       // Pond or river, dry or wet
	BridgePath                         // Stepping path or bridge, at most one
	FineGravel                         // Raked gravel ground, the background
	HorizontalRaked                    // Straight raking along rows
	VerticalRaked                      // Straight raking along columns
	CurvedRaked                        // Wave raking around features
	Moss                               // Moss patches near stones, water, or walls
	StoneLantern                       // Tōrō lantern

	numKinds
)

// NumKinds is the size of the closed ElementKind set.
const NumKinds = int(numKinds)

// Phase is one of the six ordered generation stages.
type Phase uint8

const (
	PhaseTerrain        Phase = iota + 1 // Rocks and stones
	PhaseWater                           // Ponds and rivers
	PhaseInfrastructure                  // Bridge or path
	PhaseGravelGarden                    // Background fill
	PhaseFlowPatterns                    // Raked lines
	PhaseDecoration                      // Moss and lanterns
)

// Category groups kinds for legends and refinement.
type Category uint8

const (
	CategoryRock Category = iota
	CategoryWater
	CategoryStructure
	CategoryGround
	CategoryPattern
	CategoryVegetation
)

type kindInfo struct {
	symbol   Symbol
	phase    Phase
	category Category
	density  int
	name     string
	meaning  string
}

var kindTable = [numKinds]kindInfo{
	LargeRocks:      {'#', PhaseTerrain, CategoryRock, 9, "Large Rocks", "Mountains or islands; the garden's principal stones"},
	MediumRocks:     {'@', PhaseTerrain, CategoryRock, 8, "Medium Rocks", "Hills and supporting stones in a grouping"},
	SmallStones:     {'o', PhaseTerrain, CategoryRock, 6, "Small Stones", "Scattered pebbles that soften transitions"},
	WaterFeature:    {'~', PhaseWater, CategoryWater, 4, "Water Feature", "Pond or stream; the flow of life"},
	BridgePath:      {'=', PhaseInfrastructure, CategoryStructure, 5, "Bridge / Path", "Passage across water; the journey"},
	FineGravel:      {'.', PhaseGravelGarden, CategoryGround, 0, "Fine Gravel", "Emptiness and calm; the sea"},
	HorizontalRaked: {'-', PhaseFlowPatterns, CategoryPattern, 1, "Horizontal Raking", "Still water and tranquility"},
	VerticalRaked:   {'|', PhaseFlowPatterns, CategoryPattern, 1, "Vertical Raking", "Falling water and descent"},
	CurvedRaked:     {'^', PhaseFlowPatterns, CategoryPattern, 2, "Curved Raking", "Waves rippling around islands"},
	Moss:            {'*', PhaseDecoration, CategoryVegetation, 3, "Moss", "Age and patience; life taking hold"},
	StoneLantern:    {'+', PhaseDecoration, CategoryStructure, 7, "Stone Lantern", "Illumination of the path to wisdom"},
}

// Kinds returns every element kind in declaration order.
func Kinds() []ElementKind {
	out := make([]ElementKind, NumKinds)
	for i := range out {
		out[i] = ElementKind(i)
	}
	return out
}

// Valid reports whether k is a member of the closed kind set.
func (k ElementKind) Valid() bool {
	return k < numKinds
}

// Symbol returns the glyph painted for this kind.
func (k ElementKind) Symbol() Symbol {
	return kindTable[k].symbol
}

// Phase returns the generation phase that places this kind.
func (k ElementKind) Phase() Phase {
	return kindTable[k].phase
}

// Category returns the legend category.
func (k ElementKind) Category() Category {
	return kindTable[k].category
}

func (k ElementKind) String() string {
	if !k.Valid() {
		return "Unknown"
	}
	return kindTable[k].name
}

// KindOf maps a symbol back to its element kind.
func KindOf(s Symbol) (ElementKind, bool) {
	for i := range kindTable {
		if kindTable[i].symbol == s {
			return ElementKind(i), true
		}
	}
	return 0, false
}

func (p Phase) String() string {
	switch p {
	case PhaseTerrain:
		return "Terrain"
	case PhaseWater:
		return "Water"
	case PhaseInfrastructure:
		return "Infrastructure"
	case PhaseGravelGarden:
		return "GravelGarden"
	case PhaseFlowPatterns:
		return "FlowPatterns"
	case PhaseDecoration:
		return "Decoration"
	default:
		return "Unknown"
	}
}

func (c Category) String() string {
	switch c {
	case CategoryRock:
		return "Rock"
	case CategoryWater:
		return "Water"
	case CategoryStructure:
		return "Structure"
	case CategoryGround:
		return "Ground"
	case CategoryPattern:
		return "Pattern"
	case CategoryVegetation:
		return "Vegetation"
	default:
		return "Unknown"
	}
}

// IsBackground reports whether a cell is free for placement: either untouched or plain gravel.
func IsBackground(s Symbol) bool {
	return s == Empty || s == FineGravel.Symbol()
}

// IsPattern reports whether s is one of the raked line symbols.
func IsPattern(s Symbol) bool {
	k, ok := KindOf(s)
	return ok && k.Category() == CategoryPattern
}

// IsRock reports whether s is a rock or stone symbol.
func IsRock(s Symbol) bool {
	k, ok := KindOf(s)
	return ok && k.Category() == CategoryRock
}
