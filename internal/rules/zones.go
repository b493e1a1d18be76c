package rules

// ZoneKind tags a rectangular garden region with its design role.
type ZoneKind uint8

const (
	ZoneFocalPoint   ZoneKind = iota // Golden-ratio point where the principal grouping belongs
	ZoneCenter                       // Main body of the garden
	ZoneEdge                         // Strips along the enclosing wall
	ZoneCorner                       // Corner pockets
	ZoneFlow                         // Band where water and raking run across the garden
	ZoneGravelGarden                 // Open gravel fields kept empty of features
)

func (z ZoneKind) String() string {
	switch z {
	case ZoneFocalPoint:
		return "FocalPoint"
	case ZoneCenter:
		return "Center"
	case ZoneEdge:
		return "Edge"
	case ZoneCorner:
		return "Corner"
	case ZoneFlow:
		return "Flow"
	case ZoneGravelGarden:
		return "GravelGarden"
	default:
		return "Unknown"
	}
}

// ZoneRestrictions says where a kind may go. EdgeRow and EdgeCol are the minimum
// distance from the garden border along each axis.
type ZoneRestrictions struct {
	Forbidden []ZoneKind
	Preferred []ZoneKind
	EdgeRow   int
	EdgeCol   int
}

// Forbids reports whether z is off limits.
func (r ZoneRestrictions) Forbids(z ZoneKind) bool {
	for _, f := range r.Forbidden {
		if f == z {
			return true
		}
	}
	return false
}

// Prefers reports whether z is one of the kind's favoured zones.
func (r ZoneRestrictions) Prefers(z ZoneKind) bool {
	for _, p := range r.Preferred {
		if p == z {
			return true
		}
	}
	return false
}

var restrictionTable = [numKinds]ZoneRestrictions{
	LargeRocks: {
		Forbidden: []ZoneKind{ZoneGravelGarden},
		Preferred: []ZoneKind{ZoneFocalPoint, ZoneCenter},
		EdgeRow:   5, EdgeCol: 5,
	},
	MediumRocks: {
		Forbidden: []ZoneKind{ZoneGravelGarden},
		Preferred: []ZoneKind{ZoneFocalPoint, ZoneCenter},
		EdgeRow:   3, EdgeCol: 3,
	},
	SmallStones: {
		Forbidden: []ZoneKind{ZoneGravelGarden},
		Preferred: []ZoneKind{ZoneEdge, ZoneCorner},
		EdgeRow:   2, EdgeCol: 2,
	},
	WaterFeature: {
		Forbidden: []ZoneKind{ZoneGravelGarden, ZoneCorner},
		Preferred: []ZoneKind{ZoneFlow, ZoneCenter},
		EdgeRow:   8, EdgeCol: 8,
	},
	BridgePath: {
		Forbidden: []ZoneKind{ZoneGravelGarden},
		Preferred: []ZoneKind{ZoneFlow},
		EdgeRow:   3, EdgeCol: 10,
	},
	FineGravel: {
		Preferred: []ZoneKind{ZoneGravelGarden},
	},
	HorizontalRaked: {
		Forbidden: []ZoneKind{ZoneGravelGarden},
		Preferred: []ZoneKind{ZoneFlow},
	},
	VerticalRaked: {
		Forbidden: []ZoneKind{ZoneGravelGarden},
		Preferred: []ZoneKind{ZoneFlow},
	},
	CurvedRaked: {
		Forbidden: []ZoneKind{ZoneGravelGarden},
		Preferred: []ZoneKind{ZoneFocalPoint},
	},
	Moss: {
		Forbidden: []ZoneKind{ZoneGravelGarden},
		Preferred: []ZoneKind{ZoneCorner, ZoneEdge},
	},
	StoneLantern: {
		Forbidden: []ZoneKind{ZoneGravelGarden, ZoneFlow},
		Preferred: []ZoneKind{ZoneCorner, ZoneEdge},
		EdgeRow:   10, EdgeCol: 10,
	},
}

// RestrictionsFor returns the zone restrictions for a kind.
func RestrictionsFor(k ElementKind) ZoneRestrictions {
	return restrictionTable[k]
}
