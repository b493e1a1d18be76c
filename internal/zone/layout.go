package zone

import "github.com/cs121287/zen/internal/rules"

// Influence weights per zone kind. Higher wins where zones overlap.
const (
	InfluenceFocalPoint = 1.0
	InfluenceCorner     = 0.9
	InfluenceCenter     = 0.8
	InfluenceGravel     = 0.7
	InfluenceFlow       = 0.6
	InfluenceEdge       = 0.4
)

// goldenSection places the focal point the classical distance across the garden.
const goldenSection = 0.618

// Layout builds the fixed zone arrangement for a garden of the given size. The
// order of the returned slice is the declaration order used for tie-breaking.
// Every zone is at least one cell on each side; the slice is never empty.
func Layout(width, height int) []Zone {
	atLeast1 := func(n int) int { return max(1, n) }

	cornerW, cornerH := atLeast1(width/6), atLeast1(height/5)
	edgeRows, edgeCols := atLeast1(height/8), atLeast1(width/12)

	zones := []Zone{
		{
			Kind:      rules.ZoneFocalPoint,
			StartRow:  height/3 - height/10,
			StartCol:  int(float64(width)*goldenSection) - width/10,
			Width:     atLeast1(width / 5),
			Height:    atLeast1(height / 5),
			Influence: InfluenceFocalPoint,
		},
		{Kind: rules.ZoneCorner, StartRow: 0, StartCol: 0, Width: cornerW, Height: cornerH, Influence: InfluenceCorner},
		{Kind: rules.ZoneCorner, StartRow: 0, StartCol: width - cornerW, Width: cornerW, Height: cornerH, Influence: InfluenceCorner},
		{Kind: rules.ZoneCorner, StartRow: height - cornerH, StartCol: 0, Width: cornerW, Height: cornerH, Influence: InfluenceCorner},
		{Kind: rules.ZoneCorner, StartRow: height - cornerH, StartCol: width - cornerW, Width: cornerW, Height: cornerH, Influence: InfluenceCorner},
		{
			Kind:      rules.ZoneCenter,
			StartRow:  height / 4,
			StartCol:  width / 4,
			Width:     atLeast1(width / 2),
			Height:    atLeast1(height / 2),
			Influence: InfluenceCenter,
		},
		{
			Kind:      rules.ZoneGravelGarden,
			StartRow:  height / 4,
			StartCol:  width / 12,
			Width:     atLeast1(width/4 - width/12),
			Height:    atLeast1(height / 2),
			Influence: InfluenceGravel,
		},
		{
			Kind:      rules.ZoneGravelGarden,
			StartRow:  height / 4,
			StartCol:  3 * width / 4,
			Width:     atLeast1(11*width/12 - 3*width/4),
			Height:    atLeast1(height / 2),
			Influence: InfluenceGravel,
		},
		{
			Kind:      rules.ZoneFlow,
			StartRow:  height/2 - height/8,
			StartCol:  0,
			Width:     width,
			Height:    atLeast1(height / 4),
			Influence: InfluenceFlow,
		},
		{Kind: rules.ZoneEdge, StartRow: 0, StartCol: 0, Width: width, Height: edgeRows, Influence: InfluenceEdge},
		{Kind: rules.ZoneEdge, StartRow: height - edgeRows, StartCol: 0, Width: width, Height: edgeRows, Influence: InfluenceEdge},
		{Kind: rules.ZoneEdge, StartRow: 0, StartCol: 0, Width: edgeCols, Height: height, Influence: InfluenceEdge},
		{Kind: rules.ZoneEdge, StartRow: 0, StartCol: width - edgeCols, Width: edgeCols, Height: height, Influence: InfluenceEdge},
	}
	return zones
}

// Find returns the first zone of the given kind.
func Find(zones []Zone, kind rules.ZoneKind) (Zone, bool) {
	for _, z := range zones {
		if z.Kind == kind {
			return z, true
		}
	}
	return Zone{}, false
}
