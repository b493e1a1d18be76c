// Package zone models the rectangular regions that steer where garden elements go.
// Each zone carries an influence weight used to resolve overlaps and to fade
// placement probability away from the zone's center.
package zone

import (
	"fmt"
	"math"

	"github.com/cs121287/zen/internal/rules"
)

// Zone is a rectangle on the garden grid.
type Zone struct {
	Kind      rules.ZoneKind `json:"kind"`
	StartRow  int            `json:"start_row"`
	StartCol  int            `json:"start_col"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Influence float64        `json:"influence"`
}

// Center returns the zone's center in grid coordinates.
func (z Zone) Center() (row, col float64) {
	return float64(z.StartRow + z.Height/2), float64(z.StartCol + z.Width/2)
}

// Contains reports whether (row, col) lies inside the rectangle.
func (z Zone) Contains(row, col int) bool {
	return row >= z.StartRow && row < z.StartRow+z.Height &&
		col >= z.StartCol && col < z.StartCol+z.Width
}

// DistanceTo returns the Euclidean distance from (row, col) to the zone center.
func (z Zone) DistanceTo(row, col int) float64 {
	cr, cc := z.Center()
	return math.Hypot(float64(row)-cr, float64(col)-cc)
}

func (z Zone) String() string {
	return fmt.Sprintf("%s(r=%d c=%d %dx%d inf=%.2f)", z.Kind, z.StartRow, z.StartCol, z.Width, z.Height, z.Influence)
}

// Dominant resolves the zone that governs (row, col). Among containing zones the
// highest influence wins and ties go to the first declared. A point outside every
// zone falls to the zone with the nearest center. zones must not be empty.
func Dominant(zones []Zone, row, col int) Zone {
	best := -1
	for i, z := range zones {
		if !z.Contains(row, col) {
			continue
		}
		if best < 0 || z.Influence > zones[best].Influence {
			best = i
		}
	}
	if best >= 0 {
		return zones[best]
	}

	nearest := 0
	nearestDist := math.Inf(1)
	for i, z := range zones {
		if d := z.DistanceTo(row, col); d < nearestDist {
			nearest = i
			nearestDist = d
		}
	}
	return zones[nearest]
}

// DistanceInfluence fades from 1 at the zone center toward a floor of 0.1 at and
// beyond half the zone's larger side. It is never zero.
func DistanceInfluence(z Zone, row, col int) float64 {
	half := float64(max(z.Width, z.Height)) / 2
	if half <= 0 {
		return 1
	}
	return math.Max(0.1, 1-z.DistanceTo(row, col)/half)
}
