package garden

import (
	"math"

	"github.com/cs121287/zen/internal/rules"
)

// WaterPath is the ordered set of cells forming one pond or river.
type WaterPath struct {
	Points []Point `json:"points"`
	IsPond bool    `json:"is_pond"`

	index map[Point]struct{}
}

// NewWaterPath builds a path from its cells. The slice is copied.
func NewWaterPath(points []Point, isPond bool) *WaterPath {
	wp := &WaterPath{
		Points: append([]Point(nil), points...),
		IsPond: isPond,
		index:  make(map[Point]struct{}, len(points)),
	}
	for _, p := range points {
		wp.index[p] = struct{}{}
	}
	return wp
}

// Contains reports whether p is one of the path's cells.
func (wp *WaterPath) Contains(p Point) bool {
	_, ok := wp.index[p]
	return ok
}

// Len returns the number of distinct cells in the path.
func (wp *WaterPath) Len() int {
	return len(wp.index)
}

// Context is the placement history of one generation run. It is written only by
// element effects and read by placement predicates; runs never share one.
type Context struct {
	placed       [rules.NumKinds][]Point
	waterPaths   []*WaterPath
	bridgePlaced bool
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{}
}

// Record appends a placement. Recording a BridgePath sets the bridge flag for good.
func (c *Context) Record(kind rules.ElementKind, row, col int) {
	c.placed[kind] = append(c.placed[kind], Point{Row: row, Col: col})
	if kind == rules.BridgePath {
		c.bridgePlaced = true
	}
}

// Count returns the number of recorded placements of kind.
func (c *Context) Count(kind rules.ElementKind) int {
	return len(c.placed[kind])
}

// Placed returns the recorded placements of kind in order. Callers must not modify it.
func (c *Context) Placed(kind rules.ElementKind) []Point {
	return c.placed[kind]
}

// BridgePlaced reports whether any bridge cell has been recorded.
func (c *Context) BridgePlaced() bool {
	return c.bridgePlaced
}

// IsNear reports whether any placement of kind lies within a box of the given
// half-size around (row, col): |Δrow| ≤ distance and |Δcol| ≤ distance.
func (c *Context) IsNear(kind rules.ElementKind, row, col, distance int) bool {
	for _, p := range c.placed[kind] {
		if Abs(p.Row-row) <= distance && Abs(p.Col-col) <= distance {
			return true
		}
	}
	return false
}

// IsNearAny is IsNear over several kinds.
func (c *Context) IsNearAny(kinds []rules.ElementKind, row, col, distance int) bool {
	for _, k := range kinds {
		if c.IsNear(k, row, col, distance) {
			return true
		}
	}
	return false
}

// NearestDistance is the Euclidean distance to the closest placement of kind,
// or +Inf when there is none.
func (c *Context) NearestDistance(kind rules.ElementKind, row, col int) float64 {
	best := math.Inf(1)
	for _, p := range c.placed[kind] {
		if d := math.Hypot(float64(p.Row-row), float64(p.Col-col)); d < best {
			best = d
		}
	}
	return best
}

// RecordWaterPath stores a finished pond or river.
func (c *Context) RecordWaterPath(wp *WaterPath) {
	c.waterPaths = append(c.waterPaths, wp)
}

// WaterPaths returns the recorded paths in order.
func (c *Context) WaterPaths() []*WaterPath {
	return c.waterPaths
}

// IsWater reports whether p belongs to any recorded water path.
func (c *Context) IsWater(p Point) bool {
	for _, wp := range c.waterPaths {
		if wp.Contains(p) {
			return true
		}
	}
	return false
}

// NearWater reports whether any recorded water cell lies in the box of the
// given half-size around (row, col).
func (c *Context) NearWater(row, col, distance int) bool {
	for _, wp := range c.waterPaths {
		for _, p := range wp.Points {
			if Abs(p.Row-row) <= distance && Abs(p.Col-col) <= distance {
				return true
			}
		}
	}
	return false
}

// WouldCrossWater reports whether a straight segment of length cells starting at
// (row, col), running along the row when horizontal and down the column otherwise,
// touches a recorded water cell.
func (c *Context) WouldCrossWater(row, col, length int, horizontal bool) bool {
	dr, dc := 1, 0
	if horizontal {
		dr, dc = 0, 1
	}
	for i := 0; i < length; i++ {
		if c.IsWater(Point{Row: row + dr*i, Col: col + dc*i}) {
			return true
		}
	}
	return false
}
