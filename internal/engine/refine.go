package engine

import (
	"github.com/cs121287/zen/internal/elements"
	"github.com/cs121287/zen/internal/garden"
	"github.com/cs121287/zen/internal/rules"
)

// Refinement probabilities, applied per qualifying cell.
const (
	extendChance    = 0.4
	flowChance      = 0.2
	cleanupChance   = 0.3
	rebalanceChance = 0.1
)

const (
	flowReach            = 2
	lanternOpenRadius    = 4
	lanternOpenShare     = 0.7
	crowdedRank          = 6
	crowdedNeighbourhood = 15
)

var (
	symGravel     = rules.FineGravel.Symbol()
	symHorizontal = rules.HorizontalRaked.Symbol()
	symVertical   = rules.VerticalRaked.Symbol()
	symCurved     = rules.CurvedRaked.Symbol()
	symLarge      = rules.LargeRocks.Symbol()
	symMedium     = rules.MediumRocks.Symbol()
	symSmall      = rules.SmallStones.Symbol()
	symWater      = rules.WaterFeature.Symbol()
	symBridge     = rules.BridgePath.Symbol()
	symMoss       = rules.Moss.Symbol()
	symLantern    = rules.StoneLantern.Symbol()
)

// refine runs the four cleanup passes in order over the finished grid.
func (r *run) refine() error {
	passes := []struct {
		name string
		fn   func(*garden.Grid) int
	}{
		{"extend lines", r.extendLines},
		{"flow around obstacles", r.flowAroundObstacles},
		{"remove unsupported", r.removeUnsupported},
		{"rebalance density", r.rebalanceDensity},
	}
	for i, p := range passes {
		if err := r.mon.check(); err != nil {
			return err
		}
		changed := p.fn(r.grid)
		r.mon.report(refineSpan.split(i, len(passes)).end)
		r.log.Debug("refinement pass", "pass", p.name, "changed", changed)
	}
	return nil
}

// extendLines lengthens raked lines into background cells that flank them on
// both sides along the line's own axis.
func (r *run) extendLines(g *garden.Grid) int {
	changed := 0
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			var a, b garden.Point
			sym := g.At(row, col)
			switch sym {
			case symHorizontal:
				a, b = garden.Point{Row: row, Col: col - 1}, garden.Point{Row: row, Col: col + 1}
			case symVertical:
				a, b = garden.Point{Row: row - 1, Col: col}, garden.Point{Row: row + 1, Col: col}
			default:
				continue
			}
			if !g.IsBackground(a.Row, a.Col) || !g.IsBackground(b.Row, b.Col) {
				continue
			}
			for _, p := range [2]garden.Point{a, b} {
				if r.rng.Float64() < extendChance {
					g.Set(p.Row, p.Col, sym)
					changed++
				}
			}
		}
	}
	return changed
}

// flowAroundObstacles rakes background cells near rocks so the pattern bends
// around them: mostly-horizontal offsets get '-', mostly-vertical get '|', and
// diagonals get a curve half the time.
func (r *run) flowAroundObstacles(g *garden.Grid) int {
	changed := 0
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if !rules.IsRock(g.At(row, col)) {
				continue
			}
			for dr := -flowReach; dr <= flowReach; dr++ {
				for dc := -flowReach; dc <= flowReach; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					nr, nc := row+dr, col+dc
					if !g.IsBackground(nr, nc) || r.rng.Float64() >= flowChance {
						continue
					}
					ar, ac := garden.Abs(dr), garden.Abs(dc)
					switch {
					case ac > ar:
						g.Set(nr, nc, symHorizontal)
					case ar > ac:
						g.Set(nr, nc, symVertical)
					case r.rng.Float64() < 0.5:
						g.Set(nr, nc, symCurved)
					default:
						continue
					}
					changed++
				}
			}
		}
	}
	return changed
}

// removeUnsupported reverts moss, lanterns, and paths that lost their support to
// gravel. The outer ring is left alone.
func (r *run) removeUnsupported(g *garden.Grid) int {
	changed := 0
	for row := 1; row < g.Height-1; row++ {
		for col := 1; col < g.Width-1; col++ {
			if supported(g, row, col) {
				continue
			}
			if r.rng.Float64() < cleanupChance {
				g.Set(row, col, symGravel)
				changed++
			}
		}
	}
	return changed
}

// supported reports whether the cell may stay. Symbols without a support rule,
// including water, always stay.
func supported(g *garden.Grid, row, col int) bool {
	switch g.At(row, col) {
	case symMoss:
		return symbolWithin(g, row, col, elements.MossLargeRockReach, symLarge) ||
			symbolWithin(g, row, col, elements.MossStoneReach, symMedium, symSmall) ||
			g.EdgeDistance(row, col) <= elements.MossEdgeReach
	case symLantern:
		return openShare(g, row, col, lanternOpenRadius) >= lanternOpenShare
	case symBridge:
		for _, p := range [4]garden.Point{{Row: row - 1, Col: col}, {Row: row + 1, Col: col}, {Row: row, Col: col - 1}, {Row: row, Col: col + 1}} {
			if s := g.At(p.Row, p.Col); s == symBridge || s == symWater {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// rebalanceDensity thins heavy cells sitting in an already heavy neighbourhood.
func (r *run) rebalanceDensity(g *garden.Grid) int {
	changed := 0
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if rules.Density(g.At(row, col)) <= crowdedRank {
				continue
			}
			if neighbourDensity(g, row, col) <= crowdedNeighbourhood {
				continue
			}
			if r.rng.Float64() < rebalanceChance {
				g.Set(row, col, symGravel)
				changed++
			}
		}
	}
	return changed
}

// symbolWithin reports whether any of syms occurs in the box of the given radius
// around (row, col), the cell itself excluded.
func symbolWithin(g *garden.Grid, row, col, radius int, syms ...rules.Symbol) bool {
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			s := g.At(row+dr, col+dc)
			for _, want := range syms {
				if s == want {
					return true
				}
			}
		}
	}
	return false
}

// openShare is the fraction of in-bounds cells around (row, col) that are
// background or raked pattern.
func openShare(g *garden.Grid, row, col, radius int) float64 {
	open, total := 0, 0
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			r, c := row+dr, col+dc
			if (dr == 0 && dc == 0) || !g.InBounds(r, c) {
				continue
			}
			total++
			if s := g.At(r, c); rules.IsBackground(s) || rules.IsPattern(s) {
				open++
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float64(open) / float64(total)
}

func neighbourDensity(g *garden.Grid, row, col int) int {
	sum := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if g.InBounds(row+dr, col+dc) {
				sum += rules.Density(g.At(row+dr, col+dc))
			}
		}
	}
	return sum
}
