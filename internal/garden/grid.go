// Package garden holds the run-scoped mutable state of a generation: the symbol
// grid and the placement context that records what went where.
package garden

import (
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/cs121287/zen/internal/rules"
)

// Point is a grid position.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Grid is a height × width matrix of symbols, indexed [row][col].
type Grid struct {
	Width  int
	Height int
	Cells  [][]rules.Symbol
}

// NewGrid allocates a grid with every cell set to rules.Empty.
func NewGrid(width, height int) *Grid {
	cells := make([][]rules.Symbol, height)
	for r := range cells {
		cells[r] = make([]rules.Symbol, width)
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// InBounds reports whether (row, col) is on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

// At returns the symbol at (row, col), or rules.Empty when out of bounds.
func (g *Grid) At(row, col int) rules.Symbol {
	if !g.InBounds(row, col) {
		return rules.Empty
	}
	return g.Cells[row][col]
}

// Set writes a symbol; writes off the grid are dropped.
func (g *Grid) Set(row, col int, s rules.Symbol) {
	if g.InBounds(row, col) {
		g.Cells[row][col] = s
	}
}

// IsBackground reports whether an on-grid cell is free for placement.
func (g *Grid) IsBackground(row, col int) bool {
	return g.InBounds(row, col) && rules.IsBackground(g.Cells[row][col])
}

// ClearAround reports whether every on-grid cell within a square of the given
// radius around (row, col) is background or one of the exempt symbols.
func (g *Grid) ClearAround(row, col, radius int, exempt ...rules.Symbol) bool {
	for r := row - radius; r <= row+radius; r++ {
		for c := col - radius; c <= col+radius; c++ {
			if !g.InBounds(r, c) {
				continue
			}
			s := g.Cells[r][c]
			if rules.IsBackground(s) || containsSymbol(exempt, s) {
				continue
			}
			return false
		}
	}
	return true
}

// EdgeDistance is the number of cells between (row, col) and the nearest border.
func (g *Grid) EdgeDistance(row, col int) int {
	return min(row, col, g.Height-1-row, g.Width-1-col)
}

// Count returns how many cells hold s.
func (g *Grid) Count(s rules.Symbol) int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if c == s {
				n++
			}
		}
	}
	return n
}

// Rows renders each row as a string. Empty cells render as a space.
func (g *Grid) Rows() []string {
	out := make([]string, g.Height)
	var sb strings.Builder
	for r, row := range g.Cells {
		sb.Reset()
		for _, c := range row {
			if c == rules.Empty {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteByte(byte(c))
		}
		out[r] = sb.String()
	}
	return out
}

func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Width, g.Height)
	for r := range g.Cells {
		copy(out.Cells[r], g.Cells[r])
	}
	return out
}

func containsSymbol(set []rules.Symbol, s rules.Symbol) bool {
	for _, x := range set {
		if x == s {
			return true
		}
	}
	return false
}

// Abs returns the absolute value of x.
func Abs[T constraints.Integer | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits x to [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
