package engine

import (
	"sort"

	"github.com/cs121287/zen/internal/garden"
	"github.com/cs121287/zen/internal/rules"
)

// SymbolStats describes one symbol's footprint on a grid.
type SymbolStats struct {
	Symbol  string  `json:"symbol"`
	Kind    string  `json:"kind"`
	Cells   int     `json:"cells"`
	Share   float64 `json:"share"`   // Fraction of all cells
	Regions int     `json:"regions"` // 4-connected components
	Largest int     `json:"largest"` // Size of the biggest component
}

// Stats summarises a finished grid.
type Stats struct {
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Empty   int           `json:"empty"`
	Symbols []SymbolStats `json:"symbols"`
}

// For returns the entry for s, if the symbol occurs on the grid.
func (st Stats) For(s rules.Symbol) (SymbolStats, bool) {
	for _, ss := range st.Symbols {
		if ss.Symbol == string(s) {
			return ss, true
		}
	}
	return SymbolStats{}, false
}

// Analyze counts each symbol and its connected regions. Symbols are listed
// densest first.
func Analyze(g *garden.Grid) Stats {
	st := Stats{Width: g.Width, Height: g.Height}
	if g.Width == 0 || g.Height == 0 {
		return st
	}

	seen := make([][]bool, g.Height)
	for r := range seen {
		seen[r] = make([]bool, g.Width)
	}
	bySymbol := make(map[rules.Symbol]*SymbolStats)
	total := float64(g.Width * g.Height)

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			sym := g.At(row, col)
			if sym == rules.Empty {
				st.Empty++
				continue
			}
			ss, ok := bySymbol[sym]
			if !ok {
				ss = &SymbolStats{Symbol: string(sym)}
				if k, known := rules.KindOf(sym); known {
					ss.Kind = k.String()
				}
				bySymbol[sym] = ss
			}
			ss.Cells++
			if seen[row][col] {
				continue
			}
			size := floodRegion(g, seen, row, col)
			ss.Regions++
			if size > ss.Largest {
				ss.Largest = size
			}
		}
	}

	for _, ss := range bySymbol {
		ss.Share = float64(ss.Cells) / total
		st.Symbols = append(st.Symbols, *ss)
	}
	sort.Slice(st.Symbols, func(i, j int) bool {
		di := rules.Density(rules.Symbol(st.Symbols[i].Symbol[0]))
		dj := rules.Density(rules.Symbol(st.Symbols[j].Symbol[0]))
		if di != dj {
			return di > dj
		}
		return st.Symbols[i].Symbol < st.Symbols[j].Symbol
	})
	return st
}

// floodRegion marks the 4-connected region of same-symbol cells containing
// (row, col) and returns its size.
func floodRegion(g *garden.Grid, seen [][]bool, row, col int) int {
	sym := g.At(row, col)
	stack := []garden.Point{{Row: row, Col: col}}
	seen[row][col] = true
	size := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		for _, n := range [4]garden.Point{
			{Row: p.Row - 1, Col: p.Col},
			{Row: p.Row + 1, Col: p.Col},
			{Row: p.Row, Col: p.Col - 1},
			{Row: p.Row, Col: p.Col + 1},
		} {
			if !g.InBounds(n.Row, n.Col) || seen[n.Row][n.Col] || g.At(n.Row, n.Col) != sym {
				continue
			}
			seen[n.Row][n.Col] = true
			stack = append(stack, n)
		}
	}
	return size
}
