package elements

import "github.com/cs121287/zen/internal/rules"

// fineGravel fills whatever the earlier phases left untouched. Gravel cells are
// not recorded in the context; the engine counts them from the sweep.
func fineGravel() Variant {
	return Variant{
		Kind: rules.FineGravel,
		CanPlace: func(s Site) bool {
			return s.Grid.InBounds(s.Row, s.Col) && s.Grid.At(s.Row, s.Col) == rules.Empty
		},
		Probability: func(Site) float64 { return 1 },
		Effect: func(s Site) int {
			s.Grid.Set(s.Row, s.Col, rules.FineGravel.Symbol())
			return 1
		},
	}
}
