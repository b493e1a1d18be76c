package rules

// SymbolInfo is the read-only legend entry for a symbol.
type SymbolInfo struct {
	Symbol   string `json:"symbol" yaml:"symbol"`
	Kind     string `json:"kind" yaml:"kind"`
	Meaning  string `json:"meaning" yaml:"meaning"`
	Phase    string `json:"phase" yaml:"phase"`
	Category string `json:"category" yaml:"category"`
	Density  int    `json:"density" yaml:"density"`
}

// Metadata looks up the legend entry for a symbol.
func Metadata(s Symbol) (SymbolInfo, bool) {
	k, ok := KindOf(s)
	if !ok {
		return SymbolInfo{}, false
	}
	return infoFor(k), true
}

// Legend returns one entry per kind in declaration order.
func Legend() []SymbolInfo {
	out := make([]SymbolInfo, 0, NumKinds)
	for _, k := range Kinds() {
		out = append(out, infoFor(k))
	}
	return out
}

// Alphabet returns the closed set of symbols a finished garden may contain.
func Alphabet() []Symbol {
	out := make([]Symbol, 0, NumKinds)
	for _, k := range Kinds() {
		out = append(out, k.Symbol())
	}
	return out
}

func infoFor(k ElementKind) SymbolInfo {
	ki := kindTable[k]
	return SymbolInfo{
		Symbol:   string(rune(ki.symbol)),
		Kind:     ki.name,
		Meaning:  ki.meaning,
		Phase:    ki.phase.String(),
		Category: ki.category.String(),
		Density:  ki.density,
	}
}
