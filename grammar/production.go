package grammar

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// EmptyMarker is the reserved symbol standing for the empty string.
const EmptyMarker = "ε"

// Production is a rewrite rule Left → Right.
// The right side is kept both as the text it was written with and as the
// symbol sequence that text tokenizes to.
type Production struct {
	left    string
	right   string
	symbols []string
}

// NewProduction creates a production from its left symbol and the raw text
// of its right side.
//
// If the text contains whitespace, the symbols are its whitespace separated
// fields. Otherwise every rune is a symbol of its own, so "aSb" is the
// sequence a, S, b and a multi-character terminal such as "id" must be
// written with a separator ("id " or "( id )").
// The texts "ε", "epsilon" and "" all denote the empty production.
func NewProduction(left, right string) Production {
	return Production{
		left:    left,
		right:   right,
		symbols: tokenizeRight(right),
	}
}

// NewProductionSymbols creates a production from an already split right side.
// The raw text is chosen so that it tokenizes back to the same symbols.
func NewProductionSymbols(left string, symbols []string) Production {
	if len(symbols) == 0 {
		return NewProduction(left, EmptyMarker)
	}
	right := strings.Join(symbols, " ")
	if len(symbols) == 1 && utf8.RuneCountInString(symbols[0]) > 1 && symbols[0] != "epsilon" {
		right += " "
	}
	return NewProduction(left, right)
}

func tokenizeRight(right string) []string {
	if isEmptyText(right) {
		return []string{EmptyMarker}
	}

	if strings.IndexFunc(right, unicode.IsSpace) >= 0 {
		return strings.Fields(right)
	}

	symbols := make([]string, 0, utf8.RuneCountInString(right))
	for _, r := range right {
		symbols = append(symbols, string(r))
	}
	return symbols
}

func isEmptyText(right string) bool {
	switch strings.TrimSpace(right) {
	case "", EmptyMarker, "epsilon":
		return true
	}
	return false
}

// Left returns the left-hand nonterminal.
func (p Production) Left() string {
	return p.left
}

// Right returns the right side exactly as it was written.
func (p Production) Right() string {
	return p.right
}

// Symbols returns a copy of the tokenized right side.
func (p Production) Symbols() []string {
	out := make([]string, len(p.symbols))
	copy(out, p.symbols)
	return out
}

// Symbol returns the i-th right-hand symbol.
func (p Production) Symbol(i int) string {
	return p.symbols[i]
}

// IsEmpty reports whether this is the empty production A → ε.
func (p Production) IsEmpty() bool {
	return len(p.symbols) == 1 && p.symbols[0] == EmptyMarker
}

// Len returns the number of right-hand symbols, 0 for the empty production.
func (p Production) Len() int {
	if p.IsEmpty() {
		return 0
	}
	return len(p.symbols)
}

// Equal reports whether two productions have the same left side and the same
// raw right-hand text.
func (p Production) Equal(other Production) bool {
	return p.left == other.left && p.right == other.right
}

func (p Production) String() string {
	right := strings.TrimSpace(p.right)
	if p.IsEmpty() {
		right = EmptyMarker
	}
	return p.left + " → " + right
}
