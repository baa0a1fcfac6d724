// Package grammar defines the formal grammar model shared by the parsers and
// the string generator.
package grammar

import (
	"fmt"
	"strings"
)

// Kind tags a grammar with the parsing strategy it is meant for.
type Kind int

const (
	// ContextFree grammars are parsed by backtracking search.
	ContextFree Kind = iota + 1
	// Regular grammars must be right-linear and are parsed as automata.
	Regular
)

func (k Kind) String() string {
	switch k {
	case ContextFree:
		return "TYPE_2"
	case Regular:
		return "TYPE_3"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == ContextFree || k == Regular
}

// ParseKind reads a kind name as written in grammar files.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "type_2", "type2", "2", "context-free", "contextfree", "cfg":
		return ContextFree, nil
	case "type_3", "type3", "3", "regular", "right-linear":
		return Regular, nil
	}
	return 0, fmt.Errorf("unknown grammar type %q", s)
}

// Grammar is an immutable, validated grammar G = (N, T, P, S).
type Grammar struct {
	nonterminals []string
	terminals    []string
	isNT         map[string]bool
	isT          map[string]bool
	productions  []Production
	byLeft       map[string][]int
	start        string
	kind         Kind
}

// New validates its arguments and returns the grammar they describe.
// Symbol slices may contain duplicates; the first occurrence fixes the order.
func New(nonterminals, terminals []string, productions []Production, start string, kind Kind) (*Grammar, error) {
	g := &Grammar{
		isNT:   make(map[string]bool),
		isT:    make(map[string]bool),
		byLeft: make(map[string][]int),
		start:  start,
		kind:   kind,
	}
	for _, s := range nonterminals {
		if !g.isNT[s] {
			g.isNT[s] = true
			g.nonterminals = append(g.nonterminals, s)
		}
	}
	for _, s := range terminals {
		if !g.isT[s] {
			g.isT[s] = true
			g.terminals = append(g.terminals, s)
		}
	}
	g.productions = make([]Production, len(productions))
	copy(g.productions, productions)
	for i, p := range g.productions {
		g.byLeft[p.left] = append(g.byLeft[p.left], i)
	}

	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grammar) validate() error {
	if !g.isNT[g.start] {
		return invalid("start symbol %q is not a declared nonterminal", g.start)
	}
	for _, s := range g.terminals {
		if g.isNT[s] {
			return invalid("symbol %q is declared both terminal and nonterminal", s)
		}
	}
	for _, p := range g.productions {
		if !g.isNT[p.left] {
			return InvalidProduction(p, "left side %q is not a nonterminal", p.left)
		}
		if len(p.symbols) == 0 {
			return InvalidProduction(p, "empty right side, write %s for the empty string", EmptyMarker)
		}
		for _, s := range p.symbols {
			if s != EmptyMarker && !g.isNT[s] && !g.isT[s] {
				return InvalidProduction(p, "unknown symbol %q", s)
			}
		}
	}
	return nil
}

// ProductionsFor returns the productions whose left side is nt, in
// declaration order.
func (g *Grammar) ProductionsFor(nt string) []Production {
	idx := g.byLeft[nt]
	out := make([]Production, len(idx))
	for i, j := range idx {
		out[i] = g.productions[j]
	}
	return out
}

// Productions returns all productions in declaration order.
func (g *Grammar) Productions() []Production {
	out := make([]Production, len(g.productions))
	copy(out, g.productions)
	return out
}

// NumProductions returns |P|.
func (g *Grammar) NumProductions() int {
	return len(g.productions)
}

// Nonterminals returns a copy of N in declaration order.
func (g *Grammar) Nonterminals() []string {
	return append([]string(nil), g.nonterminals...)
}

// Terminals returns a copy of T in declaration order.
func (g *Grammar) Terminals() []string {
	return append([]string(nil), g.terminals...)
}

func (g *Grammar) IsTerminal(s string) bool {
	return g.isT[s]
}

func (g *Grammar) IsNonterminal(s string) bool {
	return g.isNT[s]
}

func (g *Grammar) Start() string {
	return g.start
}

func (g *Grammar) Kind() Kind {
	return g.kind
}

// Nullable reports whether nt has a direct empty production.
func (g *Grammar) Nullable(nt string) bool {
	for _, i := range g.byLeft[nt] {
		if g.productions[i].IsEmpty() {
			return true
		}
	}
	return false
}

// WithKind returns a copy of g tagged with another kind.
func (g *Grammar) WithKind(kind Kind) *Grammar {
	c := *g
	c.kind = kind
	return &c
}

func (g *Grammar) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Grammar %s\n", g.kind)
	fmt.Fprintf(&sb, "N = {%s}\n", strings.Join(g.nonterminals, ", "))
	fmt.Fprintf(&sb, "T = {%s}\n", strings.Join(g.terminals, ", "))
	fmt.Fprintf(&sb, "S = %s\n", g.start)
	sb.WriteString("P:\n")
	for _, p := range g.productions {
		fmt.Fprintf(&sb, "  %s\n", p)
	}
	return sb.String()
}
