package parse

import (
	"fmt"
	"strings"
)

// Transition is one edge of the automaton of a regular grammar.
// An empty To means the production has no trailing nonterminal: taking the
// edge accepts if the input ends there.
type Transition struct {
	From   string
	Symbol string
	To     string
	// Shadowed is set when an earlier production of From already reads
	// Symbol, so the parser never takes this edge.
	Shadowed bool
}

// Automaton is a read-only description of a regular grammar as a finite
// automaton. The parser does not consult it.
type Automaton struct {
	States      []string
	Alphabet    []string
	Initial     string
	Accepting   []string
	Transitions []Transition
}

// Automaton derives the automaton description from the grammar.
func (r *Regular) Automaton() Automaton {
	a := Automaton{
		States:   r.g.Nonterminals(),
		Alphabet: r.g.Terminals(),
		Initial:  r.g.Start(),
	}
	for _, state := range a.States {
		seen := make(map[string]bool)
		accepting := false
		for _, p := range r.g.ProductionsFor(state) {
			if p.IsEmpty() {
				accepting = true
				continue
			}
			t := Transition{From: state, Symbol: p.Symbol(0), Shadowed: seen[p.Symbol(0)]}
			if p.Len() == 2 {
				t.To = p.Symbol(1)
			}
			seen[t.Symbol] = true
			a.Transitions = append(a.Transitions, t)
		}
		if accepting {
			a.Accepting = append(a.Accepting, state)
		}
	}
	return a
}

// DescribeAutomaton renders Automaton as text.
func (r *Regular) DescribeAutomaton() string {
	return r.Automaton().String()
}

func (a Automaton) String() string {
	var sb strings.Builder
	sb.WriteString("Finite automaton\n")
	fmt.Fprintf(&sb, "  States:    {%s}\n", strings.Join(a.States, ", "))
	fmt.Fprintf(&sb, "  Alphabet:  {%s}\n", strings.Join(a.Alphabet, ", "))
	fmt.Fprintf(&sb, "  Initial:   %s\n", a.Initial)
	fmt.Fprintf(&sb, "  Accepting: {%s}\n", strings.Join(a.Accepting, ", "))
	sb.WriteString("  Transitions:\n")
	for _, t := range a.Transitions {
		to := t.To
		if to == "" {
			to = "accept at end of input"
		}
		fmt.Fprintf(&sb, "    δ(%s, %s) = %s", t.From, t.Symbol, to)
		if t.Shadowed {
			sb.WriteString("  (shadowed)")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
