package grammar

import (
	"fmt"
	"sort"
)

type sample struct {
	description  string
	nonterminals []string
	terminals    []string
	productions  []Production
	start        string
	kind         Kind
}

var samples = map[string]sample{
	"arithmetic": {
		description:  "arithmetic expressions over x; the parser keeps the first matching alternative, so x*x and x+x+x are rejected",
		nonterminals: []string{"E", "T", "F"},
		terminals:    []string{"+", "*", "(", ")", "x"},
		productions: []Production{
			NewProduction("E", "E + T"), NewProduction("E", "T"),
			NewProduction("T", "T * F"), NewProduction("T", "F"),
			NewProduction("F", "( E )"), NewProduction("F", "x"),
		},
		start: "E",
		kind:  ContextFree,
	},
	"arithmetic-id": {
		description:  "arithmetic expressions over the multi-character terminal id; rejects id*id like arithmetic",
		nonterminals: []string{"E", "T", "F"},
		terminals:    []string{"+", "*", "(", ")", "id"},
		productions: []Production{
			NewProduction("E", "E + T"), NewProduction("E", "T"),
			NewProduction("T", "T * F"), NewProduction("T", "F"),
			NewProduction("F", "( E )"), NewProductionSymbols("F", []string{"id"}),
		},
		start: "E",
		kind:  ContextFree,
	},
	"palindrome": {
		description:  "even-length palindromes over a, b",
		nonterminals: []string{"S"},
		terminals:    []string{"a", "b"},
		productions: []Production{
			NewProduction("S", "a S a"), NewProduction("S", "b S b"),
			NewProduction("S", EmptyMarker),
		},
		start: "S",
		kind:  ContextFree,
	},
	"anbn": {
		description:  "a^n b^n",
		nonterminals: []string{"S"},
		terminals:    []string{"a", "b"},
		productions: []Production{
			NewProduction("S", "a S b"), NewProduction("S", EmptyMarker),
		},
		start: "S",
		kind:  ContextFree,
	},
	"identifier": {
		description:  "identifiers: a letter followed by letters and digits (regular)",
		nonterminals: []string{"S", "A"},
		terminals:    []string{"a", "b", "0", "1"},
		productions: []Production{
			NewProduction("S", "a A"), NewProduction("S", "b A"),
			NewProduction("A", "a A"), NewProduction("A", "b A"),
			NewProduction("A", "0 A"), NewProduction("A", "1 A"),
			NewProduction("A", EmptyMarker),
		},
		start: "S",
		kind:  Regular,
	},
}

// Samples returns the names of the built-in sample grammars.
func Samples() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SampleDescription returns a one-line description of a built-in grammar.
func SampleDescription(name string) string {
	return samples[name].description
}

// Sample builds the built-in sample grammar called name.
func Sample(name string) (*Grammar, error) {
	s, ok := samples[name]
	if !ok {
		return nil, fmt.Errorf("unknown sample grammar %q", name)
	}
	return New(s.nonterminals, s.terminals, s.productions, s.start, s.kind)
}
