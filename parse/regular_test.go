package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/JordiGD/Project-Grammar/grammar"
)

func TestRegularVerdicts(t *testing.T) {
	p := mustParser(t, mustSample(t, "identifier"))

	for _, in := range []string{"a0b1", "a", "b", "ab01ba"} {
		res := p.Parse(in)
		if !res.Accepted() {
			t.Errorf("Parse(%q) = %v, want accepted", in, res)
			continue
		}
		if got := res.Tree.Yield(); got != in {
			t.Errorf("Parse(%q) tree yields %q", in, got)
		}
	}
	for _, in := range []string{"", "0a", "a2", "1"} {
		res := p.Parse(in)
		if res.Outcome != Rejected || !errors.Is(res.Err(), ErrRejected) {
			t.Errorf("Parse(%q) = %v, want rejected", in, res)
		}
	}
}

func TestRegularTerminalOnlyProduction(t *testing.T) {
	g := mustGrammar(t, "%type regular\nS -> a S | b")
	p := mustParser(t, g)

	for _, in := range []string{"b", "ab", "aaab"} {
		if res := p.Parse(in); !res.Accepted() {
			t.Errorf("Parse(%q) = %v, want accepted", in, res)
		}
	}
	for _, in := range []string{"", "a", "ba", "abb"} {
		if res := p.Parse(in); res.Accepted() {
			t.Errorf("Parse(%q) accepted, want rejected", in)
		}
	}
}

func TestRegularTreeShape(t *testing.T) {
	p := mustParser(t, mustSample(t, "identifier"))
	res := p.Parse("a0")
	if !res.Accepted() {
		t.Fatalf("Parse() = %v", res)
	}
	tree := res.Tree

	root := tree.Node(tree.Root())
	if root.Symbol != "S" || root.Production.Right() != "a A" || len(root.Children) != 2 {
		t.Fatalf("root = %+v", root)
	}
	a := tree.Node(root.Children[1])
	if a.Symbol != "A" || a.Production.Right() != "0 A" {
		t.Fatalf("second node = %+v", a)
	}
	last := tree.Node(a.Children[1])
	if !last.Production.IsEmpty() || !tree.Node(last.Children[0]).IsEmpty() {
		t.Errorf("last node should be A → ε, got %+v", last)
	}
}

func TestRegularFirstDeclaredWins(t *testing.T) {
	// S reads a into A or into B; only B accepts, but A is declared first.
	g := mustGrammar(t, "%type regular\nS -> a A | a B\nA -> b A\nB -> ε")
	p := mustParser(t, g)
	if res := p.Parse("a"); res.Accepted() {
		t.Errorf("Parse(a) accepted; the first declared transition leads to a dead state")
	}

	reg, _ := p.Regular()
	var shadowed int
	for _, tr := range reg.Automaton().Transitions {
		if tr.Shadowed {
			shadowed++
			if tr.From != "S" || tr.To != "B" {
				t.Errorf("unexpected shadowed transition %+v", tr)
			}
		}
	}
	if shadowed != 1 {
		t.Errorf("found %d shadowed transitions, want 1", shadowed)
	}
}

func TestNewRegularRejectsShapes(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"two leading terminals", "S -> ab | ε"},
		{"leading nonterminal", "S -> A a\nA -> a"},
		{"too long", "S -> a a S"},
		{"terminal after terminal", "S -> a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrammar(t, "%type regular\n"+tt.text)
			_, err := New(g)
			var verr *grammar.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("New() error = %v, want *ValidationError", err)
			}
			if verr.Production == nil {
				t.Error("error should name the offending production")
			}
			if IsRegular(g) == nil {
				t.Error("IsRegular() = nil, want error")
			}
		})
	}
}

func TestIsRegularIgnoresKind(t *testing.T) {
	g := mustGrammar(t, "S -> a S | ε")
	if err := IsRegular(g); err != nil {
		t.Errorf("IsRegular() = %v, want nil", err)
	}
}

func TestDescribeAutomaton(t *testing.T) {
	p := mustParser(t, mustGrammar(t, "%type regular\nS -> a A | b\nA -> a A | ε"))
	reg, ok := p.Regular()
	if !ok {
		t.Fatal("expected a regular parser")
	}

	a := reg.Automaton()
	if a.Initial != "S" {
		t.Errorf("Initial = %q", a.Initial)
	}
	if len(a.Accepting) != 1 || a.Accepting[0] != "A" {
		t.Errorf("Accepting = %q, want [A]", a.Accepting)
	}
	if len(a.Transitions) != 3 {
		t.Errorf("len(Transitions) = %d, want 3", len(a.Transitions))
	}

	text := reg.DescribeAutomaton()
	for _, want := range []string{"States:    {S, A}", "δ(S, a) = A", "δ(S, b) = accept at end of input", "Accepting: {A}"} {
		if !strings.Contains(text, want) {
			t.Errorf("DescribeAutomaton() missing %q:\n%s", want, text)
		}
	}
}
