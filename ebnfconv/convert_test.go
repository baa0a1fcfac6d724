package ebnfconv

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/JordiGD/Project-Grammar/grammar"
	"github.com/JordiGD/Project-Grammar/parse"
)

const exprGrammar = `
Expr = Term { ( "+" | "-" ) Term } .
Term = "x" | "(" Expr ")" .
`

func mustConvert(t *testing.T, src, start string) *grammar.Grammar {
	t.Helper()
	eg, err := Parse("test.ebnf", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	g, err := Convert(eg, start)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	return g
}

func TestConvert(t *testing.T) {
	g := mustConvert(t, exprGrammar, "Expr")

	if got, want := g.Nonterminals(), []string{"Expr", "Term", "Expr_rep1", "Expr_group2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Nonterminals() = %q, want %q", got, want)
	}
	if got, want := g.Terminals(), []string{"+", "-", "x", "(", ")"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Terminals() = %q, want %q", got, want)
	}
	if g.Start() != "Expr" || g.Kind() != grammar.ContextFree {
		t.Errorf("Start() = %q, Kind() = %v", g.Start(), g.Kind())
	}

	rep := g.ProductionsFor("Expr_rep1")
	if len(rep) != 2 {
		t.Fatalf("ProductionsFor(Expr_rep1) = %v", rep)
	}
	if got, want := rep[0].Symbols(), []string{"Expr_group2", "Term", "Expr_rep1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("repetition body = %q, want %q", got, want)
	}
	if !rep[1].IsEmpty() {
		t.Errorf("repetition should end with ε, got %v", rep[1])
	}
	if got := len(g.ProductionsFor("Expr_group2")); got != 2 {
		t.Errorf("group has %d productions, want 2", got)
	}
}

func TestConvertedGrammarParses(t *testing.T) {
	p, err := parse.New(mustConvert(t, exprGrammar, "Expr"))
	if err != nil {
		t.Fatalf("parse.New() error = %v", err)
	}
	for _, in := range []string{"x", "x+x", "x+(x-x)"} {
		if res := p.Parse(in); !res.Accepted() {
			t.Errorf("Parse(%q) = %v, want accepted", in, res)
		}
	}
	for _, in := range []string{"", "+x", "x+"} {
		if res := p.Parse(in); res.Accepted() {
			t.Errorf("Parse(%q) accepted", in)
		}
	}
}

func TestConvertOptionAndRange(t *testing.T) {
	g := mustConvert(t, `
Number = [ "-" ] Digit { Digit } .
Digit = "0" … "3" .
`, "Number")

	if got, want := g.Terminals(), []string{"-", "0", "1", "2", "3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Terminals() = %q, want %q", got, want)
	}
	opt := g.ProductionsFor("Number_opt1")
	if len(opt) != 2 || opt[0].Symbol(0) != "-" || !opt[1].IsEmpty() {
		t.Errorf("option productions = %v", opt)
	}
	if got := len(g.ProductionsFor("Digit_range1")); got != 4 {
		t.Errorf("range has %d productions, want 4", got)
	}
}

func TestConvertMultiCharacterTokens(t *testing.T) {
	g := mustConvert(t, `Stmt = "if" Cond "then" | "skip" .
Cond = "true" .`, "Stmt")

	ps := g.ProductionsFor("Stmt")
	if got, want := ps[0].Symbols(), []string{"if", "Cond", "then"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Symbols() = %q, want %q", got, want)
	}
	if got, want := ps[1].Symbols(), []string{"skip"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Symbols() = %q, want %q", got, want)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		start string
	}{
		{"missing start", `A = "a" .`, "S"},
		{"missing production", `S = A .`, "S"},
		{"unreachable production", `S = "a" .
B = "b" .`, "S"},
		{"white space in token", `S = "a b" .`, "S"},
		{"token names a production", `S = "B" B .
B = "b" .`, "S"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eg, err := Parse("test.ebnf", strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if _, err := Convert(eg, tt.start); err == nil {
				t.Error("Convert() error = nil")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.ebnf")
	if err := os.WriteFile(path, []byte(exprGrammar), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := LoadFile(path, "Expr")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if g.NumProductions() != 7 {
		t.Errorf("NumProductions() = %d, want 7", g.NumProductions())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "none.ebnf"), "Expr"); err == nil {
		t.Error("LoadFile(missing) error = nil")
	}
	empty := filepath.Join(t.TempDir(), "empty.ebnf")
	if err := os.WriteFile(empty, []byte("S = ."), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(empty, "S"); err != nil {
		t.Errorf("LoadFile(empty production) error = %v", err)
	}
}
