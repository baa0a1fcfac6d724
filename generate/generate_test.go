package generate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/JordiGD/Project-Grammar/grammar"
)

func mustSample(t *testing.T, name string) *grammar.Grammar {
	t.Helper()
	g, err := grammar.Sample(name)
	if err != nil {
		t.Fatalf("Sample(%q) error = %v", name, err)
	}
	return g
}

func mustGrammar(t *testing.T, text string) *grammar.Grammar {
	t.Helper()
	g, err := grammar.ParseText("test", strings.NewReader(text))
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}
	return g
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		sample string
		n      int
		want   []string
	}{
		{"anbn", 5, []string{"", "ab", "aabb", "aaabbb", "aaaabbbb"}},
		{"palindrome", 7, []string{"", "aa", "bb", "aaaa", "abba", "baab", "bbbb"}},
		{"identifier", 3, []string{"a", "b", "aa"}},
		{"anbn", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.sample, func(t *testing.T) {
			got := New(mustSample(t, tt.sample)).Generate(tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Generate(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestGenerateLeftRecursive(t *testing.T) {
	got := New(mustSample(t, "arithmetic")).Generate(3)
	if len(got) != 3 {
		t.Fatalf("Generate(3) = %q, want 3 strings", got)
	}
	if got[0] != "x" {
		t.Errorf("first string = %q, want x", got[0])
	}
}

func TestGenerateDeduplicates(t *testing.T) {
	g := mustGrammar(t, "S -> A | B\nA -> a\nB -> a")
	if got := New(g).Generate(5); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Generate(5) = %q, want [a]", got)
	}
}

func TestGenerateNoTerminatingDerivation(t *testing.T) {
	gen := New(mustGrammar(t, "S -> a S"))
	if got := gen.Generate(3); len(got) != 0 {
		t.Errorf("Generate(3) = %q, want none", got)
	}
	if st := gen.Stats(); st.Capped || st.Pruned != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestGenerateBounds(t *testing.T) {
	g := mustSample(t, "anbn")

	gen := New(g, WithMaxDepth(3))
	if got := gen.Generate(10); !reflect.DeepEqual(got, []string{"", "ab"}) {
		t.Errorf("WithMaxDepth(3): Generate(10) = %q", got)
	}
	if st := gen.Stats(); st.Pruned != 2 || st.Capped {
		t.Errorf("WithMaxDepth(3): Stats() = %+v", st)
	}

	gen = New(g, WithMaxSteps(3))
	if got := gen.Generate(5); !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("WithMaxSteps(3): Generate(5) = %q", got)
	}
	if st := gen.Stats(); !st.Capped || st.Explored != 3 {
		t.Errorf("WithMaxSteps(3): Stats() = %+v", st)
	}

	gen = New(g, WithMaxLength(4))
	if got := gen.Generate(10); !reflect.DeepEqual(got, []string{"", "ab"}) {
		t.Errorf("WithMaxLength(4): Generate(10) = %q", got)
	}
}
