package persist

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JordiGD/Project-Grammar/grammar"
)

func TestRoundTripSamples(t *testing.T) {
	for _, name := range grammar.Samples() {
		t.Run(name, func(t *testing.T) {
			g, err := grammar.Sample(name)
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := NewEncoder(&buf).Encode(g); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got.String() != g.String() {
				t.Errorf("round trip changed the grammar:\n%s\nwant\n%s", got, g)
			}
			for i, p := range got.Productions() {
				if !p.Equal(g.Productions()[i]) {
					t.Errorf("production %d = %v, want %v", i, p, g.Productions()[i])
				}
			}
		})
	}
}

func TestMarshalLayout(t *testing.T) {
	g, err := grammar.Sample("anbn")
	if err != nil {
		t.Fatal(err)
	}
	text, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{
		`"type": "TYPE_2"`,
		`"startSymbol": "S"`,
		`"nonTerminals": [`,
		`"left": "S"`,
		`"right": "a S b"`,
	} {
		if !bytes.Contains(text, []byte(want)) {
			t.Errorf("Marshal() missing %s:\n%s", want, text)
		}
	}
}

func TestDecodeSavedRecord(t *testing.T) {
	const record = `{
  "type": "TYPE_3",
  "startSymbol": "S",
  "nonTerminals": ["S", "A"],
  "terminals": ["a", "b"],
  "productions": [
    {"left": "S", "right": "aA"},
    {"left": "A", "right": "bA"},
    {"left": "A", "right": "ε"}
  ]
}
`
	g, err := Decode(strings.NewReader(record))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if g.Kind() != grammar.Regular || g.Start() != "S" {
		t.Errorf("Kind() = %v, Start() = %q", g.Kind(), g.Start())
	}
	ps := g.ProductionsFor("A")
	if len(ps) != 2 || ps[0].Len() != 2 || !ps[1].IsEmpty() {
		t.Errorf("ProductionsFor(A) = %v", ps)
	}
}

func TestEscaping(t *testing.T) {
	g, err := grammar.New([]string{"S"}, []string{`"`, `\`},
		[]grammar.Production{grammar.NewProduction("S", `"\`)}, "S", grammar.ContextFree)
	if err != nil {
		t.Fatal(err)
	}
	text, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(text, []byte(`"right": "\"\\"`)) {
		t.Errorf("quote and backslash not escaped:\n%s", text)
	}
	back, err := Decode(bytes.NewReader(text))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := back.Productions()[0].Right(); got != `"\` {
		t.Errorf("Right() = %q", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name       string
		record     string
		validation bool
	}{
		{"not json", `{"type": `, false},
		{"unknown type", `{"type": "TYPE_0", "startSymbol": "S", "nonTerminals": ["S"], "terminals": [], "productions": []}`, false},
		{"undeclared start", `{"type": "TYPE_2", "startSymbol": "X", "nonTerminals": ["S"], "terminals": ["a"], "productions": []}`, true},
		{"undeclared symbol", `{"type": "TYPE_2", "startSymbol": "S", "nonTerminals": ["S"], "terminals": ["a"], "productions": [{"left": "S", "right": "b"}]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.record))
			if err == nil {
				t.Fatal("Decode() error = nil")
			}
			var verr *grammar.ValidationError
			if got := errors.As(err, &verr); got != tt.validation {
				t.Errorf("errors.As(ValidationError) = %v for %v", got, err)
			}
		})
	}
}

func TestSaveLoadFile(t *testing.T) {
	g, err := grammar.Sample("arithmetic-id")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "arith.json")
	if err := SaveFile(path, g); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got.String() != g.String() {
		t.Errorf("LoadFile() = %s, want %s", got, g)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadFile(missing) error = nil")
	}
}
