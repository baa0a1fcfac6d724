package lsp

import (
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestAnalyzeDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		line     protocol.UInteger
		severity protocol.DiagnosticSeverity
		contains string
	}{
		{
			name:     "syntax error",
			text:     "S -> a S\n# comment\nthis is not a rule\n",
			line:     2,
			severity: protocol.DiagnosticSeverityError,
			contains: "expected a production",
		},
		{
			name:     "not right-linear",
			text:     "%type regular\nS -> a S\nS -> ab | ε\n",
			line:     2,
			severity: protocol.DiagnosticSeverityError,
			contains: "not right-linear",
		},
		{
			name:     "undeclared symbol",
			text:     "%nonterminals S\n%terminals a\nS -> a\nS -> b\n",
			line:     3,
			severity: protocol.DiagnosticSeverityError,
			contains: "b",
		},
		{
			name:     "nonterminal without productions",
			text:     "%nonterminals S A\nS -> a A\n",
			line:     1,
			severity: protocol.DiagnosticSeverityWarning,
			contains: "A has no productions",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := analyze("test.grammar", tt.text)
			if len(doc.diagnostics) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %+v", len(doc.diagnostics), doc.diagnostics)
			}
			d := doc.diagnostics[0]
			if d.Range.Start.Line != tt.line {
				t.Errorf("line = %d, want %d", d.Range.Start.Line, tt.line)
			}
			if d.Severity == nil || *d.Severity != tt.severity {
				t.Errorf("severity = %v, want %v", d.Severity, tt.severity)
			}
			if !strings.Contains(d.Message, tt.contains) {
				t.Errorf("message %q does not mention %q", d.Message, tt.contains)
			}
		})
	}
}

func TestAnalyzeValid(t *testing.T) {
	doc := analyze("anbn.grammar", "S -> a S b | ε\n")
	if doc.src == nil {
		t.Fatal("valid grammar not kept")
	}
	if doc.diagnostics == nil || len(doc.diagnostics) != 0 {
		t.Errorf("diagnostics = %+v, want empty list", doc.diagnostics)
	}
}

func TestDiagnosticRange(t *testing.T) {
	doc := analyze("test.grammar", "S → ε\nbroken\n")
	d := doc.diagnostics[0]
	if d.Range.End.Line != 1 || d.Range.End.Character != 6 {
		t.Errorf("range end = %+v", d.Range.End)
	}
}

func TestHover(t *testing.T) {
	doc := analyze("test.grammar", "S -> a S b | ε\n%terminals a b\n")

	h := doc.hover(protocol.Position{Line: 0, Character: 0})
	if h == nil {
		t.Fatal("no hover for S")
	}
	text := h.Contents.(protocol.MarkupContent).Value
	for _, want := range []string{"nonterminal `S`", "start symbol", "nullable", "S → a S b", "S → ε"} {
		if !strings.Contains(text, want) {
			t.Errorf("hover missing %q:\n%s", want, text)
		}
	}

	h = doc.hover(protocol.Position{Line: 0, Character: 5})
	if h == nil || !strings.Contains(h.Contents.(protocol.MarkupContent).Value, "terminal `a`") {
		t.Errorf("hover over a = %+v", h)
	}

	if h := doc.hover(protocol.Position{Line: 0, Character: 1}); h != nil {
		t.Errorf("hover over white space = %+v", h)
	}
	if h := doc.hover(protocol.Position{Line: 9, Character: 0}); h != nil {
		t.Errorf("hover past the end = %+v", h)
	}
}

func TestHoverPacked(t *testing.T) {
	doc := analyze("test.grammar", "S->aSb|ε\n")
	sym, ok := doc.symbolAt(protocol.Position{Line: 0, Character: 4})
	if !ok || sym != "S" {
		t.Errorf("symbolAt() = %q, %v; want S", sym, ok)
	}
}

func TestSymbols(t *testing.T) {
	doc := analyze("test.grammar", "# expressions\nE -> E + T | T\nT -> x\n")
	syms := doc.symbols()
	if len(syms) != 2 {
		t.Fatalf("symbols() = %+v", syms)
	}
	if syms[0].Name != "E" || syms[0].Range.Start.Line != 1 {
		t.Errorf("first symbol = %+v", syms[0])
	}
	if syms[1].Name != "T" || syms[1].Range.Start.Line != 2 {
		t.Errorf("second symbol = %+v", syms[1])
	}

	if got := analyze("bad.grammar", "nope").symbols(); got != nil {
		t.Errorf("symbols() of invalid grammar = %+v", got)
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName("file:///tmp/work/anbn.grammar"); got != "anbn.grammar" {
		t.Errorf("displayName() = %q", got)
	}
}
