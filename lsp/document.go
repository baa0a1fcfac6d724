package lsp

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/JordiGD/Project-Grammar/grammar"
	"github.com/JordiGD/Project-Grammar/parse"
)

const diagnosticSource = "grammar"

// document is the analysed state of one open grammar file.
type document struct {
	uri   string
	lines []string
	// src is nil when the text does not describe a valid grammar.
	src         *grammar.Source
	diagnostics []protocol.Diagnostic
}

func analyze(uri, text string) *document {
	doc := &document{
		uri:         uri,
		lines:       strings.Split(text, "\n"),
		diagnostics: []protocol.Diagnostic{},
	}

	src, err := grammar.ReadText(uri, strings.NewReader(text))
	if err != nil {
		var serr *grammar.SyntaxError
		line := 1
		msg := err.Error()
		if errors.As(err, &serr) {
			line, msg = serr.Line, serr.Message
		}
		doc.report(line, protocol.DiagnosticSeverityError, msg)
		return doc
	}
	doc.src = src
	g := src.Grammar

	if _, err := parse.New(g); err != nil {
		line := 1
		var verr *grammar.ValidationError
		if errors.As(err, &verr) && verr.Production != nil {
			line = src.LineOf(*verr.Production)
		}
		doc.report(line, protocol.DiagnosticSeverityError, err.Error())
	}

	reported := make(map[string]bool)
	for _, p := range g.Productions() {
		for _, s := range p.Symbols() {
			if g.IsNonterminal(s) && len(g.ProductionsFor(s)) == 0 && !reported[s] {
				reported[s] = true
				doc.report(src.LineOf(p), protocol.DiagnosticSeverityWarning,
					fmt.Sprintf("nonterminal %s has no productions", s))
			}
		}
	}
	return doc
}

// report adds a diagnostic covering the whole of the 1-based line.
func (doc *document) report(line int, severity protocol.DiagnosticSeverity, msg string) {
	if line < 1 {
		line = 1
	}
	var width int
	if line <= len(doc.lines) {
		width = utf16Len(doc.lines[line-1])
	}
	source := diagnosticSource
	doc.diagnostics = append(doc.diagnostics, protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(line - 1)},
			End:   protocol.Position{Line: protocol.UInteger(line - 1), Character: protocol.UInteger(width)},
		},
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	})
}

// symbolAt returns the grammar symbol under pos: the whitespace separated
// word if it is a declared symbol, else the single rune.
func (doc *document) symbolAt(pos protocol.Position) (string, bool) {
	if doc.src == nil || int(pos.Line) >= len(doc.lines) {
		return "", false
	}
	runes := []rune(doc.lines[pos.Line])
	at := runeIndex(runes, int(pos.Character))
	if at >= len(runes) || unicode.IsSpace(runes[at]) {
		return "", false
	}

	begin, end := at, at
	for begin > 0 && !unicode.IsSpace(runes[begin-1]) {
		begin--
	}
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}
	g := doc.src.Grammar
	if word := string(runes[begin:end]); g.IsNonterminal(word) || g.IsTerminal(word) {
		return word, true
	}
	if r := string(runes[at]); g.IsNonterminal(r) || g.IsTerminal(r) {
		return r, true
	}
	return "", false
}

func (doc *document) hover(pos protocol.Position) *protocol.Hover {
	sym, ok := doc.symbolAt(pos)
	if !ok {
		return nil
	}
	g := doc.src.Grammar

	var sb strings.Builder
	if g.IsTerminal(sym) {
		fmt.Fprintf(&sb, "terminal `%s`", sym)
	} else {
		fmt.Fprintf(&sb, "nonterminal `%s`", sym)
		if sym == g.Start() {
			sb.WriteString(" (start symbol)")
		}
		if g.Nullable(sym) {
			sb.WriteString(", nullable")
		}
		sb.WriteString("\n\n```\n")
		for _, p := range g.ProductionsFor(sym) {
			fmt.Fprintf(&sb, "%s\n", p)
		}
		sb.WriteString("```")
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: sb.String(),
		},
	}
}

// symbols lists every nonterminal at the line of its first production.
func (doc *document) symbols() []protocol.DocumentSymbol {
	if doc.src == nil {
		return nil
	}
	g := doc.src.Grammar
	var out []protocol.DocumentSymbol
	for _, nt := range g.Nonterminals() {
		ps := g.ProductionsFor(nt)
		if len(ps) == 0 {
			continue
		}
		line := doc.src.LineOf(ps[0]) - 1
		if line < 0 {
			continue
		}
		detail := fmt.Sprintf("%d productions", len(ps))
		r := protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(line)},
			End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(utf16Len(doc.lines[line]))},
		}
		out = append(out, protocol.DocumentSymbol{
			Name:           nt,
			Detail:         &detail,
			Kind:           protocol.SymbolKindClass,
			Range:          r,
			SelectionRange: r,
		})
	}
	return out
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// runeIndex converts a UTF-16 offset into an index into runes.
func runeIndex(runes []rune, offset int) int {
	units := 0
	for i, r := range runes {
		if units >= offset {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(runes)
}
