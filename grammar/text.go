package grammar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Source is a grammar read from text together with the line each of its
// productions was written on.
type Source struct {
	Grammar *Grammar

	lines []int
}

// LineOf returns the 1-based line p was declared on, or 0.
func (s *Source) LineOf(p Production) int {
	for i, q := range s.Grammar.productions {
		if q.Equal(p) {
			return s.lines[i]
		}
	}
	return 0
}

// ParseText reads a grammar in the line-oriented text format:
//
//	# comment
//	%type regular
//	%start S
//	S -> a A | b A
//	A → a A | 0 A
//	  | ε
//
// Productions use "->", "→", "::=" or ":" between sides and "|" between
// alternatives; a line starting with "|" continues the previous rule.
// Without directives the grammar is context-free, its start symbol is the
// first left side, its nonterminals are all left sides and every other
// right-hand symbol is a terminal.
//
// Right sides follow NewProduction, with one exception: an alternative
// without whitespace that spells a whole symbol declared by %terminals,
// %nonterminals or a left side is that single symbol, so "F -> id" works
// when id is a declared terminal. NewProduction and the JSON format do not
// do this: there "id" is always the two symbols i and d.
func ParseText(name string, r io.Reader) (*Grammar, error) {
	src, err := ReadText(name, r)
	if err != nil {
		return nil, err
	}
	return src.Grammar, nil
}

// ReadText is ParseText keeping line information.
func ReadText(name string, r io.Reader) (*Source, error) {
	rd := &textReader{name: name, kind: ContextFree}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rd.line++
		if err := rd.readLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return rd.finish()
}

type textReader struct {
	name string
	line int

	kind         Kind
	start        string
	startLine    int
	nonterminals []string
	terminals    []string
	declaredNT   bool
	declaredT    bool

	lefts    []string
	alts     []alternative
	lastLeft string
}

type alternative struct {
	left, right string
	line        int
}

func (rd *textReader) errorf(format string, args ...any) error {
	return &SyntaxError{Name: rd.name, Line: rd.line, Message: fmt.Sprintf(format, args...)}
}

func (rd *textReader) readLine(text string) error {
	line := strings.TrimSpace(text)
	switch {
	case line == "" || strings.HasPrefix(line, "#"):
		return nil
	case strings.HasPrefix(line, "%"):
		return rd.directive(line)
	case strings.HasPrefix(line, "|"):
		if rd.lastLeft == "" {
			return rd.errorf("alternative without a preceding rule")
		}
		rd.alternatives(rd.lastLeft, line[1:])
		return nil
	}

	at, width := findArrow(line)
	if at < 0 {
		return rd.errorf("expected a production like \"A -> α\", got %q", line)
	}
	left := strings.TrimSpace(line[:at])
	if left == "" || strings.ContainsAny(left, " \t") {
		return rd.errorf("left side %q must be a single symbol", left)
	}
	if !contains(rd.lefts, left) {
		rd.lefts = append(rd.lefts, left)
	}
	rd.lastLeft = left
	rd.alternatives(left, line[at+width:])
	return nil
}

func (rd *textReader) alternatives(left, right string) {
	for _, alt := range strings.Split(right, "|") {
		rd.alts = append(rd.alts, alternative{left: left, right: strings.TrimSpace(alt), line: rd.line})
	}
}

func (rd *textReader) directive(line string) error {
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return rd.errorf("empty directive")
	}
	args := splitArgs(fields[1:])
	switch fields[0] {
	case "type":
		if len(args) != 1 {
			return rd.errorf("%%type takes one argument")
		}
		k, err := ParseKind(args[0])
		if err != nil {
			return rd.errorf("%v", err)
		}
		rd.kind = k
	case "start":
		if len(args) != 1 {
			return rd.errorf("%%start takes one argument")
		}
		rd.start = args[0]
		rd.startLine = rd.line
	case "nonterminals":
		rd.nonterminals = append(rd.nonterminals, args...)
		rd.declaredNT = true
	case "terminals":
		rd.terminals = append(rd.terminals, args...)
		rd.declaredT = true
	default:
		return rd.errorf("unknown directive %%%s", fields[0])
	}
	return nil
}

func (rd *textReader) finish() (*Source, error) {
	if len(rd.alts) == 0 && rd.start == "" {
		return nil, &SyntaxError{Name: rd.name, Line: rd.line, Message: "no productions"}
	}

	declared := make(map[string]bool)
	for _, list := range [][]string{rd.lefts, rd.nonterminals, rd.terminals} {
		for _, s := range list {
			declared[s] = true
		}
	}
	productions := make([]Production, len(rd.alts))
	lines := make([]int, len(rd.alts))
	for i, alt := range rd.alts {
		if declared[alt.right] && !strings.ContainsFunc(alt.right, unicode.IsSpace) {
			productions[i] = NewProductionSymbols(alt.left, []string{alt.right})
		} else {
			productions[i] = NewProduction(alt.left, alt.right)
		}
		lines[i] = alt.line
	}

	start := rd.start
	if start == "" {
		start = rd.lefts[0]
	}
	nonterminals := rd.nonterminals
	if !rd.declaredNT {
		nonterminals = rd.lefts
	}
	terminals := rd.terminals
	if !rd.declaredT {
		isNT := make(map[string]bool)
		for _, s := range nonterminals {
			isNT[s] = true
		}
		for _, p := range productions {
			for _, s := range p.symbols {
				if s != EmptyMarker && !isNT[s] && !contains(terminals, s) {
					terminals = append(terminals, s)
				}
			}
		}
	}

	g, err := New(nonterminals, terminals, productions, start, rd.kind)
	if err != nil {
		line := rd.startLine
		var verr *ValidationError
		if errors.As(err, &verr) && verr.Production != nil {
			for i, p := range productions {
				if p.Equal(*verr.Production) {
					line = lines[i]
					break
				}
			}
		}
		if line == 0 {
			line = 1
		}
		return nil, &SyntaxError{Name: rd.name, Line: line, Message: err.Error(), Err: err}
	}
	return &Source{Grammar: g, lines: lines}, nil
}

// splitArgs splits directive arguments on commas. A lone "," is kept as
// a symbol.
func splitArgs(fields []string) []string {
	var args []string
	for _, f := range fields {
		if f == "," {
			args = append(args, f)
			continue
		}
		for _, a := range strings.Split(f, ",") {
			if a != "" {
				args = append(args, a)
			}
		}
	}
	return args
}

// findArrow returns the position and width of the earliest side separator.
func findArrow(line string) (int, int) {
	at, width := -1, 0
	for _, sep := range []string{"::=", "->", "→", ":"} {
		if i := strings.Index(line, sep); i >= 0 && (at < 0 || i < at) {
			at, width = i, len(sep)
		}
	}
	return at, width
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// WriteText writes g in the format read by ParseText. It fails with
// ErrNotText, writing nothing, when a symbol would read back differently:
// a symbol containing "|" or white space, a symbol other than "," itself
// containing ",", the reserved "ε" and "epsilon", and nonterminals that
// contain a side separator or start with "#", "%" or "|".
func WriteText(w io.Writer, g *Grammar) error {
	if err := checkText(g); err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%%type %s\n", g.kind)
	fmt.Fprintf(&sb, "%%start %s\n", g.start)
	fmt.Fprintf(&sb, "%%nonterminals %s\n", strings.Join(g.nonterminals, " "))
	if len(g.terminals) > 0 {
		fmt.Fprintf(&sb, "%%terminals %s\n", strings.Join(g.terminals, " "))
	}
	for _, p := range g.productions {
		right := strings.Join(p.symbols, " ")
		if p.IsEmpty() {
			right = EmptyMarker
		}
		fmt.Fprintf(&sb, "%s -> %s\n", p.left, right)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func checkText(g *Grammar) error {
	for _, s := range g.nonterminals {
		if err := checkTextSymbol(s); err != nil {
			return err
		}
		if at, _ := findArrow(s); at >= 0 || strings.ContainsAny(s[:1], "#%") {
			return fmt.Errorf("%w: nonterminal %q reads as a separator, comment or directive", ErrNotText, s)
		}
	}
	for _, s := range g.terminals {
		if err := checkTextSymbol(s); err != nil {
			return err
		}
	}
	return nil
}

func checkTextSymbol(s string) error {
	switch {
	case s == "":
		return fmt.Errorf("%w: empty symbol", ErrNotText)
	case strings.Contains(s, "|"):
		return fmt.Errorf("%w: symbol %q contains the alternative separator", ErrNotText, s)
	case strings.ContainsFunc(s, unicode.IsSpace):
		return fmt.Errorf("%w: symbol %q contains white space", ErrNotText, s)
	case s != "," && strings.Contains(s, ","):
		return fmt.Errorf("%w: symbol %q contains a comma", ErrNotText, s)
	case isEmptyText(s):
		return fmt.Errorf("%w: symbol %q is reserved for the empty string", ErrNotText, s)
	}
	return nil
}
