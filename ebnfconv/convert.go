// Package ebnfconv turns EBNF grammars, as read by golang.org/x/exp/ebnf,
// into context-free grammars.
//
// Every EBNF production becomes a nonterminal and every quoted token a
// terminal. Constructs without a plain BNF counterpart get a fresh
// nonterminal named after the production they occur in:
//
//	( x | y )   →  N → x | y
//	[ x ]       →  N → x | ε
//	{ x }       →  N → x N | ε
//	"a" … "c"   →  N → a | b | c
package ebnfconv

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/exp/ebnf"

	"github.com/JordiGD/Project-Grammar/grammar"
)

// maxRange bounds the number of runes a character range may expand to.
const maxRange = 256

// LoadGrammar reads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Parse(filename, f)
}

// Parse reads an EBNF grammar from r.
func Parse(filename string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// LoadFile reads and converts the EBNF grammar in filename.
func LoadFile(filename, start string) (*grammar.Grammar, error) {
	g, err := LoadGrammar(filename)
	if err != nil {
		return nil, err
	}
	return Convert(g, start)
}

type converter struct {
	src          ebnf.Grammar
	nonterminals []string
	terminals    []string
	isNT         map[string]bool
	isT          map[string]bool
	productions  []grammar.Production
	fresh        map[string]int
	queue        []string
}

// Convert verifies g from start and returns the equivalent grammar.
// Nonterminals are ordered by first reference from start; ebnf.Verify
// guarantees that every production is reached.
func Convert(g ebnf.Grammar, start string) (*grammar.Grammar, error) {
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}

	c := &converter{
		src:   g,
		isNT:  make(map[string]bool),
		isT:   make(map[string]bool),
		fresh: make(map[string]int),
	}
	c.reference(start)
	for len(c.queue) > 0 {
		name := c.queue[0]
		c.queue = c.queue[1:]
		if err := c.define(name, name, g[name].Expr); err != nil {
			return nil, err
		}
	}

	return grammar.New(c.nonterminals, c.terminals, c.productions, start, grammar.ContextFree)
}

// reference declares an EBNF production name and queues its definition.
func (c *converter) reference(name string) {
	if c.isNT[name] {
		return
	}
	c.isNT[name] = true
	c.nonterminals = append(c.nonterminals, name)
	c.queue = append(c.queue, name)
}

func (c *converter) terminal(s string) error {
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return fmt.Errorf("token %q: terminals cannot contain white space", s)
	}
	if s == grammar.EmptyMarker || s == "epsilon" {
		return fmt.Errorf("token %q is reserved for the empty string", s)
	}
	if _, ok := c.src[s]; ok || c.isNT[s] {
		return fmt.Errorf("token %q is also a production name", s)
	}
	if !c.isT[s] {
		c.isT[s] = true
		c.terminals = append(c.terminals, s)
	}
	return nil
}

// freshName returns an unused nonterminal name derived from owner.
func (c *converter) freshName(owner, kind string) string {
	for {
		c.fresh[owner]++
		name := fmt.Sprintf("%s_%s%d", owner, kind, c.fresh[owner])
		if _, taken := c.src[name]; !taken && !c.isNT[name] && !c.isT[name] {
			c.isNT[name] = true
			c.nonterminals = append(c.nonterminals, name)
			return name
		}
	}
}

// define adds the productions left → alternatives of expr.
func (c *converter) define(left, owner string, expr ebnf.Expression) error {
	alts := []ebnf.Expression{expr}
	if a, ok := expr.(ebnf.Alternative); ok {
		alts = a
	}
	for _, alt := range alts {
		symbols, err := c.sequence(owner, alt)
		if err != nil {
			return err
		}
		c.productions = append(c.productions, grammar.NewProductionSymbols(left, symbols))
	}
	return nil
}

func (c *converter) sequence(owner string, expr ebnf.Expression) ([]string, error) {
	items := []ebnf.Expression{expr}
	if s, ok := expr.(ebnf.Sequence); ok {
		items = s
	}
	var symbols []string
	for _, item := range items {
		sym, err := c.symbol(owner, item)
		if err != nil {
			return nil, err
		}
		if sym != "" {
			symbols = append(symbols, sym)
		}
	}
	return symbols, nil
}

// symbol converts one sequence item. An empty result stands for ε.
func (c *converter) symbol(owner string, expr ebnf.Expression) (string, error) {
	switch e := expr.(type) {
	case nil:
		return "", nil

	case *ebnf.Name:
		c.reference(e.String)
		return e.String, nil

	case *ebnf.Token:
		if e.String == "" {
			return "", nil
		}
		return e.String, c.terminal(e.String)

	case *ebnf.Range:
		return c.charRange(owner, e)

	case *ebnf.Group:
		name := c.freshName(owner, "group")
		return name, c.define(name, owner, e.Body)

	case *ebnf.Option:
		name := c.freshName(owner, "opt")
		if err := c.define(name, owner, e.Body); err != nil {
			return "", err
		}
		c.productions = append(c.productions, grammar.NewProduction(name, grammar.EmptyMarker))
		return name, nil

	case *ebnf.Repetition:
		name := c.freshName(owner, "rep")
		alts := []ebnf.Expression{e.Body}
		if a, ok := e.Body.(ebnf.Alternative); ok {
			alts = a
		}
		for _, alt := range alts {
			symbols, err := c.sequence(owner, alt)
			if err != nil {
				return "", err
			}
			c.productions = append(c.productions, grammar.NewProductionSymbols(name, append(symbols, name)))
		}
		c.productions = append(c.productions, grammar.NewProduction(name, grammar.EmptyMarker))
		return name, nil

	case ebnf.Alternative, ebnf.Sequence:
		name := c.freshName(owner, "group")
		return name, c.define(name, owner, e)
	}
	return "", fmt.Errorf("%s: unsupported expression %T", expr.Pos(), expr)
}

func (c *converter) charRange(owner string, r *ebnf.Range) (string, error) {
	begin, end := []rune(r.Begin.String), []rune(r.End.String)
	if int(end[0]-begin[0]) >= maxRange {
		return "", fmt.Errorf("%s: range %q … %q is too large", r.Pos(), r.Begin.String, r.End.String)
	}
	name := c.freshName(owner, "range")
	for ch := begin[0]; ch <= end[0]; ch++ {
		s := string(ch)
		if err := c.terminal(s); err != nil {
			return "", err
		}
		c.productions = append(c.productions, grammar.NewProductionSymbols(name, []string{s}))
	}
	return name, nil
}
