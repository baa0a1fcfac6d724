package parse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/JordiGD/Project-Grammar/derivation"
	"github.com/JordiGD/Project-Grammar/grammar"
)

// depthWindow is the K in the (symbol, position, depth mod K) cycle key.
const depthWindow = 10

// ContextFree parses arbitrary context-free grammars by recursive descent
// with backtracking over alternatives.
//
// A nonterminal commits to the first alternative that succeeds; the search
// does not come back to it when a later sibling fails, so some ambiguous or
// left-factored grammars reject strings of their language. Left recursion
// is cut by a cycle guard and runaway searches by step and depth bounds.
//
// A ContextFree keeps no per-call state and may be shared.
type ContextFree struct {
	g        *grammar.Grammar
	tok      *tokenizer
	order    map[string][]alternative
	maxSteps int
	maxDepth int
	log      commonlog.Logger
}

type alternative struct {
	production   grammar.Production
	minTerminals int
}

// NewContextFree builds a backtracking parser for g.
func NewContextFree(g *grammar.Grammar, opts ...Option) *ContextFree {
	o := newOptions(g, opts)
	cf := &ContextFree{
		g:        g,
		tok:      newTokenizer(g),
		order:    make(map[string][]alternative),
		maxSteps: o.maxSteps,
		maxDepth: o.maxDepth,
		log:      o.log,
	}
	for _, nt := range g.Nonterminals() {
		cf.order[nt] = cf.prioritize(g.ProductionsFor(nt))
	}
	return cf
}

// prioritize orders alternatives to cut backtracking: ε last, alternatives
// starting with a terminal first, shorter before longer.
func (cf *ContextFree) prioritize(ps []grammar.Production) []alternative {
	rank := func(p grammar.Production) int {
		switch {
		case p.IsEmpty():
			return 2
		case cf.g.IsTerminal(p.Symbol(0)):
			return 0
		}
		return 1
	}
	sort.SliceStable(ps, func(i, j int) bool {
		ri, rj := rank(ps[i]), rank(ps[j])
		if ri != rj {
			return ri < rj
		}
		return ps[i].Len() < ps[j].Len()
	})

	alts := make([]alternative, len(ps))
	for i, p := range ps {
		alts[i].production = p
		for _, s := range p.Symbols() {
			if cf.g.IsTerminal(s) {
				alts[i].minTerminals++
			}
		}
	}
	return alts
}

// Limits returns the step and depth bounds in effect.
func (cf *ContextFree) Limits() (steps, depth int) {
	return cf.maxSteps, cf.maxDepth
}

// Parse decides whether input is in the language.
func (cf *ContextFree) Parse(input string) Result {
	tokens := cf.tok.tokenize(input)
	s := &search{
		cf:      cf,
		tokens:  tokens,
		visited: make(map[stateKey]bool),
	}

	root, _, ok, err := s.derive(cf.g.Start(), 0, 0, true)
	res := Result{Steps: s.steps, Tokens: tokens}
	switch {
	case err != nil:
		res.Outcome = LimitExceeded
		res.Message = err.Error()
		res.err = err
		cf.log.Warningf("parse of %q aborted after %d steps: %s", input, s.steps, err)
		return res
	case !ok:
		res.Outcome = Rejected
		res.Message = fmt.Sprintf("rejected: not in the language (%d steps explored)", s.steps)
		res.err = ErrRejected
		cf.log.Debugf("parse of %q rejected after %d steps", input, s.steps)
		return res
	}

	tree := s.b.Tree(root)
	if got, want := tree.Yield(), strings.Join(tokens, ""); got != want {
		cerr := &ConsistencyError{Got: got, Want: want}
		res.Outcome = Inconsistent
		res.Message = cerr.Error()
		res.err = cerr
		cf.log.Errorf("%s", cerr)
		return res
	}

	res.Outcome = Accepted
	res.Tree = tree
	res.Message = fmt.Sprintf("accepted (%d steps)", s.steps)
	cf.log.Debugf("parse of %q accepted after %d steps", input, s.steps)
	return res
}

type stateKey struct {
	symbol string
	pos    int
	window int
}

// search is the state of one Parse call.
type search struct {
	cf      *ContextFree
	tokens  []string
	steps   int
	visited map[stateKey]bool
	b       derivation.Builder
}

// derive tries to derive symbol from the tokens starting at pos. On success
// it returns the committed subtree and the position after it. A non-nil
// error aborts the whole parse.
func (s *search) derive(symbol string, pos, depth int, root bool) (derivation.NodeID, int, bool, error) {
	s.steps++
	if s.steps > s.cf.maxSteps {
		return derivation.None, pos, false, &LimitError{Bound: StepBound, Limit: s.cf.maxSteps}
	}
	if depth > s.cf.maxDepth {
		return derivation.None, pos, false, &LimitError{Bound: DepthBound, Limit: s.cf.maxDepth}
	}

	if s.cf.g.IsTerminal(symbol) {
		if pos < len(s.tokens) && s.tokens[pos] == symbol {
			return s.b.Leaf(symbol), pos + 1, true, nil
		}
		return derivation.None, pos, false, nil
	}

	key := stateKey{symbol: symbol, pos: pos, window: depth % depthWindow}
	if s.visited[key] {
		return derivation.None, pos, false, nil
	}
	s.visited[key] = true
	defer delete(s.visited, key)

	for _, alt := range s.cf.order[symbol] {
		id, end, ok, err := s.expand(symbol, alt, pos, depth+1, root)
		if err != nil || ok {
			return id, end, ok, err
		}
	}
	return derivation.None, pos, false, nil
}

// expand tries one alternative for symbol at pos.
func (s *search) expand(symbol string, alt alternative, pos, depth int, root bool) (derivation.NodeID, int, bool, error) {
	p := alt.production
	if p.IsEmpty() {
		if root && pos < len(s.tokens) {
			return derivation.None, pos, false, nil
		}
		leaf := s.b.Leaf(grammar.EmptyMarker)
		return s.b.Commit(symbol, p, []derivation.NodeID{leaf}), pos, true, nil
	}
	if pos+alt.minTerminals > len(s.tokens) {
		return derivation.None, pos, false, nil
	}

	mark := s.b.Mark()
	children := make([]derivation.NodeID, 0, p.Len())
	cur := pos
	for i := 0; i < p.Len(); i++ {
		sym := p.Symbol(i)
		switch {
		case s.cf.g.IsTerminal(sym):
			if cur >= len(s.tokens) || s.tokens[cur] != sym {
				s.b.Rollback(mark)
				return derivation.None, pos, false, nil
			}
			children = append(children, s.b.Leaf(sym))
			cur++
		case sym == grammar.EmptyMarker:
			children = append(children, s.b.Leaf(sym))
		default:
			id, end, ok, err := s.derive(sym, cur, depth, false)
			if err != nil {
				return derivation.None, pos, false, err
			}
			// A nonterminal that matched nothing must be able to derive ε.
			if !ok || (end == cur && !s.cf.g.Nullable(sym)) {
				s.b.Rollback(mark)
				return derivation.None, pos, false, nil
			}
			children = append(children, id)
			cur = end
		}
	}

	if root && cur != len(s.tokens) || !root && cur == pos {
		s.b.Rollback(mark)
		return derivation.None, pos, false, nil
	}
	return s.b.Commit(symbol, p, children), cur, true, nil
}
