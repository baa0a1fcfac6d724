package parse

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/JordiGD/Project-Grammar/derivation"
	"github.com/JordiGD/Project-Grammar/grammar"
)

// Regular parses right-linear grammars by treating nonterminals as the
// states of a finite automaton.
//
// When several productions of a state start with the same terminal the
// first declared one is taken; there is no simulation of the other
// branches, so a nondeterministic grammar may reject strings of its
// language.
type Regular struct {
	g   *grammar.Grammar
	tok *tokenizer
	log commonlog.Logger
}

// NewRegular checks that g is right-linear and returns its automaton parser.
// Only the logger option applies.
func NewRegular(g *grammar.Grammar, opts ...Option) (*Regular, error) {
	if err := IsRegular(g); err != nil {
		return nil, err
	}
	o := newOptions(g, opts)
	return &Regular{g: g, tok: newTokenizer(g), log: o.log}, nil
}

// IsRegular returns a *grammar.ValidationError naming the first production
// of g that is not of the form A → ε, A → a or A → a B.
// The grammar's kind tag is not consulted.
func IsRegular(g *grammar.Grammar) error {
	for _, p := range g.Productions() {
		if p.IsEmpty() {
			continue
		}
		switch {
		case p.Len() > 2:
			return grammar.InvalidProduction(p, "not right-linear: more than two symbols")
		case !g.IsTerminal(p.Symbol(0)):
			return grammar.InvalidProduction(p, "not right-linear: must start with a terminal")
		case p.Len() == 2 && !g.IsNonterminal(p.Symbol(1)):
			return grammar.InvalidProduction(p, "not right-linear: second symbol must be a nonterminal")
		}
	}
	return nil
}

type move struct {
	state      string
	production grammar.Production
	token      string
}

// Parse walks the automaton over the tokenized input.
func (r *Regular) Parse(input string) Result {
	tokens := r.tok.tokenize(input)
	res := Result{Tokens: tokens}

	state := r.g.Start()
	var moves []move
	final := false
	for pos, tok := range tokens {
		p, ok := r.transition(state, tok)
		if !ok {
			return r.reject(res, pos, "no transition from %s on %q at position %d", state, tok, pos)
		}
		moves = append(moves, move{state: state, production: p, token: tok})
		if p.Len() == 1 {
			if pos != len(tokens)-1 {
				return r.reject(res, pos+1, "%s ends the derivation but input continues at position %d", p, pos+1)
			}
			final = true
			break
		}
		state = p.Symbol(1)
	}

	var b derivation.Builder
	var child derivation.NodeID
	if final {
		last := moves[len(moves)-1]
		moves = moves[:len(moves)-1]
		leaf := b.Leaf(last.token)
		child = b.Commit(last.state, last.production, []derivation.NodeID{leaf})
	} else {
		p, ok := r.emptyProduction(state)
		if !ok {
			return r.reject(res, len(tokens), "input ended in non-accepting state %s", state)
		}
		leaf := b.Leaf(grammar.EmptyMarker)
		child = b.Commit(state, p, []derivation.NodeID{leaf})
	}
	for i := len(moves) - 1; i >= 0; i-- {
		m := moves[i]
		leaf := b.Leaf(m.token)
		child = b.Commit(m.state, m.production, []derivation.NodeID{leaf, child})
	}

	res.Outcome = Accepted
	res.Tree = b.Tree(child)
	res.Steps = len(tokens)
	res.Message = fmt.Sprintf("accepted by automaton (%d symbols)", len(tokens))
	r.log.Debugf("regular parse of %q accepted", input)
	return res
}

func (r *Regular) reject(res Result, steps int, format string, args ...any) Result {
	res.Outcome = Rejected
	res.Steps = steps
	res.Message = "rejected: " + fmt.Sprintf(format, args...)
	res.err = ErrRejected
	r.log.Debugf("regular parse %s", res.Message)
	return res
}

// transition returns the first declared production of state whose terminal
// is tok.
func (r *Regular) transition(state, tok string) (grammar.Production, bool) {
	for _, p := range r.g.ProductionsFor(state) {
		if !p.IsEmpty() && p.Symbol(0) == tok {
			return p, true
		}
	}
	return grammar.Production{}, false
}

func (r *Regular) emptyProduction(state string) (grammar.Production, bool) {
	for _, p := range r.g.ProductionsFor(state) {
		if p.IsEmpty() {
			return p, true
		}
	}
	return grammar.Production{}, false
}
