// Package parse decides membership of strings in a grammar's language and
// returns a derivation tree as proof.
//
// Context-free grammars are parsed by a bounded backtracking search,
// regular grammars by walking the automaton their productions describe.
package parse

import (
	"github.com/tliron/commonlog"

	"github.com/JordiGD/Project-Grammar/grammar"
)

// Option configures a parser.
type Option func(*options)

type options struct {
	maxSteps int
	maxDepth int
	log      commonlog.Logger
}

// WithMaxSteps overrides the step bound of the context-free search.
func WithMaxSteps(n int) Option {
	return func(o *options) {
		o.maxSteps = n
	}
}

// WithMaxDepth overrides the depth bound of the context-free search.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithLogger sets the logger parse outcomes are reported to.
func WithLogger(log commonlog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

func newOptions(g *grammar.Grammar, opts []Option) options {
	o := options{
		maxSteps: max(1000, g.NumProductions()*100),
		maxDepth: max(20, g.NumProductions()*2),
		log:      commonlog.GetLogger("grammar.parse"),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Parser is either a *ContextFree or a *Regular parser, picked once from the
// grammar's kind.
type Parser struct {
	kind grammar.Kind
	cf   *ContextFree
	reg  *Regular
}

// New returns the parser suited to g's kind. A nil grammar, an unknown kind
// or a Regular grammar that is not right-linear all yield a
// *grammar.ValidationError.
func New(g *grammar.Grammar, opts ...Option) (*Parser, error) {
	if g == nil {
		return nil, &grammar.ValidationError{Message: "no grammar"}
	}
	switch g.Kind() {
	case grammar.Regular:
		reg, err := NewRegular(g, opts...)
		if err != nil {
			return nil, err
		}
		return &Parser{kind: grammar.Regular, reg: reg}, nil
	case grammar.ContextFree:
		return &Parser{kind: grammar.ContextFree, cf: NewContextFree(g, opts...)}, nil
	}
	return nil, &grammar.ValidationError{Message: "unsupported grammar type " + g.Kind().String()}
}

// Kind returns the kind of grammar the parser was built for.
func (p *Parser) Kind() grammar.Kind {
	return p.kind
}

// Parse decides whether input is in the language.
func (p *Parser) Parse(input string) Result {
	if p.kind == grammar.Regular {
		return p.reg.Parse(input)
	}
	return p.cf.Parse(input)
}

// Regular returns the automaton parser when the grammar is regular.
func (p *Parser) Regular() (*Regular, bool) {
	return p.reg, p.reg != nil
}
