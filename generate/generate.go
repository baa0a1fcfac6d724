// Package generate enumerates short strings of a grammar's language by a
// breadth-first search over sentential forms.
package generate

import (
	"strings"

	"github.com/tliron/commonlog"

	"github.com/JordiGD/Project-Grammar/grammar"
)

const (
	defaultMaxDepth  = 20
	defaultMaxLength = 50
	defaultMaxSteps  = 10000
)

// Option configures a Generator.
type Option func(*Generator)

// WithMaxDepth sets the derivation depth at which a form is dropped.
func WithMaxDepth(n int) Option {
	return func(g *Generator) {
		g.maxDepth = n
	}
}

// WithMaxLength sets the symbol count at which a form is dropped.
func WithMaxLength(n int) Option {
	return func(g *Generator) {
		g.maxLength = n
	}
}

// WithMaxSteps caps the number of forms taken off the queue per call.
func WithMaxSteps(n int) Option {
	return func(g *Generator) {
		g.maxSteps = n
	}
}

// WithLogger sets the logger.
func WithLogger(log commonlog.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// Stats describes the last Generate call.
type Stats struct {
	Explored int  // forms taken off the queue
	Pruned   int  // forms dropped for depth or length
	Capped   bool // stopped by the step cap
}

// Generator produces strings of a grammar's language, shortest derivations
// first. The order only approximates increasing length: the queue is
// ordered by derivation depth, not by the length of the string.
//
// A Generator keeps the statistics of its last call and must not be used
// from several goroutines at once.
type Generator struct {
	g         *grammar.Grammar
	maxDepth  int
	maxLength int
	maxSteps  int
	log       commonlog.Logger
	stats     Stats
}

// New creates a generator for g.
func New(g *grammar.Grammar, opts ...Option) *Generator {
	gen := &Generator{
		g:         g,
		maxDepth:  defaultMaxDepth,
		maxLength: defaultMaxLength,
		maxSteps:  defaultMaxSteps,
		log:       commonlog.GetLogger("grammar.generate"),
	}
	for _, opt := range opts {
		opt(gen)
	}
	return gen
}

type form struct {
	symbols []string
	depth   int
}

// Generate returns up to n distinct strings of the language in the order
// they were found. The empty string is returned as "".
//
// Fewer than n strings come back when the search space is exhausted or the
// step cap is reached first; a capped result is not an error.
func (gen *Generator) Generate(n int) []string {
	gen.stats = Stats{}
	if n <= 0 {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	queue := []form{{symbols: []string{gen.g.Start()}}}

	for len(queue) > 0 && len(out) < n {
		if gen.stats.Explored >= gen.maxSteps {
			gen.stats.Capped = true
			break
		}
		cur := queue[0]
		queue = queue[1:]
		gen.stats.Explored++

		at := gen.leftmostNonterminal(cur.symbols)
		if at < 0 {
			s := yield(cur.symbols)
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
			continue
		}

		for _, p := range gen.g.ProductionsFor(cur.symbols[at]) {
			next := splice(cur.symbols, at, p)
			if cur.depth+1 >= gen.maxDepth || len(next) >= gen.maxLength {
				gen.stats.Pruned++
				continue
			}
			queue = append(queue, form{symbols: next, depth: cur.depth + 1})
		}
	}

	if gen.stats.Capped {
		gen.log.Infof("generation stopped after %d forms with %d of %d strings", gen.stats.Explored, len(out), n)
	} else {
		gen.log.Debugf("generated %d strings from %d forms", len(out), gen.stats.Explored)
	}
	return out
}

// Stats reports on the last Generate call.
func (gen *Generator) Stats() Stats {
	return gen.stats
}

func (gen *Generator) leftmostNonterminal(symbols []string) int {
	for i, s := range symbols {
		if gen.g.IsNonterminal(s) {
			return i
		}
	}
	return -1
}

// splice replaces symbols[at] with the right side of p.
func splice(symbols []string, at int, p grammar.Production) []string {
	right := p.Symbols()
	if p.IsEmpty() {
		right = nil
	}
	next := make([]string, 0, len(symbols)-1+len(right))
	next = append(next, symbols[:at]...)
	next = append(next, right...)
	next = append(next, symbols[at+1:]...)
	return next
}

func yield(symbols []string) string {
	var sb strings.Builder
	for _, s := range symbols {
		if s != grammar.EmptyMarker {
			sb.WriteString(s)
		}
	}
	return sb.String()
}
