package parse

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/JordiGD/Project-Grammar/grammar"
)

// tokenizer splits input into grammar terminals.
type tokenizer struct {
	terminals []string // longest first
}

func newTokenizer(g *grammar.Grammar) *tokenizer {
	var terms []string
	for _, t := range g.Terminals() {
		if t != "" {
			terms = append(terms, t)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	return &tokenizer{terminals: terms}
}

func (t *tokenizer) tokenize(input string) []string {
	if input == grammar.EmptyMarker {
		return nil
	}
	var tokens []string
	for i := 0; i < len(input); {
		matched := false
		for _, term := range t.terminals {
			if strings.HasPrefix(input[i:], term) {
				tokens = append(tokens, term)
				i += len(term)
				matched = true
				break
			}
		}
		if !matched {
			_, size := utf8.DecodeRuneInString(input[i:])
			tokens = append(tokens, input[i:i+size])
			i += size
		}
	}
	return tokens
}

// Tokenize splits input the way the parsers do: at each position the
// longest declared terminal wins, and text matching no terminal becomes a
// one-character token. This is a greedy heuristic; it can split input
// differently from what the grammar needs when one terminal is a prefix of
// another sequence of terminals. The input "ε" is the empty string.
func Tokenize(g *grammar.Grammar, input string) []string {
	return newTokenizer(g).tokenize(input)
}
