// Package persist stores grammars as JSON records of the form
//
//	{"type": "TYPE_2", "startSymbol": "S", "nonTerminals": [...],
//	 "terminals": [...], "productions": [{"left": "S", "right": "aSb"}]}
//
// The right side of a production is stored as written, so a record
// re-tokenizes to the same symbols when it is loaded.
package persist

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/JordiGD/Project-Grammar/grammar"
)

type jsonGrammar struct {
	Type         string           `json:"type"`
	StartSymbol  string           `json:"startSymbol"`
	NonTerminals []string         `json:"nonTerminals"`
	Terminals    []string         `json:"terminals"`
	Productions  []jsonProduction `json:"productions"`
}

type jsonProduction struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Encoder writes grammars as indented JSON.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) Encode(g *grammar.Grammar) error {
	text, err := Marshal(g)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

// Marshal returns the JSON record of g, terminated by a newline.
func Marshal(g *grammar.Grammar) ([]byte, error) {
	data := buildGrammarData(g)
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

func buildGrammarData(g *grammar.Grammar) jsonGrammar {
	ps := g.Productions()
	data := jsonGrammar{
		Type:         g.Kind().String(),
		StartSymbol:  g.Start(),
		NonTerminals: g.Nonterminals(),
		Terminals:    g.Terminals(),
		Productions:  make([]jsonProduction, len(ps)),
	}
	for i, p := range ps {
		data.Productions[i] = jsonProduction{Left: p.Left(), Right: p.Right()}
	}
	return data
}

// Decode reads one JSON record from r and validates it.
func Decode(r io.Reader) (*grammar.Grammar, error) {
	var data jsonGrammar
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode grammar: %w", err)
	}
	return data.grammar()
}

func (data jsonGrammar) grammar() (*grammar.Grammar, error) {
	kind, err := grammar.ParseKind(data.Type)
	if err != nil {
		return nil, fmt.Errorf("decode grammar: %w", err)
	}
	ps := make([]grammar.Production, len(data.Productions))
	for i, p := range data.Productions {
		ps[i] = grammar.NewProduction(p.Left, p.Right)
	}
	return grammar.New(data.NonTerminals, data.Terminals, ps, data.StartSymbol, kind)
}

// SaveFile writes g to path, replacing any existing file.
func SaveFile(path string, g *grammar.Grammar) error {
	text, err := Marshal(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, text, 0o644); err != nil {
		return fmt.Errorf("save grammar: %w", err)
	}
	return nil
}

// LoadFile reads a grammar saved by SaveFile.
func LoadFile(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load grammar: %w", err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
