package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JordiGD/Project-Grammar/ebnfconv"
	"github.com/JordiGD/Project-Grammar/grammar"
	"github.com/JordiGD/Project-Grammar/persist"
)

// source selects where a command reads its grammar from: a built-in
// sample or the file named by the first argument.
type source struct {
	example string
	start   string
	kind    string
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.example, "example", "e", "", "use a built-in sample grammar instead of a file (see \"grammar samples\")")
	cmd.Flags().StringVar(&s.start, "start", "", "start production of an .ebnf grammar")
	cmd.Flags().StringVar(&s.kind, "type", "", "override the grammar type (TYPE_2, TYPE_3)")
}

// load returns the grammar and the arguments that follow the file name.
func (s *source) load(args []string) (*grammar.Grammar, []string, error) {
	var g *grammar.Grammar
	var err error
	if s.example != "" {
		g, err = grammar.Sample(s.example)
	} else {
		if len(args) == 0 {
			return nil, nil, fmt.Errorf("no grammar file given (or use --example)")
		}
		g, err = loadFile(args[0], s.start)
		args = args[1:]
	}
	if err != nil {
		return nil, nil, err
	}

	if s.kind != "" {
		kind, err := grammar.ParseKind(s.kind)
		if err != nil {
			return nil, nil, err
		}
		g = g.WithKind(kind)
	}
	return g, args, nil
}

// loadFile reads a grammar in the format given by the file extension.
func loadFile(path, start string) (*grammar.Grammar, error) {
	switch filepath.Ext(path) {
	case ".json":
		return persist.LoadFile(path)
	case ".ebnf":
		if start == "" {
			return nil, fmt.Errorf("%s: --start is required for EBNF grammars", path)
		}
		return ebnfconv.LoadFile(path, start)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return grammar.ParseText(path, f)
}

// saveFile writes g as JSON or as text depending on the extension of path.
func saveFile(path string, g *grammar.Grammar) error {
	if filepath.Ext(path) == ".json" {
		return persist.SaveFile(path, g)
	}

	var buf bytes.Buffer
	if err := writeText(&buf, g); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeText writes g in the text format, pointing at JSON when its symbols
// cannot be written as text.
func writeText(w io.Writer, g *grammar.Grammar) error {
	err := grammar.WriteText(w, g)
	if errors.Is(err, grammar.ErrNotText) {
		return fmt.Errorf("%w (save it to a .json file instead)", err)
	}
	return err
}
