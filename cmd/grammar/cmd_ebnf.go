package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/JordiGD/Project-Grammar/ebnfconv"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ebnf",
		Short: "EBNF grammar tools",
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfImportCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and verify an EBNF grammar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := ebnfconv.LoadGrammar(args[0])
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			if startProduction == "" {
				return nil
			}
			if err := ebnf.Verify(g, startProduction); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newEbnfImportCmd() *cobra.Command {
	var startProduction string
	var output string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Convert an EBNF grammar into a context-free grammar",
		Long: `Convert an EBNF grammar into a context-free grammar. Options,
repetitions, groups and character ranges become fresh nonterminals.
The result is printed in the text format unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := ebnfconv.LoadFile(args[0], startProduction)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			if output != "" {
				return saveFile(output, g)
			}
			return writeText(cmd.OutOrStdout(), g)
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the grammar to this file (.json for JSON)")
	cmd.MarkFlagRequired("start")

	return cmd
}

// printErrors prints each error of an ebnf error list on its own line.
// Single errors are left to main.
func printErrors(w io.Writer, err error) {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice && v.Len() > 1 {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	}
}
