package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JordiGD/Project-Grammar/grammar"
	"github.com/JordiGD/Project-Grammar/parse"
)

func newCheckCmd() *cobra.Command {
	var src source

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a grammar and describe it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := src.load(args)
			if err != nil {
				return err
			}
			if _, err := parse.New(g); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, g)

			var nullable []string
			for _, nt := range g.Nonterminals() {
				if g.Nullable(nt) {
					nullable = append(nullable, nt)
				}
			}
			fmt.Fprintf(out, "Nullable: {%s}\n", strings.Join(nullable, ", "))

			if g.Kind() == grammar.ContextFree {
				if err := parse.IsRegular(g); err == nil {
					fmt.Fprintln(out, "Right-linear: yes (can be parsed as TYPE_3)")
				} else {
					fmt.Fprintf(out, "Right-linear: no (%v)\n", err)
				}
			}
			return nil
		},
	}

	src.register(cmd)

	return cmd
}
