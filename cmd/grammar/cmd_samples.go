package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JordiGD/Project-Grammar/grammar"
)

func newSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples [name]",
		Short: "List the built-in sample grammars or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				g, err := grammar.Sample(args[0])
				if err != nil {
					return err
				}
				return grammar.WriteText(out, g)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, name := range grammar.Samples() {
				fmt.Fprintf(tw, "%s\t%s\n", name, grammar.SampleDescription(name))
			}
			return tw.Flush()
		},
	}
}
