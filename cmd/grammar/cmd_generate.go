package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/JordiGD/Project-Grammar/generate"
	"github.com/JordiGD/Project-Grammar/grammar"
)

func newGenerateCmd() *cobra.Command {
	var src source
	var count, maxDepth, maxLength, maxSteps int

	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "List short strings of a grammar's language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := src.load(args)
			if err != nil {
				return err
			}

			gen := generate.New(g,
				generate.WithMaxDepth(maxDepth),
				generate.WithMaxLength(maxLength),
				generate.WithMaxSteps(maxSteps),
			)
			out := cmd.OutOrStdout()
			for _, s := range gen.Generate(count) {
				if s == "" {
					s = grammar.EmptyMarker
				}
				fmt.Fprintln(out, s)
			}

			st := gen.Stats()
			commonlog.GetLogger("grammar").Info("generation finished",
				"explored", st.Explored, "pruned", st.Pruned, "capped", st.Capped)
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of strings to generate")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 20, "drop sentential forms at this derivation depth")
	cmd.Flags().IntVar(&maxLength, "max-length", 50, "drop sentential forms with this many symbols")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 10000, "stop after exploring this many sentential forms")

	return cmd
}
