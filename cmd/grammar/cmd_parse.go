package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JordiGD/Project-Grammar/parse"
)

func newParseCmd() *cobra.Command {
	var src source
	var showTree bool
	var maxSteps, maxDepth int

	cmd := &cobra.Command{
		Use:   "parse [file] [input...]",
		Short: "Decide whether strings belong to a grammar's language",
		Long: `Parse each input against the grammar and print the verdict.
Inputs are read one per line from standard input when none are given.
Write ε or an empty argument for the empty string.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, inputs, err := src.load(args)
			if err != nil {
				return err
			}

			var opts []parse.Option
			if maxSteps > 0 {
				opts = append(opts, parse.WithMaxSteps(maxSteps))
			}
			if maxDepth > 0 {
				opts = append(opts, parse.WithMaxDepth(maxDepth))
			}
			p, err := parse.New(g, opts...)
			if err != nil {
				return err
			}

			if len(inputs) == 0 {
				sc := bufio.NewScanner(cmd.InOrStdin())
				for sc.Scan() {
					inputs = append(inputs, sc.Text())
				}
				if err := sc.Err(); err != nil {
					return fmt.Errorf("read inputs: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, input := range inputs {
				res := p.Parse(input)
				fmt.Fprintf(out, "%q: %s\n", input, res.Message)
				if res.Outcome == parse.Inconsistent {
					return res.Err()
				}
				if !res.Accepted() {
					failed++
					continue
				}
				if showTree {
					fmt.Fprint(out, res.Tree)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d inputs not accepted", failed, len(inputs))
			}
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVarP(&showTree, "tree", "t", false, "print the derivation tree of accepted inputs")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "step bound of the context-free search (0 for the default)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "depth bound of the context-free search (0 for the default)")

	return cmd
}
