package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JordiGD/Project-Grammar/parse"
)

func newAutomatonCmd() *cobra.Command {
	var src source

	cmd := &cobra.Command{
		Use:   "automaton [file]",
		Short: "Describe a right-linear grammar as a finite automaton",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := src.load(args)
			if err != nil {
				return err
			}
			reg, err := parse.NewRegular(g)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), reg.DescribeAutomaton())
			return nil
		},
	}

	src.register(cmd)

	return cmd
}
