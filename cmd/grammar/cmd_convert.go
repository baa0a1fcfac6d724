package main

import (
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var src source

	cmd := &cobra.Command{
		Use:   "convert [input] <output>",
		Short: "Convert a grammar between the text, JSON and EBNF formats",
		Long: `Read a grammar and write it to output. Files ending in .json are
written as JSON records, anything else in the text format.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, rest, err := src.load(args)
			if err != nil {
				return err
			}
			if len(rest) != 1 {
				return cmd.Usage()
			}
			return saveFile(rest[0], g)
		},
	}

	src.register(cmd)

	return cmd
}
