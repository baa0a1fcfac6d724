package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	var verbose int
	var logFile string

	rootCmd := &cobra.Command{
		Use:           "grammar",
		Short:         "Parse, generate and inspect formal grammars",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logFile != "" {
				commonlog.Configure(verbose-1, &logFile)
			} else {
				commonlog.Configure(verbose-1, nil)
			}
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log more (repeat for debug output)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write the log to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newAutomatonCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newEbnfCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newSamplesCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
