package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// newRootCmd builds the `glox [script]` command: zero positional args opens
// the REPL, one runs that file and exits with the front-end's compile/
// runtime exit code.
func newRootCmd() *cobra.Command {
	var exitCode int

	cmd := &cobra.Command{
		Use:           "glox [script]",
		Short:         "glox is a tree-walking interpreter for Lox",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verbose)
			if len(args) == 1 {
				exitCode = runFile(args[0], log)
			} else {
				exitCode = runREPL(log)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the glox version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	})

	cmd.PostRun = func(cmd *cobra.Command, args []string) {
		if exitCode != exitOK {
			os.Exit(exitCode)
		}
	}

	return cmd
}
