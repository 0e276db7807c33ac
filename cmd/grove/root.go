package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "grove",
		Short:   "Evaluate and operate on multi-repository workspace definitions",
		Version: version,
		// Unknown subcommands fall through to configured commands, so
		// "grove build @app" works without the cmd keyword.
		Args: cobra.ArbitraryArgs,
		RunE: runShortcut,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to the grove.yaml configuration")
	cmd.PersistentFlags().StringP("chdir", "C", "", "Change to this directory before running")
	cmd.PersistentFlags().StringArrayP("define", "D", nil, "Override a variable (name=value)")

	cmd.AddCommand(
		newInitCmd(),
		newLsCmd(),
		newEvalCmd(),
		newExecCmd(),
		newCmdCmd(),
		newGrowCmd(),
		newShellCmd(),
		newPruneCmd(),
	)

	return cmd
}
