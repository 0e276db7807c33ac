package main

import (
	"fmt"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/eval"
	"github.com/grovekit/grove/internal/query"
)

func newCmdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cmd <query> <command>... [-- <arg>...]",
		Short: "Run configured commands in every tree resolved by the query",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCmd,
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Print commands without running them")
	cmd.Flags().BoolP("keep-going", "k", false, "Continue past command failures")
	return cmd
}

func runCmd(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	keepGoing, _ := cmd.Flags().GetBool("keep-going")

	app, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := app.Root()

	q := args[0]
	names := args[1:]
	// Arguments after "--" become the commands' positional parameters.
	var extra []string
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		names = args[1:dash]
		extra = args[dash:]
	}
	if len(names) == 0 {
		return fmt.Errorf("no command names given")
	}

	contexts := query.ResolveTrees(app, cfg, q)
	if len(contexts) == 0 {
		return fmt.Errorf("query %q matched no trees", q)
	}

	return runTreeCommands(cmd, app, contexts, names, extra, dryRun, keepGoing)
}

// runShortcut handles "grove <command> <query>...", the bare form of cmd
// with the command name first. Without a query every tree is targeted.
func runShortcut(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	app, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := app.Root()

	name := args[0]
	queries := args[1:]
	if len(queries) == 0 {
		queries = []string{"@*"}
	}

	var contexts []*config.TreeContext
	for _, q := range queries {
		contexts = append(contexts, query.ResolveTrees(app, cfg, q)...)
	}
	if len(contexts) == 0 {
		return fmt.Errorf("no trees matched")
	}

	return runTreeCommands(cmd, app, contexts, []string{name}, nil, false, false)
}

func runTreeCommands(cmd *cobra.Command, app *config.ApplicationContext, contexts []*config.TreeContext, names, extra []string, dryRun, keepGoing bool) error {
	out := cmd.OutOrStdout()
	var firstErr error

	for _, ctx := range contexts {
		scope := app.Get(ctx.Config)
		for _, name := range names {
			commands := eval.Commands(app, scope, ctx, name)
			if len(commands) == 0 {
				return fmt.Errorf("command %q is not defined", name)
			}
			for _, lines := range commands {
				for _, line := range lines {
					// "$0" is the command name inside the script.
					argv := eval.ShellCommand(scope, line, append([]string{name}, extra...)...)
					if dryRun {
						path, _ := scope.TreePath(ctx.Tree)
						_, _ = fmt.Fprintf(out, "%s: %s\n", path, shellquote.Join(argv...))
						continue
					}
					if err := runInTree(app, ctx, argv, out, cmd.ErrOrStderr()); err != nil {
						err = fmt.Errorf("tree %s: command %s: %w", ctx.Tree, name, err)
						if !keepGoing {
							return err
						}
						if firstErr == nil {
							firstErr = err
						}
					}
				}
			}
		}
	}

	return firstErr
}
