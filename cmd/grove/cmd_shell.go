package main

import (
	"fmt"
	"os"
	"os/exec"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/query"
)

func newShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell <query>",
		Short: "Open an interactive shell in the first tree resolved by the query",
		Args:  cobra.ExactArgs(1),
		RunE:  runShell,
	}
	return cmd
}

func runShell(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("shell requires a TTY")
	}

	app, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := app.Root()

	contexts := query.ResolveTrees(app, cfg, args[0])
	if len(contexts) == 0 {
		return fmt.Errorf("query %q matched no trees", args[0])
	}
	ctx := contexts[0]

	scope := app.Get(ctx.Config)
	path, ok := scope.TreePath(ctx.Tree)
	if !ok {
		return fmt.Errorf("tree %q has no path", ctx.Tree)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("tree %q does not exist at %s", ctx.Tree, path)
	}

	shell := scope.InteractiveShell
	if shell == "" {
		shell = scope.Shell
	}
	argv, err := shellwords.Parse(shell)
	if err != nil || len(argv) == 0 {
		argv = []string{config.DefaultShell}
	}

	c := exec.Command(argv[0], argv[1:]...)
	c.Dir = path
	c.Env = append(treeEnviron(app, ctx), "PWD="+path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
