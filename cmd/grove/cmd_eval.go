package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovekit/grove/internal/eval"
	"github.com/grovekit/grove/internal/query"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expression> [tree] [garden]",
		Short: "Evaluate an expression, optionally in a tree's scope",
		Args:  cobra.RangeArgs(1, 3),
		RunE:  runEval,
	}
	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	app, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := app.Root()

	expr := args[0]
	if len(args) == 1 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), eval.Value(app, cfg, expr))
		return nil
	}

	tree := args[1]
	garden := ""
	if len(args) > 2 {
		garden = args[2]
	}

	ctx, err := query.TreeContext(app, cfg, tree, garden)
	if err != nil {
		return err
	}
	scope := app.Get(ctx.Config)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), eval.TreeValue(app, scope, expr, ctx.Tree, ctx.Garden))
	return nil
}
