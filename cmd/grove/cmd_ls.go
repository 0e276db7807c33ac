package main

import (
	"github.com/spf13/cobra"

	"github.com/grovekit/grove/internal/git"
	"github.com/grovekit/grove/internal/query"
	"github.com/grovekit/grove/internal/ui"
)

func newLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [query...]",
		Short: "List the trees resolved by a query",
		RunE:  runLs,
	}
	cmd.Flags().Bool("all", false, "Also list groups and gardens")
	return cmd
}

func runLs(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")

	app, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := app.Root()

	// The bare listing enumerates every tree; a default "*" query would
	// stop at the garden stage and hide trees outside any garden.
	queries := args
	if len(queries) == 0 {
		queries = []string{"@*"}
	}

	var rows []ui.TreeRow
	for _, q := range queries {
		for _, ctx := range query.ResolveTrees(app, cfg, q) {
			tcfg := app.Get(ctx.Config)
			path, _ := tcfg.TreePath(ctx.Tree)

			state := "missing"
			branch := ""
			if git.IsCloned(path) {
				state = "cloned"
				branch, _ = git.CurrentBranch(path)
				if dirty, err := git.IsDirty(path); err == nil && dirty {
					state = "dirty"
				}
			}
			rows = append(rows, ui.TreeRow{
				Name:   ctx.Tree,
				Path:   path,
				Garden: ctx.Garden,
				Group:  ctx.Group,
				Branch: branch,
				State:  state,
			})
		}
	}

	out := cmd.OutOrStdout()
	if err := ui.WriteTreeTable(out, rows); err != nil {
		return err
	}
	if !all {
		return nil
	}
	if err := ui.WriteGroupTable(out, cfg.Groups); err != nil {
		return err
	}
	return ui.WriteGardenTable(out, cfg.Gardens)
}
