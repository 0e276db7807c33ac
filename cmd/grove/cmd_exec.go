package main

import (
	"fmt"
	"sync"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/query"
	"github.com/grovekit/grove/internal/ui"
)

func newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <query> -- <command...>",
		Short: "Run a command in every tree resolved by the query",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runExec,
	}
	cmd.Flags().Int("jobs", 1, "Number of trees to process in parallel")
	cmd.Flags().BoolP("dry-run", "n", false, "Print commands without running them")
	return cmd
}

func runExec(cmd *cobra.Command, args []string) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if jobs < 1 {
		return fmt.Errorf("--jobs must be >= 1 (got %d)", jobs)
	}

	app, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := app.Root()

	q := args[0]
	argv := args[1:]
	if argv[0] == "--" {
		argv = argv[1:]
	}
	if len(argv) == 0 {
		return fmt.Errorf("no command specified after --")
	}

	contexts := query.ResolveTrees(app, cfg, q)
	if len(contexts) == 0 {
		return fmt.Errorf("query %q matched no trees", q)
	}

	out := cmd.OutOrStdout()
	if dryRun {
		for _, ctx := range contexts {
			path, _ := app.Get(ctx.Config).TreePath(ctx.Tree)
			_, _ = fmt.Fprintf(out, "%s: %s\n", path, shellquote.Join(argv...))
		}
		return nil
	}

	if jobs == 1 {
		for _, ctx := range contexts {
			_, _ = fmt.Fprintf(out, "# %s\n", ctx.Tree)
			if err := runInTree(app, ctx, argv, out, cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("tree %s: %w", ctx.Tree, err)
			}
		}
		return nil
	}

	progress := ui.NewProgress(cmd.ErrOrStderr(), len(contexts))
	return runParallel(app, contexts, argv, jobs, progress)
}

// runParallel fans the command out over a bounded worker pool. Every
// context's directory and environment is materialized serially up front;
// evaluation mutates shared memoization cells and must not run from the
// workers. Output goes through the progress logger so lines from
// different trees do not interleave.
func runParallel(app *config.ApplicationContext, contexts []*config.TreeContext, argv []string, jobs int, progress *ui.Progress) error {
	procs := make([]*treeProc, 0, len(contexts))
	for _, ctx := range contexts {
		p, err := prepareTree(app, ctx)
		if err != nil {
			return fmt.Errorf("tree %s: %w", ctx.Tree, err)
		}
		procs = append(procs, p)
	}

	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup
	errCh := make(chan error, len(procs))

	for _, p := range procs {
		wg.Add(1)
		go func(p *treeProc) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := p.run(argv, progress.Writer(), progress.Writer()); err != nil {
				errCh <- fmt.Errorf("tree %s: %w", p.tree, err)
				return
			}
			progress.Done(p.tree)
		}(p)
	}

	wg.Wait()
	close(errCh)

	for e := range errCh {
		return e
	}
	return nil
}
