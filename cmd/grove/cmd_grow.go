package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/eval"
	"github.com/grovekit/grove/internal/git"
	"github.com/grovekit/grove/internal/query"
	"github.com/grovekit/grove/internal/ui"
)

func newGrowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grow <query>...",
		Short: "Clone missing trees and configure their remotes",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runGrow,
	}
	return cmd
}

func runGrow(cmd *cobra.Command, args []string) error {
	app, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := app.Root()

	if !git.IsGitInstalled() {
		return fmt.Errorf("git is not installed")
	}

	var contexts []*config.TreeContext
	for _, q := range args {
		contexts = append(contexts, query.ResolveTrees(app, cfg, q)...)
	}
	if len(contexts) == 0 {
		return fmt.Errorf("no trees matched")
	}

	progress := ui.NewProgress(cmd.ErrOrStderr(), len(contexts))
	for _, ctx := range contexts {
		if err := growTree(app, ctx, progress); err != nil {
			return fmt.Errorf("tree %s: %w", ctx.Tree, err)
		}
	}
	return nil
}

// growTree materializes one tree on disk: a symlink for symlink trees, a
// clone when a remote URL is configured, a plain init otherwise. Extra
// remotes and gitconfig entries are applied afterwards in all cases.
func growTree(app *config.ApplicationContext, ctx *config.TreeContext, progress *ui.Progress) error {
	cfg := app.Get(ctx.Config)
	tree := cfg.Tree(ctx.Tree)
	if tree == nil {
		return fmt.Errorf("unknown tree")
	}
	path, _ := tree.Path.Value()

	if tree.IsSymlink {
		target := eval.TreeValue(app, cfg, tree.Symlink.Expr, ctx.Tree, ctx.Garden)
		if !filepath.IsAbs(target) {
			target = cfg.RelativePath(target)
		}
		if _, err := os.Lstat(path); err == nil {
			progress.Done(fmt.Sprintf("%s exists", ctx.Tree))
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // workspace dirs are world-readable
			return err
		}
		if err := os.Symlink(target, path); err != nil {
			return fmt.Errorf("creating symlink: %w", err)
		}
		progress.Done(fmt.Sprintf("%s -> %s", ctx.Tree, target))
		return nil
	}

	if tree.IsWorktree {
		return growWorktree(app, cfg, ctx, tree, path, progress)
	}

	if git.IsCloned(path) {
		if err := refreshTree(app, cfg, ctx, tree, path); err != nil {
			return err
		}
		progress.Done(fmt.Sprintf("%s exists", ctx.Tree))
	} else if err := createTree(app, cfg, ctx, tree, path, progress); err != nil {
		return err
	}

	return configureTree(app, cfg, ctx, tree, path)
}

// refreshTree updates an already-grown tree: remote refs are fetched and
// a configured branch is checked out, but only when the working tree is
// clean.
func refreshTree(app *config.ApplicationContext, cfg *config.Configuration, ctx *config.TreeContext, tree *config.Tree, path string) error {
	if tree.DefaultRemote() != nil {
		if err := git.Fetch(path); err != nil {
			return fmt.Errorf("fetching: %w", err)
		}
	}

	branch := eval.TreeValue(app, cfg, tree.Branch.Expr, ctx.Tree, ctx.Garden)
	if branch == "" {
		return nil
	}
	current, err := git.CurrentBranch(path)
	if err != nil || current == branch {
		return err
	}
	dirty, err := git.IsDirty(path)
	if err != nil || dirty {
		return err
	}
	return git.Checkout(path, branch)
}

// growWorktree materializes a worktree tree off its parent's repository.
// The parent must already be grown.
func growWorktree(app *config.ApplicationContext, cfg *config.Configuration, ctx *config.TreeContext, tree *config.Tree, path string, progress *ui.Progress) error {
	if git.IsCloned(path) {
		progress.Done(fmt.Sprintf("%s exists", ctx.Tree))
		return nil
	}

	parentName := tree.Worktree.Expr
	parent := cfg.Tree(parentName)
	if parent == nil {
		return fmt.Errorf("worktree parent %q is not defined", parentName)
	}
	parentPath, ok := parent.Path.Value()
	if !ok || !git.IsCloned(parentPath) {
		return fmt.Errorf("worktree parent %q is not grown", parentName)
	}

	branch := eval.TreeValue(app, cfg, tree.Branch.Expr, ctx.Tree, ctx.Garden)
	if branch == "" {
		branch = ctx.Tree
	}
	if err := git.WorktreeAdd(parentPath, path, branch); err != nil {
		return err
	}
	progress.Done(fmt.Sprintf("%s worktree on %s", ctx.Tree, branch))
	return nil
}

func createTree(app *config.ApplicationContext, cfg *config.Configuration, ctx *config.TreeContext, tree *config.Tree, path string, progress *ui.Progress) error {
	remote := tree.DefaultRemote()
	if remote == nil {
		progress.Log("Initializing %s ...", ctx.Tree)
		if err := os.MkdirAll(path, 0755); err != nil { //nolint:gosec // workspace dirs are world-readable
			return err
		}
		if err := git.Init(path, tree.IsBareRepository); err != nil {
			return err
		}
		progress.Done(fmt.Sprintf("%s initialized", ctx.Tree))
		return nil
	}

	url := eval.TreeValue(app, cfg, remote.Expr, ctx.Tree, ctx.Garden)
	branch := eval.TreeValue(app, cfg, tree.Branch.Expr, ctx.Tree, ctx.Garden)

	progress.Log("Cloning %s ...", ctx.Tree)
	opts := git.CloneOpts{
		Remote:       remote.Name,
		Branch:       branch,
		Depth:        tree.CloneDepth,
		Bare:         tree.IsBareRepository,
		SingleBranch: tree.IsSingleBranch,
	}
	if err := git.Clone(url, path, opts); err != nil {
		return err
	}
	progress.Done(fmt.Sprintf("%s cloned", ctx.Tree))
	return nil
}

// configureTree applies the non-default remotes and gitconfig entries.
func configureTree(app *config.ApplicationContext, cfg *config.Configuration, ctx *config.TreeContext, tree *config.Tree, path string) error {
	for i, remote := range tree.Remotes {
		if i == 0 {
			continue
		}
		url := eval.TreeValue(app, cfg, remote.Expr, ctx.Tree, ctx.Garden)
		if err := git.RemoteAdd(path, remote.Name, url); err != nil {
			return fmt.Errorf("remote %s: %w", remote.Name, err)
		}
	}

	gitconfig := append([]*config.NamedVariable{}, tree.Gitconfig...)
	if ctx.Garden != "" {
		if garden := cfg.Garden(ctx.Garden); garden != nil {
			gitconfig = append(gitconfig, garden.Gitconfig...)
		}
	}
	for _, entry := range gitconfig {
		value := eval.TreeValue(app, cfg, entry.Expr, ctx.Tree, ctx.Garden)
		if err := git.ConfigSet(path, entry.Name, value); err != nil {
			return fmt.Errorf("gitconfig %s: %w", entry.Name, err)
		}
	}
	return nil
}
