package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/git"
)

func newPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove repositories under the root that no tree claims",
		Args:  cobra.NoArgs,
		RunE:  runPrune,
	}
	cmd.Flags().Bool("force", false, "Delete without confirmation")
	cmd.Flags().BoolP("dry-run", "n", false, "Only list unclaimed repositories")
	return cmd
}

func runPrune(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	app, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	unclaimed, err := unclaimedRepos(app)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(unclaimed) == 0 {
		_, _ = fmt.Fprintln(out, "Nothing to prune.")
		return nil
	}

	for _, dir := range unclaimed {
		_, _ = fmt.Fprintln(out, dir)
	}
	if dryRun {
		return nil
	}

	if !force {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("prune requires --force when not running on a TTY")
		}
		ok, err := promptConfirm(fmt.Sprintf("Delete %d repositories?", len(unclaimed)))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	for _, dir := range unclaimed {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
		_, _ = fmt.Fprintf(out, "Removed %s\n", dir)
	}
	return nil
}

// unclaimedRepos walks the configuration root and returns repositories
// that no tree in any configuration claims. The walk does not descend into
// repositories, so nested checkouts inside a claimed tree are left alone.
func unclaimedRepos(app *config.ApplicationContext) ([]string, error) {
	claimed := make(map[string]bool)
	for i := 0; i < app.Len(); i++ {
		cfg := app.Get(config.ConfigId(i + 1))
		for _, tree := range cfg.Trees {
			if path, ok := tree.Path.Value(); ok {
				claimed[filepath.Clean(path)] = true
			}
		}
	}

	root := app.Root().RootPath
	var unclaimed []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		if path == root {
			return nil
		}
		if !git.IsCloned(path) {
			return nil
		}
		if !claimed[filepath.Clean(path)] {
			unclaimed = append(unclaimed, path)
		}
		return filepath.SkipDir
	})
	if err != nil {
		return nil, err
	}
	return unclaimed, nil
}
