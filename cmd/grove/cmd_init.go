package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a grove.yaml in the current directory",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing grove.yaml")
	cmd.Flags().Bool("empty", false, "Skip the interactive tree prompts")
	return cmd
}

// starterConfig is the document written by grove init.
type starterConfig struct {
	Grove struct {
		Root string `yaml:"root"`
	} `yaml:"grove"`
	Trees map[string]string `yaml:"trees,omitempty"`
}

func runInit(cmd *cobra.Command, _ []string) error {
	chdir, _ := cmd.Flags().GetString("chdir")
	force, _ := cmd.Flags().GetBool("force")
	empty, _ := cmd.Flags().GetBool("empty")

	if chdir != "" {
		if err := os.Chdir(chdir); err != nil {
			return fmt.Errorf("changing directory: %w", err)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	path := filepath.Join(cwd, "grove.yaml")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	starter := starterConfig{}
	starter.Grove.Root = "."

	if !empty && term.IsTerminal(int(os.Stdin.Fd())) {
		trees, err := interactiveAddTrees()
		if err != nil {
			return fmt.Errorf("interactive setup: %w", err)
		}
		starter.Trees = trees
	}

	data, err := yaml.Marshal(&starter)
	if err != nil {
		return fmt.Errorf("building configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // configuration needs to be readable
		return fmt.Errorf("writing configuration: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}

// interactiveAddTrees collects tree URLs from the user. An empty URL or a
// declined "add another" prompt ends the loop.
func interactiveAddTrees() (map[string]string, error) {
	trees := make(map[string]string)
	taken := make(map[string]bool)

	for {
		url, err := promptRepoURL(taken)
		if err != nil {
			return nil, err
		}
		if url == "" {
			break
		}

		name := treeNameFromURL(url)
		trees[name] = url
		taken[name] = true
		fmt.Printf("  added tree %s\n", name)

		addMore, err := promptConfirm("Add another tree?")
		if err != nil {
			return nil, err
		}
		if !addMore {
			break
		}
	}

	return trees, nil
}
