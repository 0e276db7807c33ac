package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/reader"
)

// configNames are the file names probed when --config is not given, in
// priority order, starting from the working directory and walking up.
var configNames = []string{"grove.yaml", "grove.yml"}

// loadConfig locates and loads the configuration for a command invocation,
// honoring --chdir, --config and -D overrides.
func loadConfig(cmd *cobra.Command) (*config.ApplicationContext, error) {
	chdir, _ := cmd.Flags().GetString("chdir")
	path, _ := cmd.Flags().GetString("config")
	defines, _ := cmd.Flags().GetStringArray("define")

	if chdir != "" {
		if err := os.Chdir(chdir); err != nil {
			return nil, fmt.Errorf("changing directory: %w", err)
		}
	}

	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path = findConfig(cwd)
		if path == "" {
			return nil, fmt.Errorf("no grove.yaml found in %s or any parent directory", cwd)
		}
	}

	app, err := reader.Load(path)
	if err != nil {
		return nil, err
	}
	applyDefines(app.Root(), defines)
	return app, nil
}

// findConfig walks from dir toward the filesystem root looking for a
// configuration file. Returns "" when none is found.
func findConfig(dir string) string {
	for {
		for _, name := range configNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// applyDefines prepends -D name=value overrides so they shadow
// configuration variables of the same name.
func applyDefines(cfg *config.Configuration, defines []string) {
	for i := len(defines) - 1; i >= 0; i-- {
		name, value, _ := strings.Cut(defines[i], "=")
		override := config.NewNamedVariable(name, value)
		override.SetValue(value)
		cfg.Variables = append([]*config.NamedVariable{override}, cfg.Variables...)
	}
}
