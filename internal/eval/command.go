package eval

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/grovekit/grove/internal/config"
)

// Commands resolves a command name pattern into ordered command lists for
// the given tree context. Matching entries from the configuration scope
// come first, then the tree's, then the garden's; entries sharing a name
// stay separate so that a tree can layer its own command sequence on top
// of a template's.
func Commands(app *config.ApplicationContext, cfg *config.Configuration, tc *config.TreeContext, pattern string) [][]string {
	var matched []*config.MultiVariable

	for _, mv := range cfg.Commands {
		if matchName(pattern, mv.Name) {
			matched = append(matched, mv)
		}
	}

	if tree := cfg.Tree(tc.Tree); tree != nil {
		for _, mv := range tree.Commands {
			if matchName(pattern, mv.Name) {
				matched = append(matched, mv)
			}
		}
	}

	if tc.Garden != "" {
		if garden := cfg.Garden(tc.Garden); garden != nil {
			for _, mv := range garden.Commands {
				if matchName(pattern, mv.Name) {
					matched = append(matched, mv)
				}
			}
		}
	}

	result := make([][]string, 0, len(matched))
	for _, mv := range matched {
		result = append(result, MultiVariable(app, cfg, mv, tc))
	}
	return result
}

// CommandNames returns the distinct command names visible from the given
// context, in configuration, tree, garden order.
func CommandNames(cfg *config.Configuration, tc *config.TreeContext) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(vars []*config.MultiVariable) {
		for _, mv := range vars {
			if !seen[mv.Name] {
				seen[mv.Name] = true
				names = append(names, mv.Name)
			}
		}
	}
	add(cfg.Commands)
	if tree := cfg.Tree(tc.Tree); tree != nil {
		add(tree.Commands)
	}
	if tc.Garden != "" {
		if garden := cfg.Garden(tc.Garden); garden != nil {
			add(garden.Commands)
		}
	}
	return names
}

func matchName(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
