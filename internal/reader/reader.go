// Package reader builds Configurations from YAML documents and resolves
// includes and grafts into a configuration arena.
package reader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/grovekit/grove/internal/config"
)

// Load reads the document at path and returns a fully-initialized arena:
// the document is parsed, includes are merged, trees are composed, paths
// are resolved, and grafts are attached recursively.
func Load(path string) (*config.ApplicationContext, error) {
	cfg := config.New()
	cfg.SetPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, err
	}

	app := config.NewApplicationContext(cfg)
	if err := applyIncludes(app, cfg); err != nil {
		return nil, err
	}
	if err := InitConfiguration(app, cfg); err != nil {
		return nil, err
	}
	if err := resolveGrafts(app, cfg); err != nil {
		return nil, err
	}
	return app, nil
}

// LoadString builds an arena from an in-memory document. Grafts are left
// unresolved: without a file location there is nothing to resolve them
// against, and unresolved graft references evaluate to empty values.
func LoadString(content string) (*config.ApplicationContext, error) {
	cfg := config.New()
	if err := Parse([]byte(content), cfg); err != nil {
		return nil, err
	}
	app := config.NewApplicationContext(cfg)
	if err := InitConfiguration(app, cfg); err != nil {
		return nil, err
	}
	return app, nil
}

// Parse populates a Configuration from one YAML (or JSON) document.
// Composition and path resolution happen later, in InitConfiguration.
// Entities already present keep their first definition, which lets
// included documents fill in around the including document.
func Parse(data []byte, cfg *config.Configuration) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing configuration: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return config.NewConfigurationError(cfg.Path, "top-level document must be a mapping")
	}

	for _, entry := range mappingEntries(root) {
		switch entry.key {
		case "grove":
			parseCore(entry.node, cfg)
		case "variables":
			for _, v := range mappingEntries(entry.node) {
				appendVariable(cfg, v.key, scalarValue(v.node))
			}
		case "environment":
			cfg.Environment = append(cfg.Environment, parseMultiVariables(entry.node)...)
		case "commands":
			cfg.Commands = append(cfg.Commands, parseMultiVariables(entry.node)...)
		case "templates":
			for _, t := range mappingEntries(entry.node) {
				if cfg.Template(t.key) == nil {
					cfg.Templates = append(cfg.Templates, parseTemplate(t.key, t.node))
				}
			}
		case "trees":
			for _, t := range mappingEntries(entry.node) {
				if cfg.Tree(t.key) == nil {
					cfg.Trees = append(cfg.Trees, parseTree(t.key, t.node))
				}
			}
		case "groups":
			for _, g := range mappingEntries(entry.node) {
				if cfg.Group(g.key) == nil {
					group := config.NewGroup(g.key)
					group.Members = stringList(g.node)
					cfg.Groups = append(cfg.Groups, group)
				}
			}
		case "gardens":
			for _, g := range mappingEntries(entry.node) {
				if cfg.Garden(g.key) == nil {
					cfg.Gardens = append(cfg.Gardens, parseGarden(g.key, g.node))
				}
			}
		case "grafts":
			for _, g := range mappingEntries(entry.node) {
				if cfg.Graft(g.key) == nil {
					cfg.Grafts = append(cfg.Grafts, parseGraft(g.key, g.node))
				}
			}
		}
	}

	return nil
}

// parseCore reads the grove.* settings block.
func parseCore(node *yaml.Node, cfg *config.Configuration) {
	for _, entry := range mappingEntries(node) {
		switch entry.key {
		case "root":
			if cfg.Root.Expr == "" {
				cfg.Root = config.NewVariable(scalarValue(entry.node))
			}
		case "shell":
			cfg.Shell = scalarValue(entry.node)
		case "interactive-shell":
			cfg.InteractiveShell = scalarValue(entry.node)
		case "shell-errexit":
			cfg.ShellErrexit = boolValue(entry.node, true)
		case "shell-wordsplit":
			cfg.ShellWordSplit = boolValue(entry.node, false)
		case "includes":
			cfg.Includes = append(cfg.Includes, stringList(entry.node)...)
		}
	}
}

func parseTree(name string, node *yaml.Node) *config.Tree {
	tree := config.NewTree(name)

	// A bare string is shorthand for {url: <value>}.
	if node.Kind == yaml.ScalarNode {
		tree.Remotes = append(tree.Remotes, config.NewNamedVariable("origin", scalarValue(node)))
		return tree
	}

	for _, entry := range mappingEntries(node) {
		switch entry.key {
		case "url":
			tree.Remotes = append(tree.Remotes, config.NewNamedVariable("origin", scalarValue(entry.node)))
		case "path":
			tree.Path = config.NewVariable(scalarValue(entry.node))
		case "branch":
			tree.Branch = config.NewVariable(scalarValue(entry.node))
		case "symlink":
			tree.Symlink = config.NewVariable(scalarValue(entry.node))
		case "worktree":
			tree.Worktree = config.NewVariable(scalarValue(entry.node))
		case "extend":
			tree.Extend = scalarValue(entry.node)
		case "templates":
			tree.Templates = append(tree.Templates, stringList(entry.node)...)
		case "remotes":
			for _, remote := range mappingEntries(entry.node) {
				tree.Remotes = append(tree.Remotes, config.NewNamedVariable(remote.key, scalarValue(remote.node)))
			}
		case "variables":
			for _, v := range mappingEntries(entry.node) {
				tree.Variables = append(tree.Variables, config.NewNamedVariable(v.key, scalarValue(v.node)))
			}
		case "gitconfig":
			for _, g := range mappingEntries(entry.node) {
				tree.Gitconfig = append(tree.Gitconfig, config.NewNamedVariable(g.key, scalarValue(g.node)))
			}
		case "environment":
			tree.Environment = append(tree.Environment, parseMultiVariables(entry.node)...)
		case "commands":
			tree.Commands = append(tree.Commands, parseMultiVariables(entry.node)...)
		case "depth", "clone-depth":
			tree.CloneDepth = intValue(entry.node)
		case "bare":
			tree.IsBareRepository = boolValue(entry.node, false)
		case "single-branch":
			tree.IsSingleBranch = boolValue(entry.node, false)
		}
	}

	return tree
}

func parseTemplate(name string, node *yaml.Node) *config.Template {
	template := config.NewTemplate(name)
	for _, entry := range mappingEntries(node) {
		if entry.key == "extend" {
			template.Extend = append(template.Extend, stringList(entry.node)...)
		}
	}
	template.Tree = parseTree(name, node)
	return template
}

func parseGarden(name string, node *yaml.Node) *config.Garden {
	garden := config.NewGarden(name)
	for _, entry := range mappingEntries(node) {
		switch entry.key {
		case "groups":
			garden.Groups = append(garden.Groups, stringList(entry.node)...)
		case "trees":
			garden.Trees = append(garden.Trees, stringList(entry.node)...)
		case "variables":
			for _, v := range mappingEntries(entry.node) {
				garden.Variables = append(garden.Variables, config.NewNamedVariable(v.key, scalarValue(v.node)))
			}
		case "gitconfig":
			for _, g := range mappingEntries(entry.node) {
				garden.Gitconfig = append(garden.Gitconfig, config.NewNamedVariable(g.key, scalarValue(g.node)))
			}
		case "environment":
			garden.Environment = append(garden.Environment, parseMultiVariables(entry.node)...)
		case "commands":
			garden.Commands = append(garden.Commands, parseMultiVariables(entry.node)...)
		}
	}
	return garden
}

func parseGraft(name string, node *yaml.Node) *config.Graft {
	graft := config.NewGraft(name)

	// A bare string is shorthand for {config: <value>}.
	if node.Kind == yaml.ScalarNode {
		graft.ConfigPath = scalarValue(node)
		return graft
	}

	for _, entry := range mappingEntries(node) {
		switch entry.key {
		case "config":
			graft.ConfigPath = scalarValue(entry.node)
		case "root":
			graft.Root = scalarValue(entry.node)
		}
	}
	return graft
}

func appendVariable(cfg *config.Configuration, name, expr string) {
	if cfg.Variable(name) == nil {
		cfg.Variables = append(cfg.Variables, config.NewNamedVariable(name, expr))
	}
}

// parseMultiVariables reads a mapping of name -> scalar-or-sequence into
// ordered multi-valued variables.
func parseMultiVariables(node *yaml.Node) []*config.MultiVariable {
	var result []*config.MultiVariable
	for _, entry := range mappingEntries(node) {
		result = append(result, config.NewMultiVariable(entry.key, stringList(entry.node)...))
	}
	return result
}
