package config

import "path/filepath"

// Default shell used when grove.shell is not configured.
const DefaultShell = "sh"

// Configuration owns all entities for one configuration document.
type Configuration struct {
	ID     ConfigId
	Parent ConfigId // zero for the arena root

	Path    string // config file path, empty for in-memory configurations
	Dirname string

	Root             *Variable
	RootPath         string
	Shell            string
	InteractiveShell string
	ShellErrexit     bool
	ShellWordSplit   bool

	Includes []string

	Variables   []*NamedVariable
	Environment []*MultiVariable
	Commands    []*MultiVariable
	Templates   []*Template
	Trees       []*Tree
	Groups      []*Group
	Gardens     []*Garden
	Grafts      []*Graft
}

// New creates an empty configuration with defaults applied.
func New() *Configuration {
	return &Configuration{
		Root:         NewVariable(""),
		Shell:        DefaultShell,
		ShellErrexit: true,
	}
}

// SetPath records the config file location and its directory.
func (c *Configuration) SetPath(path string) {
	c.Path = path
	c.Dirname = filepath.Dir(path)
}

// Tree returns the named tree, or nil.
func (c *Configuration) Tree(name string) *Tree {
	for _, t := range c.Trees {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Group returns the named group, or nil.
func (c *Configuration) Group(name string) *Group {
	for _, g := range c.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Garden returns the named garden, or nil.
func (c *Configuration) Garden(name string) *Garden {
	for _, g := range c.Gardens {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Template returns the named template, or nil.
func (c *Configuration) Template(name string) *Template {
	for _, t := range c.Templates {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Graft returns the named graft, or nil.
func (c *Configuration) Graft(name string) *Graft {
	for _, g := range c.Grafts {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Variable returns the named configuration-scope variable, or nil.
func (c *Configuration) Variable(name string) *NamedVariable {
	return findNamed(c.Variables, name)
}

// TreePath returns the resolved path for the named tree.
func (c *Configuration) TreePath(name string) (string, bool) {
	tree := c.Tree(name)
	if tree == nil {
		return "", false
	}
	return tree.Path.Value()
}

// RelativePath resolves a path against the configuration root.
// Absolute paths are returned unchanged.
func (c *Configuration) RelativePath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(c.RootPath, path))
}

// Reset clears every cached variable value owned by the configuration.
// Invoked before each top-level query evaluation so that overrides and
// repeated invocations never see stale values.
func (c *Configuration) Reset() {
	resetNamedVariables(c.Variables)
	resetMultiVariables(c.Environment)
	resetMultiVariables(c.Commands)
	for _, tree := range c.Trees {
		tree.Reset()
	}
	for _, garden := range c.Gardens {
		garden.Reset()
	}
}
