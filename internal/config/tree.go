package config

import "strings"

// Tree is one managed source-code working directory.
type Tree struct {
	Name        string
	Path        *Variable // resolved exactly once during initialization
	Symlink     *Variable
	Branch      *Variable
	Worktree    *Variable
	Extend      string
	Remotes     []*NamedVariable // first entry is the default remote
	Templates   []string
	Variables   []*NamedVariable
	Gitconfig   []*NamedVariable
	Commands    []*MultiVariable
	Environment []*MultiVariable

	CloneDepth       int
	IsBareRepository bool
	IsSingleBranch   bool
	IsSymlink        bool
	IsWorktree       bool
}

// NewTree creates an empty tree definition.
func NewTree(name string) *Tree {
	return &Tree{
		Name:     name,
		Path:     NewVariable(""),
		Symlink:  NewVariable(""),
		Branch:   NewVariable(""),
		Worktree: NewVariable(""),
	}
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	clone := &Tree{
		Name:             t.Name,
		Path:             t.Path.Clone(),
		Symlink:          t.Symlink.Clone(),
		Branch:           t.Branch.Clone(),
		Worktree:         t.Worktree.Clone(),
		Extend:           t.Extend,
		Remotes:          cloneNamedVariables(t.Remotes),
		Templates:        append([]string(nil), t.Templates...),
		Variables:        cloneNamedVariables(t.Variables),
		Gitconfig:        cloneNamedVariables(t.Gitconfig),
		Commands:         cloneMultiVariables(t.Commands),
		Environment:      cloneMultiVariables(t.Environment),
		CloneDepth:       t.CloneDepth,
		IsBareRepository: t.IsBareRepository,
		IsSingleBranch:   t.IsSingleBranch,
		IsSymlink:        t.IsSymlink,
		IsWorktree:       t.IsWorktree,
	}
	return clone
}

// CloneFromTree merges a base tree's fields into this tree. Derived values
// win: commands, environment and gitconfig concatenate with the base's
// entries first, remotes copy over only when this tree declared none, and
// scalar fields keep the derived value unless it is unset. The base's own
// templates list is truncated on the copy so ancestors are not re-applied.
// Variables participate only when copyVariables is set, which happens for
// "extend" and worktree-parent composition but not for template application.
func (t *Tree) CloneFromTree(base *Tree, copyVariables bool) {
	t.Commands = append(cloneMultiVariables(base.Commands), t.Commands...)
	t.Environment = append(cloneMultiVariables(base.Environment), t.Environment...)
	t.Gitconfig = append(cloneNamedVariables(base.Gitconfig), t.Gitconfig...)

	// First-declared-origin-wins: a template can supply a default URL that
	// a concrete tree overrides wholesale.
	if len(t.Remotes) == 0 {
		t.Remotes = cloneNamedVariables(base.Remotes)
	}

	if copyVariables {
		t.Variables = append(cloneNamedVariables(base.Variables), t.Variables...)
	}

	if t.Path.Expr == "" {
		t.Path = base.Path.Clone()
	}
	if t.Symlink.Expr == "" {
		t.Symlink = base.Symlink.Clone()
	}
	if t.Branch.Expr == "" {
		t.Branch = base.Branch.Clone()
	}
	if t.Worktree.Expr == "" {
		t.Worktree = base.Worktree.Clone()
	}
	if t.CloneDepth == 0 {
		t.CloneDepth = base.CloneDepth
	}
	if !t.IsBareRepository {
		t.IsBareRepository = base.IsBareRepository
	}
	if !t.IsSingleBranch {
		t.IsSingleBranch = base.IsSingleBranch
	}
	if !t.IsSymlink {
		t.IsSymlink = base.IsSymlink
	}
	if !t.IsWorktree {
		t.IsWorktree = base.IsWorktree
	}
}

// DefaultRemote returns the first remote entry, by convention "origin".
func (t *Tree) DefaultRemote() *NamedVariable {
	if len(t.Remotes) == 0 {
		return nil
	}
	return t.Remotes[0]
}

// UpdateFlags derives structural flags from the tree's resolved fields.
// A path with a "name.git" suffix marks a bare repository even without an
// explicit "bare: true".
func (t *Tree) UpdateFlags() {
	if value, ok := t.Path.Value(); ok && strings.HasSuffix(value, ".git") {
		t.IsBareRepository = true
	}
	if t.Symlink.Expr != "" {
		t.IsSymlink = true
	}
	if t.Worktree.Expr != "" {
		t.IsWorktree = true
	}
}

// Reset clears every cached variable value owned by the tree. The path is
// left alone: it is resolved once at load time and then treated as a plain
// value.
func (t *Tree) Reset() {
	resetNamedVariables(t.Remotes)
	resetNamedVariables(t.Variables)
	resetNamedVariables(t.Gitconfig)
	resetMultiVariables(t.Commands)
	resetMultiVariables(t.Environment)
	t.Symlink.Reset()
	t.Branch.Reset()
	t.Worktree.Reset()
}

// Template is a reusable, path-less partial tree definition.
type Template struct {
	Name   string
	Extend []string
	Tree   *Tree
}

// NewTemplate creates an empty template.
func NewTemplate(name string) *Template {
	return &Template{Name: name, Tree: NewTree(name)}
}

// Apply merges the template's payload onto the target tree.
func (t *Template) Apply(target *Tree) {
	target.CloneFromTree(t.Tree, false)
}
