package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func multiNames(vars []*MultiVariable) []string {
	names := make([]string, 0, len(vars))
	for _, mv := range vars {
		names = append(names, mv.Name)
	}
	return names
}

func TestCloneFromTreeConcatenatesEntries(t *testing.T) {
	base := NewTree("base")
	base.Commands = append(base.Commands, NewMultiVariable("build", "make"))
	base.Environment = append(base.Environment, NewMultiVariable("PATH", "${TREE_PATH}/bin"))
	base.Gitconfig = append(base.Gitconfig, NewNamedVariable("user.name", "Base"))

	derived := NewTree("derived")
	derived.Commands = append(derived.Commands, NewMultiVariable("build", "make install"))
	derived.CloneFromTree(base, false)

	// Base entries come first so derived layers on top.
	want := []string{"build", "build"}
	if diff := cmp.Diff(want, multiNames(derived.Commands)); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if derived.Commands[0].Values[0].Expr != "make" {
		t.Errorf("first command = %q, want the base's", derived.Commands[0].Values[0].Expr)
	}
	if len(derived.Environment) != 1 || len(derived.Gitconfig) != 1 {
		t.Error("environment and gitconfig entries should be copied")
	}
}

func TestCloneFromTreeRemotesFirstDeclarationWins(t *testing.T) {
	base := NewTree("base")
	base.Remotes = append(base.Remotes, NewNamedVariable("origin", "https://example.com/base.git"))

	t.Run("derived without remotes inherits", func(t *testing.T) {
		derived := NewTree("derived")
		derived.CloneFromTree(base, false)
		if len(derived.Remotes) != 1 || derived.Remotes[0].Expr != "https://example.com/base.git" {
			t.Errorf("remotes = %v", derived.Remotes)
		}
	})

	t.Run("derived with remotes keeps its own", func(t *testing.T) {
		derived := NewTree("derived")
		derived.Remotes = append(derived.Remotes, NewNamedVariable("origin", "https://example.com/own.git"))
		derived.CloneFromTree(base, false)
		if len(derived.Remotes) != 1 || derived.Remotes[0].Expr != "https://example.com/own.git" {
			t.Errorf("remotes = %v", derived.Remotes)
		}
	})
}

func TestCloneFromTreeScalars(t *testing.T) {
	base := NewTree("base")
	base.Branch = NewVariable("develop")
	base.CloneDepth = 3
	base.IsSingleBranch = true

	derived := NewTree("derived")
	derived.Branch = NewVariable("main")
	derived.CloneFromTree(base, false)

	if derived.Branch.Expr != "main" {
		t.Errorf("branch = %q, derived scalar should win", derived.Branch.Expr)
	}
	if derived.CloneDepth != 3 || !derived.IsSingleBranch {
		t.Error("unset scalars should take the base's values")
	}
}

func TestCloneFromTreeVariables(t *testing.T) {
	base := NewTree("base")
	base.Variables = append(base.Variables, NewNamedVariable("prefix", "/usr"))

	t.Run("copied when composing", func(t *testing.T) {
		derived := NewTree("derived")
		derived.CloneFromTree(base, true)
		if len(derived.Variables) != 1 {
			t.Errorf("variables = %v, want the base's copied", derived.Variables)
		}
	})

	t.Run("not copied for template application", func(t *testing.T) {
		derived := NewTree("derived")
		derived.CloneFromTree(base, false)
		if len(derived.Variables) != 0 {
			t.Errorf("variables = %v, want none", derived.Variables)
		}
	})
}

func TestTemplateApply(t *testing.T) {
	template := NewTemplate("rust")
	template.Tree.Commands = append(template.Tree.Commands, NewMultiVariable("build", "cargo build"))
	template.Tree.Variables = append(template.Tree.Variables, NewNamedVariable("hidden", "x"))

	target := NewTree("app")
	template.Apply(target)

	if len(target.Commands) != 1 {
		t.Fatalf("commands = %v, want the template's", multiNames(target.Commands))
	}
	if len(target.Variables) != 0 {
		t.Error("template variables must not leak into the target tree")
	}
}

func TestUpdateFlags(t *testing.T) {
	t.Run("git suffix marks bare", func(t *testing.T) {
		tree := NewTree("mirror")
		tree.Path.SetValue("/repos/mirror.git")
		tree.UpdateFlags()
		if !tree.IsBareRepository {
			t.Error("expected IsBareRepository for a .git path")
		}
	})

	t.Run("symlink and worktree", func(t *testing.T) {
		tree := NewTree("link")
		tree.Symlink = NewVariable("../elsewhere")
		tree.UpdateFlags()
		if !tree.IsSymlink {
			t.Error("expected IsSymlink")
		}

		wt := NewTree("wt")
		wt.Worktree = NewVariable("parent")
		wt.UpdateFlags()
		if !wt.IsWorktree {
			t.Error("expected IsWorktree")
		}
	})
}

func TestTreeCloneIsIndependent(t *testing.T) {
	tree := NewTree("tree")
	tree.Variables = append(tree.Variables, NewNamedVariable("v", "1"))
	tree.Templates = append(tree.Templates, "base")

	clone := tree.Clone()
	clone.Variables[0].SetValue("cached")
	clone.Templates[0] = "other"

	if _, ok := tree.Variables[0].Value(); ok {
		t.Error("mutating the clone's variables affected the original")
	}
	if tree.Templates[0] != "base" {
		t.Error("mutating the clone's templates affected the original")
	}
}
