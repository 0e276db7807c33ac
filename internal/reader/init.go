package reader

import (
	"path/filepath"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/eval"
)

// InitConfiguration composes templates and trees, resolves the root and
// every tree path, and injects the builtin variables. Paths are resolved
// exactly once here; later evaluation treats them as plain values.
func InitConfiguration(app *config.ApplicationContext, cfg *config.Configuration) error {
	composeTemplates(cfg)
	composeTrees(cfg)
	resolveRoot(app, cfg)
	resolveTreePaths(app, cfg)
	// Composition evaluates variables in their pre-init state. Drop those
	// values so queries start from a clean slate.
	cfg.Reset()
	return nil
}

// composeTemplates folds each template's extend chain into its payload.
// Bases are applied in reverse declared order so that their entries
// concatenate in declared order, earliest base first.
func composeTemplates(cfg *config.Configuration) {
	done := make(map[string]bool)
	var build func(t *config.Template, visiting map[string]bool)
	build = func(t *config.Template, visiting map[string]bool) {
		if done[t.Name] || visiting[t.Name] {
			return
		}
		visiting[t.Name] = true
		for i := len(t.Extend) - 1; i >= 0; i-- {
			base := cfg.Template(t.Extend[i])
			if base == nil {
				continue
			}
			build(base, visiting)
			t.Tree.CloneFromTree(base.Tree, true)
		}
		delete(visiting, t.Name)
		done[t.Name] = true
	}
	for _, t := range cfg.Templates {
		build(t, make(map[string]bool))
	}
}

// composeTrees merges each tree's extend base, worktree parent and
// templates into the tree definition. Templates apply in reverse declared
// order so their entries land earliest-declared first, ahead of the
// worktree parent's and the extend base's, with the tree's own entries
// last.
func composeTrees(cfg *config.Configuration) {
	done := make(map[string]bool)
	var build func(t *config.Tree, visiting map[string]bool)
	build = func(t *config.Tree, visiting map[string]bool) {
		if done[t.Name] || visiting[t.Name] {
			return
		}
		visiting[t.Name] = true

		if t.Extend != "" {
			if base := cfg.Tree(t.Extend); base != nil {
				build(base, visiting)
				t.CloneFromTree(base, true)
			}
		}

		if t.Worktree.Expr != "" {
			if parent := cfg.Tree(t.Worktree.Expr); parent != nil {
				build(parent, visiting)
				t.CloneFromTree(parent, true)
			}
		}

		for i := len(t.Templates) - 1; i >= 0; i-- {
			if template := cfg.Template(t.Templates[i]); template != nil {
				template.Apply(t)
			}
		}

		delete(visiting, t.Name)
		done[t.Name] = true
	}
	for _, t := range cfg.Trees {
		build(t, make(map[string]bool))
	}
}

// resolveRoot evaluates grove.root, defaults it to the configuration
// directory, and records GROVE_ROOT as a configuration variable.
func resolveRoot(app *config.ApplicationContext, cfg *config.Configuration) {
	expr := cfg.Root.Expr
	if expr == "" {
		expr = cfg.Dirname
	}
	root := eval.Value(app, cfg, expr)
	if root == "" {
		root = cfg.Dirname
	}
	if root != "" && !filepath.IsAbs(root) {
		root = filepath.Join(cfg.Dirname, root)
	}
	root = filepath.Clean(root)

	cfg.RootPath = root
	cfg.Root = config.NewVariable(root)
	cfg.Root.SetValue(root)

	rootVar := config.NewNamedVariable("GROVE_ROOT", root)
	rootVar.SetValue(root)
	cfg.Variables = append([]*config.NamedVariable{rootVar}, cfg.Variables...)
}

// resolveTreePaths evaluates each tree's path, anchors relative paths at
// the configuration root, and rewrites the path expression to the
// resolved value so that resets cannot reintroduce the raw expression.
// TREE_NAME and TREE_PATH are prepended to each tree's variables so they
// shadow any same-named definitions.
func resolveTreePaths(app *config.ApplicationContext, cfg *config.Configuration) {
	for _, tree := range cfg.Trees {
		expr := tree.Path.Expr
		if expr == "" {
			expr = tree.Name
		}
		path := eval.TreeValue(app, cfg, expr, tree.Name, "")
		if path == "" {
			path = tree.Name
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.RootPath, path)
		}
		path = filepath.Clean(path)

		tree.Path.Expr = path
		tree.Path.SetValue(path)

		nameVar := config.NewNamedVariable("TREE_NAME", tree.Name)
		nameVar.SetValue(tree.Name)
		pathVar := config.NewNamedVariable("TREE_PATH", path)
		pathVar.SetValue(path)
		tree.Variables = append([]*config.NamedVariable{nameVar, pathVar}, tree.Variables...)

		tree.UpdateFlags()
	}
}
