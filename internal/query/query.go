// Package query turns tree-query strings into ordered lists of tree
// execution contexts.
package query

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/syntax"
)

// match reports whether the glob pattern matches the name. Supported
// syntax is "*", "?" and bracket classes, case-sensitive. Malformed
// patterns match nothing.
func match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// ResolveTrees expands a query into an ordered list of tree contexts.
//
// A leading ":" restricts the query to gardens, "%" to groups and "@" to
// trees; sigiled queries do not fall through to the other stages even
// when nothing matches. Default queries try gardens, then groups, then
// trees, stopping at the first stage that produces results.
func ResolveTrees(app *config.ApplicationContext, cfg *config.Configuration, query string) []*config.TreeContext {
	// Graft-namespaced queries resolve inside the child configuration.
	if syntax.IsGraft(query) {
		return resolveGraftQuery(app, cfg, query)
	}

	includeGardens := syntax.IsGarden(query)
	includeGroups := syntax.IsGroup(query)
	includeTrees := syntax.IsTree(query)
	isDefault := !includeGardens && !includeGroups && !includeTrees
	pattern := syntax.TrimSigil(query)

	if includeGardens || isDefault {
		if result := GardenTrees(app, cfg, pattern); len(result) > 0 || includeGardens {
			return result
		}
	}

	if includeGroups || isDefault {
		var result []*config.TreeContext
		for _, group := range cfg.Groups {
			if !match(pattern, group.Name) {
				continue
			}
			result = append(result, TreesFromGroup(app, cfg, group, "")...)
		}
		if len(result) > 0 || includeGroups {
			return result
		}
	}

	return TreesFromPattern(app, cfg, pattern, "", "")
}

// resolveGraftQuery resolves "graft::remainder" by running the remainder
// as a query against the graft's child configuration. Contexts produced
// by the child are stamped with the graft's handle.
func resolveGraftQuery(app *config.ApplicationContext, cfg *config.Configuration, query string) []*config.TreeContext {
	graftName, rest := syntax.SplitGraft(query)
	graft := cfg.Graft(graftName)
	if graft == nil || graft.ID.IsNone() {
		return nil
	}
	child := app.Get(graft.ID)
	return ResolveTrees(app, child, rest)
}

// GardenTrees returns contexts for every garden matching the pattern,
// expanding each garden into its member groups followed by its direct
// trees, in declaration order. Duplicate trees across gardens are kept:
// the same tree may need independent processing once per garden.
func GardenTrees(app *config.ApplicationContext, cfg *config.Configuration, pattern string) []*config.TreeContext {
	var result []*config.TreeContext
	for _, garden := range cfg.Gardens {
		if !match(pattern, garden.Name) {
			continue
		}
		result = append(result, TreesFromGarden(app, cfg, garden)...)
	}
	return result
}

// TreesFromGarden expands a single garden into tree contexts carrying the
// garden name, with group provenance for group-derived members.
func TreesFromGarden(app *config.ApplicationContext, cfg *config.Configuration, garden *config.Garden) []*config.TreeContext {
	var result []*config.TreeContext

	// Garden group references may themselves be glob patterns.
	for _, groupPattern := range garden.Groups {
		for _, group := range cfg.Groups {
			if !match(groupPattern, group.Name) {
				continue
			}
			result = append(result, TreesFromGroup(app, cfg, group, garden.Name)...)
		}
	}

	for _, treePattern := range garden.Trees {
		result = append(result, TreesFromPattern(app, cfg, treePattern, garden.Name, "")...)
	}

	return result
}

// TreesFromGroup expands a group's members into tree contexts. Members
// may be glob patterns or graft-namespaced references.
func TreesFromGroup(app *config.ApplicationContext, cfg *config.Configuration, group *config.Group, garden string) []*config.TreeContext {
	var result []*config.TreeContext
	for _, member := range group.Members {
		result = append(result, TreesFromPattern(app, cfg, member, garden, group.Name)...)
	}
	return result
}

// TreesFromPattern returns contexts for every tree whose name matches the
// pattern, in declaration order, with the given provenance attached.
// Graft-namespaced patterns resolve inside the graft's configuration.
func TreesFromPattern(app *config.ApplicationContext, cfg *config.Configuration, pattern, garden, group string) []*config.TreeContext {
	if syntax.IsGraft(pattern) {
		graftName, rest := syntax.SplitGraft(pattern)
		graft := cfg.Graft(graftName)
		if graft == nil || graft.ID.IsNone() {
			return nil
		}
		child := app.Get(graft.ID)
		return TreesFromPattern(app, child, rest, garden, group)
	}

	var result []*config.TreeContext
	for _, tree := range cfg.Trees {
		if !match(pattern, tree.Name) {
			continue
		}
		result = append(result, &config.TreeContext{
			Tree:   tree.Name,
			Config: cfg.ID,
			Garden: garden,
			Group:  group,
		})
	}
	return result
}

// TreeContext returns the context for a single named tree, optionally
// scoped to a garden. The garden must exist and contain the tree.
func TreeContext(app *config.ApplicationContext, cfg *config.Configuration, tree, garden string) (*config.TreeContext, error) {
	if garden != "" {
		g := cfg.Garden(garden)
		if g == nil {
			return nil, config.NewNotFoundError("garden", garden)
		}
		for _, ctx := range TreesFromGarden(app, cfg, g) {
			if ctx.Tree == tree {
				return ctx, nil
			}
		}
		return nil, config.NewNotFoundError("tree", tree+" in garden "+garden)
	}

	if syntax.IsGraft(tree) {
		return FindTree(app, cfg.ID, tree)
	}

	if cfg.Tree(tree) == nil {
		return nil, config.NewNotFoundError("tree", tree)
	}
	return &config.TreeContext{Tree: tree, Config: cfg.ID}, nil
}

// FindTree locates a tree by exact name starting from the configuration
// with the given handle, following graft namespaces.
func FindTree(app *config.ApplicationContext, id config.ConfigId, name string) (*config.TreeContext, error) {
	cfg := app.Get(id)
	if syntax.IsGraft(name) {
		graftName, rest := syntax.SplitGraft(name)
		graft := cfg.Graft(graftName)
		if graft == nil || graft.ID.IsNone() {
			return nil, config.NewNotFoundError("graft", graftName)
		}
		return FindTree(app, graft.ID, rest)
	}
	if cfg.Tree(name) == nil {
		return nil, config.NewNotFoundError("tree", name)
	}
	return &config.TreeContext{Tree: name, Config: cfg.ID}, nil
}
