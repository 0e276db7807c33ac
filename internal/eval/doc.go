// Package eval resolves expressions against garden, tree, configuration
// and environment scopes, executes exec expressions, assembles per-tree
// environments, and resolves command name patterns into command lists.
package eval
