// Package syntax holds the lexical helpers shared by the query resolver
// and the expression evaluator.
package syntax

import "strings"

// Query sigils. A leading ":" selects gardens, "%" selects groups and "@"
// selects trees. Queries without a sigil fall through garden -> group -> tree.
const (
	GardenSigil = ":"
	GroupSigil  = "%"
	TreeSigil   = "@"
)

// GraftSep separates a graft name from the remainder of a namespaced
// reference, as in "graft::tree" or "graft::${variable}".
const GraftSep = "::"

// execMarker prefixes exec expressions whose value is captured stdout.
const execMarker = "$ "

// IsGarden reports whether the query selects gardens only.
func IsGarden(query string) bool {
	return strings.HasPrefix(query, GardenSigil)
}

// IsGroup reports whether the query selects groups only.
func IsGroup(query string) bool {
	return strings.HasPrefix(query, GroupSigil)
}

// IsTree reports whether the query selects trees only.
func IsTree(query string) bool {
	return strings.HasPrefix(query, TreeSigil)
}

// TrimSigil strips a leading query sigil, if any.
func TrimSigil(query string) string {
	if IsGarden(query) || IsGroup(query) || IsTree(query) {
		return query[1:]
	}
	return query
}

// IsExec reports whether the expression is an exec expression ("$ <cmd>").
func IsExec(expr string) bool {
	return strings.HasPrefix(expr, execMarker)
}

// TrimExec strips the exec marker and surrounding whitespace from the
// command portion of an exec expression.
func TrimExec(expr string) string {
	return strings.TrimSpace(strings.TrimPrefix(expr, execMarker))
}

// IsGraft reports whether the name is graft-namespaced ("graft::rest").
func IsGraft(name string) bool {
	return strings.Contains(name, GraftSep)
}

// SplitGraft splits "graft::rest" into its graft name and remainder.
// The remainder may itself be graft-namespaced.
func SplitGraft(name string) (graft, rest string) {
	idx := strings.Index(name, GraftSep)
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx+len(GraftSep):]
}

// IsNumber reports whether the name is all digits. Numeric variable names
// are positional placeholders ($0, $1, ...) and are never substituted.
func IsNumber(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
