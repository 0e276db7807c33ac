package eval

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/syntax"
)

// context carries one evaluation's scope and recursion state.
type context struct {
	app    *config.ApplicationContext
	cfg    *config.Configuration
	tree   string // empty for global-scope evaluation
	garden string
	// busy tracks variables currently being resolved. A re-entrant lookup
	// short-circuits to the empty string so circular references terminate.
	busy map[*config.Variable]bool
}

func newContext(app *config.ApplicationContext, cfg *config.Configuration, tree, garden string) *context {
	return &context{app: app, cfg: cfg, tree: tree, garden: garden, busy: make(map[*config.Variable]bool)}
}

// Value evaluates an expression in configuration/global scope.
func Value(app *config.ApplicationContext, cfg *config.Configuration, expr string) string {
	return evaluate(newContext(app, cfg, "", ""), expr)
}

// TreeValue evaluates an expression in (garden, tree, configuration) scope.
// The garden name may be empty.
func TreeValue(app *config.ApplicationContext, cfg *config.Configuration, expr, tree, garden string) string {
	return evaluate(newContext(app, cfg, tree, garden), expr)
}

// evaluate expands variable references and then runs exec expressions.
func evaluate(ec *context, expr string) string {
	expanded := expand(ec, expr)
	if !syntax.IsExec(expanded) {
		return expanded
	}

	dir := ""
	if ec.tree != "" {
		if path, ok := ec.cfg.TreePath(ec.tree); ok {
			dir = path
		}
	}
	return execExpression(ec.cfg, syntax.TrimExec(expanded), dir)
}

// expand substitutes ~, $name and ${name} references in the expression.
// "$$" escapes a literal dollar sign.
func expand(ec *context, expr string) string {
	s := expr
	var out []byte

	if len(s) > 0 && s[0] == '~' {
		if expanded, err := homedir.Expand(s); err == nil {
			s = expanded
		}
	}

	for i := 0; i < len(s); {
		c := s[i]
		if c != '$' {
			out = append(out, c)
			i++
			continue
		}
		// "$$" is a literal "$".
		if i+1 < len(s) && s[i+1] == '$' {
			out = append(out, '$')
			i += 2
			continue
		}
		name, next := scanName(s, i+1)
		if name == "" {
			out = append(out, c)
			i++
			continue
		}
		out = append(out, resolve(ec, name)...)
		i = next
	}

	return string(out)
}

// scanName reads a variable name starting at s[start], handling both the
// braced ${name} and bare $name forms. It returns the name and the index
// just past the reference, or ("", start) when no name is present.
func scanName(s string, start int) (string, int) {
	if start >= len(s) {
		return "", start
	}
	if s[start] == '{' {
		for j := start + 1; j < len(s); j++ {
			if s[j] == '}' {
				return s[start+1 : j], j + 1
			}
		}
		return "", start
	}
	j := start
	for j < len(s) && isNameByte(s[j]) {
		j++
	}
	return s[start:j], j
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// resolve looks up a single name using scope precedence: garden scope,
// then tree scope, then configuration scope, then the process environment,
// then the empty string. Missing data degrades gracefully; resolution
// never fails.
func resolve(ec *context, name string) string {
	// Numeric names pass through as positional placeholders so that
	// $0, $1, ... survive into command strings.
	if syntax.IsNumber(name) {
		return "$" + name
	}

	if syntax.IsGraft(name) {
		return resolveGraft(ec, name)
	}

	if ec.garden != "" {
		if garden := ec.cfg.Garden(ec.garden); garden != nil {
			if value, ok := resolveVariable(ec, garden.Variables, name); ok {
				return value
			}
		}
	}

	if ec.tree != "" {
		if tree := ec.cfg.Tree(ec.tree); tree != nil {
			if value, ok := resolveVariable(ec, tree.Variables, name); ok {
				return value
			}
		}
	}

	if value, ok := resolveVariable(ec, ec.cfg.Variables, name); ok {
		return value
	}

	if value, ok := os.LookupEnv(name); ok {
		return value
	}

	return ""
}

// resolveVariable evaluates the named variable from the given scope with
// memoization. The value is computed once per reset cycle.
func resolveVariable(ec *context, vars []*config.NamedVariable, name string) (string, bool) {
	var found *config.NamedVariable
	for _, v := range vars {
		if v.Name == name {
			found = v
			break
		}
	}
	if found == nil {
		return "", false
	}
	if value, ok := found.Value(); ok {
		return value, true
	}
	cell := &found.Variable
	if ec.busy[cell] {
		// Already resolving this variable further up the stack.
		return "", true
	}
	ec.busy[cell] = true
	value := evaluate(ec, found.Expr)
	delete(ec.busy, cell)
	found.SetValue(value)
	return value, true
}

// resolveGraft resolves "graft::rest" by locating the graft on the current
// configuration and evaluating the remainder in the child configuration's
// global scope. Unknown grafts evaluate to the empty string.
func resolveGraft(ec *context, name string) string {
	graftName, rest := syntax.SplitGraft(name)
	graft := ec.cfg.Graft(graftName)
	if graft == nil || graft.ID.IsNone() {
		return ""
	}
	child := ec.app.Get(graft.ID)
	childCtx := &context{app: ec.app, cfg: child, busy: ec.busy}
	return resolve(childCtx, rest)
}

// MultiVariable evaluates every value of a multi-valued variable in the
// given tree context, memoizing each element.
func MultiVariable(app *config.ApplicationContext, cfg *config.Configuration, mv *config.MultiVariable, tc *config.TreeContext) []string {
	result := make([]string, 0, len(mv.Values))
	for _, v := range mv.Values {
		if value, ok := v.Value(); ok {
			result = append(result, value)
			continue
		}
		value := TreeValue(app, cfg, v.Expr, tc.Tree, tc.Garden)
		v.SetValue(value)
		result = append(result, value)
	}
	return result
}
