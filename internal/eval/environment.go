package eval

import (
	"os"
	"strings"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/query"
)

// EnvVar is one (NAME, VALUE) pair to export into a subprocess.
type EnvVar struct {
	Name  string
	Value string
}

// scopedVar pairs an environment entry with the context it evaluates in:
// entries contributed by a garden member tree evaluate in that tree's
// scope, not the query context's.
type scopedVar struct {
	mv  *config.MultiVariable
	cfg *config.Configuration
	tc  *config.TreeContext
}

// Environment assembles the ordered environment for one tree context.
//
// Layers apply most-specific last: the configuration's own environment,
// then for a garden context every member tree's entries followed by the
// garden's, for a group context every member tree's entries, and
// otherwise the single tree's entries.
//
// Entry names carry a merge sigil: a trailing "=" assigns, "+" appends,
// and no sigil prepends onto a colon-joined list. The first time a name
// is seen a non-empty process environment value seeds the running value
// unless the entry is an assignment. Every intermediate value is emitted
// pair-by-pair; the history is preserved in the output, not collapsed
// into a final value.
func Environment(app *config.ApplicationContext, cfg *config.Configuration, tc *config.TreeContext) []EnvVar {
	var scoped []scopedVar

	for _, mv := range cfg.Environment {
		scoped = append(scoped, scopedVar{mv: mv, cfg: cfg, tc: tc})
	}

	switch {
	case tc.Garden != "":
		if garden := cfg.Garden(tc.Garden); garden != nil {
			for _, member := range query.TreesFromGarden(app, cfg, garden) {
				scoped = append(scoped, treeVars(app, member)...)
			}
			for _, mv := range garden.Environment {
				scoped = append(scoped, scopedVar{mv: mv, cfg: cfg, tc: tc})
			}
		}
	case tc.Group != "":
		if group := cfg.Group(tc.Group); group != nil {
			for _, member := range query.TreesFromGroup(app, cfg, group, "") {
				scoped = append(scoped, treeVars(app, member)...)
			}
		}
	default:
		scoped = append(scoped, treeVars(app, tc)...)
	}

	return mergeEnvironment(app, scoped)
}

// treeVars collects one tree's environment entries scoped to that tree.
func treeVars(app *config.ApplicationContext, tc *config.TreeContext) []scopedVar {
	cfg := app.Get(tc.Config)
	tree := cfg.Tree(tc.Tree)
	if tree == nil {
		return nil
	}
	var scoped []scopedVar
	for _, mv := range tree.Environment {
		scoped = append(scoped, scopedVar{mv: mv, cfg: cfg, tc: tc})
	}
	return scoped
}

func mergeEnvironment(app *config.ApplicationContext, scoped []scopedVar) []EnvVar {
	var result []EnvVar
	// Running value per name. Earlier emitted pairs stay in the result
	// even as later layers update the running state.
	current := make(map[string]string)

	for _, sv := range scoped {
		name := sv.mv.Name
		isAssign := strings.HasSuffix(name, "=")
		isAppend := strings.HasSuffix(name, "+")
		if isAssign || isAppend {
			name = name[:len(name)-1]
		}

		for _, value := range MultiVariable(app, sv.cfg, sv.mv, sv.tc) {
			existing, exists := current[name]
			if !exists {
				if env, ok := os.LookupEnv(name); ok && env != "" && !isAssign {
					existing = env
					current[name] = env
				} else {
					current[name] = value
					result = append(result, EnvVar{Name: name, Value: value})
					continue
				}
			}

			if isAssign {
				current[name] = value
				result = append(result, EnvVar{Name: name, Value: value})
				continue
			}

			var joined string
			if isAppend {
				joined = existing + ":" + value
			} else {
				joined = value + ":" + existing
			}
			current[name] = joined
			result = append(result, EnvVar{Name: name, Value: joined})
		}
	}

	return result
}
