package config

// TreeContext is the resolved (tree, configuration, garden, group) tuple
// handed to the evaluator and to external command execution. A zero Config
// handle means the currently active configuration. Empty Garden/Group
// strings mean the context carries no garden or group provenance.
type TreeContext struct {
	Tree   string
	Config ConfigId
	Garden string
	Group  string
}

// NewTreeContext creates a context for a tree in the active configuration.
func NewTreeContext(tree string) *TreeContext {
	return &TreeContext{Tree: tree}
}
