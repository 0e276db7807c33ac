package config

// Group is a named, reusable list of tree names. Members may be globs.
type Group struct {
	Name    string
	Members []string
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{Name: name}
}

// Garden is a named collection of groups and trees that layers additional
// variables, commands, environment and gitconfig entries onto its members.
type Garden struct {
	Name        string
	Groups      []string
	Trees       []string
	Variables   []*NamedVariable
	Gitconfig   []*NamedVariable
	Commands    []*MultiVariable
	Environment []*MultiVariable
}

// NewGarden creates an empty garden.
func NewGarden(name string) *Garden {
	return &Garden{Name: name}
}

// Reset clears cached variable values owned by the garden.
func (g *Garden) Reset() {
	resetNamedVariables(g.Variables)
	resetNamedVariables(g.Gitconfig)
	resetMultiVariables(g.Commands)
	resetMultiVariables(g.Environment)
}

// Graft is an attachment point referencing an independently-rooted child
// configuration. The child is reached via "name::" namespaced expressions
// and queries once resolved.
type Graft struct {
	Name       string
	ConfigPath string // declared sub-configuration path expression
	Root       string // declared root override expression
	ID         ConfigId
}

// NewGraft creates an unresolved graft.
func NewGraft(name string) *Graft {
	return &Graft{Name: name}
}
