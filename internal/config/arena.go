package config

// ConfigId is an opaque handle into the configuration arena. Handles are
// 1-based and stable for the process lifetime; the zero value means "the
// currently active configuration".
type ConfigId int

// IsNone reports whether the handle refers to no configuration.
func (id ConfigId) IsNone() bool { return id == 0 }

// ApplicationContext owns a forest of Configuration values connected by
// parent/child graft edges. Configurations are stored flat and addressed
// by ConfigId so that parents remain referenceable while children are
// attached after the fact.
type ApplicationContext struct {
	configs []*Configuration
}

// NewApplicationContext creates an arena with the given root configuration.
// The root is self-registered with its own handle.
func NewApplicationContext(root *Configuration) *ApplicationContext {
	app := &ApplicationContext{}
	root.ID = ConfigId(1)
	root.Parent = 0
	app.configs = append(app.configs, root)
	return app
}

// RootId returns the handle of the arena root.
func (a *ApplicationContext) RootId() ConfigId {
	return ConfigId(1)
}

// Root returns the arena root configuration.
func (a *ApplicationContext) Root() *Configuration {
	return a.configs[0]
}

// Get resolves a handle. Resolution is infallible once a handle has been
// returned by this arena; handles are never invalidated or reused. The
// zero handle resolves to the root.
func (a *ApplicationContext) Get(id ConfigId) *Configuration {
	if id.IsNone() {
		return a.Root()
	}
	return a.configs[int(id)-1]
}

// AddGraft inserts a child configuration under the parent handle and
// stores the assigned handle back onto the child.
func (a *ApplicationContext) AddGraft(parent ConfigId, child *Configuration) ConfigId {
	child.ID = ConfigId(len(a.configs) + 1)
	child.Parent = parent
	a.configs = append(a.configs, child)
	return child.ID
}

// Len returns the number of configurations in the arena.
func (a *ApplicationContext) Len() int {
	return len(a.configs)
}

// Reset clears cached variable values across every configuration.
func (a *ApplicationContext) Reset() {
	for _, cfg := range a.configs {
		cfg.Reset()
	}
}
