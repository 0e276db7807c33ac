package reader

import (
	"os"
	"path/filepath"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/eval"
)

// applyIncludes parses each grove.includes document into the given
// configuration. Entities already defined keep their first definition, so
// the including document always wins. Included documents may declare
// further includes; those are picked up in order.
func applyIncludes(app *config.ApplicationContext, cfg *config.Configuration) error {
	for i := 0; i < len(cfg.Includes); i++ {
		path := eval.Value(app, cfg, cfg.Includes[i])
		if path == "" {
			continue
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Dirname, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return config.NewConfigurationError(cfg.Path, "include %q: %v", cfg.Includes[i], err)
		}
		if err := Parse(data, cfg); err != nil {
			return err
		}
	}
	return nil
}

// resolveGrafts loads every graft's sub-configuration into the arena and
// recurses into the children. The graft's path and root expressions are
// evaluated in the parent's scope; the child is registered before it is
// initialized so that its own graft references can already be addressed.
func resolveGrafts(app *config.ApplicationContext, cfg *config.Configuration) error {
	for _, graft := range cfg.Grafts {
		path := eval.Value(app, cfg, graft.ConfigPath)
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Dirname, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return config.NewConfigurationError(cfg.Path, "graft %q: %v", graft.Name, err)
		}

		child := config.New()
		child.SetPath(path)
		if graft.Root != "" {
			child.Root = config.NewVariable(eval.Value(app, cfg, graft.Root))
		}
		if err := Parse(data, child); err != nil {
			return err
		}

		graft.ID = app.AddGraft(cfg.ID, child)
		if err := applyIncludes(app, child); err != nil {
			return err
		}
		if err := InitConfiguration(app, child); err != nil {
			return err
		}
		if err := resolveGrafts(app, child); err != nil {
			return err
		}
	}
	return nil
}
