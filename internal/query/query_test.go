package query_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/query"
	"github.com/grovekit/grove/internal/reader"
)

const document = `
grove:
  root: /repos

trees:
  app: https://example.com/app.git
  lib: https://example.com/lib.git
  docs: https://example.com/docs.git
  app-ios: https://example.com/app-ios.git

groups:
  apps:
    - app
    - app-ios
  all:
    - "*"

gardens:
  mobile:
    groups: apps
  everything:
    groups:
      - apps
    trees:
      - docs
  docs:
    trees: docs
`

func load(t *testing.T) *config.ApplicationContext {
	t.Helper()
	app, err := reader.LoadString(document)
	if err != nil {
		t.Fatal(err)
	}
	return app
}

type resolved struct {
	Tree   string
	Garden string
	Group  string
}

func flatten(contexts []*config.TreeContext) []resolved {
	result := make([]resolved, 0, len(contexts))
	for _, ctx := range contexts {
		result = append(result, resolved{Tree: ctx.Tree, Garden: ctx.Garden, Group: ctx.Group})
	}
	return result
}

func TestResolveTreesDefaultOrder(t *testing.T) {
	app := load(t)
	cfg := app.Root()

	t.Run("garden wins over tree of the same name", func(t *testing.T) {
		got := flatten(query.ResolveTrees(app, cfg, "docs"))
		want := []resolved{{Tree: "docs", Garden: "docs"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("group matched when no garden matches", func(t *testing.T) {
		got := flatten(query.ResolveTrees(app, cfg, "apps"))
		want := []resolved{
			{Tree: "app", Group: "apps"},
			{Tree: "app-ios", Group: "apps"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("tree matched last", func(t *testing.T) {
		got := flatten(query.ResolveTrees(app, cfg, "lib"))
		want := []resolved{{Tree: "lib"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("wildcard matches trees in declaration order", func(t *testing.T) {
		got := flatten(query.ResolveTrees(app, cfg, "@app*"))
		want := []resolved{{Tree: "app"}, {Tree: "app-ios"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestResolveTreesSigils(t *testing.T) {
	app := load(t)
	cfg := app.Root()

	t.Run("garden sigil", func(t *testing.T) {
		got := flatten(query.ResolveTrees(app, cfg, ":mobile"))
		want := []resolved{
			{Tree: "app", Garden: "mobile", Group: "apps"},
			{Tree: "app-ios", Garden: "mobile", Group: "apps"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("group sigil", func(t *testing.T) {
		got := flatten(query.ResolveTrees(app, cfg, "%apps"))
		want := []resolved{
			{Tree: "app", Group: "apps"},
			{Tree: "app-ios", Group: "apps"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("tree sigil", func(t *testing.T) {
		got := flatten(query.ResolveTrees(app, cfg, "@docs"))
		want := []resolved{{Tree: "docs"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("sigiled queries never fall through", func(t *testing.T) {
		if got := query.ResolveTrees(app, cfg, ":apps"); len(got) != 0 {
			t.Errorf(":apps = %v, want nothing (apps is a group)", flatten(got))
		}
		if got := query.ResolveTrees(app, cfg, "%docs"); len(got) != 0 {
			t.Errorf("%%docs = %v, want nothing (docs is not a group)", flatten(got))
		}
		if got := query.ResolveTrees(app, cfg, "@apps"); len(got) != 0 {
			t.Errorf("@apps = %v, want nothing (apps is not a tree)", flatten(got))
		}
	})
}

func TestGardenExpansion(t *testing.T) {
	app := load(t)
	cfg := app.Root()

	// Groups expand before the garden's direct trees.
	got := flatten(query.ResolveTrees(app, cfg, ":everything"))
	want := []resolved{
		{Tree: "app", Garden: "everything", Group: "apps"},
		{Tree: "app-ios", Garden: "everything", Group: "apps"},
		{Tree: "docs", Garden: "everything"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicatesAcrossGardensPreserved(t *testing.T) {
	app := load(t)
	cfg := app.Root()

	got := flatten(query.ResolveTrees(app, cfg, ":*"))
	// app appears once per garden that contains it; each occurrence keeps
	// its own garden provenance.
	var appGardens []string
	for _, r := range got {
		if r.Tree == "app" {
			appGardens = append(appGardens, r.Garden)
		}
	}
	want := []string{"mobile", "everything"}
	if diff := cmp.Diff(want, appGardens); diff != "" {
		t.Errorf("app gardens mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupGlobMembers(t *testing.T) {
	app := load(t)
	cfg := app.Root()

	got := flatten(query.ResolveTrees(app, cfg, "%all"))
	want := []resolved{
		{Tree: "app", Group: "all"},
		{Tree: "lib", Group: "all"},
		{Tree: "docs", Group: "all"},
		{Tree: "app-ios", Group: "all"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeContextLookup(t *testing.T) {
	app := load(t)
	cfg := app.Root()

	ctx, err := query.TreeContext(app, cfg, "app", "mobile")
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Garden != "mobile" || ctx.Group != "apps" {
		t.Errorf("context = %+v", ctx)
	}

	if _, err := query.TreeContext(app, cfg, "docs", "mobile"); err == nil {
		t.Error("expected an error for a tree outside the garden")
	}
	if _, err := query.TreeContext(app, cfg, "app", "nope"); err == nil {
		t.Error("expected an error for an unknown garden")
	}
	var nferr *config.NotFoundError
	_, err = query.TreeContext(app, cfg, "missing", "")
	if err == nil || !errors.As(err, &nferr) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestGraftQueries(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // test file
			t.Fatal(err)
		}
		return path
	}

	write("libs.yaml", `
trees:
  lib-a: https://example.com/lib-a.git
  lib-b: https://example.com/lib-b.git
groups:
  libs:
    - lib-a
    - lib-b
`)
	root := write("grove.yaml", `
grove:
  root: `+dir+`
trees:
  app: https://example.com/app.git
grafts:
  vendor: libs.yaml
groups:
  mixed:
    - app
    - vendor::lib-a
`)

	app, err := reader.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	cfg := app.Root()
	childId := cfg.Graft("vendor").ID

	t.Run("namespaced query resolves in the child", func(t *testing.T) {
		got := query.ResolveTrees(app, cfg, "vendor::%libs")
		if len(got) != 2 {
			t.Fatalf("resolved %d trees, want 2", len(got))
		}
		for _, ctx := range got {
			if ctx.Config != childId {
				t.Errorf("context config = %v, want the graft's %v", ctx.Config, childId)
			}
		}
	})

	t.Run("group members may be namespaced", func(t *testing.T) {
		got := query.ResolveTrees(app, cfg, "%mixed")
		if len(got) != 2 {
			t.Fatalf("resolved %d trees, want 2", len(got))
		}
		if got[0].Tree != "app" || got[0].Config != cfg.ID {
			t.Errorf("first = %+v", got[0])
		}
		if got[1].Tree != "lib-a" || got[1].Config != childId {
			t.Errorf("second = %+v", got[1])
		}
		if got[1].Group != "mixed" {
			t.Errorf("group provenance = %q, want mixed", got[1].Group)
		}
	})

	t.Run("FindTree follows namespaces", func(t *testing.T) {
		ctx, err := query.FindTree(app, cfg.ID, "vendor::lib-b")
		if err != nil {
			t.Fatal(err)
		}
		if ctx.Tree != "lib-b" || ctx.Config != childId {
			t.Errorf("context = %+v", ctx)
		}
	})

	t.Run("unknown graft resolves nothing", func(t *testing.T) {
		if got := query.ResolveTrees(app, cfg, "nope::anything"); len(got) != 0 {
			t.Errorf("got %v, want nothing", flatten(got))
		}
	})
}
