package eval_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/eval"
)

func TestCommandsScopeOrder(t *testing.T) {
	app := load(t, `
grove:
  root: /repos

commands:
  build: echo config-build

trees:
  app:
    commands:
      build: echo tree-build

gardens:
  dev:
    trees: app
    commands:
      build: echo garden-build
`)
	cfg := app.Root()
	tc := &config.TreeContext{Tree: "app", Garden: "dev"}

	got := eval.Commands(app, cfg, tc, "build")
	// Same-name definitions stay separate, config first, garden last.
	want := [][]string{
		{"echo config-build"},
		{"echo tree-build"},
		{"echo garden-build"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandsGlobPattern(t *testing.T) {
	app := load(t, `
grove:
  root: /repos

commands:
  test-unit: make unit
  test-e2e: make e2e
  build: make

trees:
  app: {}
`)
	cfg := app.Root()
	tc := &config.TreeContext{Tree: "app"}

	got := eval.Commands(app, cfg, tc, "test-*")
	want := [][]string{{"make unit"}, {"make e2e"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	if got := eval.Commands(app, cfg, tc, "nope"); len(got) != 0 {
		t.Errorf("unexpected matches: %v", got)
	}
}

func TestCommandsEvaluateInTreeScope(t *testing.T) {
	app := load(t, `
grove:
  root: /repos

commands:
  where:
    - echo ${TREE_NAME}
    - echo $1

trees:
  app: {}
`)
	cfg := app.Root()
	tc := &config.TreeContext{Tree: "app"}

	got := eval.Commands(app, cfg, tc, "where")
	// Multi-line commands keep their lines; positional parameters pass
	// through for the shell.
	want := [][]string{{"echo app", "echo $1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandNames(t *testing.T) {
	app := load(t, `
grove:
  root: /repos

commands:
  build: make
  test: make test

trees:
  app:
    commands:
      build: ./local-build
      deploy: ./deploy
`)
	cfg := app.Root()
	tc := &config.TreeContext{Tree: "app"}

	got := eval.CommandNames(cfg, tc)
	want := []string{"build", "test", "deploy"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}
