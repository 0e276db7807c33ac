package eval_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/eval"
)

func pairs(vars []eval.EnvVar) [][2]string {
	result := make([][2]string, 0, len(vars))
	for _, v := range vars {
		result = append(result, [2]string{v.Name, v.Value})
	}
	return result
}

func TestEnvironmentMergeSigils(t *testing.T) {
	app := load(t, `
grove:
  root: /repos

trees:
  app:
    environment:
      EMPTY:
        - a
        - b
      ASSIGNED=: fixed
      CHAIN: first
      CHAIN+: appended
`)
	cfg := app.Root()
	tc := &config.TreeContext{Tree: "app"}

	got := pairs(eval.Environment(app, cfg, tc))
	// Prepends emit every intermediate value; appends join on the right.
	want := [][2]string{
		{"EMPTY", "a"},
		{"EMPTY", "b:a"},
		{"ASSIGNED", "fixed"},
		{"CHAIN", "first"},
		{"CHAIN", "first:appended"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("environment mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvironmentBootstrapsFromProcess(t *testing.T) {
	app := load(t, `
grove:
  root: /repos

trees:
  app:
    environment:
      GROVE_TEST_BOOT: extra
      GROVE_TEST_SET=: override
`)
	cfg := app.Root()
	tc := &config.TreeContext{Tree: "app"}

	t.Setenv("GROVE_TEST_BOOT", "ambient")
	t.Setenv("GROVE_TEST_SET", "ambient")

	got := pairs(eval.Environment(app, cfg, tc))
	want := [][2]string{
		// The first non-assignment sighting seeds from the process env.
		{"GROVE_TEST_BOOT", "extra:ambient"},
		// Assignments ignore the ambient value.
		{"GROVE_TEST_SET", "override"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("environment mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvironmentGardenLayers(t *testing.T) {
	app := load(t, `
grove:
  root: /repos

environment:
  GLOBAL: config

trees:
  one:
    environment:
      SHARED: ${TREE_NAME}
  two:
    environment:
      SHARED: ${TREE_NAME}

gardens:
  dev:
    trees:
      - one
      - two
    environment:
      SHARED: garden
`)
	cfg := app.Root()
	tc := &config.TreeContext{Garden: "dev"}

	got := pairs(eval.Environment(app, cfg, tc))
	// Config entries first, then each member tree's entries evaluated in
	// that tree's own scope, then the garden's.
	want := [][2]string{
		{"GLOBAL", "config"},
		{"SHARED", "one"},
		{"SHARED", "two:one"},
		{"SHARED", "garden:two:one"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("environment mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvironmentGroupContext(t *testing.T) {
	app := load(t, `
grove:
  root: /repos

trees:
  one:
    environment:
      NAMES: ${TREE_NAME}
  two:
    environment:
      NAMES: ${TREE_NAME}

groups:
  pair:
    - one
    - two
`)
	cfg := app.Root()
	tc := &config.TreeContext{Group: "pair"}

	got := pairs(eval.Environment(app, cfg, tc))
	want := [][2]string{
		{"NAMES", "one"},
		{"NAMES", "two:one"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("environment mismatch (-want +got):\n%s", diff)
	}
}
